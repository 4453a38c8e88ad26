package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// supplierCountries 国别定位词表。导入启发式先在行里找到国别列，
// 再按固定相对偏移读其余字段
var supplierCountries = []string{
	"indonesia", "japan", "china", "thailand", "vietnam", "malaysia",
	"singapore", "india", "korea", "south korea", "taiwan", "philippines",
	"germany", "italy", "france", "usa", "united states", "turkey",
}

// supplierRow 启发式解析出的一行供应商字段
type supplierRow struct {
	Code      string
	Name      string
	Address   string
	Country   string
	PIC       string
	Email     string
	Category  string
	Currency  string
	Incoterm  string
	TOP       int
	Forwarder string
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseSupplierRow 在行内定位国别列，然后按相对偏移取字段：
// code=-3 name=-2 address=-1 country=0 pic=+1 email=+2 category=+3
// currency=+4 incoterm=+5 top=+6 forwarder=+7。
// 找不到国别或缺编码/名称时返回错误，由调用方记入跳过清单
func parseSupplierRow(row []string) (*supplierRow, error) {
	countryIdx := -1
	for i, cell := range row {
		v := strings.ToLower(strings.TrimSpace(cell))
		for _, c := range supplierCountries {
			if v == c {
				countryIdx = i
				break
			}
		}
		if countryIdx >= 0 {
			break
		}
	}
	if countryIdx < 0 {
		return nil, fmt.Errorf("no recognizable country column")
	}

	out := &supplierRow{
		Code:      cellAt(row, countryIdx-3),
		Name:      cellAt(row, countryIdx-2),
		Address:   cellAt(row, countryIdx-1),
		Country:   cellAt(row, countryIdx),
		PIC:       cellAt(row, countryIdx+1),
		Email:     cellAt(row, countryIdx+2),
		Category:  cellAt(row, countryIdx+3),
		Currency:  cellAt(row, countryIdx+4),
		Incoterm:  cellAt(row, countryIdx+5),
		Forwarder: cellAt(row, countryIdx+7),
	}
	out.TOP, _ = strconv.Atoi(cellAt(row, countryIdx+6))

	if out.Code == "" || out.Name == "" {
		return nil, fmt.Errorf("missing supplier code or name")
	}
	return out, nil
}

// ImportCSV 供应商CSV批量导入。非UTF-8文件按Windows-1252解码
// （Excel导出的常见情形）。启发式失败的行不再静默跳过，记入结果返回
func (s *SupplierService) ImportCSV(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !utf8.Valid(raw) {
		decoded, _, decErr := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
		if decErr == nil {
			raw = decoded
		}
	}

	r := csv.NewReader(bytes.NewReader(raw))
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, validationErrorf("failed to parse CSV: %v", err)
	}
	if len(rows) < 2 {
		return nil, validationErrorf("CSV must contain a header row and at least one data row")
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		parsed, err := parseSupplierRow(row)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		supplier := &entity.SupplierMaster{
			ID:           uuid.New().String()[:32],
			SupplierCode: parsed.Code,
			SupplierName: parsed.Name,
			Address:      parsed.Address,
			Country:      parsed.Country,
			PIC:          parsed.PIC,
			Email:        parsed.Email,
			Category:     parsed.Category,
			Currency:     parsed.Currency,
			Incoterm:     parsed.Incoterm,
			TOP:          parsed.TOP,
			Forwarder:    parsed.Forwarder,
		}
		supplier.CreatedAt = time.Now()
		if err := s.repo.Create(ctx, supplier); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Inserted++
	}
	return result, nil
}
