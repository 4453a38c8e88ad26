package service

import (
	"sort"
	"strings"
	"time"

	"github.com/prakasautama/procost/internal/entity"
)

// QuotationRow 按季度匹配后的报价行，季度环比视图的数据基础
type QuotationRow struct {
	IpdQuotation   string    `json:"ipd_quotation"`
	MaterialSource string    `json:"material_source"`
	Quarter        string    `json:"quarter"`
	IpdSiis        string    `json:"ipd_siis"`
	Price          float64   `json:"price"`
	StartDate      time.Time `json:"start_date"`
}

// MatchQuotations 把报价明细与IPD目录按报价引用+供应商名（忽略大小写）联接：
//  1. (引用, 供应商) 有多条目录时取id最小的一条
//  2. 丢弃SIIS为空或哨兵 "-" 的匹配
//  3. (引用, 料源, 季度) 重复时保留表头 start_date 最晚的一行
//  4. 按引用、料源、季度升序输出
func MatchQuotations(supplierName string, headers []entity.PriceHeader, details []entity.PriceDetail, catalog []entity.IpdRecord) []QuotationRow {
	headerByID := make(map[string]entity.PriceHeader, len(headers))
	for _, h := range headers {
		headerByID[h.ID] = h
	}

	// (引用, 供应商) → 目录条目，first-row-wins 去重
	wantSupplier := strings.ToLower(strings.TrimSpace(supplierName))
	catalogByRef := make(map[string]entity.IpdRecord)
	for _, rec := range catalog {
		if strings.ToLower(strings.TrimSpace(rec.Supplier)) != wantSupplier {
			continue
		}
		ref := rec.IpdQuotation
		if existing, ok := catalogByRef[ref]; !ok || rec.ID < existing.ID {
			catalogByRef[ref] = rec
		}
	}

	type key struct {
		ref    string
		source string
		qtr    string
	}
	best := make(map[key]QuotationRow)

	for _, d := range details {
		header, ok := headerByID[d.HeaderID]
		if !ok {
			continue
		}
		rec, ok := catalogByRef[d.IpdQuotation]
		if !ok {
			continue
		}
		siis := strings.TrimSpace(rec.IpdSiis)
		if siis == "" || siis == "-" {
			continue
		}

		k := key{ref: d.IpdQuotation, source: d.MaterialSource, qtr: header.Quarter}
		row := QuotationRow{
			IpdQuotation:   d.IpdQuotation,
			MaterialSource: d.MaterialSource,
			Quarter:        header.Quarter,
			IpdSiis:        siis,
			Price:          d.Price,
			StartDate:      header.StartDate,
		}
		if existing, ok := best[k]; !ok || row.StartDate.After(existing.StartDate) {
			best[k] = row
		}
	}

	rows := make([]QuotationRow, 0, len(best))
	for _, row := range best {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].IpdQuotation != rows[j].IpdQuotation {
			return rows[i].IpdQuotation < rows[j].IpdQuotation
		}
		if rows[i].MaterialSource != rows[j].MaterialSource {
			return rows[i].MaterialSource < rows[j].MaterialSource
		}
		return rows[i].Quarter < rows[j].Quarter
	})
	return rows
}
