package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
)

// IpdService IPD目录服务
type IpdService struct {
	repo *repository.IpdRepository
	rdb  *redis.Client
}

func NewIpdService(repo *repository.IpdRepository, rdb *redis.Client) *IpdService {
	return &IpdService{repo: repo, rdb: rdb}
}

// IpdRequest IPD条目载荷，创建与更新共用
type IpdRequest struct {
	IpdSiis      string `json:"ipd_siis" binding:"required"`
	Supplier     string `json:"supplier" binding:"required"`
	Description  string `json:"desc"`
	FbType       string `json:"fb_type"`
	Commodity    string `json:"commodity"`
	IpdQuotation string `json:"ipd_quotation"`
}

// VerifyResult SIIS编码校验结果
type VerifyResult struct {
	Exists bool              `json:"exists"`
	Record *entity.IpdRecord `json:"record,omitempty"`
}

// ImportResult 批量导入结果
type ImportResult struct {
	Inserted int      `json:"inserted"`
	Skipped  []string `json:"skipped,omitempty"`
}

// List IPD目录列表
func (s *IpdService) List(ctx context.Context, search string) ([]entity.IpdRecord, error) {
	return s.repo.FindAll(ctx, search)
}

// Create 创建IPD条目
func (s *IpdService) Create(ctx context.Context, req *IpdRequest) (*entity.IpdRecord, error) {
	record := &entity.IpdRecord{
		ID:           uuid.New().String()[:32],
		IpdSiis:      req.IpdSiis,
		Supplier:     req.Supplier,
		Description:  req.Description,
		FbType:       req.FbType,
		Commodity:    req.Commodity,
		IpdQuotation: req.IpdQuotation,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create ipd record: %w", err)
	}
	clearSiisCache(ctx, s.rdb)
	return record, nil
}

// Update 更新IPD条目
func (s *IpdService) Update(ctx context.Context, id string, req *IpdRequest) (*entity.IpdRecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	record.IpdSiis = req.IpdSiis
	record.Supplier = req.Supplier
	record.Description = req.Description
	record.FbType = req.FbType
	record.Commodity = req.Commodity
	record.IpdQuotation = req.IpdQuotation
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("update ipd record: %w", err)
	}
	clearSiisCache(ctx, s.rdb)
	return record, nil
}

// Delete 删除IPD条目
func (s *IpdService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	clearSiisCache(ctx, s.rdb)
	return nil
}

// BulkDelete 按ID列表批量删除
func (s *IpdService) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return validationErrorf("ids is required")
	}
	if err := s.repo.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	clearSiisCache(ctx, s.rdb)
	return nil
}

// Verify 校验SIIS编码是否已登记
func (s *IpdService) Verify(ctx context.Context, siis string) (*VerifyResult, error) {
	if siis == "" {
		return nil, validationErrorf("ipd_siis is required")
	}
	record, err := s.repo.FindBySiis(ctx, siis)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &VerifyResult{Exists: false}, nil
		}
		return nil, err
	}
	return &VerifyResult{Exists: true, Record: record}, nil
}

// Import 从CSV或xlsx批量导入IPD目录。列序
// ipd_siis, supplier, desc, fb_type, commodity, ipd_quotation。
// SIIS为空的行记入 skipped，逐行插入（单语句持久化，与交互路径一致）
func (s *IpdService) Import(ctx context.Context, filename string, reader io.Reader) (*ImportResult, error) {
	var rows [][]string
	var err error

	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		r := csv.NewReader(reader)
		r.TrimLeadingSpace = true
		r.LazyQuotes = true
		rows, err = r.ReadAll()
		if err != nil {
			return nil, validationErrorf("failed to parse CSV: %v", err)
		}
	case strings.HasSuffix(lower, ".xlsx"):
		f, openErr := excelize.OpenReader(reader)
		if openErr != nil {
			return nil, validationErrorf("failed to open Excel file: %v", openErr)
		}
		defer f.Close()
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, validationErrorf("failed to read sheet: %v", err)
		}
	default:
		return nil, validationErrorf("unsupported file format: must be .csv or .xlsx")
	}

	if len(rows) < 2 {
		return nil, validationErrorf("file must contain a header row and at least one data row")
	}

	result := &ImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		if len(row) < 2 || strings.TrimSpace(row[0]) == "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: missing ipd_siis", rowNum))
			continue
		}
		record := &entity.IpdRecord{
			ID:        uuid.New().String()[:32],
			IpdSiis:   strings.TrimSpace(row[0]),
			Supplier:  strings.TrimSpace(row[1]),
			CreatedAt: time.Now(),
		}
		if len(row) > 2 {
			record.Description = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			record.FbType = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			record.Commodity = strings.TrimSpace(row[4])
		}
		if len(row) > 5 {
			record.IpdQuotation = strings.TrimSpace(row[5])
		}
		if err := s.repo.Create(ctx, record); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Inserted++
	}
	if result.Inserted > 0 {
		clearSiisCache(ctx, s.rdb)
	}
	return result, nil
}
