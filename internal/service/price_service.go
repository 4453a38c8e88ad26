package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const siisCacheTTL = 10 * time.Minute

// PriceService 价目表与季度报价匹配服务
type PriceService struct {
	repo         *repository.PriceRepository
	ipdRepo      *repository.IpdRepository
	supplierRepo *repository.SupplierRepository
	db           *gorm.DB
	rdb          *redis.Client
}

func NewPriceService(
	repo *repository.PriceRepository,
	ipdRepo *repository.IpdRepository,
	supplierRepo *repository.SupplierRepository,
	db *gorm.DB,
	rdb *redis.Client,
) *PriceService {
	return &PriceService{repo: repo, ipdRepo: ipdRepo, supplierRepo: supplierRepo, db: db, rdb: rdb}
}

// PriceDetailInput 报价明细载荷
type PriceDetailInput struct {
	IpdQuotation   string  `json:"ipd_quotation" binding:"required"`
	IpdSiis        string  `json:"ipd_siis"`
	Description    string  `json:"description"`
	SteelSpec      string  `json:"steel_spec"`
	MaterialSource string  `json:"material_source"`
	TubeRoute      string  `json:"tube_route"`
	Price          float64 `json:"price"`
}

// CreatePriceRequest 价目表头+明细，一次事务写入
type CreatePriceRequest struct {
	SupplierID string             `json:"supplier_id" binding:"required"`
	StartDate  string             `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate    string             `json:"end_date"`
	Quarter    string             `json:"quarter" binding:"required"`
	Details    []PriceDetailInput `json:"details"`
}

// UpdatePriceHeaderRequest 表头窗口字段的局部更新，未携带的字段不动
type UpdatePriceHeaderRequest struct {
	StartDate *string `json:"start_date"` // YYYY-MM-DD
	EndDate   *string `json:"end_date"`
	Quarter   *string `json:"quarter"`
}

// UpdateDetailRequest 修正单条明细价格
type UpdateDetailRequest struct {
	SteelSpec      *string  `json:"steel_spec"`
	MaterialSource *string  `json:"material_source"`
	TubeRoute      *string  `json:"tube_route"`
	Price          *float64 `json:"price"`
}

// Totals 看板总数
type Totals struct {
	Suppliers    int64 `json:"suppliers"`
	IpdRecords   int64 `json:"ipd_records"`
	PriceHeaders int64 `json:"price_headers"`
	PriceDetails int64 `json:"price_details"`
}

// ListHeaders 价目表头列表
func (s *PriceService) ListHeaders(ctx context.Context, supplierID string) ([]entity.PriceHeader, error) {
	return s.repo.FindHeaders(ctx, supplierID)
}

// CreateHeader 表头与明细在一个事务里写入，中途失败不留半截表头
func (s *PriceService) CreateHeader(ctx context.Context, req *CreatePriceRequest) (*entity.PriceHeader, error) {
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, validationErrorf("invalid start_date %q, want YYYY-MM-DD", req.StartDate)
	}
	var endDate time.Time
	if req.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, validationErrorf("invalid end_date %q, want YYYY-MM-DD", req.EndDate)
		}
	}

	header := &entity.PriceHeader{
		ID:         uuid.New().String()[:32],
		SupplierID: req.SupplierID,
		StartDate:  startDate,
		EndDate:    endDate,
		Quarter:    req.Quarter,
	}
	for _, in := range req.Details {
		header.Details = append(header.Details, entity.PriceDetail{
			ID:             uuid.New().String()[:32],
			HeaderID:       header.ID,
			IpdQuotation:   in.IpdQuotation,
			IpdSiis:        in.IpdSiis,
			Description:    in.Description,
			SteelSpec:      in.SteelSpec,
			MaterialSource: in.MaterialSource,
			TubeRoute:      in.TubeRoute,
			Price:          in.Price,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(header).Error
	})
	if err != nil {
		return nil, fmt.Errorf("create price header: %w", err)
	}

	s.invalidateSiisCache(ctx, req.SupplierID)
	return header, nil
}

// UpdateHeader 更新表头窗口字段，供应商和明细不动
func (s *PriceService) UpdateHeader(ctx context.Context, id string, req *UpdatePriceHeaderRequest) (*entity.PriceHeader, error) {
	header, err := s.repo.FindHeaderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, validationErrorf("invalid start_date %q, want YYYY-MM-DD", *req.StartDate)
		}
		header.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return nil, validationErrorf("invalid end_date %q, want YYYY-MM-DD", *req.EndDate)
		}
		header.EndDate = endDate
	}
	if req.Quarter != nil {
		header.Quarter = *req.Quarter
	}

	err = s.db.WithContext(ctx).Model(&entity.PriceHeader{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_date": header.StartDate,
			"end_date":   header.EndDate,
			"quarter":    header.Quarter,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("update price header: %w", err)
	}

	s.invalidateSiisCache(ctx, header.SupplierID)
	return header, nil
}

// DeleteHeader 删除表头并级联明细
func (s *PriceService) DeleteHeader(ctx context.Context, id string) error {
	header, err := s.repo.FindHeaderByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteHeader(ctx, id); err != nil {
		return fmt.Errorf("delete price header: %w", err)
	}
	s.invalidateSiisCache(ctx, header.SupplierID)
	return nil
}

// BulkDelete 按ID列表批量删除表头
func (s *PriceService) BulkDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return validationErrorf("ids is required")
	}
	if err := s.repo.DeleteHeadersByIDs(ctx, ids); err != nil {
		return fmt.Errorf("bulk delete price headers: %w", err)
	}
	s.invalidateAllSiisCache(ctx)
	return nil
}

// UpdateDetail 修正单条明细
func (s *PriceService) UpdateDetail(ctx context.Context, id string, req *UpdateDetailRequest) (*entity.PriceDetail, error) {
	detail, err := s.repo.FindDetailByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.SteelSpec != nil {
		detail.SteelSpec = *req.SteelSpec
	}
	if req.MaterialSource != nil {
		detail.MaterialSource = *req.MaterialSource
	}
	if req.TubeRoute != nil {
		detail.TubeRoute = *req.TubeRoute
	}
	if req.Price != nil {
		detail.Price = *req.Price
	}
	if err := s.repo.UpdateDetail(ctx, detail); err != nil {
		return nil, fmt.Errorf("update price detail: %w", err)
	}
	s.invalidateAllSiisCache(ctx)
	return detail, nil
}

// DeleteDetail 删除单条明细
func (s *PriceService) DeleteDetail(ctx context.Context, id string) error {
	if _, err := s.repo.FindDetailByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteDetail(ctx, id); err != nil {
		return fmt.Errorf("delete price detail: %w", err)
	}
	s.invalidateAllSiisCache(ctx)
	return nil
}

// Quarters 供应商覆盖的季度标签
func (s *PriceService) Quarters(ctx context.Context, supplierID string) ([]string, error) {
	if supplierID == "" {
		return nil, validationErrorf("supplier_id is required")
	}
	return s.repo.DistinctQuarters(ctx, supplierID)
}

// Siis 供应商按季度匹配后的报价行，redis 旁路缓存
func (s *PriceService) Siis(ctx context.Context, supplierID string) ([]QuotationRow, error) {
	if supplierID == "" {
		return nil, validationErrorf("supplier_id is required")
	}

	cacheKey := "siis:" + supplierID
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var rows []QuotationRow
			if json.Unmarshal(cached, &rows) == nil {
				return rows, nil
			}
		}
	}

	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	headers, err := s.repo.FindHeaders(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list price headers: %w", err)
	}
	details, err := s.repo.FindDetailsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list price details: %w", err)
	}
	catalog, err := s.ipdRepo.FindAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list ipd catalog: %w", err)
	}

	rows := MatchQuotations(supplier.SupplierName, headers, details, catalog)

	if s.rdb != nil {
		if payload, err := json.Marshal(rows); err == nil {
			s.rdb.Set(ctx, cacheKey, payload, siisCacheTTL)
		}
	}
	return rows, nil
}

// Total 看板总数
func (s *PriceService) Total(ctx context.Context) (*Totals, error) {
	suppliers, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	ipds, err := s.ipdRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	headers, err := s.repo.CountHeaders(ctx)
	if err != nil {
		return nil, err
	}
	details, err := s.repo.CountDetails(ctx)
	if err != nil {
		return nil, err
	}
	return &Totals{
		Suppliers:    suppliers,
		IpdRecords:   ipds,
		PriceHeaders: headers,
		PriceDetails: details,
	}, nil
}

// ImportCSV 价目表CSV导入：首行表头，列序
// ipd_quotation, ipd_siis, description, steel_spec, material_source, tube_route, price。
// 逐行读入后整体走 CreateHeader 的事务
func (s *PriceService) ImportCSV(ctx context.Context, supplierID, startDate, endDate, quarter string, reader io.Reader) (*entity.PriceHeader, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, validationErrorf("failed to parse CSV: %v", err)
	}
	if len(rows) < 2 {
		return nil, validationErrorf("CSV must contain a header row and at least one data row")
	}

	req := &CreatePriceRequest{
		SupplierID: supplierID,
		StartDate:  startDate,
		EndDate:    endDate,
		Quarter:    quarter,
	}
	for _, row := range rows[1:] {
		if len(row) < 7 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		price, _ := strconv.ParseFloat(strings.TrimSpace(row[6]), 64)
		req.Details = append(req.Details, PriceDetailInput{
			IpdQuotation:   strings.TrimSpace(row[0]),
			IpdSiis:        strings.TrimSpace(row[1]),
			Description:    strings.TrimSpace(row[2]),
			SteelSpec:      strings.TrimSpace(row[3]),
			MaterialSource: strings.TrimSpace(row[4]),
			TubeRoute:      strings.TrimSpace(row[5]),
			Price:          price,
		})
	}
	if len(req.Details) == 0 {
		return nil, validationErrorf("no valid rows in CSV")
	}
	return s.CreateHeader(ctx, req)
}

func (s *PriceService) invalidateSiisCache(ctx context.Context, supplierID string) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "siis:"+supplierID)
	}
}

func (s *PriceService) invalidateAllSiisCache(ctx context.Context) {
	clearSiisCache(ctx, s.rdb)
}

// clearSiisCache 清空全部SIIS匹配缓存。IPD目录和供应商主数据
// 会影响任意供应商的匹配结果，写入后整体失效
func clearSiisCache(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	iter := rdb.Scan(ctx, 0, "siis:*", 0).Iterator()
	for iter.Next(ctx) {
		rdb.Del(ctx, iter.Val())
	}
}
