package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/redis/go-redis/v9"
)

// SupplierService 供应商主数据服务
type SupplierService struct {
	repo *repository.SupplierRepository
	rdb  *redis.Client
}

func NewSupplierService(repo *repository.SupplierRepository, rdb *redis.Client) *SupplierService {
	return &SupplierService{repo: repo, rdb: rdb}
}

// SupplierRequest 供应商载荷，创建与更新共用
type SupplierRequest struct {
	SupplierCode string `json:"supplier_code" binding:"required"`
	SupplierName string `json:"supplier_name" binding:"required"`
	Address      string `json:"address"`
	Country      string `json:"country"`
	PIC          string `json:"pic"`
	Email        string `json:"email"`
	Category     string `json:"category"`
	Currency     string `json:"currency"`
	Incoterm     string `json:"incoterm"`
	TOP          int    `json:"top"`
	Forwarder    string `json:"forwarder"`
}

// List 供应商列表
func (s *SupplierService) List(ctx context.Context, search string) ([]entity.SupplierMaster, error) {
	return s.repo.FindAll(ctx, search)
}

// Get 供应商详情
func (s *SupplierService) Get(ctx context.Context, id string) (*entity.SupplierMaster, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建供应商
func (s *SupplierService) Create(ctx context.Context, req *SupplierRequest) (*entity.SupplierMaster, error) {
	supplier := &entity.SupplierMaster{
		ID:           uuid.New().String()[:32],
		SupplierCode: req.SupplierCode,
		SupplierName: req.SupplierName,
		Address:      req.Address,
		Country:      req.Country,
		PIC:          req.PIC,
		Email:        req.Email,
		Category:     req.Category,
		Currency:     req.Currency,
		Incoterm:     req.Incoterm,
		TOP:          req.TOP,
		Forwarder:    req.Forwarder,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	return supplier, nil
}

// Update 更新供应商
func (s *SupplierService) Update(ctx context.Context, id string, req *SupplierRequest) (*entity.SupplierMaster, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier.SupplierCode = req.SupplierCode
	supplier.SupplierName = req.SupplierName
	supplier.Address = req.Address
	supplier.Country = req.Country
	supplier.PIC = req.PIC
	supplier.Email = req.Email
	supplier.Category = req.Category
	supplier.Currency = req.Currency
	supplier.Incoterm = req.Incoterm
	supplier.TOP = req.TOP
	supplier.Forwarder = req.Forwarder
	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	// 供应商名是SIIS匹配键，改名后缓存行会挂在旧名下
	clearSiisCache(ctx, s.rdb)
	return supplier, nil
}

// Delete 删除供应商（直接删行，无级联）
func (s *SupplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	clearSiisCache(ctx, s.rdb)
	return nil
}
