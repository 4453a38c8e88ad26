package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
)

// RateService BP汇率表服务
type RateService struct {
	repo *repository.RateRepository
}

func NewRateService(repo *repository.RateRepository) *RateService {
	return &RateService{repo: repo}
}

// CreateRateRequest 插入汇率请求
type CreateRateRequest struct {
	Currency string  `json:"currency" binding:"required"`
	BpValue  float64 `json:"bp_value" binding:"required"`
}

// List 全部汇率条目
func (s *RateService) List(ctx context.Context) ([]entity.BpRate, error) {
	return s.repo.FindAll(ctx)
}

// Create 插入汇率条目
func (s *RateService) Create(ctx context.Context, req *CreateRateRequest) (*entity.BpRate, error) {
	rate := &entity.BpRate{
		ID:       uuid.New().String()[:32],
		Currency: req.Currency,
		BpValue:  req.BpValue,
	}
	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, fmt.Errorf("create bp rate: %w", err)
	}
	return rate, nil
}

// Delete 删除汇率条目
func (s *RateService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// BomCostService 落地成本服务
type BomCostService struct {
	repo        *repository.BomCostRepository
	rateRepo    *repository.RateRepository
	projectRepo *repository.ProjectRepository
}

func NewBomCostService(
	repo *repository.BomCostRepository,
	rateRepo *repository.RateRepository,
	projectRepo *repository.ProjectRepository,
) *BomCostService {
	return &BomCostService{repo: repo, rateRepo: rateRepo, projectRepo: projectRepo}
}

// BomCostRequest 落地成本写入载荷，创建与更新共用。
// landed_cost / tpl 为百分比原文字符串，解析失败按0
type BomCostRequest struct {
	ProjectID         string  `json:"project_id" binding:"required"`
	Component         string  `json:"component" binding:"required"`
	CandidateSupplier string  `json:"candidate_supplier"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency" binding:"required"`
	Term              string  `json:"term"`
	LandedCost        string  `json:"landed_cost"`
	TPL               string  `json:"tpl"`
	ToolingCost       float64 `json:"tooling_cost"`
}

// BomCostSummary 只读投影：项目落地成本行与合计
type BomCostSummary struct {
	ProjectID        string           `json:"project_id"`
	Items            []entity.BomCost `json:"items"`
	TotalCostBearing float64          `json:"total_cost_bearing"`
	TotalToolingCost float64          `json:"total_tooling_cost"`
}

// List 落地成本行，可按项目过滤
func (s *BomCostService) List(ctx context.Context, projectID string) ([]entity.BomCost, error) {
	return s.repo.FindAll(ctx, projectID)
}

// Get 单条落地成本行
func (s *BomCostService) Get(ctx context.Context, id string) (*entity.BomCost, error) {
	return s.repo.FindByID(ctx, id)
}

// resolve 解析汇率与BOM用量并套用公式，返回填好派生字段的快照值
func (s *BomCostService) resolve(ctx context.Context, req *BomCostRequest) (rate, landedIdr, costBearing float64, err error) {
	bpRate, err := s.rateRepo.FindByCurrency(ctx, req.Currency)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, 0, 0, validationErrorf("no BP rate found for currency %q", req.Currency)
		}
		return 0, 0, 0, fmt.Errorf("find bp rate: %w", err)
	}

	bomQty, err := s.projectRepo.FindBomQty(ctx, req.ProjectID, req.Component)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, 0, 0, validationErrorf("no BOM quantity found for component %q", req.Component)
		}
		return 0, 0, 0, fmt.Errorf("find bom qty: %w", err)
	}

	landedIdr, costBearing = ComputeLandedCost(
		req.Price,
		ParsePercent(req.LandedCost),
		ParsePercent(req.TPL),
		bpRate.BpValue,
		bomQty,
	)
	return bpRate.BpValue, landedIdr, costBearing, nil
}

// Create 计算并落库一条成本快照。汇率缺失或组件无BOM用量直接报错，不写任何行
func (s *BomCostService) Create(ctx context.Context, req *BomCostRequest) (*entity.BomCost, error) {
	rate, landedIdr, costBearing, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cost := &entity.BomCost{
		ID:                uuid.New().String()[:32],
		ProjectID:         req.ProjectID,
		Component:         req.Component,
		CandidateSupplier: req.CandidateSupplier,
		Price:             req.Price,
		Currency:          req.Currency,
		Term:              req.Term,
		LandedCost:        req.LandedCost,
		TPL:               req.TPL,
		Bp2026:            rate,
		LandedIdrPrice:    landedIdr,
		CostBearing:       costBearing,
		ToolingCost:       req.ToolingCost,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, cost); err != nil {
		return nil, fmt.Errorf("create bom cost: %w", err)
	}
	return cost, nil
}

// Update 重算并覆盖快照，派生字段永远随写入重新推导
func (s *BomCostService) Update(ctx context.Context, id string, req *BomCostRequest) (*entity.BomCost, error) {
	cost, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rate, landedIdr, costBearing, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	cost.ProjectID = req.ProjectID
	cost.Component = req.Component
	cost.CandidateSupplier = req.CandidateSupplier
	cost.Price = req.Price
	cost.Currency = req.Currency
	cost.Term = req.Term
	cost.LandedCost = req.LandedCost
	cost.TPL = req.TPL
	cost.Bp2026 = rate
	cost.LandedIdrPrice = landedIdr
	cost.CostBearing = costBearing
	cost.ToolingCost = req.ToolingCost
	cost.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, cost); err != nil {
		return nil, fmt.Errorf("update bom cost: %w", err)
	}
	return cost, nil
}

// Delete 删除落地成本行
func (s *BomCostService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary 项目成本只读投影
func (s *BomCostService) Summary(ctx context.Context, projectID string) (*BomCostSummary, error) {
	if projectID == "" {
		return nil, validationErrorf("project_id is required")
	}
	items, err := s.repo.FindAll(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list bom costs: %w", err)
	}

	summary := &BomCostSummary{ProjectID: projectID, Items: items}
	for _, item := range items {
		summary.TotalCostBearing += item.CostBearing
		summary.TotalToolingCost += item.ToolingCost
	}
	return summary, nil
}
