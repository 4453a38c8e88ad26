package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// RateRepository BP汇率表仓库，只有插入/删除两条路径
type RateRepository struct {
	db *gorm.DB
}

func NewRateRepository(db *gorm.DB) *RateRepository {
	return &RateRepository{db: db}
}

// FindAll 查询全部汇率条目
func (r *RateRepository) FindAll(ctx context.Context) ([]entity.BpRate, error) {
	var items []entity.BpRate
	err := r.db.WithContext(ctx).Order("currency ASC, id ASC").Find(&items).Error
	return items, err
}

// FindByCurrency 按币种取汇率。币种无唯一约束，取id最小的一条保证确定性
func (r *RateRepository) FindByCurrency(ctx context.Context, currency string) (*entity.BpRate, error) {
	var rate entity.BpRate
	err := r.db.WithContext(ctx).
		Where("currency = ?", currency).
		Order("id ASC").
		First(&rate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rate, nil
}

// Create 插入汇率条目
func (r *RateRepository) Create(ctx context.Context, rate *entity.BpRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

// Delete 删除汇率条目
func (r *RateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BpRate{}).Error
}

// BomCostRepository 落地成本结果仓库
type BomCostRepository struct {
	db *gorm.DB
}

func NewBomCostRepository(db *gorm.DB) *BomCostRepository {
	return &BomCostRepository{db: db}
}

// FindAll 查询落地成本行，可按项目过滤
func (r *BomCostRepository) FindAll(ctx context.Context, projectID string) ([]entity.BomCost, error) {
	var items []entity.BomCost
	query := r.db.WithContext(ctx).Model(&entity.BomCost{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	err := query.Order("component ASC, created_at ASC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找落地成本行
func (r *BomCostRepository) FindByID(ctx context.Context, id string) (*entity.BomCost, error) {
	var cost entity.BomCost
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cost).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cost, nil
}

// Create 插入落地成本行
func (r *BomCostRepository) Create(ctx context.Context, cost *entity.BomCost) error {
	return r.db.WithContext(ctx).Create(cost).Error
}

// Update 更新落地成本行
func (r *BomCostRepository) Update(ctx context.Context, cost *entity.BomCost) error {
	return r.db.WithContext(ctx).Save(cost).Error
}

// Delete 删除落地成本行
func (r *BomCostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.BomCost{}).Error
}
