package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// SupplierRepository 供应商主数据仓库
type SupplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// FindAll 查询供应商列表
func (r *SupplierRepository) FindAll(ctx context.Context, search string) ([]entity.SupplierMaster, error) {
	var items []entity.SupplierMaster
	query := r.db.WithContext(ctx).Model(&entity.SupplierMaster{})
	if search != "" {
		query = query.Where("supplier_name ILIKE ? OR supplier_code ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	err := query.Order("supplier_code ASC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找供应商
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*entity.SupplierMaster, error) {
	var supplier entity.SupplierMaster
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// Create 创建供应商
func (r *SupplierRepository) Create(ctx context.Context, supplier *entity.SupplierMaster) error {
	return r.db.WithContext(ctx).Create(supplier).Error
}

// Update 更新供应商
func (r *SupplierRepository) Update(ctx context.Context, supplier *entity.SupplierMaster) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete 删除供应商（硬删除，无级联）
func (r *SupplierRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SupplierMaster{}).Error
}

// Count 供应商总数
func (r *SupplierRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.SupplierMaster{}).Count(&count).Error
	return count, err
}
