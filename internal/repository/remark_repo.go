package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// RemarkRepository 里程碑备注仓库
type RemarkRepository struct {
	db *gorm.DB
}

func NewRemarkRepository(db *gorm.DB) *RemarkRepository {
	return &RemarkRepository{db: db}
}

// FindAll 查询备注，按时间倒序。statusIndex 为 -1 时不过滤列
func (r *RemarkRepository) FindAll(ctx context.Context, projectID string, statusIndex int) ([]entity.Remark, error) {
	var items []entity.Remark
	query := r.db.WithContext(ctx).Model(&entity.Remark{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if statusIndex >= 0 {
		query = query.Where("status_index = ?", statusIndex)
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找备注
func (r *RemarkRepository) FindByID(ctx context.Context, id string) (*entity.Remark, error) {
	var remark entity.Remark
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&remark).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &remark, nil
}

// Create 创建备注
func (r *RemarkRepository) Create(ctx context.Context, remark *entity.Remark) error {
	return r.db.WithContext(ctx).Create(remark).Error
}

// Update 更新备注
func (r *RemarkRepository) Update(ctx context.Context, remark *entity.Remark) error {
	return r.db.WithContext(ctx).Save(remark).Error
}

// Delete 删除备注
func (r *RemarkRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Remark{}).Error
}
