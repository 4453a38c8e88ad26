package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// ProjectRepository 项目与物料仓库
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// FindAll 查询项目列表，物料按 order_index 排序预加载
func (r *ProjectRepository) FindAll(ctx context.Context) ([]entity.Project, error) {
	var items []entity.Project
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindAllSummary 仅查询项目本体，不带物料
func (r *ProjectRepository) FindAllSummary(ctx context.Context) ([]entity.Project, error) {
	var items []entity.Project
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找项目
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	var project entity.Project
	err := r.db.WithContext(ctx).
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete 删除项目并级联物料及其附件
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var materialIDs []string
		if err := tx.Model(&entity.Material{}).
			Where("project_id = ?", id).
			Pluck("id", &materialIDs).Error; err != nil {
			return err
		}
		if len(materialIDs) > 0 {
			if err := tx.Where("material_id IN ?", materialIDs).
				Delete(&entity.Upload{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&entity.Material{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.Project{}).Error
	})
}

// FindMaterial 根据ID查找物料
func (r *ProjectRepository) FindMaterial(ctx context.Context, id string) (*entity.Material, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &material, nil
}

// DistinctComponents 项目下去重后的组件名
func (r *ProjectRepository) DistinctComponents(ctx context.Context, projectID string) ([]string, error) {
	var components []string
	err := r.db.WithContext(ctx).
		Model(&entity.Material{}).
		Where("project_id = ? AND component <> ''", projectID).
		Distinct("component").
		Order("component ASC").
		Pluck("component", &components).Error
	return components, err
}

// FindBomQty 查找 (项目, 组件) 的BOM用量，缺失返回 ErrNotFound
func (r *ProjectRepository) FindBomQty(ctx context.Context, projectID, component string) (float64, error) {
	var material entity.Material
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND component = ?", projectID, component).
		Order("order_index ASC").
		First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return material.BomQty, nil
}
