package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// UploadRepository 附件元数据仓库
type UploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) *UploadRepository {
	return &UploadRepository{db: db}
}

// FindAll 查询附件，可按项目/物料过滤
func (r *UploadRepository) FindAll(ctx context.Context, projectID, materialID string) ([]entity.Upload, error) {
	var items []entity.Upload
	query := r.db.WithContext(ctx).Model(&entity.Upload{})
	if projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if materialID != "" {
		query = query.Where("material_id = ?", materialID)
	}
	err := query.Order("created_at DESC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找附件
func (r *UploadRepository) FindByID(ctx context.Context, id string) (*entity.Upload, error) {
	var upload entity.Upload
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&upload).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &upload, nil
}

// Create 创建附件记录
func (r *UploadRepository) Create(ctx context.Context, upload *entity.Upload) error {
	return r.db.WithContext(ctx).Create(upload).Error
}

// Delete 删除附件记录
func (r *UploadRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Upload{}).Error
}
