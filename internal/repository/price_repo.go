package repository

import (
	"context"
	"errors"

	"github.com/prakasautama/procost/internal/entity"
	"gorm.io/gorm"
)

// IpdRepository IPD目录仓库
type IpdRepository struct {
	db *gorm.DB
}

func NewIpdRepository(db *gorm.DB) *IpdRepository {
	return &IpdRepository{db: db}
}

// FindAll 查询IPD目录，可按SIIS/供应商模糊过滤
func (r *IpdRepository) FindAll(ctx context.Context, search string) ([]entity.IpdRecord, error) {
	var items []entity.IpdRecord
	query := r.db.WithContext(ctx).Model(&entity.IpdRecord{})
	if search != "" {
		query = query.Where("ipd_siis ILIKE ? OR supplier ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	err := query.Order("ipd_siis ASC").Find(&items).Error
	return items, err
}

// FindByID 根据ID查找IPD条目
func (r *IpdRepository) FindByID(ctx context.Context, id string) (*entity.IpdRecord, error) {
	var record entity.IpdRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindBySiis 根据SIIS业务编码查找IPD条目
func (r *IpdRepository) FindBySiis(ctx context.Context, siis string) (*entity.IpdRecord, error) {
	var record entity.IpdRecord
	err := r.db.WithContext(ctx).Where("ipd_siis = ?", siis).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Create 插入IPD条目
func (r *IpdRepository) Create(ctx context.Context, record *entity.IpdRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update 更新IPD条目
func (r *IpdRepository) Update(ctx context.Context, record *entity.IpdRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete 删除IPD条目
func (r *IpdRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.IpdRecord{}).Error
}

// DeleteByIDs 按ID列表批量删除
func (r *IpdRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entity.IpdRecord{}).Error
}

// Count IPD条目总数
func (r *IpdRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.IpdRecord{}).Count(&count).Error
	return count, err
}

// PriceRepository 价目表仓库
type PriceRepository struct {
	db *gorm.DB
}

func NewPriceRepository(db *gorm.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// FindHeaders 查询价目表头，可按供应商过滤
func (r *PriceRepository) FindHeaders(ctx context.Context, supplierID string) ([]entity.PriceHeader, error) {
	var items []entity.PriceHeader
	query := r.db.WithContext(ctx).Model(&entity.PriceHeader{}).Preload("Details")
	if supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	err := query.Order("start_date DESC").Find(&items).Error
	return items, err
}

// FindHeaderByID 根据ID查找价目表头
func (r *PriceRepository) FindHeaderByID(ctx context.Context, id string) (*entity.PriceHeader, error) {
	var header entity.PriceHeader
	err := r.db.WithContext(ctx).Preload("Details").Where("id = ?", id).First(&header).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &header, nil
}

// DeleteHeader 删除价目表头并级联明细
func (r *PriceRepository) DeleteHeader(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("header_id = ?", id).Delete(&entity.PriceDetail{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entity.PriceHeader{}).Error
	})
}

// DeleteHeadersByIDs 按ID列表批量删除表头及明细
func (r *PriceRepository) DeleteHeadersByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("header_id IN ?", ids).Delete(&entity.PriceDetail{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&entity.PriceHeader{}).Error
	})
}

// FindDetailByID 根据ID查找报价明细
func (r *PriceRepository) FindDetailByID(ctx context.Context, id string) (*entity.PriceDetail, error) {
	var detail entity.PriceDetail
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &detail, nil
}

// UpdateDetail 更新单条报价明细（修正个别价格的唯一入口）
func (r *PriceRepository) UpdateDetail(ctx context.Context, detail *entity.PriceDetail) error {
	return r.db.WithContext(ctx).Save(detail).Error
}

// DeleteDetail 删除单条报价明细
func (r *PriceRepository) DeleteDetail(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.PriceDetail{}).Error
}

// FindDetailsBySupplier 查询供应商全部报价明细（不预加载表头）
func (r *PriceRepository) FindDetailsBySupplier(ctx context.Context, supplierID string) ([]entity.PriceDetail, error) {
	var items []entity.PriceDetail
	err := r.db.WithContext(ctx).
		Joins("JOIN price_header ON price_header.id = price_detail.header_id").
		Where("price_header.supplier_id = ?", supplierID).
		Find(&items).Error
	return items, err
}

// DistinctQuarters 供应商价目表覆盖的季度标签
func (r *PriceRepository) DistinctQuarters(ctx context.Context, supplierID string) ([]string, error) {
	var quarters []string
	err := r.db.WithContext(ctx).
		Model(&entity.PriceHeader{}).
		Where("supplier_id = ?", supplierID).
		Distinct("quarter").
		Order("quarter ASC").
		Pluck("quarter", &quarters).Error
	return quarters, err
}

// CountHeaders 价目表头总数
func (r *PriceRepository) CountHeaders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PriceHeader{}).Count(&count).Error
	return count, err
}

// CountDetails 报价明细总数
func (r *PriceRepository) CountDetails(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PriceDetail{}).Count(&count).Error
	return count, err
}
