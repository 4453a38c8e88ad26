package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 仓库集合
type Repositories struct {
	Supplier *SupplierRepository
	Project  *ProjectRepository
	Remark   *RemarkRepository
	Upload   *UploadRepository
	BomCost  *BomCostRepository
	Rate     *RateRepository
	Ipd      *IpdRepository
	Price    *PriceRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Supplier: NewSupplierRepository(db),
		Project:  NewProjectRepository(db),
		Remark:   NewRemarkRepository(db),
		Upload:   NewUploadRepository(db),
		BomCost:  NewBomCostRepository(db),
		Rate:     NewRateRepository(db),
		Ipd:      NewIpdRepository(db),
		Price:    NewPriceRepository(db),
	}
}
