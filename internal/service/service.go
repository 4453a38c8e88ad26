package service

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prakasautama/procost/internal/config"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services 服务集合
type Services struct {
	Supplier *SupplierService
	Project  *ProjectService
	Remark   *RemarkService
	Rate     *RateService
	BomCost  *BomCostService
	Ipd      *IpdService
	Price    *PriceService
	Upload   *UploadService
	Export   *ExportService
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Services {
	// MinIO 不可用时附件服务退化为只记元数据
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		var err error
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			minioClient = nil
		}
	}

	return &Services{
		Supplier: NewSupplierService(repos.Supplier, rdb),
		Project:  NewProjectService(repos.Project, db),
		Remark:   NewRemarkService(repos.Remark),
		Rate:     NewRateService(repos.Rate),
		BomCost:  NewBomCostService(repos.BomCost, repos.Rate, repos.Project),
		Ipd:      NewIpdService(repos.Ipd, rdb),
		Price:    NewPriceService(repos.Price, repos.Ipd, repos.Supplier, db, rdb),
		Upload:   NewUploadService(repos.Upload, minioClient, cfg.MinIO.Bucket, cfg.MinIO.UseSSL),
		Export:   NewExportService(repos.BomCost, repos.Project),
	}
}
