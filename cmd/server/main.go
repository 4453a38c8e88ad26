package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prakasautama/procost/internal/config"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/handler"
	"github.com/prakasautama/procost/internal/middleware"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/prakasautama/procost/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting procost service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.SupplierMaster{},
		&entity.Project{},
		&entity.Material{},
		&entity.Upload{},
		&entity.Remark{},
		&entity.BpRate{},
		&entity.BomCost{},
		&entity.IpdRecord{},
		&entity.PriceHeader{},
		&entity.PriceDetail{},
	); err != nil {
		zapLogger.Warn("AutoMigrate warning", zap.Error(err))
	}

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, cfg)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// 项目与物料
	projects := r.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PATCH("/:id", h.Project.Update)
		projects.DELETE("/:id", h.Project.Delete)
	}
	r.GET("/materials", h.Project.ListComponents)

	// 里程碑备注
	remarks := r.Group("/remarks")
	{
		remarks.GET("", h.Remark.List)
		remarks.POST("", h.Remark.Create)
		remarks.PATCH("/:id", h.Remark.Update)
		remarks.DELETE("/:id", h.Remark.Delete)
	}

	// 附件
	uploads := r.Group("/uploads")
	{
		uploads.GET("", h.Upload.List)
		uploads.POST("", h.Upload.Upload)
		uploads.DELETE("/:id", h.Upload.Delete)
	}

	// 供应商
	supplier := r.Group("/supplier")
	{
		supplier.GET("", h.Supplier.List)
		supplier.POST("", h.Supplier.Create)
		supplier.PUT("/:id", h.Supplier.Update)
		supplier.DELETE("/:id", h.Supplier.Delete)
		supplier.POST("/upload-csv", h.Supplier.UploadCSV)
	}

	// BP汇率
	r.GET("/bp", h.BomCost.ListRates)
	r.GET("/bp-rates", h.BomCost.ListRates)
	r.POST("/bp", h.BomCost.CreateRate)
	r.DELETE("/bp/:id", h.BomCost.DeleteRate)

	// 落地成本
	bomCost := r.Group("/bom-cost")
	{
		bomCost.GET("", h.BomCost.List)
		bomCost.POST("", h.BomCost.Create)
		bomCost.GET("/export", h.BomCost.ExportXLSX)
		bomCost.GET("/export-pdf", h.BomCost.ExportPDF)
		bomCost.GET("/:id", h.BomCost.Get)
		bomCost.PUT("/:id", h.BomCost.Update)
		bomCost.DELETE("/:id", h.BomCost.Delete)
	}
	r.GET("/bom-cost-summary", h.BomCost.Summary)

	// IPD目录
	ipd := r.Group("/ipd")
	{
		ipd.GET("", h.Ipd.List)
		ipd.POST("", h.Ipd.Create)
		ipd.POST("/bulk-delete", h.Ipd.BulkDelete)
		ipd.POST("/upload", h.Ipd.Upload)
		ipd.GET("/verify", h.Ipd.Verify)
		ipd.PUT("/:id", h.Ipd.Update)
		ipd.DELETE("/:id", h.Ipd.Delete)
	}

	// 价目表与报价匹配
	price := r.Group("/price")
	{
		price.GET("", h.Price.List)
		price.POST("", h.Price.Create)
		price.POST("/bulk-delete", h.Price.BulkDelete)
		price.POST("/upload-csv", h.Price.UploadCSV)
		price.PUT("/detail/:id", h.Price.UpdateDetail)
		price.DELETE("/detail/:id", h.Price.DeleteDetail)
		price.PUT("/:id", h.Price.Update)
		price.DELETE("/:id", h.Price.Delete)
	}
	r.GET("/price-quarters", h.Price.Quarters)
	r.GET("/siis", h.Price.Siis)
	r.GET("/total", h.Price.Total)
}
