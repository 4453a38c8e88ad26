package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/repository"
	"github.com/prakasautama/procost/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Supplier *SupplierHandler
	Project  *ProjectHandler
	Remark   *RemarkHandler
	BomCost  *BomCostHandler
	Ipd      *IpdHandler
	Price    *PriceHandler
	Upload   *UploadHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Supplier: NewSupplierHandler(svc.Supplier),
		Project:  NewProjectHandler(svc.Project),
		Remark:   NewRemarkHandler(svc.Remark),
		BomCost:  NewBomCostHandler(svc.BomCost, svc.Rate, svc.Export),
		Ipd:      NewIpdHandler(svc.Ipd),
		Price:    NewPriceHandler(svc.Price),
		Upload:   NewUploadHandler(svc.Upload),
	}
}

// === 响应辅助函数 ===
// 错误统一走 {error: string} 信封，状态码 400/404/500

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}

// HandleError 边界处的错误归类：数据问题400，缺行404，其余一律500，
// 底层消息原样透出
func HandleError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		BadRequest(c, ve.Message)
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}
