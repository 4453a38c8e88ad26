package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/service"
)

// IpdHandler IPD目录处理器
type IpdHandler struct {
	svc *service.IpdService
}

func NewIpdHandler(svc *service.IpdService) *IpdHandler {
	return &IpdHandler{svc: svc}
}

// List IPD目录
// GET /ipd?search=
func (h *IpdHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Create 创建IPD条目
// POST /ipd
func (h *IpdHandler) Create(c *gin.Context) {
	var req service.IpdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	record, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, record)
}

// Update 更新IPD条目
// PUT /ipd/:id
func (h *IpdHandler) Update(c *gin.Context) {
	var req service.IpdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	record, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, record)
}

// Delete 删除IPD条目
// DELETE /ipd/:id
func (h *IpdHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}

// BulkDelete 批量删除
// POST /ipd/bulk-delete
func (h *IpdHandler) BulkDelete(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.svc.BulkDelete(c.Request.Context(), req.IDs); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": len(req.IDs)})
}

// Verify 校验SIIS编码
// GET /ipd/verify?ipd_siis=
func (h *IpdHandler) Verify(c *gin.Context) {
	result, err := h.svc.Verify(c.Request.Context(), c.Query("ipd_siis"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, result)
}

// Upload CSV或xlsx批量导入
// POST /ipd/upload
func (h *IpdHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "file is required: "+err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		InternalError(c, "open upload: "+err.Error())
		return
	}
	defer file.Close()

	result, err := h.svc.Import(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, result)
}
