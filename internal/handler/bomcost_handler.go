package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/service"
)

// BomCostHandler 落地成本与汇率表处理器
type BomCostHandler struct {
	svc       *service.BomCostService
	rateSvc   *service.RateService
	exportSvc *service.ExportService
}

func NewBomCostHandler(svc *service.BomCostService, rateSvc *service.RateService, exportSvc *service.ExportService) *BomCostHandler {
	return &BomCostHandler{svc: svc, rateSvc: rateSvc, exportSvc: exportSvc}
}

// List 落地成本行
// GET /bom-cost?project_id=
func (h *BomCostHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Get 单条落地成本行
// GET /bom-cost/:id
func (h *BomCostHandler) Get(c *gin.Context) {
	cost, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, cost)
}

// Create 计算并落库成本快照
// POST /bom-cost
func (h *BomCostHandler) Create(c *gin.Context) {
	var req service.BomCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	cost, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, cost)
}

// Update 重算并覆盖成本快照
// PUT /bom-cost/:id
func (h *BomCostHandler) Update(c *gin.Context) {
	var req service.BomCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	cost, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, cost)
}

// Delete 删除成本行
// DELETE /bom-cost/:id
func (h *BomCostHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}

// Summary 项目成本只读投影
// GET /bom-cost-summary?project_id=
func (h *BomCostHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, summary)
}

// ExportXLSX 成本汇总导出xlsx
// GET /bom-cost/export?project_id=
func (h *BomCostHandler) ExportXLSX(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		BadRequest(c, "project_id is required")
		return
	}
	f, filename, err := h.exportSvc.ExportXLSX(c.Request.Context(), projectID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write xlsx: "+err.Error())
	}
}

// ExportPDF 成本汇总导出PDF
// GET /bom-cost/export-pdf?project_id=
func (h *BomCostHandler) ExportPDF(c *gin.Context) {
	projectID := c.Query("project_id")
	if projectID == "" {
		BadRequest(c, "project_id is required")
		return
	}
	pdf, filename, err := h.exportSvc.ExportPDF(c.Request.Context(), projectID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListRates 汇率表
// GET /bp (alias GET /bp-rates)
func (h *BomCostHandler) ListRates(c *gin.Context) {
	items, err := h.rateSvc.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// CreateRate 插入汇率条目
// POST /bp
func (h *BomCostHandler) CreateRate(c *gin.Context) {
	var req service.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	rate, err := h.rateSvc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, rate)
}

// DeleteRate 删除汇率条目
// DELETE /bp/:id
func (h *BomCostHandler) DeleteRate(c *gin.Context) {
	if err := h.rateSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}
