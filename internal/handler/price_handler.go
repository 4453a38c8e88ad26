package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/service"
)

// PriceHandler 价目表处理器
type PriceHandler struct {
	svc *service.PriceService
}

func NewPriceHandler(svc *service.PriceService) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// List 价目表头列表，带明细预载
// GET /price?supplier_id=
func (h *PriceHandler) List(c *gin.Context) {
	items, err := h.svc.ListHeaders(c.Request.Context(), c.Query("supplier_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Create 表头与明细一次写入
// POST /price
func (h *PriceHandler) Create(c *gin.Context) {
	var req service.CreatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	header, err := h.svc.CreateHeader(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, header)
}

// Update 更新表头窗口
// PUT /price/:id
func (h *PriceHandler) Update(c *gin.Context) {
	var req service.UpdatePriceHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	header, err := h.svc.UpdateHeader(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, header)
}

// Delete 删除表头并级联明细
// DELETE /price/:id
func (h *PriceHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteHeader(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}

// BulkDelete 批量删除表头
// POST /price/bulk-delete
func (h *PriceHandler) BulkDelete(c *gin.Context) {
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

// UpdateDetail 修正单条明细
// PUT /price/detail/:id
func (h *PriceHandler) UpdateDetail(c *gin.Context) {
	var req service.UpdateDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	detail, err := h.svc.UpdateDetail(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, detail)
}

// DeleteDetail 删除单条明细
// DELETE /price/detail/:id
func (h *PriceHandler) DeleteDetail(c *gin.Context) {
	if err := h.svc.DeleteDetail(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}

// UploadCSV 价目表CSV导入，表单字段携带表头信息
// POST /price/upload-csv
func (h *PriceHandler) UploadCSV(c *gin.Context) {
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

	header, err := h.svc.ImportCSV(
		c.Request.Context(),
		c.PostForm("supplier_id"),
		c.PostForm("start_date"),
		c.PostForm("end_date"),
		c.PostForm("quarter"),
		file,
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, header)
}

// Quarters 供应商覆盖的季度标签
// GET /price-quarters?supplier_id=
func (h *PriceHandler) Quarters(c *gin.Context) {
	quarters, err := h.svc.Quarters(c.Request.Context(), c.Query("supplier_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"quarters": quarters})
}

// Siis 供应商匹配后的季度报价行
// GET /siis?supplier_id=
func (h *PriceHandler) Siis(c *gin.Context) {
	rows, err := h.svc.Siis(c.Request.Context(), c.Query("supplier_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, rows)
}

// Total 看板总数
// GET /total
func (h *PriceHandler) Total(c *gin.Context) {
	totals, err := h.svc.Total(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, totals)
}
