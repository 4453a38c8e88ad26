package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/service"
)

// UploadHandler 附件处理器
type UploadHandler struct {
	svc *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

// List 附件列表
// GET /uploads?project_id=&material_id=
func (h *UploadHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Query("project_id"), c.Query("material_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Upload 多部件表单上传附件
// POST /uploads
func (h *UploadHandler) Upload(c *gin.Context) {
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

	statusIndex := -1
	if v := c.PostForm("status_index"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			statusIndex = parsed
		}
	}

	result, err := h.svc.Upload(
		c.Request.Context(),
		c.PostForm("project_id"),
		c.PostForm("material_id"),
		statusIndex,
		file,
		fileHeader.Filename,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, result)
}

// Delete 删除附件
// DELETE /uploads/:id
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}
