package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prakasautama/procost/internal/service"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	svc *service.ProjectService
}

func NewProjectHandler(svc *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// List 项目列表
// GET /projects?summary=true
func (h *ProjectHandler) List(c *gin.Context) {
	summaryOnly := c.Query("summary") == "true"
	items, err := h.svc.List(c.Request.Context(), summaryOnly)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Get 项目详情
// GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, project)
}

// Create 创建项目及嵌套物料
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	project, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, project)
}

// togglePayload 勾选模式的载荷特征字段
type togglePayload struct {
	MaterialID  string `json:"material_id"`
	StatusIndex *int   `json:"status_index"`
	Value       *bool  `json:"value"`
}

// Update 双模式更新：带 material_id/status_index/value 时是里程碑勾选，
// 否则是项目字段+物料全量清单替换
// PATCH /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	var toggle togglePayload
	if json.Unmarshal(raw, &toggle) == nil && toggle.MaterialID != "" && toggle.StatusIndex != nil {
		value := true
		if toggle.Value != nil {
			value = *toggle.Value
		}
		result, err := h.svc.Toggle(c.Request.Context(), toggle.MaterialID, *toggle.StatusIndex, value)
		if err != nil {
			HandleError(c, err)
			return
		}
		OK(c, result)
		return
	}

	var req service.UpdateProjectRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	project, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, project)
}

// Delete 删除项目，级联物料及其附件
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}

// ListComponents 项目下去重组件名
// GET /materials?project_id=
func (h *ProjectHandler) ListComponents(c *gin.Context) {
	components, err := h.svc.DistinctComponents(c.Request.Context(), c.Query("project_id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"components": components})
}

// RemarkHandler 里程碑备注处理器
type RemarkHandler struct {
	svc *service.RemarkService
}

func NewRemarkHandler(svc *service.RemarkService) *RemarkHandler {
	return &RemarkHandler{svc: svc}
}

// List 备注列表，时间倒序
// GET /remarks?project_id=&status_index=
func (h *RemarkHandler) List(c *gin.Context) {
	statusIndex := -1
	if v := c.Query("status_index"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			statusIndex = parsed
		}
	}
	items, err := h.svc.List(c.Request.Context(), c.Query("project_id"), statusIndex)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, items)
}

// Create 创建备注
// POST /remarks
func (h *RemarkHandler) Create(c *gin.Context) {
	var req service.CreateRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	remark, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		HandleError(c, err)
		return
	}
	Created(c, remark)
}

// Update 修改备注文本
// PATCH /remarks/:id
func (h *RemarkHandler) Update(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}
	remark, err := h.svc.UpdateText(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}
	OK(c, remark)
}

// Delete 删除备注
// DELETE /remarks/:id
func (h *RemarkHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		HandleError(c, err)
		return
	}
	OK(c, gin.H{"deleted": c.Param("id")})
}
