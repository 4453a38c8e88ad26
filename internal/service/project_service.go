package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/prakasautama/procost/internal/entity"
	"github.com/prakasautama/procost/internal/repository"
	"gorm.io/gorm"
)

// ProjectService 项目与物料进度服务
type ProjectService struct {
	repo *repository.ProjectRepository
	db   *gorm.DB
}

func NewProjectService(repo *repository.ProjectRepository, db *gorm.DB) *ProjectService {
	return &ProjectService{repo: repo, db: db}
}

// MaterialInput 创建/整表替换时的物料载荷。ID非空表示原位更新
type MaterialInput struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Component string  `json:"component"`
	BomQty    float64 `json:"bom_qty"`
	UoM       string  `json:"UoM"`
	Supplier  string  `json:"supplier"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Name        string          `json:"name" binding:"required"`
	Customer    string          `json:"customer"`
	Application string          `json:"application"`
	ProductLine string          `json:"product_line"`
	AnualVolume float64         `json:"anual_volume"`
	EstSOP      string          `json:"est_sop"`
	Materials   []MaterialInput `json:"materials"`
}

// UpdateProjectRequest 整表更新请求：项目字段+物料全量清单
type UpdateProjectRequest struct {
	Name        *string         `json:"name"`
	Customer    *string         `json:"customer"`
	Application *string         `json:"application"`
	ProductLine *string         `json:"product_line"`
	AnualVolume *float64        `json:"anual_volume"`
	EstSOP      *string         `json:"est_sop"`
	Materials   []MaterialInput `json:"materials"`
}

// ToggleResult 勾选结果：新勾选表、物料完成度、项目完成度
type ToggleResult struct {
	MaterialID     string                 `json:"material_id"`
	Status         entity.StatusChecklist `json:"status"`
	Percent        int                    `json:"percent"`
	ProjectPercent int                    `json:"project_percent"`
}

// projectPercentOf 项目完成度 = 物料完成度的四舍五入均值，无物料为0
func projectPercentOf(materials []entity.Material) int {
	if len(materials) == 0 {
		return 0
	}
	sum := 0
	for _, m := range materials {
		sum += m.Percent
	}
	return int(math.Round(float64(sum) / float64(len(materials))))
}

// List 项目列表
func (s *ProjectService) List(ctx context.Context, summaryOnly bool) ([]entity.Project, error) {
	if summaryOnly {
		return s.repo.FindAllSummary(ctx)
	}
	return s.repo.FindAll(ctx)
}

// Get 项目详情
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建项目及嵌套物料，勾选表全false、完成度0
func (s *ProjectService) Create(ctx context.Context, req *CreateProjectRequest) (*entity.Project, error) {
	project := &entity.Project{
		ID:          uuid.New().String()[:32],
		Name:        req.Name,
		Customer:    req.Customer,
		Application: req.Application,
		ProductLine: req.ProductLine,
		AnualVolume: req.AnualVolume,
		EstSOP:      req.EstSOP,
		Percent:     0,
		CreatedAt:   time.Now(),
	}
	for i, in := range req.Materials {
		project.Materials = append(project.Materials, entity.Material{
			ID:         uuid.New().String()[:32],
			ProjectID:  project.ID,
			Name:       in.Name,
			Component:  in.Component,
			BomQty:     in.BomQty,
			UoM:        in.UoM,
			Supplier:   in.Supplier,
			Status:     make(entity.StatusChecklist, entity.MilestoneCount),
			Percent:    0,
			OrderIndex: i,
		})
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return project, nil
}

// Toggle 切换某物料的一个里程碑勾选，重算物料与项目完成度。
// 同一物料的并发切换按最后落库者胜，不做乐观并发控制
func (s *ProjectService) Toggle(ctx context.Context, materialID string, slot int, value bool) (*ToggleResult, error) {
	if slot < 0 || slot >= entity.MilestoneCount {
		return nil, validationErrorf("status_index must be between 0 and %d", entity.MilestoneCount-1)
	}

	material, err := s.repo.FindMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}

	checklist := material.Status.Normalized()
	checklist[slot] = value
	material.Status = checklist
	material.Percent = checklist.Percent()

	var projectPercent int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(material).Error; err != nil {
			return err
		}
		var siblings []entity.Material
		if err := tx.Where("project_id = ?", material.ProjectID).Find(&siblings).Error; err != nil {
			return err
		}
		projectPercent = projectPercentOf(siblings)
		return tx.Model(&entity.Project{}).
			Where("id = ?", material.ProjectID).
			Update("percent", projectPercent).Error
	})
	if err != nil {
		return nil, fmt.Errorf("toggle milestone: %w", err)
	}

	return &ToggleResult{
		MaterialID:     material.ID,
		Status:         checklist,
		Percent:        material.Percent,
		ProjectPercent: projectPercent,
	}, nil
}

// Update 整表更新：项目字段 + 物料清单对账（有ID原位更新保留勾选表，
// 无ID新插入，清单里缺席的旧物料连同附件删除），随后重算项目完成度。
// 整个序列在一个事务里
func (s *ProjectService) Update(ctx context.Context, id string, req *UpdateProjectRequest) (*entity.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Customer != nil {
		project.Customer = *req.Customer
	}
	if req.Application != nil {
		project.Application = *req.Application
	}
	if req.ProductLine != nil {
		project.ProductLine = *req.ProductLine
	}
	if req.AnualVolume != nil {
		project.AnualVolume = *req.AnualVolume
	}
	if req.EstSOP != nil {
		project.EstSOP = *req.EstSOP
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Project{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":         project.Name,
			"customer":     project.Customer,
			"application":  project.Application,
			"product_line": project.ProductLine,
			"anual_volume": project.AnualVolume,
			"est_sop":      project.EstSOP,
		}).Error; err != nil {
			return err
		}

		if req.Materials != nil {
			if err := reconcileMaterials(tx, id, req.Materials); err != nil {
				return err
			}
		}

		var materials []entity.Material
		if err := tx.Where("project_id = ?", id).Find(&materials).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Project{}).
			Where("id = ?", id).
			Update("percent", projectPercentOf(materials)).Error
	})
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	return s.repo.FindByID(ctx, id)
}

// reconcileMaterials 全量清单对账，在调用方事务内执行
func reconcileMaterials(tx *gorm.DB, projectID string, inputs []MaterialInput) error {
	var existing []entity.Material
	if err := tx.Where("project_id = ?", projectID).Find(&existing).Error; err != nil {
		return err
	}
	existingByID := make(map[string]entity.Material, len(existing))
	for _, m := range existing {
		existingByID[m.ID] = m
	}

	seen := make(map[string]bool, len(inputs))
	for i, in := range inputs {
		if current, ok := existingByID[in.ID]; in.ID != "" && ok {
			// 原位更新：勾选表与完成度保持不变
			current.Name = in.Name
			current.Component = in.Component
			current.BomQty = in.BomQty
			current.UoM = in.UoM
			current.Supplier = in.Supplier
			current.OrderIndex = i
			if err := tx.Save(&current).Error; err != nil {
				return err
			}
			seen[in.ID] = true
			continue
		}
		material := entity.Material{
			ID:         uuid.New().String()[:32],
			ProjectID:  projectID,
			Name:       in.Name,
			Component:  in.Component,
			BomQty:     in.BomQty,
			UoM:        in.UoM,
			Supplier:   in.Supplier,
			Status:     make(entity.StatusChecklist, entity.MilestoneCount),
			Percent:    0,
			OrderIndex: i,
		}
		if err := tx.Create(&material).Error; err != nil {
			return err
		}
	}

	for id := range existingByID {
		if seen[id] {
			continue
		}
		if err := tx.Where("material_id = ?", id).Delete(&entity.Upload{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", id).Delete(&entity.Material{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete 删除项目，级联物料及其附件
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DistinctComponents 项目下去重组件名
func (s *ProjectService) DistinctComponents(ctx context.Context, projectID string) ([]string, error) {
	if projectID == "" {
		return nil, validationErrorf("project_id is required")
	}
	return s.repo.DistinctComponents(ctx, projectID)
}

// RemarkService 里程碑备注服务
type RemarkService struct {
	repo *repository.RemarkRepository
}

func NewRemarkService(repo *repository.RemarkRepository) *RemarkService {
	return &RemarkService{repo: repo}
}

// CreateRemarkRequest 创建备注请求
type CreateRemarkRequest struct {
	ProjectID   string `json:"project_id" binding:"required"`
	StatusIndex int    `json:"status_index"`
	Text        string `json:"text" binding:"required"`
}

// List 备注列表，时间倒序
func (s *RemarkService) List(ctx context.Context, projectID string, statusIndex int) ([]entity.Remark, error) {
	return s.repo.FindAll(ctx, projectID, statusIndex)
}

// Create 创建备注
func (s *RemarkService) Create(ctx context.Context, req *CreateRemarkRequest) (*entity.Remark, error) {
	if req.StatusIndex < 0 || req.StatusIndex >= entity.MilestoneCount {
		return nil, validationErrorf("status_index must be between 0 and %d", entity.MilestoneCount-1)
	}
	remark := &entity.Remark{
		ID:          uuid.New().String()[:32],
		ProjectID:   req.ProjectID,
		StatusIndex: req.StatusIndex,
		Text:        req.Text,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, remark); err != nil {
		return nil, fmt.Errorf("create remark: %w", err)
	}
	return remark, nil
}

// UpdateText 修改备注文本
func (s *RemarkService) UpdateText(ctx context.Context, id, text string) (*entity.Remark, error) {
	remark, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	remark.Text = text
	if err := s.repo.Update(ctx, remark); err != nil {
		return nil, fmt.Errorf("update remark: %w", err)
	}
	return remark, nil
}

// Delete 删除备注
func (s *RemarkService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
