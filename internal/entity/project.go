package entity

import (
	"time"
)

// Project 项目主数据，percent 由物料完成度聚合得出
type Project struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Customer    string    `json:"customer" gorm:"size:200"`
	Application string    `json:"application" gorm:"size:200"`
	ProductLine string    `json:"product_line" gorm:"size:100"`
	AnualVolume float64   `json:"anual_volume" gorm:"column:anual_volume;type:decimal(15,2)"`
	EstSOP      string    `json:"est_sop" gorm:"column:est_sop;size:50"`
	Percent     int       `json:"percent" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`

	Materials []Material `json:"materials,omitempty" gorm:"foreignKey:ProjectID"`
}

func (Project) TableName() string {
	return "projects"
}

// Material 项目物料，status 为九步里程碑勾选表，percent 恒由 status 推导
type Material struct {
	ID         string          `json:"id" gorm:"primaryKey;size:32"`
	ProjectID  string          `json:"project_id" gorm:"size:32;not null;index"`
	Name       string          `json:"name" gorm:"size:200;not null"`
	Component  string          `json:"component" gorm:"size:200"`
	BomQty     float64         `json:"bom_qty" gorm:"type:decimal(12,4)"`
	UoM        string          `json:"UoM" gorm:"column:UoM;size:20"`
	Supplier   string          `json:"supplier" gorm:"size:200"` // 自由文本，不是 supplier_master 外键
	Status     StatusChecklist `json:"status" gorm:"type:jsonb"`
	Percent    int             `json:"percent" gorm:"default:0"`
	OrderIndex int             `json:"order_index" gorm:"default:0"`

	Uploads []Upload `json:"uploads,omitempty" gorm:"foreignKey:MaterialID"`
}

func (Material) TableName() string {
	return "materials"
}

// Upload 附件元数据，挂在项目某个里程碑列或某个物料上
type Upload struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string    `json:"project_id" gorm:"size:32;index"`
	MaterialID  string    `json:"material_id" gorm:"size:32;index"`
	Filename    string    `json:"filename" gorm:"size:300;not null"`
	Path        string    `json:"path" gorm:"size:500;not null"`
	Size        int64     `json:"size"`
	Mime        string    `json:"mime" gorm:"size:100"`
	StatusIndex int       `json:"status_index" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Upload) TableName() string {
	return "uploads"
}

// Remark 项目里程碑列的备注，展示时按时间倒序
type Remark struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID   string    `json:"project_id" gorm:"size:32;not null;index"`
	StatusIndex int       `json:"status_index" gorm:"not null"`
	Text        string    `json:"text" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Remark) TableName() string {
	return "remarks"
}
