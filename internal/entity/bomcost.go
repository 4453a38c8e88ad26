package entity

import (
	"time"
)

// BpRate 币种→BP汇率表。币种不设唯一约束，查询取id最小的一条
type BpRate struct {
	ID       string  `json:"id" gorm:"primaryKey;size:32"`
	Currency string  `json:"currency" gorm:"size:10;not null;index"`
	BpValue  float64 `json:"bp_value" gorm:"type:decimal(15,4);not null"`
}

func (BpRate) TableName() string {
	return "bp_rates"
}

// BomCost 落地成本计算结果快照。rate 和派生字段在保存时定格，
// 之后汇率表变动不会回写历史行
type BomCost struct {
	ID                string    `json:"id" gorm:"primaryKey;size:32"`
	ProjectID         string    `json:"project_id" gorm:"size:32;not null;index"`
	Component         string    `json:"component" gorm:"size:200;not null"`
	CandidateSupplier string    `json:"candidate_supplier" gorm:"size:200"` // 自由文本
	Price             float64   `json:"price" gorm:"type:decimal(15,4)"`
	Currency          string    `json:"currency" gorm:"size:10"`
	Term              string    `json:"term" gorm:"size:50"`
	LandedCost        string    `json:"landed_cost" gorm:"size:20"` // 百分比原文，如 "12,5%"
	TPL               string    `json:"tpl" gorm:"column:tpl;size:20"`
	Bp2026            float64   `json:"bp_2026" gorm:"column:bp_2026;type:decimal(15,4)"`
	LandedIdrPrice    float64   `json:"landed_idr_price" gorm:"type:decimal(18,2)"`
	CostBearing       float64   `json:"cost_bearing" gorm:"type:decimal(18,2)"`
	ToolingCost       float64   `json:"tooling_cost" gorm:"type:decimal(18,2)"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (BomCost) TableName() string {
	return "bom_costs"
}
