package entity

import (
	"time"
)

// IpdRecord IPD目录条目，ipd_siis 为业务主键，
// 作为报价明细与可读物料身份之间的关联键
type IpdRecord struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	IpdSiis      string    `json:"ipd_siis" gorm:"column:ipd_siis;size:100;uniqueIndex;not null"`
	Supplier     string    `json:"supplier" gorm:"size:200;not null"`
	Description  string    `json:"desc" gorm:"column:DESC;size:300"`
	FbType       string    `json:"fb_type" gorm:"size:50"`
	Commodity    string    `json:"commodity" gorm:"size:100"`
	IpdQuotation string    `json:"ipd_quotation" gorm:"size:100;index"`
	CreatedAt    time.Time `json:"created_at"`
}

func (IpdRecord) TableName() string {
	return "ipd_master"
}

// FB类型
const (
	FbTypeFull  = "full"
	FbTypeBasic = "basic"
)

// 商品类目
const (
	CommoditySteel   = "steel"
	CommodityTube    = "tube"
	CommodityCasting = "casting"
	CommodityOther   = "other"
)

// PriceHeader 一份供应商价目表的有效期窗口，仅插入不更新
type PriceHeader struct {
	ID         string    `json:"id" gorm:"primaryKey;size:32"`
	SupplierID string    `json:"supplier_id" gorm:"size:32;not null;index"`
	StartDate  time.Time `json:"start_date" gorm:"not null"`
	EndDate    time.Time `json:"end_date"`
	Quarter    string    `json:"quarter" gorm:"size:20;not null"`

	Details []PriceDetail `json:"details,omitempty" gorm:"foreignKey:HeaderID"`
}

func (PriceHeader) TableName() string {
	return "price_header"
}

// PriceDetail 报价明细行
type PriceDetail struct {
	ID             string  `json:"id" gorm:"primaryKey;size:32"`
	HeaderID       string  `json:"header_id" gorm:"size:32;not null;index"`
	IpdQuotation   string  `json:"ipd_quotation" gorm:"size:100;index"`
	IpdSiis        string  `json:"ipd_siis" gorm:"column:ipd_siis;size:100"`
	Description    string  `json:"description" gorm:"size:300"`
	SteelSpec      string  `json:"steel_spec" gorm:"size:100"`
	MaterialSource string  `json:"material_source" gorm:"size:100"`
	TubeRoute      string  `json:"tube_route" gorm:"size:100"`
	Price          float64 `json:"price" gorm:"type:decimal(15,4)"`
}

func (PriceDetail) TableName() string {
	return "price_detail"
}
