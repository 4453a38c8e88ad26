package entity

import (
	"time"
)

// SupplierMaster 供应商主数据，supplier_code 为业务主键
type SupplierMaster struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	SupplierCode string    `json:"supplier_code" gorm:"size:50;uniqueIndex;not null"`
	SupplierName string    `json:"supplier_name" gorm:"size:200;not null"`
	Address      string    `json:"address" gorm:"size:500"`
	Country      string    `json:"country" gorm:"size:100"`
	PIC          string    `json:"pic" gorm:"column:pic;size:100"`
	Email        string    `json:"email" gorm:"size:200"`
	Category     string    `json:"category" gorm:"size:100"`
	Currency     string    `json:"currency" gorm:"size:10"`
	Incoterm     string    `json:"incoterm" gorm:"size:20"`
	TOP          int       `json:"top" gorm:"column:top"` // 付款账期（天）
	Forwarder    string    `json:"forwarder" gorm:"size:200"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SupplierMaster) TableName() string {
	return "supplier_master"
}
