package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Milestone 采购进度里程碑，按固定顺序排列
type Milestone int

const (
	MilestoneSourcing Milestone = iota
	MilestoneQuotation
	MilestoneNegotiation
	MilestoneAppointment
	MilestoneTooling
	MilestoneSampleSubmission
	MilestoneSampleApproval
	MilestonePurchaseOrder
	MilestoneItemReceipt

	MilestoneCount = 9
)

// MilestoneNames 里程碑显示名，与 StatusChecklist 下标一一对应
var MilestoneNames = [MilestoneCount]string{
	"Sourcing",
	"Quotation",
	"Negotiation",
	"Supplier Appointment",
	"Tooling Development",
	"Sample Submission",
	"Sample Approval",
	"Purchase Order",
	"Item Receipt",
}

// MilestoneWeights 各里程碑权重，总和恒为100
var MilestoneWeights = [MilestoneCount]int{10, 20, 10, 10, 20, 10, 10, 5, 5}

// StatusChecklist 九步勾选表，jsonb 存储
type StatusChecklist []bool

func (s StatusChecklist) Value() (driver.Value, error) {
	if s == nil {
		s = make(StatusChecklist, MilestoneCount)
	}
	return json.Marshal(s)
}

func (s *StatusChecklist) Scan(value interface{}) error {
	if value == nil {
		*s = make(StatusChecklist, MilestoneCount)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan StatusChecklist: %v", value)
	}
	return json.Unmarshal(bytes, s)
}

// Normalized 把持久化状态归一成固定9位：不足补false，超出截断
func (s StatusChecklist) Normalized() StatusChecklist {
	out := make(StatusChecklist, MilestoneCount)
	copy(out, s)
	return out
}

// Percent 勾选里程碑的权重和
func (s StatusChecklist) Percent() int {
	total := 0
	for i, checked := range s.Normalized() {
		if checked {
			total += MilestoneWeights[i]
		}
	}
	return total
}
