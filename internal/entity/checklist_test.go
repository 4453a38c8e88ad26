package entity

import "testing"

func TestMilestoneWeightsSumTo100(t *testing.T) {
	sum := 0
	for _, w := range MilestoneWeights {
		sum += w
	}
	if sum != 100 {
		t.Errorf("Expected milestone weights to sum to 100, got %d", sum)
	}
}

func TestChecklistPercent(t *testing.T) {
	allFalse := make(StatusChecklist, MilestoneCount)
	if got := allFalse.Percent(); got != 0 {
		t.Errorf("Expected 0 for all-unchecked checklist, got %d", got)
	}

	allTrue := make(StatusChecklist, MilestoneCount)
	for i := range allTrue {
		allTrue[i] = true
	}
	if got := allTrue.Percent(); got != 100 {
		t.Errorf("Expected 100 for all-checked checklist, got %d", got)
	}

	// Quotation alone carries weight 20
	quotationOnly := make(StatusChecklist, MilestoneCount)
	quotationOnly[MilestoneQuotation] = true
	if got := quotationOnly.Percent(); got != 20 {
		t.Errorf("Expected 20 for quotation-only checklist, got %d", got)
	}

	// Sourcing + Tooling Development = 10 + 20
	mixed := make(StatusChecklist, MilestoneCount)
	mixed[MilestoneSourcing] = true
	mixed[MilestoneTooling] = true
	if got := mixed.Percent(); got != 30 {
		t.Errorf("Expected 30, got %d", got)
	}
}

func TestChecklistNormalized(t *testing.T) {
	// Short persisted state is padded with false
	short := StatusChecklist{true, true}
	norm := short.Normalized()
	if len(norm) != MilestoneCount {
		t.Fatalf("Expected %d slots, got %d", MilestoneCount, len(norm))
	}
	if !norm[0] || !norm[1] || norm[2] {
		t.Errorf("Expected padding to preserve leading values, got %v", norm)
	}

	// Oversized state is truncated
	long := make(StatusChecklist, MilestoneCount+3)
	for i := range long {
		long[i] = true
	}
	if got := len(long.Normalized()); got != MilestoneCount {
		t.Errorf("Expected truncation to %d slots, got %d", MilestoneCount, got)
	}

	if got := short.Percent(); got != 30 {
		t.Errorf("Expected percent 30 from padded checklist, got %d", got)
	}
}
