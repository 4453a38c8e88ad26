package service

import (
	"math"
	"testing"
)

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12.5", 12.5},
		{"12,5", 12.5},
		{"12,5%", 12.5},
		{" 12.5 % ", 12.5},
		{"1.234,50", 1234.50},
		{"10", 10},
		{"", 0},
		{"-", 0},
		{"abc", 0},
		{"%", 0},
	}
	for _, c := range cases {
		if got := ParsePercent(c.in); got != c.want {
			t.Errorf("ParsePercent(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestComputeLandedCost(t *testing.T) {
	// price 2.00 USD, landed cost 10%, tpl 5%, rate 15000, bom qty 3:
	// 2.00 * 1.10 * 0.05 * 15000 = 1650.00, bearing = 4950.00
	landed, bearing := ComputeLandedCost(2.00, 10, 5, 15000, 3)
	if landed != 1650.00 {
		t.Errorf("Expected landed IDR price 1650.00, got %v", landed)
	}
	if bearing != 4950.00 {
		t.Errorf("Expected cost bearing 4950.00, got %v", bearing)
	}
}

func TestComputeLandedCostRounding(t *testing.T) {
	landed, bearing := ComputeLandedCost(1.333, 7.5, 3.3, 14873, 2.5)
	// derived values always carry exactly 2 decimals
	if !isTwoDecimal(landed) || !isTwoDecimal(bearing) {
		t.Errorf("Expected 2-decimal rounding, got landed=%v bearing=%v", landed, bearing)
	}
}

func TestComputeLandedCostIdempotent(t *testing.T) {
	// Recomputing from the same inputs yields the identical snapshot
	l1, b1 := ComputeLandedCost(3.75, 12.5, 4, 15500, 6)
	l2, b2 := ComputeLandedCost(3.75, 12.5, 4, 15500, 6)
	if l1 != l2 || b1 != b2 {
		t.Errorf("Expected identical recomputation, got (%v,%v) vs (%v,%v)", l1, b1, l2, b2)
	}
}

func TestComputeLandedCostZeroTPL(t *testing.T) {
	// tpl is a pure multiplier, so zero tpl zeroes the whole price
	landed, bearing := ComputeLandedCost(2.00, 10, 0, 15000, 3)
	if landed != 0 || bearing != 0 {
		t.Errorf("Expected zero landed cost with zero tpl, got landed=%v bearing=%v", landed, bearing)
	}
}

func isTwoDecimal(v float64) bool {
	scaled := v * 100
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
