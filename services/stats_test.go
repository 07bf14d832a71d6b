package services

import (
	"math"
	"testing"
)

func TestCalcComparisonStats(t *testing.T) {
	rows := []ComparisonRow{
		{BOQAmount: 1000, OrderedAmount: 800, Status: VarianceOnTrack},
		{BOQAmount: 2000, OrderedAmount: 2500, Status: VarianceOverOrdered},
		{BOQAmount: 500, OrderedAmount: 0, Status: VariancePendingOrder},
		{BOQAmount: 300, OrderedAmount: 400, Status: VarianceOverOrdered},
	}

	stats := CalcComparisonStats(rows)

	if math.Abs(stats.TotalBOQValue-3800) > 0.001 {
		t.Errorf("totalBoqValue = %v, want 3800", stats.TotalBOQValue)
	}
	if math.Abs(stats.TotalOrderedValue-3700) > 0.001 {
		t.Errorf("totalOrderedValue = %v, want 3700", stats.TotalOrderedValue)
	}
	if stats.OverOrderedCount != 2 {
		t.Errorf("overOrderedCount = %d, want 2", stats.OverOrderedCount)
	}
}

func TestCalcComparisonStats_Empty(t *testing.T) {
	stats := CalcComparisonStats(nil)
	if stats.TotalBOQValue != 0 || stats.TotalOrderedValue != 0 || stats.OverOrderedCount != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}
