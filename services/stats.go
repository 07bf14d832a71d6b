package services

// ComparisonStats holds the project-level summary for the comparison grid.
// TotalOrderedValue is estimated from BOQ rates, matching the per-row
// OrderedAmount proxy.
type ComparisonStats struct {
	TotalBOQValue     float64 `json:"totalBoqValue"`
	TotalOrderedValue float64 `json:"totalOrderedValue"`
	OverOrderedCount  int     `json:"overOrderedCount"`
}

// CalcComparisonStats sums project-level figures over comparison rows.
func CalcComparisonStats(rows []ComparisonRow) ComparisonStats {
	var stats ComparisonStats
	for _, r := range rows {
		stats.TotalBOQValue += r.BOQAmount
		stats.TotalOrderedValue += r.OrderedAmount
		if r.Status == VarianceOverOrdered {
			stats.OverOrderedCount++
		}
	}
	return stats
}
