package analytics

import "math"

// PercentChange is nil when previous is not a positive finite base.
func PercentChange(previous, current float64) *float64 {
	if !(previous > 0) || math.IsInf(previous, 0) || math.IsNaN(current) || math.IsInf(current, 0) {
		return nil
	}
	change := (current - previous) / previous * 100
	return &change
}

// GrowthSeries returns one period-over-period change per value; the first
// entry is always nil.
func GrowthSeries(values []float64) []*float64 {
	growth := make([]*float64, len(values))
	for i := 1; i < len(values); i++ {
		growth[i] = PercentChange(values[i-1], values[i])
	}
	return growth
}
