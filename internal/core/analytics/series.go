package analytics

import (
	"sort"

	"cloud.google.com/go/civil"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

// LatestDate returns the zero Date for an empty series.
func LatestDate(series []domain.TimeSeriesPoint) civil.Date {
	var latest civil.Date
	for i, p := range series {
		if i == 0 || p.Date.After(latest) {
			latest = p.Date
		}
	}
	return latest
}

// SortSeries returns a date-ordered copy.
func SortSeries(series []domain.TimeSeriesPoint) []domain.TimeSeriesPoint {
	sorted := make([]domain.TimeSeriesPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// FilterRange keeps the points dated within [start, end].
func FilterRange(series []domain.TimeSeriesPoint, start, end civil.Date) []domain.TimeSeriesPoint {
	r := domain.NewDateRange(start, end)
	filtered := make([]domain.TimeSeriesPoint, 0, len(series))
	for _, p := range series {
		if r.Contains(p.Date) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func indexByDate(series []domain.TimeSeriesPoint) map[civil.Date]float64 {
	idx := make(map[civil.Date]float64, len(series))
	for _, p := range series {
		idx[p.Date] += p.Total
	}
	return idx
}

// MergeSeries combines several stores' series into one, date by date.
//
// Additive series are summed and a date missing from one store counts as 0
// for that store. Rate series are averaged per date over the stores reporting
// that date, weighted by weights[i] on the same date; a store without a weight
// series, or without a weight on that date, weighs 1.
//
// A single store's series comes back as is, only sorted by date with
// duplicate dates summed.
func MergeSeries(series [][]domain.TimeSeriesPoint, weights [][]domain.TimeSeriesPoint, kind domain.MetricKind) []domain.TimeSeriesPoint {
	if len(series) == 1 {
		return collapseDates(series[0])
	}

	values := make([]map[civil.Date]float64, len(series))
	dates := make(map[civil.Date]struct{})
	for i, s := range series {
		values[i] = indexByDate(s)
		for d := range values[i] {
			dates[d] = struct{}{}
		}
	}

	var weightIdx []map[civil.Date]float64
	if kind != domain.Additive {
		weightIdx = make([]map[civil.Date]float64, len(series))
		for i := range series {
			if i < len(weights) && weights[i] != nil {
				weightIdx[i] = indexByDate(weights[i])
			}
		}
	}

	merged := make([]domain.TimeSeriesPoint, 0, len(dates))
	for d := range dates {
		var total float64
		if kind == domain.Additive {
			for _, v := range values {
				total += v[d]
			}
		} else {
			var num, den float64
			for i, v := range values {
				rate, ok := v[d]
				if !ok {
					continue
				}
				w := 1.0
				if weightIdx[i] != nil {
					if dw, ok := weightIdx[i][d]; ok {
						w = dw
					}
				}
				num += rate * w
				den += w
			}
			total = safeDivide(num, den)
		}
		merged = append(merged, domain.TimeSeriesPoint{Date: d, Total: total})
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	return merged
}

func collapseDates(series []domain.TimeSeriesPoint) []domain.TimeSeriesPoint {
	idx := indexByDate(series)
	out := make([]domain.TimeSeriesPoint, 0, len(idx))
	for d, total := range idx {
		out = append(out, domain.TimeSeriesPoint{Date: d, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func safeDivide(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
