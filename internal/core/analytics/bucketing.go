package analytics

import (
	"cloud.google.com/go/civil"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

type bucketAccumulator struct {
	sum   float64
	count int
}

func (a bucketAccumulator) value(agg domain.Aggregation) float64 {
	if agg == domain.AggregationAverage {
		if a.count == 0 {
			return 0
		}
		return a.sum / float64(a.count)
	}
	return a.sum
}

// Bucket re-aggregates a daily series into one bucket per calendar period of
// [start, end], in chronological order. Periods without points are zero-filled.
//
// Daily granularity stops at the latest date present in the series and yields
// nothing for an empty series. An inverted range yields an empty result.
func Bucket(series []domain.TimeSeriesPoint, g domain.Granularity, start, end civil.Date, agg domain.Aggregation) []domain.AggregatedBucket {
	buckets := []domain.AggregatedBucket{}
	if start.After(end) {
		return buckets
	}

	if g == domain.GranularityDaily {
		if len(series) == 0 {
			return buckets
		}
		if latest := LatestDate(series); latest.Before(end) {
			end = latest
		}
		if start.After(end) {
			return buckets
		}
	}

	accs := make(map[civil.Date]bucketAccumulator)
	for _, p := range series {
		if p.Date.Before(start) || p.Date.After(end) {
			continue
		}
		key := PeriodStart(p.Date, g)
		acc := accs[key]
		acc.sum += p.Total
		acc.count++
		accs[key] = acc
	}

	for cur := PeriodStart(start, g); !cur.After(end); cur = NextPeriod(cur, g) {
		buckets = append(buckets, domain.AggregatedBucket{
			Label:       PeriodLabel(cur, g),
			PeriodStart: cur,
			Value:       accs[cur].value(agg),
		})
	}

	return buckets
}

// BucketValues extracts the bucket values in order, ready for GrowthSeries.
func BucketValues(buckets []domain.AggregatedBucket) []float64 {
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Value
	}
	return values
}
