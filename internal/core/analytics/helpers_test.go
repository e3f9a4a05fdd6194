package analytics_test

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

func date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	require.NoError(t, err)
	return d
}

func point(t *testing.T, s string, total float64) domain.TimeSeriesPoint {
	t.Helper()
	return domain.TimeSeriesPoint{Date: date(t, s), Total: total}
}

func values(buckets []domain.AggregatedBucket) []float64 {
	out := make([]float64, len(buckets))
	for i, b := range buckets {
		out[i] = b.Value
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}
