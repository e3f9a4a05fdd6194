package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
)

func TestReconcile_EdgeCases(t *testing.T) {
	t.Run("No stores yields a zero snapshot", func(t *testing.T) {
		got := analytics.Reconcile(nil, domain.Additive)
		assert.Equal(t, domain.ZeroSnapshot(), got)
	})

	t.Run("Single store is returned unchanged", func(t *testing.T) {
		only := domain.MetricSnapshot{
			Current: 3.3333, Previous: 1.1111, PercentChange: 200,
			TrendDirection: domain.TrendUp,
			Sparkline:      []domain.TimeSeriesPoint{point(t, "2024-01-01", 3.3333)},
		}
		for _, kind := range []domain.MetricKind{domain.Additive, domain.RateWeightedByVisitors, domain.RateWeightedByOrders} {
			assert.Equal(t, only, analytics.Reconcile([]domain.MetricSnapshot{only}, kind), kind.String())
		}
	})
}

func TestReconcile_Additive(t *testing.T) {
	a := domain.MetricSnapshot{
		Current: 100, Previous: 80, PercentChange: 25, TrendDirection: domain.TrendUp,
		Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-01", 40), point(t, "2024-01-02", 60)},
	}
	b := domain.MetricSnapshot{
		Current: 50, Previous: 90, PercentChange: -44, TrendDirection: domain.TrendDown,
		Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-02", 20), point(t, "2024-01-03", 30)},
	}

	got := analytics.Reconcile([]domain.MetricSnapshot{a, b}, domain.Additive)

	assert.Equal(t, a.Current+b.Current, got.Current)
	assert.Equal(t, a.Previous+b.Previous, got.Previous)
	assert.Equal(t, 0.0, got.PercentChange, "percent is not reconciled across stores")
	assert.Equal(t, domain.TrendDown, got.TrendDirection)
	assert.Equal(t, []domain.TimeSeriesPoint{
		point(t, "2024-01-01", 40),
		point(t, "2024-01-02", 80),
		point(t, "2024-01-03", 30),
	}, got.Sparkline)
}

func TestReconcile_SumConservation(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3},
		{0, 0},
		{1e6, 2.5, 3.25, 4.125},
	}
	for _, currents := range inputs {
		snaps := make([]domain.MetricSnapshot, len(currents))
		var want float64
		for i, c := range currents {
			snaps[i] = domain.MetricSnapshot{Current: c}
			want += c
		}
		assert.InDelta(t, want, analytics.Reconcile(snaps, domain.Additive).Current, 1e-9)
	}
}

func TestReconcileWeighted_ConversionRate(t *testing.T) {
	rates := []domain.MetricSnapshot{
		{Current: 2, Previous: 1, Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-01", 2), point(t, "2024-01-02", 4)}},
		{Current: 10, Previous: 5, Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-01", 10)}},
	}
	visitors := []domain.MetricSnapshot{
		{Current: 900, Previous: 100, Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-01", 300)}},
		{Current: 100, Previous: 100, Sparkline: []domain.TimeSeriesPoint{point(t, "2024-01-01", 100)}},
	}

	got := analytics.ReconcileWeighted(rates, visitors, domain.RateWeightedByVisitors)

	// (2*900 + 10*100) / 1000
	assert.InDelta(t, 2.8, got.Current, 1e-9)
	// (1*100 + 5*100) / 200
	assert.InDelta(t, 3.0, got.Previous, 1e-9)
	assert.Equal(t, domain.TrendDown, got.TrendDirection)
	assert.Equal(t, 0.0, got.PercentChange)

	require.Len(t, got.Sparkline, 2)
	// (2*300 + 10*100) / 400
	assert.InDelta(t, 4.0, got.Sparkline[0].Total, 1e-9)
	// Only store A reports Jan 2 and has no visitor weight for it: weight 1.
	assert.InDelta(t, 4.0, got.Sparkline[1].Total, 1e-9)
}

func TestReconcileWeighted_BoundedByExtremes(t *testing.T) {
	cases := []struct {
		rates   []float64
		weights []float64
	}{
		{[]float64{1, 5}, []float64{1, 1000}},
		{[]float64{3.5, 0.5, 9}, []float64{10, 20, 30}},
		{[]float64{7, 7, 7}, []float64{1, 2, 3}},
		{[]float64{0.01, 99.9}, []float64{12345, 1}},
	}

	for _, c := range cases {
		rates := make([]domain.MetricSnapshot, len(c.rates))
		weights := make([]domain.MetricSnapshot, len(c.rates))
		lo, hi := c.rates[0], c.rates[0]
		for i := range c.rates {
			rates[i] = domain.MetricSnapshot{Current: c.rates[i]}
			weights[i] = domain.MetricSnapshot{Current: c.weights[i]}
			lo = min(lo, c.rates[i])
			hi = max(hi, c.rates[i])
		}

		got := analytics.ReconcileWeighted(rates, weights, domain.RateWeightedByVisitors).Current

		assert.GreaterOrEqual(t, got, lo-1e-9)
		assert.LessOrEqual(t, got, hi+1e-9)
	}
}

func TestReconcileWeighted_ZeroWeightsResolveToZero(t *testing.T) {
	rates := []domain.MetricSnapshot{{Current: 150000}, {Current: 90000}}
	orders := []domain.MetricSnapshot{{Current: 0}, {Current: 0}}

	got := analytics.ReconcileWeighted(rates, orders, domain.RateWeightedByOrders)

	assert.Equal(t, 0.0, got.Current)
	assert.Equal(t, domain.TrendEqual, got.TrendDirection)
}

func TestReconcile_RateWithoutWeightsIsPlainMean(t *testing.T) {
	got := analytics.Reconcile([]domain.MetricSnapshot{{Current: 2}, {Current: 4}}, domain.RateWeightedByOrders)
	assert.Equal(t, 3.0, got.Current)
}

func TestMergeSeries_KeepsDatesMissingFromSomeStores(t *testing.T) {
	merged := analytics.MergeSeries([][]domain.TimeSeriesPoint{
		{point(t, "2024-01-03", 1)},
		{},
		{point(t, "2024-01-01", 2), point(t, "2024-01-03", 3)},
	}, nil, domain.Additive)

	assert.Equal(t, []domain.TimeSeriesPoint{
		point(t, "2024-01-01", 2),
		point(t, "2024-01-03", 4),
	}, merged)
}

func TestMergeSeries_SingleStoreIsUnchanged(t *testing.T) {
	rates := [][]domain.TimeSeriesPoint{{
		point(t, "2024-01-02", 0.5),
		point(t, "2024-01-01", 0.1),
	}}
	visitors := [][]domain.TimeSeriesPoint{{
		point(t, "2024-01-01", 3),
		point(t, "2024-01-02", 0),
	}}

	for _, kind := range []domain.MetricKind{domain.Additive, domain.RateWeightedByVisitors, domain.RateWeightedByOrders} {
		merged := analytics.MergeSeries(rates, visitors, kind)
		assert.Equal(t, []domain.TimeSeriesPoint{
			point(t, "2024-01-01", 0.1),
			point(t, "2024-01-02", 0.5),
		}, merged, kind.String())
	}

	t.Run("Duplicate dates are summed", func(t *testing.T) {
		merged := analytics.MergeSeries([][]domain.TimeSeriesPoint{{
			point(t, "2024-01-01", 2),
			point(t, "2024-01-01", 3),
		}}, nil, domain.Additive)
		assert.Equal(t, []domain.TimeSeriesPoint{point(t, "2024-01-01", 5)}, merged)
	})

	t.Run("Input is not mutated", func(t *testing.T) {
		input := []domain.TimeSeriesPoint{point(t, "2024-01-02", 1), point(t, "2024-01-01", 2)}
		_ = analytics.MergeSeries([][]domain.TimeSeriesPoint{input}, nil, domain.Additive)
		assert.Equal(t, "2024-01-02", input[0].Date.String())
	})
}
