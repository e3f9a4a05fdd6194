package domain

import (
	"errors"
	"strings"

	"cloud.google.com/go/civil"
)

var ErrUnknownMetric = errors.New("unknown metric (must be sales, orders, visitors, conversion_rate or basket_size)")

type TrendDirection string

const (
	TrendUp    TrendDirection = "Up"
	TrendDown  TrendDirection = "Down"
	TrendEqual TrendDirection = "Equal"
)

// TrendOf is Equal only when current and previous are exactly equal.
func TrendOf(current, previous float64) TrendDirection {
	switch {
	case current > previous:
		return TrendUp
	case current < previous:
		return TrendDown
	default:
		return TrendEqual
	}
}

func ParseTrend(s string) (TrendDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return TrendUp, true
	case "down":
		return TrendDown, true
	case "equal":
		return TrendEqual, true
	default:
		return "", false
	}
}

type TimeSeriesPoint struct {
	Date  civil.Date `json:"date"`
	Total float64    `json:"total"`
}

type MetricSnapshot struct {
	Current        float64           `json:"current"`
	Previous       float64           `json:"previous"`
	PercentChange  float64           `json:"percent_change"`
	TrendDirection TrendDirection    `json:"trend"`
	Sparkline      []TimeSeriesPoint `json:"sparkline"`
}

func ZeroSnapshot() MetricSnapshot {
	return MetricSnapshot{
		TrendDirection: TrendEqual,
		Sparkline:      []TimeSeriesPoint{},
	}
}

type MetricKind int

const (
	// Additive metrics are summed across stores.
	Additive MetricKind = iota
	// RateWeightedByVisitors metrics are averaged with visitor counts as weights.
	RateWeightedByVisitors
	// RateWeightedByOrders metrics are averaged with order counts as weights.
	RateWeightedByOrders
)

func (k MetricKind) String() string {
	switch k {
	case RateWeightedByVisitors:
		return "rate_weighted_by_visitors"
	case RateWeightedByOrders:
		return "rate_weighted_by_orders"
	default:
		return "additive"
	}
}

type Metric string

const (
	MetricSales          Metric = "sales"
	MetricOrders         Metric = "orders"
	MetricVisitors       Metric = "visitors"
	MetricConversionRate Metric = "conversion_rate"
	MetricBasketSize     Metric = "basket_size"
)

// DashboardMetrics is the order in which summary cards are rendered.
var DashboardMetrics = []Metric{
	MetricSales,
	MetricOrders,
	MetricVisitors,
	MetricConversionRate,
	MetricBasketSize,
}

func ParseMetric(s string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DashboardMetrics {
		if m == known {
			return m, nil
		}
	}
	return "", ErrUnknownMetric
}

func (m Metric) Kind() MetricKind {
	switch m {
	case MetricConversionRate:
		return RateWeightedByVisitors
	case MetricBasketSize:
		return RateWeightedByOrders
	default:
		return Additive
	}
}

// WeightMetric names the companion series used to weight a rate metric.
func (m Metric) WeightMetric() (Metric, bool) {
	switch m.Kind() {
	case RateWeightedByVisitors:
		return MetricVisitors, true
	case RateWeightedByOrders:
		return MetricOrders, true
	default:
		return "", false
	}
}

func (m Metric) Aggregation() Aggregation {
	if m.Kind() == Additive {
		return AggregationSum
	}
	return AggregationAverage
}
