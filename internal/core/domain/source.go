package domain

import "context"

// MetricSource fetches one store's raw metrics from the seller backend.
type MetricSource interface {
	FetchSnapshot(ctx context.Context, metric Metric, payload StorePayload) (MetricSnapshot, error)
	FetchDailySeries(ctx context.Context, metric Metric, payload StorePayload) ([]TimeSeriesPoint, error)
}
