package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/analytics"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/workers"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/metrics"
)

type DashboardService struct {
	stores      domain.StoreRepository
	source      domain.MetricSource
	fanOutLimit int
	log         *logger.Logger
	metrics     *metrics.Collector
}

func NewDashboardService(stores domain.StoreRepository, source domain.MetricSource, fanOutLimit int, log *logger.Logger, collector *metrics.Collector) *DashboardService {
	return &DashboardService{
		stores:      stores,
		source:      source,
		fanOutLimit: fanOutLimit,
		log:         log,
		metrics:     collector,
	}
}

// DashboardInput selects the stores and dates of a query. An empty StoreIDs
// means every store of the merchant.
type DashboardInput struct {
	MerchantID string
	StoreIDs   []string
	Range      domain.DateRange
}

type SeriesInput struct {
	DashboardInput
	Metric      domain.Metric
	Granularity domain.Granularity
}

type WeekdayInput struct {
	DashboardInput
	Metric domain.Metric
}

type YearInput struct {
	MerchantID string
	StoreIDs   []string
	Year       int
}

// ValidateRange rejects malformed, inverted and over-long ranges.
func ValidateRange(r domain.DateRange) error {
	if !r.Start.IsValid() || !r.End.IsValid() {
		return domain.ErrInvalidDate
	}
	if r.Start.After(r.End) {
		return domain.ErrInvalidRange
	}
	if r.End.DaysSince(r.Start) > domain.MaxRangeDays {
		return domain.ErrRangeTooLarge
	}
	return nil
}

func validateYear(year int) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidYear, year)
	}
	return nil
}

// Summary reconciles every dashboard metric across the selected stores.
func (s *DashboardService) Summary(ctx context.Context, input DashboardInput) (*domain.Summary, error) {
	if err := ValidateRange(input.Range); err != nil {
		return nil, err
	}
	stores, err := s.resolveStores(ctx, input.MerchantID, input.StoreIDs)
	if err != nil {
		return nil, err
	}

	res := fanOutStores(ctx, s, stores, func(ctx context.Context, store *domain.Store) (map[domain.Metric]domain.MetricSnapshot, error) {
		payload := domain.NewStorePayload(store, input.Range)
		snaps := make(map[domain.Metric]domain.MetricSnapshot, len(domain.DashboardMetrics))
		for _, m := range domain.DashboardMetrics {
			snap, err := s.fetchSnapshot(ctx, m, payload)
			if err != nil {
				return nil, err
			}
			snaps[m] = snap
		}
		return snaps, nil
	})

	summary := &domain.Summary{
		Range:        input.Range,
		StoreIDs:     res.Keys,
		Cards:        make([]domain.MetricCard, 0, len(domain.DashboardMetrics)),
		FailedStores: s.reportFailures(ctx, res.Failures),
	}

	for _, m := range domain.DashboardMetrics {
		snaps := make([]domain.MetricSnapshot, len(res.Values))
		var weights []domain.MetricSnapshot
		weightMetric, weighted := m.WeightMetric()
		if weighted {
			weights = make([]domain.MetricSnapshot, len(res.Values))
		}
		for i, bySnap := range res.Values {
			snaps[i] = bySnap[m]
			if weighted {
				weights[i] = bySnap[weightMetric]
			}
		}

		merged := analytics.ReconcileWeighted(snaps, weights, m.Kind())
		summary.Cards = append(summary.Cards, domain.MetricCard{
			Metric:         m,
			MetricSnapshot: merged,
			Growth:         analytics.PercentChange(merged.Previous, merged.Current),
		})
	}

	return summary, nil
}

// Series buckets the merged daily series of one metric.
func (s *DashboardService) Series(ctx context.Context, input SeriesInput) (*domain.SeriesResult, error) {
	if err := ValidateRange(input.Range); err != nil {
		return nil, err
	}
	if _, err := domain.ParseMetric(string(input.Metric)); err != nil {
		return nil, err
	}
	if _, err := domain.ParseGranularity(string(input.Granularity)); err != nil {
		return nil, err
	}
	merged, failed, err := s.mergedDailySeries(ctx, input.DashboardInput, input.Metric)
	if err != nil {
		return nil, err
	}

	buckets := analytics.Bucket(merged, input.Granularity, input.Range.Start, input.Range.End, input.Metric.Aggregation())

	return &domain.SeriesResult{
		Metric:       input.Metric,
		Granularity:  input.Granularity,
		Range:        input.Range,
		Buckets:      buckets,
		Growth:       analytics.GrowthSeries(analytics.BucketValues(buckets)),
		FailedStores: failed,
	}, nil
}

// WeekdayBreakdown aggregates the merged daily series of one metric by weekday.
func (s *DashboardService) WeekdayBreakdown(ctx context.Context, input WeekdayInput) (*domain.WeekdayResult, error) {
	if err := ValidateRange(input.Range); err != nil {
		return nil, err
	}
	if _, err := domain.ParseMetric(string(input.Metric)); err != nil {
		return nil, err
	}
	merged, failed, err := s.mergedDailySeries(ctx, input.DashboardInput, input.Metric)
	if err != nil {
		return nil, err
	}

	inRange := analytics.FilterRange(merged, input.Range.Start, input.Range.End)
	buckets, err := analytics.AggregateByWeekday(inRange, input.Range.Start, input.Range.End)
	if err != nil {
		s.log.Warn(ctx, "weekday aggregation received out of range points", err)
	}

	return &domain.WeekdayResult{
		Metric:       input.Metric,
		Range:        input.Range,
		Buckets:      buckets,
		FailedStores: failed,
	}, nil
}

// Quarterly rolls a calendar year of sales and orders into quarters.
func (s *DashboardService) Quarterly(ctx context.Context, input YearInput) (*domain.QuarterResult, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}

	stores, err := s.resolveStores(ctx, input.MerchantID, input.StoreIDs)
	if err != nil {
		return nil, err
	}
	monthly, failed := s.monthlyTotals(ctx, stores, input.Year)

	return &domain.QuarterResult{
		Year:         input.Year,
		Quarters:     analytics.AggregateQuarters(input.Year, monthly),
		FailedStores: failed,
	}, nil
}

// YearOverYear compares monthly sales of a year with the year before.
func (s *DashboardService) YearOverYear(ctx context.Context, input YearInput) (*domain.YearOverYearResult, error) {
	if err := validateYear(input.Year); err != nil {
		return nil, err
	}
	if err := validateYear(input.Year - 1); err != nil {
		return nil, err
	}

	stores, err := s.resolveStores(ctx, input.MerchantID, input.StoreIDs)
	if err != nil {
		return nil, err
	}
	current, failedCurrent := s.monthlyTotals(ctx, stores, input.Year)
	previous, failedPrevious := s.monthlyTotals(ctx, stores, input.Year-1)

	failed := failedCurrent
	for _, id := range failedPrevious {
		if !slices.Contains(failed, id) {
			failed = append(failed, id)
		}
	}

	return &domain.YearOverYearResult{
		Year:         input.Year,
		Months:       analytics.YearOverYear(current, previous),
		FailedStores: failed,
	}, nil
}

type storeSeries struct {
	values  []domain.TimeSeriesPoint
	weights []domain.TimeSeriesPoint
}

func (s *DashboardService) mergedDailySeries(ctx context.Context, input DashboardInput, metric domain.Metric) ([]domain.TimeSeriesPoint, []string, error) {
	stores, err := s.resolveStores(ctx, input.MerchantID, input.StoreIDs)
	if err != nil {
		return nil, nil, err
	}

	weightMetric, weighted := metric.WeightMetric()
	res := fanOutStores(ctx, s, stores, func(ctx context.Context, store *domain.Store) (storeSeries, error) {
		payload := domain.NewStorePayload(store, input.Range)
		values, err := s.fetchSeries(ctx, metric, payload)
		if err != nil {
			return storeSeries{}, err
		}
		out := storeSeries{values: values}
		if weighted {
			if out.weights, err = s.fetchSeries(ctx, weightMetric, payload); err != nil {
				return storeSeries{}, err
			}
		}
		return out, nil
	})

	series := make([][]domain.TimeSeriesPoint, len(res.Values))
	weights := make([][]domain.TimeSeriesPoint, len(res.Values))
	for i, v := range res.Values {
		series[i] = v.values
		weights[i] = v.weights
	}

	return analytics.MergeSeries(series, weights, metric.Kind()), s.reportFailures(ctx, res.Failures), nil
}

func (s *DashboardService) monthlyTotals(ctx context.Context, stores []*domain.Store, year int) ([]domain.MonthlyTotals, []string) {
	r := domain.YearRange(year)
	res := fanOutStores(ctx, s, stores, func(ctx context.Context, store *domain.Store) (storeSeries, error) {
		payload := domain.NewStorePayload(store, r)
		sales, err := s.fetchSeries(ctx, domain.MetricSales, payload)
		if err != nil {
			return storeSeries{}, err
		}
		orders, err := s.fetchSeries(ctx, domain.MetricOrders, payload)
		if err != nil {
			return storeSeries{}, err
		}
		return storeSeries{values: sales, weights: orders}, nil
	})

	sales := make([][]domain.TimeSeriesPoint, len(res.Values))
	orders := make([][]domain.TimeSeriesPoint, len(res.Values))
	for i, v := range res.Values {
		sales[i] = v.values
		orders[i] = v.weights
	}

	monthly := analytics.MonthlyTotalsFromSeries(year,
		analytics.MergeSeries(sales, nil, domain.Additive),
		analytics.MergeSeries(orders, nil, domain.Additive),
	)
	return monthly, s.reportFailures(ctx, res.Failures)
}

// resolveStores returns the requested stores in request order, or every store
// of the merchant when none is requested. Asking for a store the merchant
// does not own is ErrStoreNotFound.
func (s *DashboardService) resolveStores(ctx context.Context, merchantID string, ids []string) ([]*domain.Store, error) {
	if len(ids) == 0 {
		stores, err := s.stores.ListByMerchantID(ctx, merchantID)
		if err != nil {
			return nil, fmt.Errorf("list stores: %w", err)
		}
		return stores, nil
	}

	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	found, err := s.stores.ListByIDs(ctx, merchantID, unique)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	byID := make(map[string]*domain.Store, len(found))
	for _, st := range found {
		byID[st.ID] = st
	}

	stores := make([]*domain.Store, 0, len(unique))
	for _, id := range unique {
		st, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrStoreNotFound, id)
		}
		stores = append(stores, st)
	}
	return stores, nil
}

func fanOutStores[T any](ctx context.Context, s *DashboardService, stores []*domain.Store, fetch func(context.Context, *domain.Store) (T, error)) workers.FanOutResult[string, T] {
	ids := make([]string, len(stores))
	byID := make(map[string]*domain.Store, len(stores))
	for i, st := range stores {
		ids[i] = st.ID
		byID[st.ID] = st
	}
	return workers.FanOut(ctx, ids, s.fanOutLimit, func(ctx context.Context, id string) (T, error) {
		return fetch(s.log.WithStoreID(ctx, id), byID[id])
	})
}

func (s *DashboardService) fetchSnapshot(ctx context.Context, metric domain.Metric, payload domain.StorePayload) (domain.MetricSnapshot, error) {
	snap, err := s.source.FetchSnapshot(ctx, metric, payload)
	s.metrics.ObserveFetch(string(metric), err)
	if err != nil {
		return domain.MetricSnapshot{}, fmt.Errorf("fetch %s snapshot: %w", metric, err)
	}
	return snap, nil
}

func (s *DashboardService) fetchSeries(ctx context.Context, metric domain.Metric, payload domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	series, err := s.source.FetchDailySeries(ctx, metric, payload)
	s.metrics.ObserveFetch(string(metric), err)
	if err != nil {
		return nil, fmt.Errorf("fetch %s series: %w", metric, err)
	}
	return series, nil
}

// reportFailures logs each failed store and returns their ids, never nil.
func (s *DashboardService) reportFailures(ctx context.Context, failures []workers.Failure[string]) []string {
	ids := make([]string, 0, len(failures))
	for _, f := range failures {
		s.log.Warn(s.log.WithStoreID(ctx, f.Key), "store left out of dashboard", f.Err)
		ids = append(ids, f.Key)
	}
	s.metrics.AddFailedStores(len(ids))
	return ids
}
