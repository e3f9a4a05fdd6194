package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/workers"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/metrics"
)

var (
	_ domain.MetricSource     = (*MemoizedMetricSource)(nil)
	_ workers.MemoInvalidator = (*MemoizedMetricSource)(nil)
)

const (
	kindSnapshot = "snapshot"
	kindDaily    = "daily"

	scanBatch = 100
)

// MemoizedMetricSource keeps upstream responses in Redis for ttl. Redis
// failures are logged and the call falls through to next.
type MemoizedMetricSource struct {
	next    domain.MetricSource
	cache   *redis.Client
	ttl     time.Duration
	log     *logger.Logger
	metrics *metrics.Collector
}

func NewMemoizedMetricSource(next domain.MetricSource, cache *redis.Client, ttl time.Duration, log *logger.Logger, collector *metrics.Collector) *MemoizedMetricSource {
	return &MemoizedMetricSource{
		next:    next,
		cache:   cache,
		ttl:     ttl,
		log:     log,
		metrics: collector,
	}
}

// cacheKey groups entries by store so InvalidateStore can match them.
func cacheKey(kind string, metric domain.Metric, payload domain.StorePayload) string {
	digest := blake2b.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s",
		metric, payload.MarketplaceID, payload.DateFrom, payload.DateTo)))
	return fmt.Sprintf("metrics:%s:%s:%x", payload.StoreID, kind, digest[:16])
}

func storePattern(storeID string) string {
	return fmt.Sprintf("metrics:%s:*", storeID)
}

func (m *MemoizedMetricSource) FetchSnapshot(ctx context.Context, metric domain.Metric, payload domain.StorePayload) (domain.MetricSnapshot, error) {
	key := cacheKey(kindSnapshot, metric, payload)

	var snap domain.MetricSnapshot
	if m.lookup(ctx, key, &snap) {
		return snap, nil
	}

	snap, err := m.next.FetchSnapshot(ctx, metric, payload)
	if err != nil {
		return domain.MetricSnapshot{}, err
	}

	m.store(ctx, key, snap)
	return snap, nil
}

func (m *MemoizedMetricSource) FetchDailySeries(ctx context.Context, metric domain.Metric, payload domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	key := cacheKey(kindDaily, metric, payload)

	var series []domain.TimeSeriesPoint
	if m.lookup(ctx, key, &series) {
		return series, nil
	}

	series, err := m.next.FetchDailySeries(ctx, metric, payload)
	if err != nil {
		return nil, err
	}

	m.store(ctx, key, series)
	return series, nil
}

// InvalidateStore removes every memoized response of storeID.
func (m *MemoizedMetricSource) InvalidateStore(ctx context.Context, storeID string) error {
	var keys []string
	iter := m.cache.Scan(ctx, 0, storePattern(storeID), scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan memo keys: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := m.cache.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("delete memo keys: %w", err)
		}
	}
	return nil
}

func (m *MemoizedMetricSource) lookup(ctx context.Context, key string, dest any) bool {
	val, err := m.cache.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			m.metrics.ObserveCache(metrics.CacheMiss)
		} else {
			m.metrics.ObserveCache(metrics.CacheError)
			m.log.Warn(ctx, "[CACHE] redis read error", err)
		}
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		m.metrics.ObserveCache(metrics.CacheError)
		m.log.Warn(ctx, "[CACHE] corrupted entry, cleaning up key", err)
		m.cache.Del(ctx, key)
		return false
	}

	m.metrics.ObserveCache(metrics.CacheHit)
	return true
}

func (m *MemoizedMetricSource) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := m.cache.Set(ctx, key, data, m.ttl).Err(); err != nil {
		m.log.Warn(ctx, "[CACHE] redis set error", err)
	}
}
