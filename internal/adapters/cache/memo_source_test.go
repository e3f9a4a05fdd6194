package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-sellermetrics/internal/core/domain"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/logger"
	"github.com/comitanigiacomo/kanso-sellermetrics/internal/metrics"
)

type countingSource struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *countingSource) FetchSnapshot(_ context.Context, _ domain.Metric, _ domain.StorePayload) (domain.MetricSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return domain.MetricSnapshot{}, s.err
	}
	return domain.MetricSnapshot{
		Current:        10,
		Previous:       5,
		TrendDirection: domain.TrendUp,
		Sparkline:      []domain.TimeSeriesPoint{{Date: civil.Date{Year: 2024, Month: 1, Day: 1}, Total: 10}},
	}, nil
}

func (s *countingSource) FetchDailySeries(_ context.Context, _ domain.Metric, _ domain.StorePayload) ([]domain.TimeSeriesPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return []domain.TimeSeriesPoint{{Date: civil.Date{Year: 2024, Month: 1, Day: 2}, Total: 3}}, nil
}

func (s *countingSource) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	rdb, err := NewRedisClient(
		getEnv("SELLERMETRICS_REDIS_HOST", "localhost"),
		getEnv("SELLERMETRICS_REDIS_PORT", "6379"),
		os.Getenv("SELLERMETRICS_REDIS_PASSWORD"),
		1,
	)
	if err != nil {
		t.Skipf("Skipping Redis integration test: %v", err)
	}
	t.Cleanup(func() { rdb.Close() })

	require.NoError(t, rdb.FlushDB(context.Background()).Err(), "Failed to flush test DB")
	return rdb
}

func payloadFor(storeID string) domain.StorePayload {
	return domain.StorePayload{StoreID: storeID, MarketplaceID: "mp", DateFrom: "2024-01-01", DateTo: "2024-01-07"}
}

func TestCacheKey(t *testing.T) {
	a := cacheKey(kindSnapshot, domain.MetricSales, payloadFor("s1"))
	b := cacheKey(kindSnapshot, domain.MetricSales, payloadFor("s1"))
	assert.Equal(t, a, b)
	assert.Regexp(t, `^metrics:s1:snapshot:[0-9a-f]{32}$`, a)

	other := payloadFor("s1")
	other.DateTo = "2024-01-08"
	assert.NotEqual(t, a, cacheKey(kindSnapshot, domain.MetricSales, other))
	assert.NotEqual(t, a, cacheKey(kindSnapshot, domain.MetricOrders, payloadFor("s1")))
	assert.NotEqual(t, a, cacheKey(kindDaily, domain.MetricSales, payloadFor("s1")))
}

func TestMemoizedMetricSource_FailOpen(t *testing.T) {
	badRdb := redis.NewClient(&redis.Options{Addr: "localhost:9999", MaxRetries: -1})
	defer badRdb.Close()

	next := &countingSource{}
	memo := NewMemoizedMetricSource(next, badRdb, time.Minute, logger.Nop(), nil)

	snap, err := memo.FetchSnapshot(context.Background(), domain.MetricSales, payloadFor("s1"))
	require.NoError(t, err)
	assert.Equal(t, 10.0, snap.Current)

	_, err = memo.FetchDailySeries(context.Background(), domain.MetricSales, payloadFor("s1"))
	require.NoError(t, err)
	assert.Equal(t, 2, next.count())

	assert.Error(t, memo.InvalidateStore(context.Background(), "s1"))
}

func TestMemoizedMetricSource_Integration(t *testing.T) {
	rdb := setupTestRedis(t)
	ctx := context.Background()

	t.Run("Second call is served from cache", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		next := &countingSource{}
		memo := NewMemoizedMetricSource(next, rdb, time.Minute, logger.Nop(), metrics.NewCollector(reg))

		first, err := memo.FetchSnapshot(ctx, domain.MetricSales, payloadFor("s1"))
		require.NoError(t, err)
		second, err := memo.FetchSnapshot(ctx, domain.MetricSales, payloadFor("s1"))
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, next.count())

		series, err := memo.FetchDailySeries(ctx, domain.MetricSales, payloadFor("s1"))
		require.NoError(t, err)
		cached, err := memo.FetchDailySeries(ctx, domain.MetricSales, payloadFor("s1"))
		require.NoError(t, err)
		assert.Equal(t, series, cached)
		assert.Equal(t, 2, next.count())
	})

	t.Run("Errors are not cached", func(t *testing.T) {
		next := &countingSource{err: errors.New("upstream 500")}
		memo := NewMemoizedMetricSource(next, rdb, time.Minute, logger.Nop(), nil)

		_, err := memo.FetchSnapshot(ctx, domain.MetricOrders, payloadFor("s2"))
		assert.Error(t, err)
		_, err = memo.FetchSnapshot(ctx, domain.MetricOrders, payloadFor("s2"))
		assert.Error(t, err)
		assert.Equal(t, 2, next.count())
	})

	t.Run("Corrupted entry falls through and is replaced", func(t *testing.T) {
		next := &countingSource{}
		memo := NewMemoizedMetricSource(next, rdb, time.Minute, logger.Nop(), nil)
		key := cacheKey(kindSnapshot, domain.MetricVisitors, payloadFor("s3"))
		require.NoError(t, rdb.Set(ctx, key, "{not json", time.Minute).Err())

		snap, err := memo.FetchSnapshot(ctx, domain.MetricVisitors, payloadFor("s3"))
		require.NoError(t, err)
		assert.Equal(t, 10.0, snap.Current)
		assert.Equal(t, 1, next.count())
	})

	t.Run("InvalidateStore only drops that store", func(t *testing.T) {
		next := &countingSource{}
		memo := NewMemoizedMetricSource(next, rdb, time.Minute, logger.Nop(), nil)

		for i := 0; i < 150; i++ {
			p := payloadFor("s4")
			p.DateTo = fmt.Sprintf("2024-02-%02d", i%28+1)
			p.MarketplaceID = fmt.Sprintf("mp-%d", i)
			_, err := memo.FetchDailySeries(ctx, domain.MetricSales, p)
			require.NoError(t, err)
		}
		_, err := memo.FetchDailySeries(ctx, domain.MetricSales, payloadFor("s5"))
		require.NoError(t, err)

		require.NoError(t, memo.InvalidateStore(ctx, "s4"))

		left, err := rdb.Keys(ctx, storePattern("s4")).Result()
		require.NoError(t, err)
		assert.Empty(t, left)

		kept, err := rdb.Keys(ctx, storePattern("s5")).Result()
		require.NoError(t, err)
		assert.Len(t, kept, 1)
	})
}
