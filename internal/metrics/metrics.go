package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Collector records upstream fetches and memo cache lookups. Every method is
// safe on a nil receiver.
type Collector struct {
	fetches         *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	failedStores    prometheus.Counter
}

// NewCollector registers the collectors on reg. A nil reg yields a collector
// that records nothing.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return &Collector{}
	}
	fetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sellermetrics_store_fetch_total",
		Help: "Per-store metric fetches by outcome.",
	}, []string{"metric", "outcome"})
	upstreamLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sellermetrics_upstream_request_duration_seconds",
		Help:    "Latency of seller backend requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sellermetrics_memo_lookups_total",
		Help: "Memoized upstream response lookups by result.",
	}, []string{"result"})
	failedStores := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sellermetrics_dashboard_failed_stores_total",
		Help: "Stores left out of a dashboard response because their fetch failed.",
	})
	reg.MustRegister(fetches, upstreamLatency, cacheLookups, failedStores)
	return &Collector{
		fetches:         fetches,
		upstreamLatency: upstreamLatency,
		cacheLookups:    cacheLookups,
		failedStores:    failedStores,
	}
}

func (c *Collector) ObserveFetch(metric string, err error) {
	if c == nil || c.fetches == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	c.fetches.WithLabelValues(normalizeLabel(metric), outcome).Inc()
}

func (c *Collector) ObserveUpstream(endpoint string, d time.Duration) {
	if c == nil || c.upstreamLatency == nil {
		return
	}
	c.upstreamLatency.WithLabelValues(normalizeLabel(endpoint)).Observe(d.Seconds())
}

func (c *Collector) ObserveCache(result string) {
	if c == nil || c.cacheLookups == nil {
		return
	}
	c.cacheLookups.WithLabelValues(normalizeLabel(result)).Inc()
}

func (c *Collector) AddFailedStores(n int) {
	if c == nil || c.failedStores == nil || n <= 0 {
		return
	}
	c.failedStores.Add(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
