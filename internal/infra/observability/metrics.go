package observability

import (
	"time"

	"github.com/tesourariapro/tesouraria-bff/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFF.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	syncsTotal      *prometheus.CounterVec
	mutationsTotal  *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tesouraria_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesouraria_external_errors_total",
				Help: "Total errors from the treasury backend.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesouraria_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesouraria_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		syncsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesouraria_syncs_total",
				Help: "Total backend sync attempts by outcome.",
			},
			[]string{"outcome"},
		),
		mutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tesouraria_mutations_total",
				Help: "Total write operations by entity.",
			},
			[]string{"entity"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSync increments the sync counter with an outcome label
// ("success", "partial" or "error").
func (m *Metrics) IncrSync(outcome string) {
	m.syncsTotal.WithLabelValues(outcome).Inc()
}

// IncrMutation increments the mutation counter for an entity.
func (m *Metrics) IncrMutation(entity string) {
	m.mutationsTotal.WithLabelValues(entity).Inc()
}

// GetSyncSnapshot returns a snapshot of sync-related metrics suitable for the
// GET /v1/metrics/sync endpoint.
func (m *Metrics) GetSyncSnapshot() *domain.SyncMetrics {
	// Prometheus counters expose cumulative values.
	success := getCounterValue(m.syncsTotal, "success")
	partial := getCounterValue(m.syncsTotal, "partial")
	failed := getCounterValue(m.syncsTotal, "error")
	total := success + partial + failed

	cacheHits := getCounterValue(m.cacheHits, "statement")
	cacheMisses := getCounterValue(m.cacheMisses, "statement")

	errorRate := float64(0)
	if total > 0 {
		errorRate = failed / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.SyncMetrics{
		TotalSyncs:    int64(total),
		SuccessSyncs:  int64(success),
		PartialSyncs:  int64(partial),
		FailedSyncs:   int64(failed),
		SyncErrorRate: errorRate,
		CacheHitRate:  cacheHitRate,
		Period:        "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
