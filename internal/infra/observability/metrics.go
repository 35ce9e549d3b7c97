package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the dashboard API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	dbQueryDuration *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	created         *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status class.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
		dbQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dashboard_db_query_duration_seconds",
				Help:    "Duration of database queries.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query_type"}, // query_type: list_customers, create_calculation
		),
		storeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_store_errors_total",
				Help: "Total failed database operations.",
			},
			[]string{"query_type"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dashboard_records_created_total",
				Help: "Total records created by entity.",
			},
			[]string{"entity"}, // entity: kunde, kalkulation, onboarding, mitarbeiter
		),
	}
}

// RecordRequestDuration records the duration of an HTTP request.
func (m *Metrics) RecordRequestDuration(route, status string, d time.Duration) {
	m.requestDuration.WithLabelValues(route, status).Observe(d.Seconds())
}

// RecordQueryDuration records the duration of a database operation.
func (m *Metrics) RecordQueryDuration(queryType string, d time.Duration) {
	m.dbQueryDuration.WithLabelValues(queryType).Observe(d.Seconds())
}

// IncrStoreError increments the store error counter.
func (m *Metrics) IncrStoreError(queryType string) {
	m.storeErrors.WithLabelValues(queryType).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrCreated increments the created-records counter for an entity.
func (m *Metrics) IncrCreated(entity string) {
	m.created.WithLabelValues(entity).Inc()
}

// CreatedCount returns the current value of the created-records counter.
func (m *Metrics) CreatedCount(entity string) float64 {
	return getCounterValue(m.created, entity)
}

// CacheHitCount returns the current value of the cache hit counter.
func (m *Metrics) CacheHitCount(cache string) float64 {
	return getCounterValue(m.cacheHits, cache)
}

// StoreErrorCount returns the current value of the store error counter.
func (m *Metrics) StoreErrorCount(queryType string) float64 {
	return getCounterValue(m.storeErrors, queryType)
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
