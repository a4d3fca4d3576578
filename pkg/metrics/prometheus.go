// Package metrics provides Prometheus metrics for the riftlens analytics
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Playstyle snapshot cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Recalculation path
	recalculations        *prometheus.CounterVec
	recalculationConflict prometheus.Counter
	refreshFailures       prometheus.Counter
	refreshLatency        prometheus.Histogram

	// Leaderboard aggregation
	leaderboardBuilds        prometheus.Counter
	leaderboardBuildDuration prometheus.Histogram

	// System health
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	inflightRecalcs      prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "riftlens",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.httpErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint and error kind",
	}, []string{"endpoint", "kind"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_hits_total",
		Help:      "Playstyle snapshot cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_cache_misses_total",
		Help:      "Playstyle snapshot cache misses (never-classified subjects)",
	})

	m.recalculations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recalculations_total",
		Help:      "Completed playstyle recalculations by refresh mode",
	}, []string{"refreshed"})

	m.recalculationConflict = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recalculation_conflicts_total",
		Help:      "Recalculations rejected because one was already in flight",
	})

	m.refreshFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_failures_total",
		Help:      "Upstream match-data refresh failures",
	})

	m.refreshLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_latency_milliseconds",
		Help:      "Upstream match-data refresh latency in milliseconds",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.leaderboardBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_builds_total",
		Help:      "Leaderboard aggregations performed",
	})

	m.leaderboardBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_build_duration_milliseconds",
		Help:      "Leaderboard aggregation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.inflightRecalcs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inflight_recalculations",
		Help:      "Recalculations currently in flight",
	})
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMs)
}

// RecordHTTPError records an error response by kind.
func RecordHTTPError(endpoint, kind string) {
	globalManager.httpErrors.WithLabelValues(endpoint, kind).Inc()
}

// RecordSnapshotCacheHit increments the snapshot cache hit counter.
func RecordSnapshotCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordSnapshotCacheMiss increments the snapshot cache miss counter.
func RecordSnapshotCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordRecalculation records a completed recalculation.
func RecordRecalculation(refreshed bool) {
	label := "false"
	if refreshed {
		label = "true"
	}
	globalManager.recalculations.WithLabelValues(label).Inc()
}

// RecordRecalculationConflict records a rejected concurrent recalculation.
func RecordRecalculationConflict() {
	globalManager.recalculationConflict.Inc()
}

// RecordRefreshFailure records an upstream refresh failure.
func RecordRefreshFailure() {
	globalManager.refreshFailures.Inc()
}

// RecordRefreshLatency records upstream refresh latency in milliseconds.
func RecordRefreshLatency(latencyMs float64) {
	globalManager.refreshLatency.Observe(latencyMs)
}

// RecordLeaderboardBuild records one leaderboard aggregation.
func RecordLeaderboardBuild(durationMs float64) {
	globalManager.leaderboardBuilds.Inc()
	globalManager.leaderboardBuildDuration.Observe(durationMs)
}

// UpdateSystemMemoryUsage sets current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// UpdateInflightRecalculations sets the in-flight recalculation gauge.
func UpdateInflightRecalculations(count int64) {
	globalManager.inflightRecalcs.Set(float64(count))
}

// GetRegistry returns the custom registry for serving /healthz metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
