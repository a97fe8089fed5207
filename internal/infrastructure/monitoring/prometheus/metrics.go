// Package prometheus registers and serves the platform metrics.  A single
// Metrics value owns a private registry, so tests can construct as many
// instances as they like without default-registry collisions.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every metric name.
const namespace = "profitleak"

// Analysis path label values.  PathNone marks runs that failed before any
// engine was selected, such as validation rejections.
const (
	PathRules = "rules"
	PathGPT   = "gpt"
	PathNone  = "none"
)

// Analysis outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeGenError = "generation_error"
	OutcomeRecError = "recovery_error"
	OutcomeInternal = "internal_error"
	OutcomeCacheHit = "cache_hit"
)

var (
	httpDurationBuckets     = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	analysisDurationBuckets = []float64{.01, .05, .1, .5, 1, 2, 5, 10, 30, 60}
	modelDurationBuckets    = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
)

// Metrics holds every instrument of the platform.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP layer
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Analysis engine
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	FindingsPerRun   prometheus.Histogram

	// Model backend
	ModelRequestsTotal   *prometheus.CounterVec
	ModelRequestDuration *prometheus.HistogramVec

	// Report cache
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewMetrics constructs and registers the full instrument set, including the
// standard process and Go runtime collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration.",
			Buckets:   httpDurationBuckets,
		}, []string{"method", "path"}),

		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses by path and outcome.",
		}, []string{"path", "outcome"}),
		AnalysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis duration by path.",
			Buckets:   analysisDurationBuckets,
		}, []string{"path"}),
		FindingsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "findings_per_analysis",
			Help:      "Findings emitted per successful analysis.",
			Buckets:   []float64{3, 4, 5},
		}),

		ModelRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "model_requests_total",
			Help:      "Chat-model calls by model and status.",
		}, []string{"model", "status"}),
		ModelRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "model_request_duration_seconds",
			Help:      "Chat-model call duration.",
			Buckets:   modelDurationBuckets,
		}, []string{"model"}),

		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_hits_total",
			Help:      "Generative report cache hits.",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_misses_total",
			Help:      "Generative report cache misses.",
		}),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.FindingsPerRun,
		m.ModelRequestsTotal,
		m.ModelRequestDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveModelRequest records one chat-model call.  Status is "ok" for a
// successful transport round trip, or the platform error code otherwise.
func (m *Metrics) ObserveModelRequest(model, status string, elapsed time.Duration) {
	m.ModelRequestsTotal.WithLabelValues(model, status).Inc()
	m.ModelRequestDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(path, outcome string, elapsed time.Duration, findings int) {
	m.AnalysesTotal.WithLabelValues(path, outcome).Inc()
	m.AnalysisDuration.WithLabelValues(path).Observe(elapsed.Seconds())
	if outcome == OutcomeOK || outcome == OutcomeCacheHit {
		m.FindingsPerRun.Observe(float64(findings))
	}
}

//Personal.AI order the ending
