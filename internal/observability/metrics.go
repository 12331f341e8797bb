package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// simulation and insight service.
type Metrics struct {
	DatasetsGenerated  prometheus.Counter
	EventsGenerated    prometheus.Counter
	GenerationDuration prometheus.Histogram
	DatasetCache       *prometheus.CounterVec // labels: result={hit,miss}

	ActiveSessions  prometheus.Gauge
	SessionsExpired prometheus.Counter

	// Insight (generative AI) metrics.
	InsightRequests *prometheus.CounterVec // labels: outcome={success,error,unavailable,empty}
	InsightDuration prometheus.Histogram
	AIEnabled       prometheus.Gauge

	// Event-set export metrics.
	ExportsTotal   *prometheus.CounterVec // labels: outcome={success,error}
	EventsExported prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.DatasetsGenerated,
		m.EventsGenerated,
		m.GenerationDuration,
		m.DatasetCache,
		m.ActiveSessions,
		m.SessionsExpired,
		m.InsightRequests,
		m.InsightDuration,
		m.AIEnabled,
		m.ExportsTotal,
		m.EventsExported,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, to
// avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DatasetsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "datasets_generated_total",
			Help:      "Total event sets synthesized (cache misses).",
		}),
		EventsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "events_generated_total",
			Help:      "Total individual event records synthesized.",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geopredictor",
			Name:      "generation_duration_seconds",
			Help:      "Duration of one full event-set generation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		DatasetCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "dataset_cache_total",
			Help:      "Dataset cache lookups by result.",
		}, []string{"result"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geopredictor",
			Name:      "active_sessions",
			Help:      "Number of live dashboard sessions.",
		}),
		SessionsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "sessions_expired_total",
			Help:      "Sessions evicted by the inactivity janitor.",
		}),
		InsightRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "insight_requests_total",
			Help:      "Generative-AI insight requests by outcome.",
		}, []string{"outcome"}),
		InsightDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geopredictor",
			Name:      "insight_duration_seconds",
			Help:      "Generative-AI API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		AIEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geopredictor",
			Name:      "ai_enabled",
			Help:      "1 when the generative-AI boundary is configured, 0 otherwise.",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "exports_total",
			Help:      "Event-set export attempts by outcome.",
		}, []string{"outcome"}),
		EventsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "geopredictor",
			Name:      "events_exported_total",
			Help:      "Individual event records published to the export topic.",
		}),
	}
}
