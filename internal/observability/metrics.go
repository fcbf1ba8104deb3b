package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "solar_roi"

// Metrics holds the Prometheus counters, histograms, and gauges for the estimator.
type Metrics struct {
	Estimates            *prometheus.CounterVec // labels: mode={live,static,sample}
	ValidationRejections *prometheus.CounterVec // labels: field
	EstimateDuration     prometheus.Histogram

	// External lookup metrics.
	Lookups         *prometheus.CounterVec   // labels: lookup={irradiance,price}, outcome={success,error,invalid}
	LookupDuration  *prometheus.HistogramVec // labels: lookup
	LookupCache     *prometheus.CounterVec   // labels: lookup, result={hit,miss}
	LiveDataEnabled prometheus.Gauge

	// Event publishing metrics.
	EventsPublished *prometheus.CounterVec // labels: outcome={success,error,dropped}
}

func newMetrics() *Metrics {
	return &Metrics{
		Estimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Completed estimates by data mode.",
		}, []string{"mode"}),
		ValidationRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_rejections_total",
			Help:      "Estimate requests rejected before computation, by field.",
		}, []string{"field"}),
		EstimateDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_duration_seconds",
			Help:      "End-to-end estimate latency including environmental lookups.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "External environmental lookups by source and outcome.",
		}, []string{"lookup", "outcome"}),
		LookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "External environmental lookup duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"lookup"}),
		LookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_cache_total",
			Help:      "Environmental lookup cache results by source.",
		}, []string{"lookup", "result"}),
		LiveDataEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_data_enabled",
			Help:      "1 when live NREL/EIA lookups are enabled, 0 otherwise.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Estimate events written to Kafka by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates and registers all estimator metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Estimates,
		m.ValidationRejections,
		m.EstimateDuration,
		m.Lookups,
		m.LookupDuration,
		m.LookupCache,
		m.LiveDataEnabled,
		m.EventsPublished,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that are not registered with any
// registry, for one-shot tools that never serve /metrics.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

// RecordLookup implements domain.LookupRecorder.
func (m *Metrics) RecordLookup(lookup, outcome string, elapsed time.Duration) {
	m.Lookups.WithLabelValues(lookup, outcome).Inc()
	m.LookupDuration.WithLabelValues(lookup).Observe(elapsed.Seconds())
}

// RecordCache counts a cache hit or miss for a lookup.
func (m *Metrics) RecordCache(lookup string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.LookupCache.WithLabelValues(lookup, result).Inc()
}
