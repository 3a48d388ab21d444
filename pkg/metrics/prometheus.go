package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	eventsIngested *prometheus.CounterVec
	eventsDropped  *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		eventsIngested: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_events_ingested_total",
				Help: "Total number of journal events accepted into the store",
			},
			[]string{"source"},
		),
		eventsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_events_dropped_total",
				Help: "Total number of unusable records dropped at ingestion",
			},
			[]string{"reason"},
		),
		cacheLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_cache_lookups_total",
				Help: "Metric bundle cache lookups by outcome",
			},
			[]string{"op", "outcome"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tradelens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tradelens_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordEventIngested records an accepted journal event.
func (r *Recorder) RecordEventIngested(source string) {
	r.eventsIngested.WithLabelValues(source).Inc()
}

// RecordEventDropped records a dropped record.
func (r *Recorder) RecordEventDropped(reason string) {
	r.eventsDropped.WithLabelValues(reason).Inc()
}

// RecordCacheHit records a cache lookup outcome.
func (r *Recorder) RecordCacheHit(op string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.cacheLookups.WithLabelValues(op, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
