// Package metrics exposes process-wide analysis counters for Prometheus.
// Only aggregates are kept; nothing about an individual request or image.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for analyses.
const (
	OutcomeSuccess              = "success"
	OutcomeMissingConfiguration = "missing_configuration"
	OutcomeInvalidInput         = "invalid_input"
	OutcomePayloadTooLarge      = "payload_too_large"
	OutcomeRejectedInput        = "rejected_input"
	OutcomeEmptyResponse        = "empty_response"
	OutcomeMalformedResponse    = "malformed_response"
	OutcomeUpstreamError        = "upstream_error"
)

// Recorder counts analyses by outcome and times model calls.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry     *prometheus.Registry
	analyses     *prometheus.CounterVec
	duration     prometheus.Histogram
	modelLatency prometheus.Histogram
}

// NewRecorder creates a recorder on its own registry, together with the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "color_season",
			Name:      "analyses_total",
			Help:      "Analysis requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "color_season",
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis time including validation.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
		modelLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "color_season",
			Name:      "model_call_duration_seconds",
			Help:      "Latency of the single generative model call.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}),
	}
	r.registry.MustRegister(
		r.analyses,
		r.duration,
		r.modelLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAnalysis records one finished analysis.
func (r *Recorder) ObserveAnalysis(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
	r.duration.Observe(elapsed.Seconds())
}

// ObserveModelCall records the latency of one model round trip.
func (r *Recorder) ObserveModelCall(elapsed time.Duration) {
	if r == nil {
		return
	}
	r.modelLatency.Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
