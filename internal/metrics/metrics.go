// Package metrics exposes Prometheus counters for the worry service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Worry call outcomes
const (
	OutcomeAccepted        = "accepted"
	OutcomeAbuse           = "abuse_detected"
	OutcomeCrisis          = "crisis"
	OutcomeInvalid         = "invalid_argument"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeUnattested      = "failed_precondition"
	OutcomeInternal        = "internal"
)

// Metrics holds the service's collectors on a private registry
type Metrics struct {
	registry   *prometheus.Registry
	outcomes   *prometheus.CounterVec
	signIns    *prometheus.CounterVec
	generation *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "baku",
				Subsystem: "worry",
				Name:      "outcomes_total",
				Help:      "Total number of processed worry calls by outcome.",
			},
			[]string{"outcome"},
		),
		signIns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "baku",
				Subsystem: "identity",
				Name:      "sign_ins_total",
				Help:      "Total number of anonymous sign-ins.",
			},
			[]string{"status"},
		),
		generation: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "baku",
				Subsystem: "worry",
				Name:      "generation_duration_seconds",
				Help:      "Duration of text generation calls.",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(m.outcomes, m.signIns, m.generation)
	return m
}

// RecordOutcome counts one worry call outcome
func (m *Metrics) RecordOutcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}

// RecordSignIn counts one anonymous sign-in attempt
func (m *Metrics) RecordSignIn(err error) {
	m.signIns.WithLabelValues(status(err)).Inc()
}

// ObserveGeneration records the duration of a generation call
func (m *Metrics) ObserveGeneration(d time.Duration, err error) {
	m.generation.WithLabelValues(status(err)).Observe(d.Seconds())
}

// Outcomes exposes the outcome counter for inspection
func (m *Metrics) Outcomes() *prometheus.CounterVec {
	return m.outcomes
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
