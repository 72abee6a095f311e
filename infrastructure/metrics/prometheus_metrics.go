// Package metrics provides the Prometheus-backed implementation of the
// MetricsCollector port.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/factweave/claimcheck/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It covers verdict throughput, attempt failures, and the
// per-provider LLM request metrics emitted by the client middleware.
type PrometheusMetrics struct {
	checkLatency    *prometheus.HistogramVec
	verdictsTotal   *prometheus.CounterVec
	attemptFailures *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	llmRequests     *prometheus.CounterVec
	llmTokens       *prometheus.CounterVec
	otherCounters   *prometheus.CounterVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics with the given registerer. Passing nil registers against
// the global Prometheus registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		checkLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "claimcheck_check_duration_seconds",
				Help:    "End-to-end latency of claim verification checks.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		verdictsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claimcheck_verdicts_total",
				Help: "Total verdicts produced, by final status.",
			},
			[]string{"status"},
		),
		attemptFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claimcheck_attempt_failures_total",
				Help: "Judge attempts that failed and were counted as UNVERIFIABLE votes.",
			},
			[]string{"model", "cause"},
		),
		llmLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_latency_seconds",
				Help:    "Latency of individual LLM provider requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model", "status"},
		),
		llmRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total LLM provider requests, by outcome.",
			},
			[]string{"provider", "model", "status"},
		),
		llmTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_tokens_total",
				Help: "Total tokens consumed across LLM requests.",
			},
			[]string{"provider", "model", "token_type"},
		),
		otherCounters: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "claimcheck_operations_total",
				Help: "Counters that do not map to a dedicated metric.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency records an operation duration in the check latency
// histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string, duration time.Duration, labels map[string]string,
) {
	pm.checkLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter increments the Prometheus counter matching the metric
// name; unrecognized names fall through to a generic operations counter.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "claimcheck_verdicts_total":
		pm.verdictsTotal.WithLabelValues(labels["status"]).Add(value)
	case "claimcheck_attempt_failures_total":
		pm.attemptFailures.WithLabelValues(labels["model"], labels["cause"]).Add(value)
	case "llm_requests_total":
		pm.llmRequests.WithLabelValues(labels["provider"], labels["model"], labels["status"]).Add(value)
	case "llm_tokens_total":
		pm.llmTokens.WithLabelValues(labels["provider"], labels["model"], labels["token_type"]).Add(value)
	default:
		pm.otherCounters.WithLabelValues(metric).Add(value)
	}
}

// RecordHistogram records a value in the histogram matching the metric
// name.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "llm_latency_seconds":
		pm.llmLatency.WithLabelValues(labels["provider"], labels["model"], labels["status"]).Observe(value)
	default:
		pm.checkLatency.WithLabelValues(metric).Observe(value)
	}
}

// Compile-time verification that PrometheusMetrics implements
// MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
