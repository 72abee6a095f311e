package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordCounter("claimcheck_verdicts_total", 1, map[string]string{"status": "VERIFIED"})
	pm.RecordCounter("claimcheck_verdicts_total", 1, map[string]string{"status": "VERIFIED"})
	pm.RecordCounter("claimcheck_verdicts_total", 1, map[string]string{"status": "HALLUCINATED"})
	pm.RecordCounter("claimcheck_attempt_failures_total", 1,
		map[string]string{"model": "llama-3.1-8b-instant", "cause": "provider"})
	pm.RecordCounter("llm_tokens_total", 42,
		map[string]string{"provider": "groq", "model": "llama-3.1-8b-instant", "token_type": "input"})
	pm.RecordCounter("some_unmapped_metric", 3, nil)

	assert.Equal(t, float64(2),
		testutil.ToFloat64(pm.verdictsTotal.WithLabelValues("VERIFIED")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(pm.verdictsTotal.WithLabelValues("HALLUCINATED")))
	assert.Equal(t, float64(1),
		testutil.ToFloat64(pm.attemptFailures.WithLabelValues("llama-3.1-8b-instant", "provider")))
	assert.Equal(t, float64(42),
		testutil.ToFloat64(pm.llmTokens.WithLabelValues("groq", "llama-3.1-8b-instant", "input")))
	assert.Equal(t, float64(3),
		testutil.ToFloat64(pm.otherCounters.WithLabelValues("some_unmapped_metric")))
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordLatency("check", 250*time.Millisecond, nil)

	count := testutil.CollectAndCount(pm.checkLatency, "claimcheck_check_duration_seconds")
	assert.Equal(t, 1, count)
}

func TestPrometheusMetrics_RecordHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.RecordHistogram("llm_latency_seconds", 0.8,
		map[string]string{"provider": "groq", "model": "llama-3.1-8b-instant", "status": "success"})

	count := testutil.CollectAndCount(pm.llmLatency, "llm_latency_seconds")
	assert.Equal(t, 1, count)
}
