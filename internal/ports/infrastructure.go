// Package ports defines the interfaces through which the verification
// core talks to infrastructure. Implementations live under
// infrastructure/ and are injected at construction time.
package ports

import (
	"context"
	"time"
)

// LLMClient is the interface for chat-completion providers. The checker
// holds a single client instance for the life of the process; every
// in-flight attempt shares it, so implementations must be safe for
// concurrent use and must not mutate configuration after construction.
type LLMClient interface {
	// Complete sends a prompt and returns the generated text.
	// The options map carries provider-tunable parameters; the checker
	// sets "temperature" (float64, 0.0-1.0) and "max_tokens" (int).
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// CompleteWithUsage is Complete plus input/output token counts for
	// cost accounting.
	CompleteWithUsage(ctx context.Context, prompt string, options map[string]any) (string, int, int, error)

	// EstimateTokens approximates the token count of text before a
	// request is made.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier used by this client.
	GetModel() string
}

// MetricsCollector receives operational metrics from the checker and
// the LLM middleware. Implementations should be cheap enough to call on
// every request; a nil-safe no-op is available for tests.
type MetricsCollector interface {
	// RecordLatency records the duration of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter by value.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a distribution.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
