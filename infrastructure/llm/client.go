// Package llm provides the chat-completion clients the checker judges
// through. Providers (Groq, OpenAI, Anthropic, Google) are abstracted
// behind a small CoreLLM interface and composed with middleware for
// rate limiting, timeouts, and metrics.
//
// The checker holds one Client for the life of the process and shares
// it across every in-flight attempt; all implementations in this
// package are safe for that concurrent, read-only use. Note that no
// retry middleware exists here on purpose: a failed request must
// surface to the checker as a vote, not be silently retried.
//
// Basic usage:
//
//	client, err := llm.NewClient("groq", llm.ClientConfig{
//	    APIKey: os.Getenv("GROQ_API_KEY"),
//	    Model:  "llama-3.1-8b-instant",
//	})
//	response, err := client.Complete(ctx, prompt, map[string]any{"temperature": 0.3})
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/factweave/claimcheck/internal/ports"
)

// CoreLLM is the minimal surface a provider must implement. Middleware
// wraps any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt and returns the response text plus
	// input/output token counts. The opts map carries per-request
	// parameters such as temperature, max_tokens, and model.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the configured default model.
	GetModel() string

	// SetModel updates the default model for subsequent requests.
	SetModel(model string)
}

// TokenEstimator approximates token counts when the provider does not
// report them.
type TokenEstimator interface {
	EstimateTokens(text string) int
}

// Middleware wraps a CoreLLM to add cross-cutting behavior.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the settings for constructing a provider client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model is the default model identifier; attempts may override it
	// per request through the options map.
	Model string

	// BaseURL overrides the provider's default endpoint. Empty means
	// the provider default.
	BaseURL string

	// Timeout caps individual requests; zero means no client timeout,
	// leaving the provider's own deadline in charge.
	Timeout time.Duration

	// TokenEstimator supplies custom token counting; nil uses a simple
	// character heuristic.
	TokenEstimator TokenEstimator

	// Middleware is applied in order, first entry outermost.
	Middleware []Middleware
}

// Client wraps a provider CoreLLM behind the ports.LLMClient interface.
type Client struct {
	core      CoreLLM
	estimator TokenEstimator
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient builds a provider client with its middleware chain applied.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if config.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	// Apply in reverse so the first middleware is outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	estimator := config.TokenEstimator
	if estimator == nil {
		estimator = &SimpleTokenEstimator{}
	}

	return &Client{core: core, estimator: estimator}, nil
}

// Complete sends a prompt and returns the generated text, discarding
// token usage.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.CompleteWithUsage(ctx, prompt, options)
	return response, err
}

// CompleteWithUsage sends a prompt and returns the generated text along
// with input and output token counts.
func (c *Client) CompleteWithUsage(ctx context.Context, prompt string, options map[string]any) (string, int, int, error) {
	return c.core.DoRequest(ctx, prompt, options)
}

// EstimateTokens approximates the token count of text.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.EstimateTokens(text), nil
}

// GetModel returns the default model of the underlying provider.
func (c *Client) GetModel() string { return c.core.GetModel() }

// SimpleTokenEstimator approximates tokens at four characters each,
// which is close enough for English prompt sizing.
type SimpleTokenEstimator struct{}

// EstimateTokens returns a character-based token estimate.
func (e *SimpleTokenEstimator) EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}

// ProviderFactory creates a CoreLLM from configuration.
type ProviderFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]ProviderFactory{}

// RegisterProviderFactory registers a custom provider under the given
// type name. Built-in providers register themselves at init.
func RegisterProviderFactory(providerType string, factory ProviderFactory) {
	providerFactories[providerType] = factory
}
