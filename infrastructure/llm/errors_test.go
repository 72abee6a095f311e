package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassifier_ClassifyHTTPError(t *testing.T) {
	classifier := &ErrorClassifier{Provider: "groq"}

	tests := []struct {
		name         string
		statusCode   int
		expectedType ErrorType
		retryable    bool
	}{
		{name: "unauthorized", statusCode: 401, expectedType: ErrorTypeAuthentication},
		{name: "forbidden", statusCode: 403, expectedType: ErrorTypeAuthentication},
		{name: "rate limited", statusCode: 429, expectedType: ErrorTypeRateLimit, retryable: true},
		{name: "bad request", statusCode: 400, expectedType: ErrorTypeBadRequest},
		{name: "model not found", statusCode: 404, expectedType: ErrorTypeNotFound},
		{name: "server error", statusCode: 500, expectedType: ErrorTypeServerError, retryable: true},
		{name: "gateway timeout", statusCode: 504, expectedType: ErrorTypeServerError, retryable: true},
		{name: "other 4xx", statusCode: 418, expectedType: ErrorTypeBadRequest},
		{name: "other 5xx", statusCode: 599, expectedType: ErrorTypeServerError, retryable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			providerErr := classifier.ClassifyHTTPError(tt.statusCode, "boom", errors.New("boom"))
			assert.Equal(t, tt.expectedType, providerErr.Type)
			assert.Equal(t, tt.retryable, providerErr.IsRetryable())
			assert.Equal(t, "groq", providerErr.Provider)
			assert.Equal(t, tt.statusCode, providerErr.StatusCode)
		})
	}
}

func TestErrorClassifier_ClassifyContextError(t *testing.T) {
	classifier := &ErrorClassifier{Provider: "openai"}

	providerErr := classifier.ClassifyContextError(context.DeadlineExceeded)
	assert.Equal(t, ErrorTypeTimeout, providerErr.Type)
	assert.True(t, providerErr.IsRetryable())

	providerErr = classifier.ClassifyContextError(context.Canceled)
	assert.Equal(t, ErrorTypeNetwork, providerErr.Type)
}

func TestProviderError_ErrorAndUnwrap(t *testing.T) {
	wrapped := errors.New("dial tcp: connection refused")
	providerErr := NewProviderError("groq", ErrorTypeServerError, 503, "service unavailable", wrapped)

	message := providerErr.Error()
	assert.Contains(t, message, "groq error")
	assert.Contains(t, message, "HTTP 503")
	assert.Contains(t, message, "server_error")
	assert.Contains(t, message, "service unavailable")

	require.ErrorIs(t, providerErr, wrapped)
}
