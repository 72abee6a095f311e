package llm

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroqProvider(t *testing.T) {
	t.Run("defaults to groq model", func(t *testing.T) {
		core, err := newGroqProvider(ClientConfig{APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, GroqDefaultModel, core.GetModel())
	})

	t.Run("configured model wins", func(t *testing.T) {
		core, err := newGroqProvider(ClientConfig{APIKey: "key", Model: "llama-3.3-70b-versatile"})
		require.NoError(t, err)
		assert.Equal(t, "llama-3.3-70b-versatile", core.GetModel())
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := newGroqProvider(ClientConfig{})
		assert.ErrorIs(t, err, ErrEmptyAPIKey)
	})

	t.Run("bad base url", func(t *testing.T) {
		_, err := newGroqProvider(ClientConfig{APIKey: "key", BaseURL: "not-a-url"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid BaseURL")
	})
}

func TestNewOpenAIProvider_DefaultModel(t *testing.T) {
	core, err := newOpenAIProvider(ClientConfig{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, OpenAIDefaultModel, core.GetModel())
}

func TestBuildChatCompletionRequest(t *testing.T) {
	core, err := newGroqProvider(ClientConfig{APIKey: "key"})
	require.NoError(t, err)
	provider := core.(*openAIProvider)

	t.Run("user message only", func(t *testing.T) {
		temp := 0.5
		req := provider.buildChatCompletionRequest("verify this", RequestOptions{
			Model:       "llama-3.1-8b-instant",
			MaxTokens:   256,
			Temperature: &temp,
		})

		require.Len(t, req.Messages, 1)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[0].Role)
		assert.Equal(t, "verify this", req.Messages[0].Content)
		assert.Equal(t, "llama-3.1-8b-instant", req.Model)
		assert.Equal(t, 256, req.MaxTokens)
		assert.InDelta(t, 0.5, float64(req.Temperature), 1e-6)
	})

	t.Run("system prompt prepended", func(t *testing.T) {
		req := provider.buildChatCompletionRequest("verify this", RequestOptions{
			Model:  "llama-3.1-8b-instant",
			System: "answer with JSON",
		})

		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		// Zero temperature stays unset so the provider default applies.
		assert.Zero(t, req.Temperature)
	})
}
