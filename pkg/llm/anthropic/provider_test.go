package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mindcare-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(Config{})
	assert.Error(t, err)
}

type sentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type sentRequest struct {
	Model     string      `json:"model"`
	MaxTokens int         `json:"max_tokens"`
	System    []sentBlock `json:"system"`
	Messages  []struct {
		Role    string      `json:"role"`
		Content []sentBlock `json:"content"`
	} `json:"messages"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

func TestAnthropicProvider_Chat(t *testing.T) {
	var got sentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"stop_reason": "end_turn",
			"content": [{"type": "text", "text": "That sounds hard."}],
			"usage": {"input_tokens": 20, "output_tokens": 4}
		}`))
	}))
	defer server.Close()

	provider, err := NewAnthropicProvider(Config{APIKey: "secret", Model: "claude-test", BaseURL: server.URL})
	require.NoError(t, err)

	result, err := provider.Chat(context.Background(), "persona", []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "model", Content: "hi there"},
		{Role: "user", Content: "rough day"},
	}, llm.WithMaxTokens(256))
	require.NoError(t, err)

	assert.Equal(t, "That sounds hard.", result.Text)
	assert.Equal(t, llm.Usage{InputTokens: 20, OutputTokens: 4, TotalTokens: 24}, result.Usage)

	require.Len(t, got.System, 1)
	assert.Equal(t, "persona", got.System[0].Text)
	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	assert.InDelta(t, llm.DefaultTemperature, got.Temperature, 1e-9)
	assert.InDelta(t, llm.DefaultTopP, got.TopP, 1e-9)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "user", got.Messages[2].Role)
	require.Len(t, got.Messages[2].Content, 1)
	assert.Equal(t, "rough day", got.Messages[2].Content[0].Text)
}

func TestAnthropicProvider_ChatErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		rateLimited bool
		providerErr bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, rateLimited: true, providerErr: true},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, providerErr: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"type":"error","error":{"type":"api_error","message":"boom"}}`, providerErr: true},
		{name: "empty content", status: http.StatusOK, body: `{"id":"msg_1","type":"message","role":"assistant","content":[]}`},
		{name: "garbage", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider, err := NewAnthropicProvider(Config{APIKey: "k", BaseURL: server.URL})
			require.NoError(t, err)

			_, err = provider.Chat(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
			require.Error(t, err)

			var pe *llm.ProviderError
			assert.Equal(t, tt.providerErr, errors.As(err, &pe))
			if tt.providerErr {
				assert.Equal(t, tt.status, pe.StatusCode)
				assert.Equal(t, tt.rateLimited, pe.RateLimited())
			}
		})
	}
}
