package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mindcare-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), Config{})
	assert.Error(t, err)
}

func TestGeminiProvider_Chat(t *testing.T) {
	var captured map[string]interface{}
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Take a slow breath."}]}}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 5, "totalTokenCount": 17}
		}`))
	}))
	defer server.Close()

	provider, err := NewGeminiProvider(context.Background(), Config{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	result, err := provider.Chat(context.Background(), "be kind", []llm.Message{
		{Role: "user", Content: "hello"},
		{Role: "model", Content: "hi"},
		{Role: "user", Content: "I feel tense"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Take a slow breath.", result.Text)
	assert.Equal(t, 12, result.Usage.InputTokens)
	assert.Equal(t, 5, result.Usage.OutputTokens)
	assert.Equal(t, 17, result.Usage.TotalTokens)
	assert.True(t, strings.HasSuffix(path, "models/gemini-test:generateContent"), path)

	contents, ok := captured["contents"].([]interface{})
	require.True(t, ok)
	require.Len(t, contents, 3)
	assert.Equal(t, "model", contents[1].(map[string]interface{})["role"])
	assert.NotNil(t, captured["systemInstruction"])
}

func TestGeminiProvider_ChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}}`))
	}))
	defer server.Close()

	provider, err := NewGeminiProvider(context.Background(), Config{APIKey: "k", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = provider.Chat(context.Background(), "", []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
