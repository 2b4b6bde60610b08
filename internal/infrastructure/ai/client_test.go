package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/shai-term/internal/domain"
	"github.com/doeshing/shai-term/internal/pkg/logger"
)

type usageCall struct {
	provider, model    string
	prompt, completion uint64
}

type recordingUsage struct {
	mu    sync.Mutex
	calls []usageCall
}

func (r *recordingUsage) RecordRequest(provider, model string, prompt, completion uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, usageCall{provider, model, prompt, completion})
}
func (r *recordingUsage) RecordCacheHit()  {}
func (r *recordingUsage) RecordCacheMiss() {}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestFactory_MissingKey(t *testing.T) {
	f := NewFactory(nil, logger.Nop())

	_, err := f.ForConfig(domain.AppConfig{Provider: "openai", Model: "gpt-4o-mini"})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)

	_, err = f.ForConfig(domain.AppConfig{Provider: "anthropic"})
	assert.ErrorIs(t, err, domain.ErrMissingAPIKey)

	client, err := f.ForConfig(domain.AppConfig{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestClient_OpenAICompatible(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"choices": []map[string]interface{}{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": "  eckout main \n"}},
			},
			"usage": map[string]int{"prompt_tokens": 42, "completion_tokens": 3, "total_tokens": 45},
		})
	}))
	defer server.Close()

	usage := &recordingUsage{}
	f := NewFactory(usage, logger.Nop())
	client, err := f.ForConfig(domain.AppConfig{
		Provider: "groq",
		Model:    "llama3-70b-8192",
		APIKey:   "sk-test",
		Endpoint: server.URL + "/v1/chat/completions",
	})
	require.NoError(t, err)

	reply, err := client.Complete(context.Background(), "system prompt", "git ch", 0.2)
	require.NoError(t, err)
	assert.Equal(t, "eckout main", reply)

	assert.Equal(t, "llama3-70b-8192", got["model"])
	assert.EqualValues(t, completionMaxTokens, got["max_tokens"])
	messages := got["messages"].([]interface{})
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])

	require.Len(t, usage.calls, 1)
	assert.Equal(t, usageCall{"groq", "llama3-70b-8192", 42, 3}, usage.calls[0])
}

func TestClient_Anthropic(t *testing.T) {
	var got anthropicRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": `{"is_harmful":false,"reason":"","severity":"low"}`}},
			"usage":   map[string]int{"input_tokens": 10, "output_tokens": 7},
		})
	}))
	defer server.Close()

	usage := &recordingUsage{}
	client, err := NewFactory(usage, logger.Nop()).ForConfig(domain.AppConfig{
		Provider: "anthropic",
		Model:    "claude-3-5-haiku-20241022",
		APIKey:   "sk-ant",
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	reply, err := client.ClassifyHarm(context.Background(), "sys", "ls -la")
	require.NoError(t, err)
	assert.Contains(t, reply, `"is_harmful":false`)

	assert.Equal(t, harmMaxTokens, got.MaxTokens)
	assert.Equal(t, "sys", got.System)
	assert.Equal(t, float32(0), got.Temperature)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "ls -la", got.Messages[0].Content)
	assert.Equal(t, uint64(10), usage.calls[0].prompt)
}

func TestClient_Ollama(t *testing.T) {
	var got ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, map[string]interface{}{
			"message":           map[string]string{"role": "assistant", "content": "fixed"},
			"prompt_eval_count": 5,
			"eval_count":        2,
		})
	}))
	defer server.Close()

	client, err := NewFactory(nil, logger.Nop()).ForConfig(domain.AppConfig{
		Provider: "ollama",
		Model:    "llama3",
		Endpoint: server.URL + "/api/chat",
	})
	require.NoError(t, err)

	reply, err := client.SuggestFix(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, "fixed", reply)
	assert.False(t, got.Stream)
	assert.Equal(t, fixMaxTokens, got.Options.NumPredict)
	require.Len(t, got.Messages, 2)
}

func TestClient_HTTPErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := NewFactory(nil, logger.Nop()).ForConfig(domain.AppConfig{
		Provider: "ollama",
		Model:    "llama3",
		Endpoint: server.URL,
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "sys", "user", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_EmptyReplyIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{"message": map[string]string{"role": "assistant", "content": "   "}})
	}))
	defer server.Close()

	client, err := NewFactory(nil, logger.Nop()).ForConfig(domain.AppConfig{Provider: "ollama", Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "sys", "user", 0)
	assert.ErrorIs(t, err, errEmptyResponse)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "...", truncate("é", 1))
}
