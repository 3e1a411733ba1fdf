package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/invoice-advisor/internal/common"
)

func TestNewAnthropicClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{name: "valid config", config: Config{APIKey: "test-key"}},
		{name: "missing API key", config: Config{APIKey: ""}, wantErr: true},
		{
			name:   "custom model and settings",
			config: Config{APIKey: "test-key", Model: "claude-3-opus-20240229", Temperature: 0.5, MaxTokens: 200},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newAnthropicClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestAnthropicClient_Complete(t *testing.T) {
	var captured struct {
		System   string    `json:"system"`
		Model    string    `json:"model"`
		Messages []Message `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_, _ = w.Write([]byte(`{
			"model": "claude-test",
			"content": [
				{"type": "text", "text": "Invoice c is "},
				{"type": "tool_use", "text": "ignored"},
				{"type": "text", "text": "overdue soon."}
			],
			"usage": {"input_tokens": 30, "output_tokens": 7}
		}`))
	}))
	defer server.Close()

	client, err := newAnthropicClient(Config{APIKey: "test-key", BaseURL: server.URL, Model: "claude-test"})
	require.NoError(t, err)

	resp, err := client.Complete(context.Background(), Request{
		System: "context",
		Messages: []Message{
			{Role: "user", Content: "earlier"},
			{Role: "assistant", Content: "reply"},
			{Role: "user", Content: "now?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Invoice c is overdue soon.", resp.Text)
	assert.Equal(t, "claude-test", resp.Model)
	assert.Equal(t, "context", captured.System)
	assert.Len(t, captured.Messages, 3)
}

func TestAnthropicClient_Errors(t *testing.T) {
	t.Run("overloaded is retryable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)
		_, err = client.Complete(context.Background(), Request{})
		require.Error(t, err)
		assert.True(t, common.IsRetryable(err))
	})

	t.Run("empty content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"content": []}`))
		}))
		defer server.Close()

		client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)
		_, err = client.Complete(context.Background(), Request{})
		assert.ErrorIs(t, err, ErrEmptyReply)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client, err := newAnthropicClient(Config{APIKey: "k", BaseURL: server.URL})
		require.NoError(t, err)
		_, err = client.Complete(context.Background(), Request{})
		require.Error(t, err)
		assert.False(t, common.IsRetryable(err))
	})
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(Config{Provider: "OpenAI", APIKey: "k"})
	require.NoError(t, err)
	_, err = NewClient(Config{Provider: "anthropic", APIKey: "k"})
	require.NoError(t, err)

	client, err := NewClient(Config{Provider: "anthropic"})
	require.Error(t, err)
	assert.Nil(t, client)

	_, err = NewClient(Config{Provider: "mystery", APIKey: "k"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
