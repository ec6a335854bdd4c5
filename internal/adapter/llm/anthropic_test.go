package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("x-api-key"))
		require.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "claude-3-5-sonnet-20241022", req.Model)
		assert.NotEmpty(t, req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)

		json.NewEncoder(w).Encode(anthropicResponse{
			Content: []anthropicContent{{Type: "text", Text: "Subnets are custom networks."}},
			Usage:   anthropicUsage{InputTokens: 120, OutputTokens: 30},
		})
	}))
	defer srv.Close()

	a, err := NewAnthropic("test-key", "claude-3-5-sonnet-20241022", 1000, 0.1, time.Second)
	require.NoError(t, err)
	a.baseURL = srv.URL

	answer, tokens, err := a.Generate(context.Background(), "You are an assistant.", "What is a subnet?")
	require.NoError(t, err)
	assert.Equal(t, "Subnets are custom networks.", answer)
	assert.Equal(t, 150, tokens)
}

func TestAnthropicAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(anthropicResponse{
			Error: &anthropicError{Type: "authentication_error", Message: "invalid x-api-key"},
		})
	}))
	defer srv.Close()

	a, err := NewAnthropic("bad-key", "claude-3-5-sonnet-20241022", 1000, 0.1, time.Second)
	require.NoError(t, err)
	a.baseURL = srv.URL

	_, _, err = a.Generate(context.Background(), "sys", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestNewAnthropicRequiresKey(t *testing.T) {
	_, err := NewAnthropic("", "claude-3-5-sonnet-20241022", 0, 0, 0)
	require.Error(t, err)
}

func TestNewOpenAIRequiresKey(t *testing.T) {
	_, err := NewOpenAI("", "gpt-4-1106-preview", 0, 0, 0)
	require.Error(t, err)
}
