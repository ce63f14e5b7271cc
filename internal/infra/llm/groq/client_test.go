package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("  ", "", 0)
	require.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClientDefaultsToGroq(t *testing.T) {
	client, err := NewClient("key", "", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultBaseURL, client.BaseURL())
}

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3-8b-8192", req.Model)
		assert.Equal(t, 300, req.MaxTokens)
		assert.Len(t, req.Messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","model":"llama3-8b-8192","choices":[{"index":0,"message":{"role":"assistant","content":"Xin chào!"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":3,"total_tokens":13}}`))
	}))
	defer server.Close()

	client, err := NewClient("secret", server.URL+"/v1/", time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{
		Model:     "llama3-8b-8192",
		MaxTokens: 300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "system"},
			{Role: openai.ChatMessageRoleUser, Content: "hi"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, "Xin chào!", resp.Choices[0].Message.Content)
	require.Equal(t, 13, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client, err := NewClient("bad", server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), openai.ChatCompletionRequest{Model: "m"})
	require.Error(t, err)

	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.HTTPStatusCode)
}
