package groq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is Groq's OpenAI compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

const defaultTimeout = 60 * time.Second

// ErrMissingAPIKey is returned when no credential is configured.
var ErrMissingAPIKey = errors.New("llm api key cannot be empty")

// Client performs chat completions against any OpenAI compatible API.
type Client struct {
	api     *openai.Client
	baseURL string
}

// NewClient constructs a client. An empty baseURL selects Groq; a zero timeout
// falls back to 60s.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:     openai.NewClientWithConfig(cfg),
		baseURL: cfg.BaseURL,
	}, nil
}

// BaseURL returns the endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateChatCompletion triggers a sync completion call.
func (c *Client) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return openai.ChatCompletionResponse{}, fmt.Errorf("chat completion (%s): %w", req.Model, err)
	}
	return resp, nil
}
