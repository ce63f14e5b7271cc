package chat

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	apperrors "github.com/yanqian/cafebui-chatbot/pkg/errors"
	"github.com/yanqian/cafebui-chatbot/pkg/metrics"
)

// ChatClient is the slice of an OpenAI compatible API the remote tier needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Completer produces a remote answer for a question.
type Completer interface {
	Complete(ctx context.Context, question string) (Completion, error)
}

// RemoteClient asks a hosted chat model, grounding it with the knowledge
// prompt block. It never retries.
type RemoteClient struct {
	cfg          Config
	client       ChatClient
	systemPrompt string
}

// NewRemoteClient builds the remote tier. A nil client leaves it unavailable.
func NewRemoteClient(cfg Config, client ChatClient, kb *knowledge.Base) *RemoteClient {
	return &RemoteClient{
		cfg:          cfg,
		client:       client,
		systemPrompt: buildSystemPrompt(cfg.Persona, kb.PromptBlock(), cfg.Guidelines),
	}
}

// Available reports whether a credentialed client is configured.
func (r *RemoteClient) Available() bool {
	return r != nil && r.client != nil
}

// Complete sends the system prompt and the raw question and returns the first
// choice verbatim.
func (r *RemoteClient) Complete(ctx context.Context, question string) (Completion, error) {
	if !r.Available() {
		return Completion{}, apperrors.Wrap(apperrors.CodeRemoteUnavailable, "remote model not configured", nil)
	}

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: r.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	})
	if err != nil {
		return Completion{}, apperrors.Wrap(apperrors.CodeRemoteError, "chat completion request failed", err)
	}
	if len(resp.Choices) == 0 {
		return Completion{}, apperrors.Wrap(apperrors.CodeRemoteError, "chat completion returned no choices", nil)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return Completion{}, apperrors.Wrap(apperrors.CodeRemoteError, "chat completion returned empty content", nil)
	}

	model := resp.Model
	if model == "" {
		model = r.cfg.Model
	}
	return Completion{
		Text:  text,
		Model: model,
		Usage: metrics.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func buildSystemPrompt(persona, block, guidelines string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{persona, block, guidelines} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, "\n\n")
}

var _ Completer = (*RemoteClient)(nil)
