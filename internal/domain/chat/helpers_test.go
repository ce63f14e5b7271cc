package chat

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
)

const (
	hoursAnswer = "Quán mở cửa từ 7:00 sáng đến 22:00 tối hàng ngày, kể cả cuối tuần."
	openAnswer  = "Quán mở cửa từ 7:00 sáng đến 22:00 tối hàng ngày."
	wifiAnswer  = "Có WiFi miễn phí tốc độ cao. Password: CAFEBUI2024"
	menuAnswer  = "Menu: Cà phê, Trà, Bánh."
)

var testDefaults = []string{"default one", "default two", "default three"}

func newTestBase(t *testing.T) *knowledge.Base {
	t.Helper()
	base, err := knowledge.NewBase(knowledge.Document{
		Name: "Cà Phê Bụi",
		Entries: []knowledge.Entry{
			{Keyword: "giờ", Answer: hoursAnswer},
			{Keyword: "mở cửa", Answer: openAnswer},
			{Keyword: "wifi", Answer: wifiAnswer},
			{Keyword: "menu", Answer: menuAnswer},
		},
		Prompt:   "GIỜ MỞ CỬA: 7:00 - 22:00",
		Defaults: testDefaults,
	})
	require.NoError(t, err)
	return base
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sequenceRand replays fixed indexes, wrapping around.
type sequenceRand struct {
	values []int
	next   int
}

func (r *sequenceRand) IntN(n int) int {
	v := r.values[r.next%len(r.values)] % n
	r.next++
	return v
}

type stubChatClient struct {
	mu          sync.Mutex
	completeFn  func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	lastRequest openai.ChatCompletionRequest
	calls       int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	s.mu.Lock()
	s.lastRequest = req
	s.calls++
	s.mu.Unlock()
	if s.completeFn != nil {
		return s.completeFn(ctx, req)
	}
	return openai.ChatCompletionResponse{}, nil
}

func textResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Model: "llama3-8b-8192",
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
		Usage: openai.Usage{PromptTokens: 120, CompletionTokens: 30, TotalTokens: 150},
	}
}

type stubCompleter struct {
	completeFn func(ctx context.Context, question string) (Completion, error)
	calls      int
}

func (s *stubCompleter) Complete(ctx context.Context, question string) (Completion, error) {
	s.calls++
	return s.completeFn(ctx, question)
}

type stubStats struct {
	mu       sync.Mutex
	recorded []string
	recordFn func(ctx context.Context, outcome string) error
	topFn    func(ctx context.Context, limit int) ([]OutcomeCount, error)
}

func (s *stubStats) Record(ctx context.Context, outcome string) error {
	s.mu.Lock()
	s.recorded = append(s.recorded, outcome)
	s.mu.Unlock()
	if s.recordFn != nil {
		return s.recordFn(ctx, outcome)
	}
	return nil
}

func (s *stubStats) Top(ctx context.Context, limit int) ([]OutcomeCount, error) {
	if s.topFn != nil {
		return s.topFn(ctx, limit)
	}
	return nil, nil
}
