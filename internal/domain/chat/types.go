package chat

import (
	"context"

	"github.com/yanqian/cafebui-chatbot/pkg/metrics"
)

// Source tells which tier produced a reply.
type Source string

const (
	// SourceRemote means the hosted model answered.
	SourceRemote Source = "remote"
	// SourceKeyword means a knowledge keyword matched.
	SourceKeyword Source = "keyword"
	// SourceDefault means nothing matched and a default reply was used.
	SourceDefault Source = "default"
)

// Reply is the outcome of resolving one question. Text is never empty.
type Reply struct {
	Text    string
	Source  Source
	Keyword string
	Usage   metrics.TokenUsage
}

// OutcomeKey is the analytics bucket of a reply: the matched keyword, or the
// tier name in parentheses for remote and default replies.
func (r Reply) OutcomeKey() string {
	if r.Source == SourceKeyword && r.Keyword != "" {
		return r.Keyword
	}
	return "(" + string(r.Source) + ")"
}

// Completion is a successful remote model answer.
type Completion struct {
	Text  string
	Model string
	Usage metrics.TokenUsage
}

// OutcomeCount reports how often an outcome answered a question.
type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

// StatsRecorder persists per-outcome counters. No question text is stored.
type StatsRecorder interface {
	Record(ctx context.Context, outcome string) error
	Top(ctx context.Context, limit int) ([]OutcomeCount, error)
}
