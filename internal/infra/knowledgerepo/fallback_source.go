package knowledgerepo

import (
	"context"
	"log/slog"

	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
)

// FallbackSource tries primary first and uses fallback when primary fails or
// yields an unusable document.
type FallbackSource struct {
	primary  knowledge.Source
	fallback knowledge.Source
	logger   *slog.Logger
}

// NewFallbackSource chains two sources.
func NewFallbackSource(primary, fallback knowledge.Source, logger *slog.Logger) *FallbackSource {
	return &FallbackSource{primary: primary, fallback: fallback, logger: logger.With("component", "knowledgerepo.fallback")}
}

// Load implements knowledge.Source.
func (s *FallbackSource) Load(ctx context.Context) (knowledge.Document, error) {
	doc, err := s.primary.Load(ctx)
	if err == nil {
		if _, err = knowledge.NewBase(doc); err == nil {
			return doc, nil
		}
	}
	s.logger.Error("primary knowledge source failed, using fallback", "error", err)
	return s.fallback.Load(ctx)
}

var _ knowledge.Source = (*FallbackSource)(nil)
