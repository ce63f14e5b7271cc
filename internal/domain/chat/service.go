package chat

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/cafebui-chatbot/pkg/errors"
)

const statsTimeout = 500 * time.Millisecond

// Service resolves customer questions.
type Service interface {
	// Resolve always produces a non-empty reply: the remote model's answer
	// when it is enabled and succeeds, the keyword matcher's otherwise.
	Resolve(ctx context.Context, question string) Reply
	RemoteEnabled() bool
	TopOutcomes(ctx context.Context) ([]OutcomeCount, error)
}

type service struct {
	cfg     Config
	remote  Completer
	matcher *Matcher
	stats   StatsRecorder
	logger  *slog.Logger
}

// NewService wires the two-tier resolver. remote and stats may be nil.
func NewService(cfg Config, remote Completer, matcher *Matcher, stats StatsRecorder, logger *slog.Logger) Service {
	if rc, ok := remote.(*RemoteClient); ok && !rc.Available() {
		remote = nil
	}
	return &service{
		cfg:     cfg,
		remote:  remote,
		matcher: matcher,
		stats:   stats,
		logger:  logger.With("component", "chat.service"),
	}
}

func (s *service) RemoteEnabled() bool {
	return s.cfg.RemoteEnabled && s.remote != nil
}

func (s *service) Resolve(ctx context.Context, question string) Reply {
	var reply Reply
	if s.RemoteEnabled() {
		completion, err := s.complete(ctx, question)
		switch {
		case err == nil:
			reply = Reply{Text: completion.Text, Source: SourceRemote, Usage: completion.Usage}
			args := []any{"model", completion.Model}
			if !completion.Usage.IsZero() {
				args = append(args, completion.Usage.LogArgs()...)
			}
			s.logger.Info("remote completion succeeded", args...)
		case apperrors.IsCode(err, apperrors.CodeRemoteUnavailable):
			s.logger.Debug("remote model unavailable, using keyword fallback")
		default:
			s.logger.Warn("remote completion failed, using keyword fallback", "error", err)
		}
	}

	if reply.Text == "" {
		match := s.matcher.MatchDetail(question)
		reply = Reply{Text: match.Answer, Source: SourceDefault}
		if match.Matched() {
			reply.Source = SourceKeyword
			reply.Keyword = match.Keyword
		}
	}

	s.record(ctx, reply)
	return reply
}

func (s *service) TopOutcomes(ctx context.Context) ([]OutcomeCount, error) {
	if s.stats == nil {
		return []OutcomeCount{}, nil
	}
	items, err := s.stats.Top(ctx, s.cfg.StatsLimit)
	if err != nil {
		return nil, fmt.Errorf("load outcome stats: %w", err)
	}
	return items, nil
}

// complete isolates the remote call: it bounds it with the configured timeout
// and turns a panic inside the client into a remote error.
func (s *service) complete(ctx context.Context, question string) (completion Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = apperrors.Wrap(apperrors.CodeRemoteError, "remote client panicked", fmt.Errorf("%v", r))
		}
	}()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	return s.remote.Complete(ctx, question)
}

func (s *service) record(ctx context.Context, reply Reply) {
	if s.stats == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
	defer cancel()
	if err := s.stats.Record(ctx, reply.OutcomeKey()); err != nil {
		s.logger.Warn("outcome stats update failed", "outcome", reply.OutcomeKey(), "error", err)
	}
}
