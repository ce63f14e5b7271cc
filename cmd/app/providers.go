package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	"github.com/yanqian/cafebui-chatbot/internal/infra/config"
	"github.com/yanqian/cafebui-chatbot/internal/infra/knowledgerepo"
	"github.com/yanqian/cafebui-chatbot/internal/infra/llm/groq"
	"github.com/yanqian/cafebui-chatbot/internal/infra/statsstore"
)

const knowledgeLoadTimeout = 10 * time.Second

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		RemoteEnabled: cfg.LLM.RemoteEnabled(),
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
		MaxTokens:     cfg.LLM.MaxTokens,
		Timeout:       cfg.LLM.Timeout,
		Persona:       cfg.LLM.Persona,
		Guidelines:    cfg.LLM.Guidelines,
		StatsLimit:    cfg.Stats.Limit,
	}
}

// provideChatClient returns a nil client when no credential is configured,
// which leaves the remote tier unavailable.
func provideChatClient(cfg *config.Config, logger *slog.Logger) chat.ChatClient {
	if !cfg.LLM.RemoteEnabled() {
		logger.Info("llm api key not set, answering from keywords only")
		return nil
	}
	// The transport timeout sits a little above the per-request bound so the
	// resolver's own deadline fires first.
	client, err := groq.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout+5*time.Second)
	if err != nil {
		logger.Error("failed to build llm client, answering from keywords only", "error", err)
		return nil
	}
	logger.Info("remote llm enabled", "base_url", client.BaseURL(), "model", cfg.LLM.Model)
	return client
}

func provideKnowledgeSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (knowledge.Source, func()) {
	file := knowledgerepo.NewFileSource(cfg.Knowledge.Path)
	noop := func() {}

	dsn := strings.TrimSpace(cfg.Knowledge.Postgres.DSN)
	if dsn == "" {
		logger.Info("knowledge source selected", "source", file.Describe())
		return file, noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using file knowledge", "error", err)
		return file, noop
	}
	if cfg.Knowledge.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Knowledge.Postgres.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using file knowledge", "error", err)
		return file, noop
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Error("postgres ping failed, using file knowledge", "error", err)
		pool.Close()
		return file, noop
	}
	pg := knowledgerepo.NewPostgresSource(pool, cfg.Knowledge.Venue)
	if err := pg.EnsureSchema(pingCtx); err != nil {
		logger.Error("postgres schema setup failed, using file knowledge", "error", err)
		pg.Close()
		return file, noop
	}
	logger.Info("knowledge source selected", "source", pg.Describe(), "fallback", file.Describe())
	return knowledgerepo.NewFallbackSource(pg, file, logger), pg.Close
}

func provideKnowledgeBase(ctx context.Context, src knowledge.Source, logger *slog.Logger) (*knowledge.Base, error) {
	loadCtx, cancel := context.WithTimeout(ctx, knowledgeLoadTimeout)
	defer cancel()
	doc, err := src.Load(loadCtx)
	if err != nil {
		return nil, err
	}
	base, err := knowledge.NewBase(doc)
	if err != nil {
		return nil, err
	}
	logger.Info("knowledge loaded", "venue", base.Name(), "entries", base.Len(), "defaults", len(base.Defaults()))
	return base, nil
}

func provideMatcher(kb *knowledge.Base) *chat.Matcher {
	return chat.NewMatcher(kb, nil)
}

func provideStatsStore(cfg *config.Config, logger *slog.Logger) (chat.StatsRecorder, func()) {
	noop := func() {}
	if !cfg.Stats.Valkey.Enabled {
		return statsstore.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Stats.Valkey.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory stats", "error", err)
		return statsstore.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory stats", "error", err)
		return statsstore.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory stats", "error", err)
		client.Close()
		return statsstore.NewMemoryStore(), noop
	}
	logger.Info("valkey stats store enabled", "addr", cfg.Stats.Valkey.Addr)
	store := statsstore.NewValkeyStore(client, cfg.Stats.Valkey.Prefix)
	return store, store.Close
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
