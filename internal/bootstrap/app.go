package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	"github.com/yanqian/cafebui-chatbot/internal/infra/config"
)

const shutdownTimeout = 10 * time.Second

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
	kb     *knowledge.Base
	chat   chat.Service
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, kb *knowledge.Base, chatSvc chat.Service) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With("component", "bootstrap"),
		server: server,
		kb:     kb,
		chat:   chatSvc,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server
// fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.server.Addr,
			"venue", a.kb.Name(),
			"knowledge_entries", a.kb.Len(),
			"remote_enabled", a.chat.RemoteEnabled(),
			"model", a.cfg.LLM.Model,
		)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutdown signal received")
		return a.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
