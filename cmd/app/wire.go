//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/yanqian/cafebui-chatbot/internal/bootstrap"
	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
	"github.com/yanqian/cafebui-chatbot/internal/infra/config"
	httpiface "github.com/yanqian/cafebui-chatbot/internal/interface/http"
	"github.com/yanqian/cafebui-chatbot/pkg/logger"
)

func initializeApp(ctx context.Context) (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatConfig,
		provideChatClient,
		provideKnowledgeSource,
		provideKnowledgeBase,
		provideMatcher,
		provideStatsStore,
		chat.NewRemoteClient,
		wire.Bind(new(chat.Completer), new(*chat.RemoteClient)),
		chat.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
