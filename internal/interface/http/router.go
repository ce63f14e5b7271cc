package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cafebui-chatbot/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(handler.logger),
		corsMiddleware(),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Root)
	router.POST(chatPath, handler.Chat)
	router.GET(healthPath, handler.Health)
	router.GET(statsPath, handler.Stats)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
