package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/cafebui-chatbot/internal/domain/chat"
	"github.com/yanqian/cafebui-chatbot/internal/domain/knowledge"
	"github.com/yanqian/cafebui-chatbot/internal/infra/config"
)

const (
	apologyText   = "Xin lỗi, có lỗi xảy ra. Vui lòng thử lại."
	healthMessage = "Server đang hoạt động!"

	chatPath   = "/chat"
	healthPath = "/api/health"
	statsPath  = "/api/stats"
)

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type endpoints struct {
	Chat   string `json:"chat"`
	Health string `json:"health"`
}

type rootResponse struct {
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	LLMEnabled bool      `json:"llm_enabled"`
	Endpoints  endpoints `json:"endpoints"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
	LLM     string `json:"llm"`
}

// Handler wires the HTTP transport to the chat domain.
type Handler struct {
	chatSvc chat.Service
	venue   string
	version string
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg *config.Config, chatSvc chat.Service, kb *knowledge.Base, logger *slog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		venue:   kb.Name(),
		version: cfg.HTTP.Version,
		logger:  logger.With("component", "http.handler"),
	}
}

// Root describes the API.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, rootResponse{
		Message:    fmt.Sprintf("%s API v%s", h.venue, h.version),
		Status:     "running",
		LLMEnabled: h.chatSvc.RemoteEnabled(),
		Endpoints:  endpoints{Chat: chatPath, Health: healthPath},
	})
}

// Chat answers one customer question. Whatever happens while resolving, the
// caller gets a 200 with natural-language text.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, invalidRequest(err))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("chat request panicked", "panic", fmt.Sprint(r), "request_id", c.GetString(requestIDKey))
			c.JSON(http.StatusOK, chatResponse{Response: apologyText})
		}
	}()

	reply := h.chatSvc.Resolve(c.Request.Context(), req.Text)
	text := reply.Text
	if text == "" {
		h.logger.Error("resolver returned an empty reply", "source", reply.Source)
		text = apologyText
	}
	h.logger.Debug("chat resolved", "source", reply.Source, "keyword", reply.Keyword, "request_id", c.GetString(requestIDKey))
	c.JSON(http.StatusOK, chatResponse{Response: text})
}

// Health reports liveness; it is OK whether or not the remote tier is up.
func (h *Handler) Health(c *gin.Context) {
	llm := "Mock"
	if h.chatSvc.RemoteEnabled() {
		llm = "Remote"
	}
	c.JSON(http.StatusOK, healthResponse{
		Status:  "OK",
		Message: healthMessage,
		Version: h.version,
		LLM:     llm,
	})
}

// Stats lists which outcomes answered questions most often.
func (h *Handler) Stats(c *gin.Context) {
	items, err := h.chatSvc.TopOutcomes(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusServiceUnavailable, "stats_unavailable", "outcome stats are unavailable", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"outcomes": items})
}
