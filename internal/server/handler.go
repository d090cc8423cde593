// internal/server/handler.go
package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"answer-engine/internal/common/logger"
	"answer-engine/internal/common/metrics"
	"answer-engine/internal/common/validation"
	"answer-engine/internal/llm"
	"answer-engine/internal/pipeline"
)

// ChatRequest is the inbound chat payload: the full conversation so far,
// latest user turn last.
type ChatRequest struct {
	Messages []llm.Message `json:"messages"`
}

type Handler struct {
	orchestrator *pipeline.Orchestrator
	logger       logger.Logger
}

func NewHandler(orchestrator *pipeline.Orchestrator, log logger.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		logger:       log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

// Chat validates the request, runs the pipeline and streams its events to
// the caller as SSE. The error event is terminal for durable content but
// the stream itself always ends normally.
func (h *Handler) Chat(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	if err := validation.ValidateChatRequest(body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req ChatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	requestID := uuid.NewString()
	h.logger.Info("chat request accepted", map[string]interface{}{
		"requestId": requestID,
		"turns":     len(req.Messages),
	})

	metrics.RequestsActive.Inc()
	defer metrics.RequestsActive.Dec()

	stream := pipeline.NewStream()
	go h.orchestrator.Run(c.Request.Context(), requestID, req.Messages, stream)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Request-Id", requestID)

	c.Stream(func(w io.Writer) bool {
		ev, ok := <-stream.Events()
		if !ok {
			return false
		}
		c.SSEvent(string(ev.Type), ev)
		return true
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
