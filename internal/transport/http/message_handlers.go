package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/proto"
	"github.com/vovakirdan/presencechat/internal/validation"
)

// MessageHandlers serves posting and reading the message log.
type MessageHandlers struct {
	history History
	log     *zerolog.Logger
}

// NewMessageHandlers creates message handlers.
func NewMessageHandlers(history History, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{history: history, log: logger}
}

// Post handles POST /messages.
func (h *MessageHandlers) Post(c *gin.Context) {
	user, ok := callerName(c, h.log)
	if !ok {
		return
	}

	var req proto.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.log, err, "invalid message")
		return
	}

	msg := messageFromProto(user, req)
	if err := validation.ChatKind(msg.Kind); err != nil {
		writeError(c, h.log, err, "invalid message type")
		return
	}

	if _, err := h.history.Append(c.Request.Context(), msg); err != nil {
		writeError(c, h.log, err, "post message failed")
		return
	}

	c.Status(http.StatusCreated)
}

// List handles GET /messages?limit=N.
func (h *MessageHandlers) List(c *gin.Context) {
	user, ok := callerName(c, h.log)
	if !ok {
		return
	}

	var limit *int
	if raw, present := c.GetQuery(proto.QueryLimit); present {
		n, err := strconv.Atoi(raw)
		if err != nil {
			invalidRequest(c, h.log, err, "limit must be an integer")
			return
		}
		limit = &n
	}

	msgs, err := h.history.Query(c.Request.Context(), user, limit)
	if err != nil {
		writeError(c, h.log, err, "list messages failed")
		return
	}

	c.JSON(http.StatusOK, messagesToProto(msgs))
}
