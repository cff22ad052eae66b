package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/proto"
)

// ParticipantHandlers serves joins, the presence list and heartbeats.
type ParticipantHandlers struct {
	presence Presence
	log      *zerolog.Logger
}

// NewParticipantHandlers creates participant handlers.
func NewParticipantHandlers(presence Presence, logger *zerolog.Logger) *ParticipantHandlers {
	return &ParticipantHandlers{presence: presence, log: logger}
}

// Join handles POST /participants.
func (h *ParticipantHandlers) Join(c *gin.Context) {
	var req proto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, h.log, err, "invalid join request")
		return
	}

	if err := h.presence.Join(c.Request.Context(), req.Name); err != nil {
		writeError(c, h.log, err, "join failed")
		return
	}

	c.Status(http.StatusCreated)
}

// List handles GET /participants.
func (h *ParticipantHandlers) List(c *gin.Context) {
	participants, err := h.presence.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, "list participants failed")
		return
	}

	c.JSON(http.StatusOK, participantsToProto(participants))
}

// Heartbeat handles POST /status for the caller named in the User header.
func (h *ParticipantHandlers) Heartbeat(c *gin.Context) {
	user, ok := callerName(c, h.log)
	if !ok {
		return
	}

	if err := h.presence.Heartbeat(c.Request.Context(), user); err != nil {
		writeError(c, h.log, err, "heartbeat failed")
		return
	}

	c.Status(http.StatusOK)
}

// callerName reads the From header, falling back to User, and answers 422
// when neither carries a name.
func callerName(c *gin.Context, logger *zerolog.Logger) (string, bool) {
	user := headerName(c)
	if user == "" {
		invalidRequest(c, logger, nil, "missing "+proto.HeaderFrom+" header")
		return "", false
	}
	return user, true
}

func headerName(c *gin.Context) string {
	if from := strings.TrimSpace(c.GetHeader(proto.HeaderFrom)); from != "" {
		return from
	}
	return strings.TrimSpace(c.GetHeader(proto.HeaderUser))
}
