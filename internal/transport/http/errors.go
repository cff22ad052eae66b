package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/proto"
)

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case core.ErrCodeInvalidInput, core.ErrCodeUnknownSender:
		return http.StatusUnprocessableEntity
	case core.ErrCodeConflict:
		return http.StatusConflict
	case core.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError classifies err and writes the matching response.
// Store failures are logged; their details never reach the client.
func writeError(c *gin.Context, logger *zerolog.Logger, err error, msg string) {
	coreErr := core.Classify(err)
	status := statusFor(coreErr.Code)

	if status == http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Msg(msg)
		c.JSON(status, proto.ErrorResponse{Error: "internal server error", Code: coreErr.Code})
		return
	}

	logger.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg(msg)
	c.JSON(status, proto.ErrorResponse{Error: coreErr.Message, Code: coreErr.Code})
}

// invalidRequest answers 422 for a request that failed binding or header checks.
func invalidRequest(c *gin.Context, logger *zerolog.Logger, err error, msg string) {
	logger.Debug().Err(err).Str("request_id", c.GetString(ContextKeyRequestID)).Msg(msg)
	c.JSON(http.StatusUnprocessableEntity, proto.ErrorResponse{Error: msg, Code: core.ErrCodeInvalidInput})
}
