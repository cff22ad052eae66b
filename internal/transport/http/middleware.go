package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/proto"
)

const (
	// ContextKeyRequestID is the context key for storing the request id.
	ContextKeyRequestID = "request_id"
)

// RequestIDMiddleware assigns every request an id, reusing a well-formed inbound one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(proto.HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(proto.HeaderRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Log after request
		logger.Info().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("user", headerName(c)).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

// CORSMiddleware allows browser clients from origin to call the API.
// An empty origin disables CORS headers.
func CORSMiddleware(origin string) gin.HandlerFunc {
	allowHeaders := strings.Join([]string{"Content-Type", proto.HeaderFrom, proto.HeaderUser, proto.HeaderRequestID}, ", ")
	return func(c *gin.Context) {
		if origin == "" {
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", allowHeaders)
		c.Header("Access-Control-Expose-Headers", proto.HeaderRequestID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
