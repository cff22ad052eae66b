package http

import (
	"context"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/config"
	"github.com/vovakirdan/presencechat/internal/core"
)

// Presence is the participant registry as seen by the handlers.
type Presence interface {
	Join(ctx context.Context, name string) error
	List(ctx context.Context) ([]core.Participant, error)
	Heartbeat(ctx context.Context, name string) error
}

// History is the message log as seen by the handlers.
type History interface {
	Append(ctx context.Context, msg core.Message) (*core.Message, error)
	Query(ctx context.Context, viewer string, limit *int) ([]core.Message, error)
}

// NewServer builds an HTTP server with the chat routes.
func NewServer(presence Presence, history History, cfg *config.Config, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(presence, history, cfg, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(presence Presence, history History, cfg *config.Config, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	binding.EnableDecoderDisallowUnknownFields = true

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.CORSAllowOrigin))

	router.GET("/health", healthHandler)

	participants := NewParticipantHandlers(presence, logger)
	router.POST("/participants", participants.Join)
	router.GET("/participants", participants.List)
	router.POST("/status", participants.Heartbeat)

	messages := NewMessageHandlers(history, logger)
	router.POST("/messages", messages.Post)
	router.GET("/messages", messages.List)

	return router
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
