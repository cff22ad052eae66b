package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/presencechat/internal/config"
	"github.com/vovakirdan/presencechat/internal/core"
	"github.com/vovakirdan/presencechat/internal/service/messages"
	"github.com/vovakirdan/presencechat/internal/service/presence"
	"github.com/vovakirdan/presencechat/internal/store"
	"github.com/vovakirdan/presencechat/internal/store/badger"
	"github.com/vovakirdan/presencechat/internal/store/sqlite"
	transporthttp "github.com/vovakirdan/presencechat/internal/transport/http"
)

// App wires together storage, services and transport.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	reaper          *presence.Reaper
	store           store.Store
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	logger.Info().Str("driver", cfg.StoreDriver).Msg("store initialized")

	return newWithStore(cfg, st, core.SystemClock{}, logger), nil
}

func newWithStore(cfg *config.Config, st store.Store, clock core.Clock, logger *zerolog.Logger) *App {
	chatLog := messages.NewLog(st, presence.NewDirectory(st), clock, logger,
		messages.WithMaxLimit(cfg.HistoryMaxLimit))
	registry := presence.NewRegistry(st, chatLog, clock, logger)
	reaper := presence.NewReaper(registry, chatLog, presence.ReaperConfig{
		Interval: cfg.ReaperInterval,
		Timeout:  cfg.StaleTimeout,
	}, logger)

	return &App{
		server:          transporthttp.NewServer(registry, chatLog, cfg, logger),
		shutdownTimeout: cfg.ShutdownTimeout,
		reaper:          reaper,
		store:           st,
		log:             logger,
	}
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverBadger:
		st, err := badger.New(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return st, nil
	case config.DriverSQLite, "":
		st, err := sqlite.New(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Run starts the reaper and the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	reaperCtx, stopReaper := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.reaper.Run(reaperCtx)
	}()

	go func() {
		a.log.Info().Str("addr", a.server.Addr).Msg("starting http server")
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		stopReaper()
		wg.Wait()
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		err := a.server.Shutdown(shutdownCtx)

		stopReaper()
		wg.Wait()
		a.cleanup()
		if err != nil {
			return err
		}
		return <-serverErr
	}
}

// cleanup closes the store once the reaper and handlers are done with it.
func (a *App) cleanup() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close store")
		} else {
			a.log.Info().Msg("store closed")
		}
	}
}
