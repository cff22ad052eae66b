package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/presencechat/internal/app"
	"github.com/vovakirdan/presencechat/internal/config"
	"github.com/vovakirdan/presencechat/internal/log"
)

func newServeCommand() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat relay server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLogger := log.New("info")

			cfg, usedPath, err := config.Load(bootLogger, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.UpdateFrom(overrides)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger := log.NewWithFormat(cfg.LogLevel, cfg.LogFormat, os.Stdout)
			logger.Info().Str("config", usedPath).Str("addr", cfg.Addr).Msg("starting presencechat server")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			application, err := app.New(&cfg, logger)
			if err != nil {
				return err
			}
			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("server exited with error: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to config.yaml")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.StoreDriver, "store", "", "store driver (sqlite or badger)")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.DurationVar(&overrides.StaleTimeout, "stale-timeout", 0, "evict participants silent for longer than this")
	flags.DurationVar(&overrides.ReaperInterval, "reaper-interval", 0, "how often stale participants are evicted")
	return cmd
}
