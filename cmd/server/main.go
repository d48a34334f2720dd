package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pairchat-server/internal/app"
	"github.com/vovakirdan/pairchat-server/internal/config"
	applog "github.com/vovakirdan/pairchat-server/internal/log"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		overrides  config.Config
	)

	cmd := &cobra.Command{
		Use:           "pairchat-server",
		Short:         "Pairs anonymous WebSocket clients into two-party chat rooms",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := applog.New("info", "console")

			cfg, path, err := config.Load(bootLog, configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.UpdateFrom(overrides)

			logger := applog.New(cfg.LogLevel, cfg.LogFormat)
			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.Addr).Str("config", path).Msg("starting pairchat server")
			if err := application.Run(ctx); err != nil {
				return fmt.Errorf("server exited with error: %w", err)
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "config file path (default ./config.yaml)")
	flags.StringVar(&overrides.Addr, "addr", "", "HTTP listen address")
	flags.StringVar(&overrides.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&overrides.LogFormat, "log-format", "", "log format: console or json")
	flags.DurationVar(&overrides.ShutdownTimeout, "shutdown-timeout", 0, "graceful shutdown timeout")
	flags.StringVar(&overrides.ReceiverPolicy, "receiver-policy", "", "manual join receiver slot: overwrite or guarded")

	return cmd
}
