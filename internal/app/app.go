package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/pairchat-server/internal/config"
	"github.com/vovakirdan/pairchat-server/internal/core"
	transporthttp "github.com/vovakirdan/pairchat-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	hub := core.NewHub(logger, core.WithReceiverPolicy(cfg.Policy()))
	server := transporthttp.NewServer(hub, cfg, logger)

	logger.Info().
		Str("receiver_policy", string(cfg.Policy())).
		Int("messages_per_minute", cfg.MessagesPerMinute).
		Msg("matching engine configured")

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}, nil
}

// Run starts the hub and the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer func() {
		stopHub()
		<-a.hub.Done()
	}()
	go a.hub.Run(hubCtx)

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		// Hijacked WebSocket connections end when the hub closes their event streams.
		return <-serverErr
	}
}
