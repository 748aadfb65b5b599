// Package app boots the identity service: configuration, logging, the
// dependency container, and the HTTP server lifecycle.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"identity-service/cmd/api/di"
	"identity-service/cmd/api/server"
	"identity-service/internal/config"
	"identity-service/pkg/logger"
)

// App is the assembled application.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	container *di.Container
	server    *server.Server
}

// New loads configuration, builds the logger and wires all dependencies.
func New() (*App, error) {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "."
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.NewWithConfig(logger.Config{
		Level:            cfg.Logger.Level,
		Format:           cfg.Logger.Format,
		OutputPath:       cfg.Logger.OutputPath,
		SlowQuerySeconds: cfg.Logger.SlowQuerySeconds,
		EnableSampling:   cfg.Logger.EnableSampling,
		ServiceName:      cfg.Logger.ServiceName,
		ServiceVersion:   cfg.Logger.ServiceVersion,
		Environment:      cfg.App.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := di.NewContainer(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	return &App{
		cfg:       cfg,
		log:       l,
		container: container,
		server:    server.New(container),
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails. On cancellation it drains in-flight requests within the
// configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if err := a.container.Close(); err != nil {
			a.log.Error("failed to close dependencies", zap.Error(err))
		}
		// Sync can fail on stdout; nothing useful to do about it.
		_ = a.log.Sync()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(a.cfg.App.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	a.log.Info("server stopped")
	return nil
}
