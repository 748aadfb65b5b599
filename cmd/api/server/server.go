package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"identity-service/cmd/api/di"
	"identity-service/internal/adapter/gin/middleware"
	"identity-service/internal/adapter/gin/router"
)

// Server wraps the HTTP server with its wired dependencies.
type Server struct {
	http *http.Server
	log  *zap.Logger
}

// New builds the router from the container and returns a Server ready to
// start.
func New(c *di.Container) *Server {
	engine := router.Setup(router.Config{
		AuthHandler: c.AuthHandler,
		UserHandler: c.UserHandler,
		Verifier:    c.Verifier,
		RedisClient: c.RedisClient,
		RateLimit: middleware.RateLimiterConfig{
			Enabled:           c.Config.RateLimit.Enabled,
			RequestsPerSecond: c.Config.RateLimit.RequestsPerSecond,
			BurstCapacity:     c.Config.RateLimit.BurstCapacity,
		},
		Logger: c.Logger,
	})

	return &Server{
		http: &http.Server{
			Addr:              ":" + c.Config.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		log: c.Logger,
	}
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
