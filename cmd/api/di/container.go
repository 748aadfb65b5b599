// Package di wires the application dependencies together.
package di

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"identity-service/cmd/api/infrastructure"
	"identity-service/internal/adapter/cache"
	"identity-service/internal/adapter/db/postgres"
	"identity-service/internal/adapter/gin/handler"
	"identity-service/internal/adapter/repository/cached"
	"identity-service/internal/config"
	"identity-service/internal/usecase/auth"
	"identity-service/internal/usecase/user"
	redisclient "identity-service/pkg/redis"
	"identity-service/pkg/token"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Verifier    *token.Verifier
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
}

// NewContainer creates and initializes all dependencies.
// Configuration is validated first; a missing signing secret or database
// address aborts startup before anything connects.
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, err
	}

	// Redis is optional infrastructure. Without it the service still works;
	// reads just go straight to the database and rate limiting is off.
	var rdb *redisclient.Client
	var userCache cache.UserCache
	if rdb, err = infrastructure.NewRedisClient(cfg, l); err != nil {
		l.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		rdb = nil
	} else {
		cacheTTL := time.Duration(cfg.Redis.CacheTTL) * time.Second
		userCache = cache.NewRedisUserCache(rdb.Client, cacheTTL, l)
	}

	repo := cached.NewCachedUserRepository(postgres.NewUserRepoPG(db, l), userCache, l)

	issuer := token.NewIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience)
	verifier := token.NewVerifier([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience)

	userUC := user.New(repo, l)
	authUC := auth.New(repo, issuer, cfg.IsDevelopment(), l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Verifier:    verifier,
		AuthHandler: handler.NewAuthHandler(authUC, l),
		UserHandler: handler.NewUserHandler(userUC, l),
	}, nil
}

// Close releases all held connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error("failed to close Redis connection", zap.Error(err))
		}
	}

	if err := infrastructure.CloseDatabase(c.DB); err != nil {
		c.Logger.Error("failed to close database connection", zap.Error(err))
		return err
	}

	return nil
}
