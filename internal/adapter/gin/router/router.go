package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"identity-service/internal/adapter/gin/handler"
	"identity-service/internal/adapter/gin/middleware"
	redisclient "identity-service/pkg/redis"
	"identity-service/pkg/token"
)

// Config carries the pieces the router wires together.
type Config struct {
	AuthHandler *handler.AuthHandler
	UserHandler *handler.UserHandler
	Verifier    *token.Verifier
	RedisClient *redisclient.Client
	RateLimit   middleware.RateLimiterConfig
	Logger      *zap.Logger
}

// Setup configures and returns a Gin router with all routes and middleware.
func Setup(cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.RedisClient != nil {
		router.Use(middleware.RateLimiter(cfg.RedisClient.Client, cfg.RateLimit, cfg.Logger))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "identity-service",
		})
	})

	// Swagger UI over the static OpenAPI document
	router.StaticFile("/openapi/identity.swagger.json", "./api/swagger/identity.swagger.json")
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL("/openapi/identity.swagger.json"),
	)))

	// Auth routes answer CORS preflight themselves
	auth := router.Group("/auth", middleware.CORS())
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/seed", cfg.AuthHandler.Seed)
		auth.OPTIONS("/*any", func(c *gin.Context) {})
	}

	users := router.Group("/usuarios")
	{
		users.POST("", cfg.UserHandler.CreateUser)
		users.GET("", cfg.UserHandler.ListUsers)
		users.GET("/:id", cfg.UserHandler.GetUser)
		users.PUT("/:id", cfg.UserHandler.UpdateUser)
		users.DELETE("/:id", cfg.UserHandler.DeleteUser)
	}

	private := router.Group("/test", middleware.Auth(cfg.Verifier, cfg.Logger))
	{
		private.GET("/private", cfg.AuthHandler.Private)
	}

	return router
}
