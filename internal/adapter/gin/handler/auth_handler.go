package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"identity-service/internal/adapter/gin/middleware"
	"identity-service/internal/usecase/auth"
)

// AuthHandler handles HTTP requests for the authentication flows.
type AuthHandler struct {
	uc  auth.Usecase
	log *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(uc auth.Usecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		uc:  uc,
		log: log,
	}
}

// RegisterRequest is the HTTP request body for registration. The field names
// are part of the wire contract consumed by the existing client.
type RegisterRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"contraseña"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid register request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.uc.Register(c.Request.Context(), auth.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resp.Message})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid login request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	resp, err := h.uc.Login(c.Request.Context(), auth.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": resp.Token})
}

// Seed handles POST /auth/seed. Only available in development; 403 anywhere
// else.
func (h *AuthHandler) Seed(c *gin.Context) {
	resp, err := h.uc.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	body := gin.H{"message": resp.Message}
	if resp.Email != "" {
		body["email"] = resp.Email
		body["password"] = resp.Password
	}
	c.JSON(http.StatusOK, body)
}

// Private handles GET /test/private. The Auth middleware has already
// verified the bearer token; this only reports the identity it established.
func (h *AuthHandler) Private(c *gin.Context) {
	claims := middleware.Identity(c)
	if claims == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "authorized access",
		"email":   claims.Email,
		"nombre":  claims.Name,
	})
}
