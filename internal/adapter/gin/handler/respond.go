package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "identity-service/pkg/errors"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps a usecase error onto the wire contract: 401 is an empty
// body, 500 logs the full error server-side and returns a generic message,
// everything else echoes the typed error's message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := apperrors.StatusOf(err)

	switch status {
	case http.StatusUnauthorized:
		c.Status(http.StatusUnauthorized)
	case http.StatusInternalServerError:
		log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	default:
		c.JSON(status, ErrorResponse{Error: err.Error()})
	}
}
