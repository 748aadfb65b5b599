package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"identity-service/pkg/token"
)

// identityKey is the gin context key under which verified claims are stored.
const identityKey = "identity"

// Auth returns a middleware that rejects requests without a valid bearer
// token. Signature, issuer, audience, and expiry are all checked by the
// verifier; any failure is an undifferentiated 401 before the handler runs.
func Auth(verifier *token.Verifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			log.Debug("missing or malformed Authorization header")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			log.Debug("token verification failed", zap.Error(err))
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// Identity returns the verified claims stored by Auth, or nil when the
// request was not authenticated.
func Identity(c *gin.Context) *token.Claims {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*token.Claims)
	return claims
}
