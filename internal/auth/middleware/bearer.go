package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/api/http/response"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

// Authenticator resolves a bearer token to its principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Principal, error)
}

// BearerAuth rejects requests without a valid bearer token and stores the
// caller in the Gin context.
func BearerAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Error(c, domain.ErrMissingToken)
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			response.Error(c, err)
			return
		}

		auth.SetPrincipal(c, principal)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(c.GetHeader("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
