package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/auth/domain"
)

const (
	CtxUserID    = "user_id"
	CtxEmail     = "email"
	CtxPrincipal = "principal"
)

// UserID extracts the authenticated user id from the Gin context
// This is set by the bearer auth middleware
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// SetPrincipal stores the authenticated caller in the Gin context.
func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(CtxUserID, p.UID)
	if p.Email != "" {
		c.Set(CtxEmail, p.Email)
	}
	c.Set(CtxPrincipal, p)
}

// PrincipalFrom returns the authenticated caller, if any.
func PrincipalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok
}
