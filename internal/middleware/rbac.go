package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edusync-api/internal/models"
	"github.com/noah-isme/edusync-api/pkg/response"
)

// Authorizer decides whether a principal may proceed.
type Authorizer interface {
	Authorize(principal *models.Principal, allowed ...models.UserRole) error
}

// RequireRoles admits approved principals holding one of roles. With no
// roles any approved principal passes. It must run after Session.
func RequireRoles(authz Authorizer, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.Authorize(PrincipalFrom(c), roles...); err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}
