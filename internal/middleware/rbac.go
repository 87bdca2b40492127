package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/escuela-adp/api-escuela/internal/models"
	appErrors "github.com/escuela-adp/api-escuela/pkg/errors"
	"github.com/escuela-adp/api-escuela/pkg/response"
)

// RequireRoles allows only callers whose token role matches one of the given
// roles. Role comparison is case-insensitive.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.Claims)

		for _, role := range roles {
			if role.Matches(claims.Type) {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}
