package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelterhq/backend/internal/domain/identity"
)

// RequireRole rejects requests whose token role ranks below the required
// role. The role claim is re-derived from the stored membership on every
// token issuance and refresh, so a stale claim lives at most one access
// token lifetime.
func RequireRole(required identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := identity.Role(GetJWTRole(c))
		if !role.AtLeast(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PERMISSION_DENIED",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}
		c.Next()
	}
}
