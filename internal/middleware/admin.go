package middleware

import (
	"net/http"

	"campusmart/config"
	"campusmart/internal/auth"
	"campusmart/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired validates an admin console token and sets admin_id,
// admin_role in context. User tokens are rejected by audience.
func AdminRequired(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}
		claims, err := auth.ParseAdminToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin access required"})
			return
		}
		c.Set("admin_id", claims.AdminID)
		c.Set("admin_role", claims.Role)
		c.Next()
	}
}

// RequireAdminRole enforces a minimum console role. Roles are a flat
// total order: moderator < admin < super_admin.
func RequireAdminRole(minRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("admin_role")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if domain.RoleRank[role.(string)] < domain.RoleRank[minRole] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// GetAdminID returns the authenticated admin ID from context (must be
// used after AdminRequired).
func GetAdminID(c *gin.Context) uint {
	v, _ := c.Get("admin_id")
	if v == nil {
		return 0
	}
	return v.(uint)
}
