package middleware

import (
	"net/http"

	"campusmart/internal/domain"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
)

// The gates below read flags through the settings service's fail-open
// path: a missing row or an unreachable store resolves to "enabled",
// so a settings outage degrades to everything working rather than
// everything breaking.

// APIEnabled is the master kill switch. When api_enabled reads false,
// non-admin traffic is rejected outright regardless of other flags.
func APIEnabled(svc *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.GetBool(domain.SettingAPIEnabled, true) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "api disabled"})
			return
		}
		c.Next()
	}
}

// Maintenance rejects public traffic while maintenance_mode is on.
// Admin routes and the status probe are registered outside this gate.
func Maintenance(svc *settings.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc.GetBool(domain.SettingMaintenanceMode, false) {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error":   "maintenance",
				"message": svc.GetString(domain.SettingMaintenanceMessage, ""),
			})
			return
		}
		c.Next()
	}
}

// RequireFeature guards one write endpoint behind a feature flag.
func RequireFeature(svc *settings.Service, flag string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !svc.GetBool(flag, true) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "feature disabled: " + flag})
			return
		}
		c.Next()
	}
}
