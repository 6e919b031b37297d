package handler

import (
	"errors"
	"fmt"
	"net/http"

	"campusmart/internal/middleware"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc *settings.Service
}

func NewSettingsHandler(svc *settings.Service) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// PublicStatus handles GET /admin/settings/public/status. Unauthenticated
// and ungated: clients poll it to learn whether the service is up.
func (h *SettingsHandler) PublicStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Status())
}

// List handles GET /admin/settings — all settings grouped by category.
func (h *SettingsHandler) List(c *gin.Context) {
	grouped, err := h.svc.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": grouped})
}

// GetByKey handles GET /admin/settings/:key.
func (h *SettingsHandler) GetByKey(c *gin.Context) {
	v, err := h.svc.GetByKey(c.Param("key"))
	if err != nil {
		if errors.Is(err, settings.ErrSettingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load setting"})
		return
	}
	c.JSON(http.StatusOK, v)
}

type updateSettingRequest struct {
	Value interface{} `json:"value"`
}

// Update handles PUT /admin/settings/:key.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req updateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.Param("key")
	decoded, err := h.svc.Update(key, req.Value, middleware.GetAdminID(c), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, settings.ErrInvalidValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update setting"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": decoded, "message": "setting updated"})
}

type bulkUpdateRequest struct {
	Settings []settings.BulkEntry `json:"settings" binding:"required"`
}

// UpdateBulk handles PUT /admin/settings/bulk. Unknown keys and values
// that fail coercion are skipped; `updates` lists what was applied.
func (h *SettingsHandler) UpdateBulk(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applied, err := h.svc.UpdateBulk(req.Settings, middleware.GetAdminID(c), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bulk update failed", "updates": applied})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%d settings updated", len(applied)),
		"updates": applied,
	})
}

// ToggleMaintenance handles POST /admin/settings/maintenance/toggle.
func (h *SettingsHandler) ToggleMaintenance(c *gin.Context) {
	enabled, err := h.svc.ToggleMaintenance(middleware.GetAdminID(c), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle maintenance mode"})
		return
	}
	msg := "maintenance mode disabled"
	if enabled {
		msg = "maintenance mode enabled"
	}
	c.JSON(http.StatusOK, gin.H{"maintenance_mode": enabled, "message": msg})
}

// EmergencyShutdown handles POST /admin/settings/emergency/shutdown.
// Super admin only; disables the API and turns maintenance on.
func (h *SettingsHandler) EmergencyShutdown(c *gin.Context) {
	if err := h.svc.EmergencyShutdown(middleware.GetAdminID(c), c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "shutdown failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"api_enabled":      false,
		"maintenance_mode": true,
		"message":          "emergency shutdown complete",
	})
}
