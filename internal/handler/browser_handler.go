package handler

import (
	"errors"
	"net/http"

	"campusmart/internal/repository"

	"github.com/gin-gonic/gin"
)

// BrowserHandler exposes the whitelisted database inspector. Every
// route sits behind super_admin role middleware.
type BrowserHandler struct {
	repo *repository.BrowserRepository
}

func NewBrowserHandler(repo *repository.BrowserRepository) *BrowserHandler {
	return &BrowserHandler{repo: repo}
}

// ListTables handles GET /admin/database/tables.
func (h *BrowserHandler) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": repository.BrowsableTables()})
}

// BrowseTable handles GET /admin/database/tables/:name.
func (h *BrowserHandler) BrowseTable(c *gin.Context) {
	spec, err := repository.ResolveTable(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	page, limit := parsePagination(c)
	rows, total, err := h.repo.Browse(spec, c.Query("sort"), c.Query("order"), page, limit)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownColumn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to browse table"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"table":   spec.Name,
		"columns": spec.Columns,
		"rows":    rows,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}
