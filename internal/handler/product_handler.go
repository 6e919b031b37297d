package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"campusmart/internal/domain"
	"campusmart/internal/middleware"
	"campusmart/internal/models"
	"campusmart/internal/repository"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productRepo *repository.ProductRepository
	settingsSvc *settings.Service
}

func NewProductHandler(productRepo *repository.ProductRepository, settingsSvc *settings.Service) *ProductHandler {
	return &ProductHandler{productRepo: productRepo, settingsSvc: settingsSvc}
}

// Browse handles GET /products — the public catalog.
func (h *ProductHandler) Browse(c *gin.Context) {
	page, limit := parsePagination(c)
	minPrice, _ := strconv.ParseInt(c.Query("min_price"), 10, 64)
	maxPrice, _ := strconv.ParseInt(c.Query("max_price"), 10, 64)
	list, total, err := h.productRepo.Browse(repository.ProductQuery{
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		MinPriceCents: minPrice,
		MaxPriceCents: maxPrice,
		Sort:          c.Query("sort"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Get handles GET /products/:id.
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	p, err := h.productRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if !p.IsActive || p.IsFlagged {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	_ = h.productRepo.IncrementViewCount(p.ID)
	c.JSON(http.StatusOK, p)
}

type productRequest struct {
	Title        string `json:"title" binding:"required,max=160"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required"`
	PriceCents   int64  `json:"price_cents" binding:"required,min=0"`
	Condition    string `json:"condition" binding:"omitempty,oneof=NEW LIKE_NEW GOOD FAIR"`
	ImageURL     string `json:"image_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Create handles POST /products. The route is gated by
// product_creation_enabled; the listing cap comes from settings.
func (h *ProductHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.categoryAllowed(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + req.Category})
		return
	}
	maxListings := h.settingsSvc.GetInt(domain.SettingMaxProductsPerUser, 20)
	count, err := h.productRepo.CountActiveByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	if count >= int64(maxListings) {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("listing limit reached (%d active listings)", maxListings)})
		return
	}
	p := &models.Product{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		PriceCents:   req.PriceCents,
		Condition:    req.Condition,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		Status:       domain.ProductStatusActive,
		IsActive:     true,
	}
	if err := h.productRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update handles PUT /products/:id. Gated by product_editing_enabled.
func (h *ProductHandler) Update(c *gin.Context) {
	p, ok := h.ownedProduct(c)
	if !ok {
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.categoryAllowed(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + req.Category})
		return
	}
	p.Title = req.Title
	p.Description = req.Description
	p.Category = req.Category
	p.PriceCents = req.PriceCents
	p.Condition = req.Condition
	if req.ImageURL != "" {
		p.ImageURL = req.ImageURL
	}
	if req.ThumbnailURL != "" {
		p.ThumbnailURL = req.ThumbnailURL
	}
	if err := h.productRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	p, ok := h.ownedProduct(c)
	if !ok {
		return
	}
	if err := h.productRepo.Delete(p.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// MarkSold handles POST /products/:id/sold.
func (h *ProductHandler) MarkSold(c *gin.Context) {
	p, ok := h.ownedProduct(c)
	if !ok {
		return
	}
	p.Status = domain.ProductStatusSold
	if err := h.productRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// MyListings handles GET /me/products.
func (h *ProductHandler) MyListings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	list, total, err := h.productRepo.ListByUser(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

func (h *ProductHandler) ownedProduct(c *gin.Context) (*models.Product, bool) {
	userID := middleware.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	p, err := h.productRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return nil, false
	}
	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your listing"})
		return nil, false
	}
	return p, true
}

// categoryAllowed checks the category against the allowed_categories
// setting. Fail open: if the setting is missing or malformed every
// category is accepted.
func (h *ProductHandler) categoryAllowed(category string) bool {
	raw := h.settingsSvc.Get(domain.SettingAllowedCategories, nil)
	list, ok := raw.([]interface{})
	if !ok {
		return true
	}
	for _, v := range list {
		if s, ok := v.(string); ok && s == category {
			return true
		}
	}
	return false
}
