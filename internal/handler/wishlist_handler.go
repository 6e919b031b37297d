package handler

import (
	"net/http"
	"strconv"

	"campusmart/internal/middleware"
	"campusmart/internal/repository"

	"github.com/gin-gonic/gin"
)

type WishlistHandler struct {
	wishlistRepo *repository.WishlistRepository
	productRepo  *repository.ProductRepository
}

func NewWishlistHandler(wishlistRepo *repository.WishlistRepository, productRepo *repository.ProductRepository) *WishlistHandler {
	return &WishlistHandler{wishlistRepo: wishlistRepo, productRepo: productRepo}
}

// List handles GET /me/wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit := parsePagination(c)
	list, total, err := h.wishlistRepo.ListByUser(userID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list, "total": total, "page": page, "limit": limit})
}

// Add handles POST /wishlist/:product_id.
func (h *WishlistHandler) Add(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	p, err := h.productRepo.GetByID(uint(productID))
	if err != nil || !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	if p.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot wishlist your own listing"})
		return
	}
	exists, err := h.wishlistRepo.Contains(userID, p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
		return
	}
	if exists {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.wishlistRepo.Add(userID, p.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok"})
}

// Remove handles DELETE /wishlist/:product_id.
func (h *WishlistHandler) Remove(c *gin.Context) {
	userID := middleware.GetUserID(c)
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := h.wishlistRepo.Remove(userID, uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
