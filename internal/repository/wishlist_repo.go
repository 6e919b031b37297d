package repository

import (
	"campusmart/internal/models"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(userID, productID uint) error {
	return r.db.Create(&models.WishlistItem{UserID: userID, ProductID: productID}).Error
}

func (r *WishlistRepository) Remove(userID, productID uint) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{}).Error
}

func (r *WishlistRepository) Contains(userID, productID uint) (bool, error) {
	var c int64
	err := r.db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).Count(&c).Error
	return c > 0, err
}

func (r *WishlistRepository) ListByUser(userID uint, page, limit int) ([]models.WishlistItem, int64, error) {
	q := r.db.Model(&models.WishlistItem{}).Where("user_id = ?", userID)
	var total int64
	q.Count(&total)
	var list []models.WishlistItem
	err := q.Preload("Product").Preload("Product.Seller").
		Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
