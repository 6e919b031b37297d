package repository

import (
	"campusmart/internal/domain"
	"campusmart/internal/models"

	"gorm.io/gorm"
)

// ProductQuery carries the public catalog browse parameters.
type ProductQuery struct {
	Search        string
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	Sort          string // newest, price_asc, price_desc, popular
	Page          int
	Limit         int
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) GetByID(id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.Preload("Seller").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// Browse lists active, unflagged listings for the public catalog.
func (r *ProductRepository) Browse(q ProductQuery) ([]models.Product, int64, error) {
	tx := r.db.Model(&models.Product{}).
		Where("is_active = ? AND is_flagged = ? AND status = ?", true, false, domain.ProductStatusActive)
	if q.Search != "" {
		tx = tx.Where("title LIKE ? OR description LIKE ?", "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.MinPriceCents > 0 {
		tx = tx.Where("price_cents >= ?", q.MinPriceCents)
	}
	if q.MaxPriceCents > 0 {
		tx = tx.Where("price_cents <= ?", q.MaxPriceCents)
	}
	var total int64
	tx.Count(&total)
	var list []models.Product
	err := tx.Preload("Seller").Order(sortClause(q.Sort)).
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).Find(&list).Error
	return list, total, err
}

// sortClause maps the public sort parameter onto a fixed set of ORDER
// BY clauses; anything unrecognized falls back to newest-first. The
// parameter never reaches SQL directly.
func sortClause(sort string) string {
	switch sort {
	case "price_asc":
		return "price_cents ASC"
	case "price_desc":
		return "price_cents DESC"
	case "popular":
		return "view_count DESC"
	default:
		return "created_at DESC"
	}
}

// ListByUser returns a user's own listings, including sold/inactive.
func (r *ProductRepository) ListByUser(userID uint, page, limit int) ([]models.Product, int64, error) {
	q := r.db.Model(&models.Product{}).Where("user_id = ?", userID)
	var total int64
	q.Count(&total)
	var list []models.Product
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

// CountActiveByUser backs the max_products_per_user limit check.
func (r *ProductRepository) CountActiveByUser(userID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Product{}).
		Where("user_id = ? AND status = ?", userID, domain.ProductStatusActive).Count(&c).Error
	return c, err
}

func (r *ProductRepository) IncrementViewCount(id uint) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ProductRepository) SetFlagged(id uint, flagged bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_flagged", flagged).Error
}

func (r *ProductRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", active).Error
}

// CountPendingReports counts open reports against a product, used for
// the report_auto_flag_threshold check.
func (r *ProductRepository) CountPendingReports(productID uint) (int64, error) {
	var c int64
	err := r.db.Model(&models.Report{}).
		Where("product_id = ? AND status = ?", productID, domain.ReportStatusPending).Count(&c).Error
	return c, err
}
