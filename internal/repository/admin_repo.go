package repository

import (
	"time"

	"campusmart/internal/domain"
	"campusmart/internal/models"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalUsers      int64 `json:"total_users"`
	ActiveUsers     int64 `json:"active_users"`
	SuspendedUsers  int64 `json:"suspended_users"`
	TotalProducts   int64 `json:"total_products"`
	ActiveProducts  int64 `json:"active_products"`
	SoldProducts    int64 `json:"sold_products"`
	FlaggedProducts int64 `json:"flagged_products"`
	PendingReports  int64 `json:"pending_reports"`
	WishlistEntries int64 `json:"wishlist_entries"`
	NewUsers7d      int64 `json:"new_users_7d"`
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// SellerSummary aggregates one user with their listing activity.
type SellerSummary struct {
	UserID         uint   `json:"user_id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Campus         string `json:"campus"`
	IsSuspended    bool   `json:"is_suspended"`
	TotalListings  int64  `json:"total_listings"`
	ActiveListings int64  `json:"active_listings"`
	SoldListings   int64  `json:"sold_listings"`
}

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// --- console accounts ---

func (r *AdminRepository) GetByEmail(email string) (*models.AdminAccount, error) {
	var a models.AdminAccount
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetAccountByID(id uint) (*models.AdminAccount, error) {
	var a models.AdminAccount
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) CreateAccount(a *models.AdminAccount) error {
	return r.db.Create(a).Error
}

func (r *AdminRepository) ListAccounts(page, limit int) ([]models.AdminAccount, int64, error) {
	var total int64
	r.db.Model(&models.AdminAccount{}).Count(&total)
	var list []models.AdminAccount
	err := r.db.Order("created_at ASC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *AdminRepository) UpdateAccount(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.AdminAccount{}).Where("id = ?", id).Updates(updates).Error
}

func (r *AdminRepository) TouchLastLogin(id uint) error {
	return r.db.Model(&models.AdminAccount{}).Where("id = ?", id).
		Update("last_login_at", time.Now()).Error
}

// --- dashboard ---

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	r.db.Model(&models.User{}).Count(&s.TotalUsers)
	r.db.Model(&models.User{}).Where("is_active = ? AND is_suspended = ?", true, false).Count(&s.ActiveUsers)
	r.db.Model(&models.User{}).Where("is_suspended = ?", true).Count(&s.SuspendedUsers)
	r.db.Model(&models.Product{}).Count(&s.TotalProducts)
	r.db.Model(&models.Product{}).Where("is_active = ? AND status = ?", true, domain.ProductStatusActive).Count(&s.ActiveProducts)
	r.db.Model(&models.Product{}).Where("status = ?", domain.ProductStatusSold).Count(&s.SoldProducts)
	r.db.Model(&models.Product{}).Where("is_flagged = ?", true).Count(&s.FlaggedProducts)
	r.db.Model(&models.Report{}).Where("status = ?", domain.ReportStatusPending).Count(&s.PendingReports)
	r.db.Model(&models.WishlistItem{}).Count(&s.WishlistEntries)
	r.db.Model(&models.User{}).Where("created_at >= ?", time.Now().AddDate(0, 0, -7)).Count(&s.NewUsers7d)
	return &s, nil
}

// UserSignupsByDay returns daily signup counts for the last N days.
func (r *AdminRepository) UserSignupsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.User{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

// ListingsByDay returns daily new-listing counts for the last N days.
func (r *AdminRepository) ListingsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Product{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

// ReportsByDay returns daily report counts for the last N days.
func (r *AdminRepository) ReportsByDay(days int) ([]TimeSeriesPoint, error) {
	since := time.Now().AddDate(0, 0, -days)
	var points []TimeSeriesPoint
	err := r.db.Model(&models.Report{}).
		Select("DATE(created_at) as date, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&points).Error
	return points, err
}

// --- moderation listings ---

// ListUsers returns users with search and status filters.
func (r *AdminRepository) ListUsers(search, status string, page, limit int) ([]models.User, int64, error) {
	q := r.db.Model(&models.User{})
	if search != "" {
		q = q.Where("username LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	switch status {
	case "active":
		q = q.Where("is_active = ? AND is_suspended = ?", true, false)
	case "suspended":
		q = q.Where("is_suspended = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}
	var total int64
	q.Count(&total)
	var users []models.User
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&users).Error
	return users, total, err
}

// ListProducts returns listings for moderation, including inactive and
// flagged ones the public catalog hides.
func (r *AdminRepository) ListProducts(search, status string, flaggedOnly bool, page, limit int) ([]models.Product, int64, error) {
	q := r.db.Model(&models.Product{})
	if search != "" {
		q = q.Where("title LIKE ?", "%"+search+"%")
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if flaggedOnly {
		q = q.Where("is_flagged = ?", true)
	}
	var total int64
	q.Count(&total)
	var list []models.Product
	err := q.Preload("Seller").Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

// ListSellers aggregates users with at least one listing.
func (r *AdminRepository) ListSellers(search string, page, limit int) ([]SellerSummary, int64, error) {
	base := r.db.Model(&models.User{}).
		Select(`users.id as user_id, users.username, users.email, users.campus, users.is_suspended,
			COUNT(products.id) as total_listings,
			SUM(CASE WHEN products.status = 'ACTIVE' AND products.is_active = 1 THEN 1 ELSE 0 END) as active_listings,
			SUM(CASE WHEN products.status = 'SOLD' THEN 1 ELSE 0 END) as sold_listings`).
		Joins("JOIN products ON products.user_id = users.id AND products.deleted_at IS NULL").
		Group("users.id")
	if search != "" {
		base = base.Where("users.username LIKE ? OR users.email LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	var total int64
	r.db.Model(&models.User{}).
		Joins("JOIN products ON products.user_id = users.id AND products.deleted_at IS NULL").
		Distinct("users.id").Count(&total)
	var list []SellerSummary
	err := base.Order("total_listings DESC").Limit(limit).Offset((page - 1) * limit).Scan(&list).Error
	return list, total, err
}
