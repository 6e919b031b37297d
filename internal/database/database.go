package database

import (
	"log"

	"campusmart/config"
	"campusmart/internal/domain"
	"campusmart/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.WishlistItem{},
		&models.Report{},
		&models.AdminAccount{},
		&models.ActivityLog{},
		&models.SystemSetting{},
	)
}

// SeedSuperAdmin creates the bootstrap console account when no admin
// accounts exist. Credentials come from env; without them a fresh
// deployment has no way into the console.
func SeedSuperAdmin(db *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}
	var count int64
	db.Model(&models.AdminAccount{}).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	if err := db.Create(&models.AdminAccount{
		Email:        email,
		FullName:     "Super Admin",
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		IsActive:     true,
	}).Error; err != nil {
		log.Printf("seed admin: %v", err)
		return
	}
	log.Printf("seeded super admin %s", email)
}

// DefaultSettings is the full seed table. Missing rows are inserted at
// boot; rows that already exist keep their current value.
func DefaultSettings() []models.SystemSetting {
	return []models.SystemSetting{
		{Key: domain.SettingMaintenanceMode, Value: "false", Type: "boolean", Category: domain.CategorySystem,
			Description: "When true, all public routes answer 503."},
		{Key: domain.SettingMaintenanceMessage, Value: "We are down for maintenance. Back soon.", Type: "string", Category: domain.CategorySystem,
			Description: "Message returned while maintenance mode is on."},
		{Key: domain.SettingAPIEnabled, Value: "true", Type: "boolean", Category: domain.CategorySystem,
			Description: "Master switch for the public API."},
		{Key: domain.SettingRegistrationEnabled, Value: "true", Type: "boolean", Category: domain.CategoryFeatures,
			Description: "Allow new user sign-ups."},
		{Key: domain.SettingLoginEnabled, Value: "true", Type: "boolean", Category: domain.CategoryFeatures,
			Description: "Allow user logins."},
		{Key: domain.SettingProductCreationEnabled, Value: "true", Type: "boolean", Category: domain.CategoryFeatures,
			Description: "Allow creating new listings."},
		{Key: domain.SettingProductEditingEnabled, Value: "true", Type: "boolean", Category: domain.CategoryFeatures,
			Description: "Allow editing existing listings."},
		{Key: domain.SettingWishlistEnabled, Value: "true", Type: "boolean", Category: domain.CategoryFeatures,
			Description: "Enable the wishlist feature."},
		{Key: domain.SettingMaxProductsPerUser, Value: "20", Type: "number", Category: domain.CategoryLimits,
			Description: "Maximum active listings per user."},
		{Key: domain.SettingMaxImagesPerProduct, Value: "5", Type: "number", Category: domain.CategoryLimits,
			Description: "Maximum images per listing."},
		{Key: domain.SettingReportAutoFlagThreshold, Value: "3", Type: "number", Category: domain.CategoryLimits,
			Description: "Open reports before a listing is auto-flagged."},
		{Key: domain.SettingMinPasswordLength, Value: "8", Type: "number", Category: domain.CategorySecurity,
			Description: "Minimum password length at registration."},
		{Key: domain.SettingSiteName, Value: "CampusMart", Type: "string", Category: domain.CategoryGeneral,
			Description: "Display name of the marketplace."},
		{Key: domain.SettingSupportEmail, Value: "support@campusmart.example", Type: "string", Category: domain.CategoryGeneral,
			Description: "Contact address shown to users."},
		{Key: domain.SettingAllowedCategories, Value: `["textbooks","electronics","furniture","clothing","tickets","other"]`, Type: "json", Category: domain.CategoryGeneral,
			Description: "Listing categories accepted at creation."},
	}
}
