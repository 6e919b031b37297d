package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminAccount is a console account, separate from marketplace users.
type AdminAccount struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255;not null" json:"-"`
	FullName     string         `gorm:"size:128" json:"full_name"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // super_admin, admin, moderator
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminAccount) TableName() string { return "admin_accounts" }
