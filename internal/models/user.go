package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	FullName     string         `gorm:"size:128" json:"full_name"`
	Campus       string         `gorm:"size:128;index" json:"campus"`
	Course       string         `gorm:"size:128" json:"course"`
	YearOfStudy  int            `json:"year_of_study"`
	Phone        string         `gorm:"size:32" json:"phone"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for email signups (avoids duplicate '' on unique index)
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	IsSuspended  bool           `gorm:"default:false;index" json:"is_suspended"`
	LastLoginAt  *time.Time     `json:"last_login_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Products []Product `gorm:"foreignKey:UserID" json:"products,omitempty"`
}

func (User) TableName() string { return "users" }

// CanTrade reports whether the account may create or modify listings.
func (u *User) CanTrade() bool { return u.IsActive && !u.IsSuspended }
