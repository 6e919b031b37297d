package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	Title        string         `gorm:"size:160;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Category     string         `gorm:"size:50;index" json:"category"`
	PriceCents   int64          `gorm:"not null" json:"price_cents"`
	Condition    string         `gorm:"size:20" json:"condition"` // NEW, LIKE_NEW, GOOD, FAIR
	ImageURL     string         `gorm:"size:512" json:"image_url"`
	ThumbnailURL string         `gorm:"size:512" json:"thumbnail_url"`
	Status       string         `gorm:"size:20;default:'ACTIVE';index" json:"status"` // ACTIVE, SOLD
	IsActive     bool           `gorm:"default:true;index" json:"is_active"`
	IsFlagged    bool           `gorm:"default:false;index" json:"is_flagged"`
	ViewCount    int64          `gorm:"default:0" json:"view_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Seller User `gorm:"foreignKey:UserID" json:"seller,omitempty"`
}

func (Product) TableName() string { return "products" }
