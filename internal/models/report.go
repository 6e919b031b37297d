package models

import (
	"time"

	"gorm.io/gorm"
)

type Report struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ReporterID     uint           `gorm:"not null;index" json:"reporter_id"`
	ProductID      *uint          `gorm:"index" json:"product_id"`
	ReportedUserID *uint          `gorm:"index" json:"reported_user_id"`
	Reason         string         `gorm:"size:50;not null" json:"reason"`
	Details        string         `gorm:"type:text" json:"details"`
	Status         string         `gorm:"size:20;default:'PENDING';index" json:"status"` // PENDING, REVIEWED, RESOLVED, DISMISSED
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Reporter User     `gorm:"foreignKey:ReporterID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (Report) TableName() string { return "reports" }
