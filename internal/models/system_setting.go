package models

import "time"

// SystemSetting stores one admin-configurable value. The key is unique
// and immutable; rows are seeded at boot and only ever updated through
// the settings service. Value holds the stored (string) form; Type
// declares how it decodes.
type SystemSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"uniqueIndex;size:100;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Type        string    `gorm:"size:20;default:'string'" json:"type"` // boolean, number, json, string
	Category    string    `gorm:"size:50;index" json:"category"`
	Description string    `gorm:"type:text" json:"description"`
	UpdatedBy   *uint     `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	UpdatedByAdmin *AdminAccount `gorm:"foreignKey:UpdatedBy" json:"-"`
}

func (SystemSetting) TableName() string { return "system_settings" }
