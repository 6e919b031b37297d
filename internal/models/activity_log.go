package models

import "time"

// ActivityLog is the append-only audit trail of admin mutations.
// Rows are never updated or deleted by the application.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AdminID    uint      `gorm:"not null;index" json:"admin_id"`
	Action     string    `gorm:"size:100;not null;index" json:"action"`
	EntityType string    `gorm:"size:100;index" json:"entity_type"`
	EntityID   string    `gorm:"size:100" json:"entity_id"`
	Detail     string    `gorm:"type:text" json:"detail"` // opaque JSON payload
	IP         string    `gorm:"size:45" json:"ip"`
	CreatedAt  time.Time `json:"created_at"`

	Admin AdminAccount `gorm:"foreignKey:AdminID" json:"-"`
}

func (ActivityLog) TableName() string { return "activity_logs" }
