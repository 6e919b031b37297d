package repository

import (
	"encoding/json"

	"campusmart/internal/models"

	"gorm.io/gorm"
)

type ActivityLogRepository struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Record appends one audit entry. Callers must propagate a failure:
// an admin mutation may not report success without its log row.
func (r *ActivityLogRepository) Record(adminID uint, action, entityType, entityID string, detail interface{}, ip string) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	return r.db.Create(&models.ActivityLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     string(payload),
		IP:         ip,
	}).Error
}

// List returns entries reverse-chronologically with optional equality
// filters on action and entity type.
func (r *ActivityLogRepository) List(action, entityType string, page, limit int) ([]models.ActivityLog, int64, error) {
	q := r.db.Model(&models.ActivityLog{})
	if action != "" {
		q = q.Where("action = ?", action)
	}
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	var total int64
	q.Count(&total)
	var list []models.ActivityLog
	err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}
