package repository

import (
	"campusmart/internal/models"

	"gorm.io/gorm"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) GetByKey(key string) (*models.SystemSetting, error) {
	var s models.SystemSetting
	if err := r.db.Where("`key` = ?", key).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SettingRepository) GetAll() ([]models.SystemSetting, error) {
	var list []models.SystemSetting
	err := r.db.Order("category ASC, `key` ASC").Find(&list).Error
	return list, err
}

// UpdateValue writes the stored form of one setting and records who
// changed it. Keys are immutable; only value metadata moves. Writing
// an unknown key returns gorm.ErrRecordNotFound rather than silently
// affecting zero rows.
func (r *SettingRepository) UpdateValue(key, value string, updatedBy uint) error {
	res := r.db.Model(&models.SystemSetting{}).
		Where("`key` = ?", key).
		Updates(map[string]interface{}{"value": value, "updated_by": updatedBy})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL also reports zero affected rows for a no-op write of
		// the same value, so only an absent row is an error.
		var count int64
		r.db.Model(&models.SystemSetting{}).Where("`key` = ?", key).Count(&count)
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

// SeedDefaults inserts declared settings that don't exist yet. Existing
// rows keep their current value; settings are never created through
// the API.
func (r *SettingRepository) SeedDefaults(defaults []models.SystemSetting) error {
	for i := range defaults {
		var count int64
		r.db.Model(&models.SystemSetting{}).Where("`key` = ?", defaults[i].Key).Count(&count)
		if count == 0 {
			if err := r.db.Create(&defaults[i]).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
