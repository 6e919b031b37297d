package repository

import (
	"campusmart/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var rep models.Report
	if err := r.db.Preload("Reporter").Preload("Product").First(&rep, id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

func (r *ReportRepository) List(status string, page, limit int) ([]models.Report, int64, error) {
	q := r.db.Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	q.Count(&total)
	var list []models.Report
	err := q.Preload("Reporter").Preload("Product").
		Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error
	return list, total, err
}

func (r *ReportRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Report{}).Where("id = ?", id).Update("status", status).Error
}
