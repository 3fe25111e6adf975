package repository

import (
	"errors"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GetAll retrieves all reports, newest first.
func (r *ReportRepository) GetAll() ([]models.Report, error) {
	var reports []models.Report
	err := r.db.Order("created_at DESC").Find(&reports).Error
	return reports, err
}

// GetByID retrieves a report by ID.
func (r *ReportRepository) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.First(&report, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("report %d not found", id)
		}
		return nil, err
	}
	return &report, nil
}

// Create persists a new report.
func (r *ReportRepository) Create(report *models.Report) error {
	return r.db.Create(report).Error
}

// Delete removes a report.
func (r *ReportRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Report{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("report %d not found", id)
	}
	return nil
}
