package repository

import (
	"errors"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepo(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// GetAll retrieves all hotels, newest first.
func (r *HotelRepository) GetAll() ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.Order("created_at DESC").Find(&hotels).Error
	return hotels, err
}

// GetByID retrieves a hotel by ID.
func (r *HotelRepository) GetByID(id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	err := r.db.First(&hotel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("hotel %d not found", id)
		}
		return nil, err
	}
	return &hotel, nil
}

// GetByIDs retrieves hotels accessible to a staff account.
func (r *HotelRepository) GetByIDs(ids []uint) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := r.db.Where("id IN ?", ids).Order("created_at DESC").Find(&hotels).Error
	return hotels, err
}

// Create persists a new hotel.
func (r *HotelRepository) Create(hotel *models.Hotel) error {
	return r.db.Create(hotel).Error
}

// Update persists changes to an existing hotel.
func (r *HotelRepository) Update(hotel *models.Hotel) error {
	return r.db.Save(hotel).Error
}

// DeleteCascade removes a hotel and all of its rooms in one transaction,
// so no room is ever left referencing a missing hotel.
func (r *HotelRepository) DeleteCascade(id uint, roomRepo *RoomRepository) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Hotel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFoundf("hotel %d not found", id)
		}
		return roomRepo.DeleteByHotelTx(tx, id)
	})
}

// Exists reports whether the hotel exists.
func (r *HotelRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Hotel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
