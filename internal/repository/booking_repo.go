package repository

import (
	"errors"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create persists a new booking history record.
func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetByReference retrieves a booking by its unique reference.
func (r *BookingRepository) GetByReference(reference string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Where("reference = ?", reference).Preload("Room").First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("booking %s not found", reference)
		}
		return nil, err
	}
	return &booking, nil
}

// List returns a page of bookings, newest first.
func (r *BookingRepository) List(p PageRequest) ([]models.Booking, int64, error) {
	var total int64
	if err := r.db.Model(&models.Booking{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := r.db.Preload("Room").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

// ListByGuestEmail returns all bookings made under a guest email.
func (r *BookingRepository) ListByGuestEmail(email string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("guest_email = ?", email).
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// SetStatusByReference updates a booking's lifecycle status. Missing
// references are ignored: the room transition already happened and history
// is best effort.
func (r *BookingRepository) SetStatusByReference(reference, status string) error {
	if reference == "" {
		return nil
	}
	return r.db.Model(&models.Booking{}).
		Where("reference = ?", reference).
		Update("status", status).Error
}
