package repository

import (
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
)

type UserHotelRepository struct {
	db *gorm.DB
}

func NewUserHotelRepo(db *gorm.DB) *UserHotelRepository {
	return &UserHotelRepository{db: db}
}

// UserHasAccessToHotel reports whether the staff account is assigned to the
// hotel. Admin bypass happens in the service layer.
func (r *UserHotelRepository) UserHasAccessToHotel(userID, hotelID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.UserHotel{}).
		Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HotelIDsForUser returns the hotel IDs a staff account is assigned to.
func (r *UserHotelRepository) HotelIDsForUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.UserHotel{}).
		Where("user_id = ?", userID).
		Pluck("hotel_id", &ids).Error
	return ids, err
}

// Assign grants a staff account access to a hotel. Repeat assignments are
// no-ops thanks to the composite unique index.
func (r *UserHotelRepository) Assign(userID, hotelID uint) error {
	assignment := models.UserHotel{UserID: userID, HotelID: hotelID}
	return r.db.Where(&assignment).FirstOrCreate(&assignment).Error
}

// Revoke removes a staff account's access to a hotel.
func (r *UserHotelRepository) Revoke(userID, hotelID uint) error {
	return r.db.Where("user_id = ? AND hotel_id = ?", userID, hotelID).
		Delete(&models.UserHotel{}).Error
}
