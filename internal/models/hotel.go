package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"

	"hotel-management-backend/internal/apperrors"
)

// Hotel is the owning aggregate for a set of rooms.
type Hotel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Location    string         `gorm:"size:255;not null" json:"location"`
	Price       float64        `gorm:"not null" json:"price"`
	TotalRooms  int            `gorm:"default:0" json:"totalRooms"`
	Rating      float64        `gorm:"default:0" json:"rating"`
	Description string         `gorm:"type:text" json:"description"`
	Amenities   datatypes.JSON `gorm:"type:json" json:"amenities"`
	Image       string         `gorm:"size:512" json:"image"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for Hotel model
func (Hotel) TableName() string {
	return "hotels"
}

// Validate checks required fields and bounds.
func (h *Hotel) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return apperrors.Validationf("hotel name is required")
	}
	if strings.TrimSpace(h.Location) == "" {
		return apperrors.Validationf("hotel location is required")
	}
	if h.Price < 0 {
		return apperrors.Validationf("price cannot be negative")
	}
	if h.TotalRooms < 0 {
		return apperrors.Validationf("total rooms cannot be negative")
	}
	if h.Rating < 0 || h.Rating > 5 {
		return apperrors.Validationf("rating must be between 0 and 5")
	}
	return nil
}
