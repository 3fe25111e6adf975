package models

import (
	"strings"
	"time"

	"hotel-management-backend/internal/apperrors"
)

// InventoryItem is a stock record (food, beverage, linen, ...) managed from
// the admin screens.
type InventoryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Category  string    `gorm:"size:100;not null" json:"category"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Unit      string    `gorm:"size:20;default:'pcs'" json:"unit"`
	Price     float64   `gorm:"default:0" json:"price"`
	AddedBy   string    `gorm:"size:100" json:"addedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// Validate checks required fields.
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return apperrors.Validationf("inventory item name is required")
	}
	if strings.TrimSpace(i.Category) == "" {
		return apperrors.Validationf("inventory item category is required")
	}
	if i.Quantity < 0 {
		return apperrors.Validationf("quantity cannot be negative")
	}
	if i.Price < 0 {
		return apperrors.Validationf("price cannot be negative")
	}
	return nil
}
