package repository

import (
	"errors"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// GetAll retrieves all inventory items.
func (r *InventoryRepository) GetAll() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := r.db.Order("created_at DESC").Find(&items).Error
	return items, err
}

// GetByID retrieves an inventory item by ID.
func (r *InventoryRepository) GetByID(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.First(&item, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("inventory item %d not found", id)
		}
		return nil, err
	}
	return &item, nil
}

// Create persists a new inventory item.
func (r *InventoryRepository) Create(item *models.InventoryItem) error {
	return r.db.Create(item).Error
}

// Update persists changes to an existing item.
func (r *InventoryRepository) Update(item *models.InventoryItem) error {
	return r.db.Save(item).Error
}

// Delete removes an inventory item.
func (r *InventoryRepository) Delete(id uint) error {
	result := r.db.Delete(&models.InventoryItem{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("inventory item %d not found", id)
	}
	return nil
}
