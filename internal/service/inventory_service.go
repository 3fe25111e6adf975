package service

import (
	"fmt"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/logger"
)

// InventoryService manages stock records from the admin screens.
type InventoryService struct {
	inventoryRepo *repository.InventoryRepository
	auditRepo     *repository.AuditRepository
}

func NewInventoryService(inventoryRepo *repository.InventoryRepository, auditRepo *repository.AuditRepository) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GetAll retrieves all inventory items.
func (s *InventoryService) GetAll() ([]models.InventoryItem, error) {
	return s.inventoryRepo.GetAll()
}

// Get retrieves a single inventory item.
func (s *InventoryService) Get(id uint) (*models.InventoryItem, error) {
	return s.inventoryRepo.GetByID(id)
}

// Create validates and persists a new inventory item.
func (s *InventoryService) Create(item *models.InventoryItem, userID uint) (*models.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if item.Unit == "" {
		item.Unit = "pcs"
	}
	if err := s.inventoryRepo.Create(item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.audit(&userID, "inventory_create", fmt.Sprintf("Added inventory item %s (qty: %d)", item.Name, item.Quantity))
	return item, nil
}

// Update applies editable fields to an inventory item.
func (s *InventoryService) Update(id uint, input *models.InventoryItem, userID uint) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		item.Name = input.Name
	}
	if input.Category != "" {
		item.Category = input.Category
	}
	if input.Quantity >= 0 {
		item.Quantity = input.Quantity
	}
	if input.Unit != "" {
		item.Unit = input.Unit
	}
	if input.Price > 0 {
		item.Price = input.Price
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.inventoryRepo.Update(item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	s.audit(&userID, "inventory_update", fmt.Sprintf("Updated inventory item %s (ID: %d)", item.Name, item.ID))
	return item, nil
}

// Delete removes an inventory item.
func (s *InventoryService) Delete(id uint, userID uint) error {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.inventoryRepo.Delete(id); err != nil {
		return err
	}

	s.audit(&userID, "inventory_delete", fmt.Sprintf("Deleted inventory item %s (ID: %d)", item.Name, id))
	return nil
}

func (s *InventoryService) audit(userID *uint, action, details string) {
	if err := s.auditRepo.CreateAuditLog(userID, action, details); err != nil {
		logger.Get().Warnf("Failed to write audit log (%s): %v", action, err)
	}
}
