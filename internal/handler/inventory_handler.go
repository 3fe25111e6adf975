package handler

import (
	"net/http"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
	}
}

// ListItems returns all inventory items.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	items, err := h.inventoryService.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"items": items,
		"count": len(items),
	})
}

// GetItem retrieves a single inventory item.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.inventoryService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// CreateItem adds a new inventory item (admin only)
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if username, exists := c.Get("username"); exists {
		if s, ok := username.(string); ok {
			item.AddedBy = s
		}
	}

	created, err := h.inventoryService.Create(&item, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, created)
}

// UpdateItem updates an inventory item (admin only)
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.InventoryItem
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.inventoryService.Update(id, &input, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, item)
}

// DeleteItem removes an inventory item (admin only)
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Inventory item deleted successfully")
}
