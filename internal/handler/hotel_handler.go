package handler

import (
	"net/http"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HotelHandler struct {
	hotelService *service.HotelService
}

func NewHotelHandler(hotelService *service.HotelService) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelService,
	}
}

// ListHotels returns all hotels visible to the caller. Staff accounts only
// see their assigned hotels.
func (h *HotelHandler) ListHotels(c *gin.Context) {
	hotels, err := h.hotelService.ListForUser(currentUser(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hotels": hotels,
		"count":  len(hotels),
	})
}

// GetHotel retrieves a single hotel.
func (h *HotelHandler) GetHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hotel, err := h.hotelService.Get(id, currentUser(c), currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, hotel)
}

// CreateHotel creates a new hotel (admin only)
func (h *HotelHandler) CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.hotelService.Create(&hotel, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, created)
}

// UpdateHotel updates an existing hotel (admin only)
func (h *HotelHandler) UpdateHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.Hotel
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hotel, err := h.hotelService.Update(id, &input, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, hotel)
}

// DeleteHotel removes a hotel and its rooms (admin only)
func (h *HotelHandler) DeleteHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.hotelService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Hotel deleted successfully")
}

type staffAssignmentRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// AssignStaff grants a staff account access to a hotel (admin only)
func (h *HotelHandler) AssignStaff(c *gin.Context) {
	hotelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req staffAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.hotelService.AssignStaff(hotelID, req.UserID, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Staff assigned successfully")
}

// RevokeStaff removes a staff account's access to a hotel (admin only)
func (h *HotelHandler) RevokeStaff(c *gin.Context) {
	hotelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req staffAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.hotelService.RevokeStaff(hotelID, req.UserID, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Staff access revoked")
}
