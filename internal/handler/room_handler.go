package handler

import (
	"net/http"

	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService  *service.RoomService
	queryService *service.RoomQueryService
	sweepService *service.SweepService
}

func NewRoomHandler(
	roomService *service.RoomService,
	queryService *service.RoomQueryService,
	sweepService *service.SweepService,
) *RoomHandler {
	return &RoomHandler{
		roomService:  roomService,
		queryService: queryService,
		sweepService: sweepService,
	}
}

// ListRooms returns a filtered page of rooms.
// Query: page, limit, hotelId, type, minPrice, maxPrice, available
func (h *RoomHandler) ListRooms(c *gin.Context) {
	hotelID, err := uintQuery(c, "hotelId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotelId")
		return
	}
	minPrice, err := floatQuery(c, "minPrice")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid minPrice")
		return
	}
	maxPrice, err := floatQuery(c, "maxPrice")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid maxPrice")
		return
	}

	filter := repository.RoomFilter{
		HotelID:       hotelID,
		Type:          c.Query("type"),
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		AvailableOnly: boolQuery(c, "available"),
	}

	page, limit := pageParams(c)
	rooms, p, total, err := h.queryService.List(filter, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, gin.H{"rooms": rooms}, utils.NewPagination(p.Page, p.Limit, len(rooms), total))
}

// ListRoomsByHotel returns one hotel's rooms in floor order.
func (h *RoomHandler) ListRoomsByHotel(c *gin.Context) {
	hotelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	page, limit := pageParams(c)
	rooms, hotel, p, total, err := h.queryService.ListByHotel(hotelID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, gin.H{
		"hotel": hotel,
		"rooms": rooms,
	}, utils.NewPagination(p.Page, p.Limit, len(rooms), total))
}

// SearchRooms runs the advanced room search.
// Query: q, hotelId, type, minPrice, maxPrice, capacity, amenities,
// floor, available, sortBy, order
func (h *RoomHandler) SearchRooms(c *gin.Context) {
	hotelID, err := uintQuery(c, "hotelId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotelId")
		return
	}
	minPrice, err := floatQuery(c, "minPrice")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid minPrice")
		return
	}
	maxPrice, err := floatQuery(c, "maxPrice")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid maxPrice")
		return
	}
	capacityMin, err := intQuery(c, "capacity")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid capacity")
		return
	}
	floor, err := intQuery(c, "floor")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid floor")
		return
	}

	query := repository.RoomSearchQuery{
		FreeText:      c.Query("q"),
		HotelID:       hotelID,
		Type:          c.Query("type"),
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
		CapacityMin:   capacityMin,
		AmenitiesAny:  csvQuery(c, "amenities"),
		Floor:         floor,
		AvailableOnly: boolQuery(c, "available"),
		SortField:     c.Query("sortBy"),
		SortDesc:      c.Query("order") == "desc",
	}

	page, limit := pageParams(c)
	rooms, p, total, err := h.queryService.Search(query, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, gin.H{"rooms": rooms}, utils.NewPagination(p.Page, p.Limit, len(rooms), total))
}

// RoomStatistics returns the aggregate counts, optionally scoped by
// hotelId.
func (h *RoomHandler) RoomStatistics(c *gin.Context) {
	hotelID, err := uintQuery(c, "hotelId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotelId")
		return
	}

	stats, err := h.queryService.Statistics(c.Request.Context(), hotelID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GetRoom retrieves a specific room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// CreateRoom creates a new room (admin only)
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.roomService.Create(c.Request.Context(), &room, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, created)
}

// UpdateRoom updates an existing room's editable fields (admin only)
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input models.Room
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, &input, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

type bulkUpdateRequest struct {
	RoomIDs []uint      `json:"roomIds" binding:"required,min=1"`
	Update  models.Room `json:"update"`
}

// BulkUpdateRooms applies the same editable fields to many rooms (admin
// only). Per-room failures are reported without aborting the rest.
func (h *RoomHandler) BulkUpdateRooms(c *gin.Context) {
	var req bulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.roomService.BulkUpdate(c.Request.Context(), req.RoomIDs, &req.Update, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// DeleteRoom removes a room (admin only)
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), id, currentUser(c)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Room deleted successfully")
}

// BookRoom places a guest in an available room. This is the public
// booking endpoint hit after payment confirmation.
func (h *RoomHandler) BookRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var details service.BookingDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room, booking, err := h.roomService.Book(c.Request.Context(), id, details)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"room":    room,
		"booking": booking,
	})
}

// CancelBooking releases a booked room back to the pool.
func (h *RoomHandler) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.Cancel(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// CheckoutRoom ends a stay and sends the room to cleaning.
func (h *RoomHandler) CheckoutRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.Checkout(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

type maintenanceRequest struct {
	Notes string `json:"notes"`
}

// SetMaintenance pulls a room from the bookable pool.
func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.roomService.SetMaintenance(c.Request.Context(), id, req.Notes, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// ClearMaintenance returns a maintenance room to service.
func (h *RoomHandler) ClearMaintenance(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.ClearMaintenance(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// CompleteCleaning finishes turnover and makes the room rebookable.
func (h *RoomHandler) CompleteCleaning(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := h.roomService.CompleteCleaning(c.Request.Context(), id, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, room)
}

// RunSweep triggers the stale-booking sweep outside its schedule (admin
// only).
func (h *RoomHandler) RunSweep(c *gin.Context) {
	result, err := h.sweepService.RunNow(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
