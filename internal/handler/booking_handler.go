package handler

import (
	"net/http"

	"hotel-management-backend/internal/service"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// ListBookings returns a page of booking history, newest first.
// Query: page, limit, email
func (h *BookingHandler) ListBookings(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		bookings, err := h.bookingService.ListByGuestEmail(email)
		if err != nil {
			respondError(c, err)
			return
		}
		utils.SuccessResponse(c, gin.H{
			"bookings": bookings,
			"count":    len(bookings),
		})
		return
	}

	page, limit := pageParams(c)
	bookings, p, total, err := h.bookingService.List(page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.PaginatedResponse(c, gin.H{"bookings": bookings}, utils.NewPagination(p.Page, p.Limit, len(bookings), total))
}

// GetBooking looks up one booking by its reference.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Booking reference required")
		return
	}

	booking, err := h.bookingService.GetByReference(reference)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, booking)
}
