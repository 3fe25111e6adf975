package middleware

import (
	"net/http"
	"strconv"

	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AccessControlMiddleware enforces staff-to-hotel assignments on hotel and
// room scoped routes. Admins bypass every check.
type AccessControlMiddleware struct {
	userHotelRepo *repository.UserHotelRepository
	roomRepo      *repository.RoomRepository
}

func NewAccessControlMiddleware(
	userHotelRepo *repository.UserHotelRepository,
	roomRepo *repository.RoomRepository,
) *AccessControlMiddleware {
	return &AccessControlMiddleware{
		userHotelRepo: userHotelRepo,
		roomRepo:      roomRepo,
	}
}

// CheckHotelAccess verifies the user has access to the hotel in the path.
// Expected path parameter: :hotel_id or :id
func (m *AccessControlMiddleware) CheckHotelAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User role not found")
			c.Abort()
			return
		}

		if role.(string) == "admin" {
			c.Next()
			return
		}

		hotelIDStr := c.Param("hotel_id")
		if hotelIDStr == "" {
			hotelIDStr = c.Param("id")
		}

		hotelID, err := strconv.ParseUint(hotelIDStr, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hotel ID")
			c.Abort()
			return
		}

		hasAccess, err := m.userHotelRepo.UserHasAccessToHotel(userID.(uint), uint(hotelID))
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
			c.Abort()
			return
		}

		if !hasAccess {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied: you don't have permission to access this hotel")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckRoomAccess verifies the user has access to the hotel owning the room
// in the path. Expected path parameter: :room_id or :id
func (m *AccessControlMiddleware) CheckRoomAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
			c.Abort()
			return
		}

		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "User role not found")
			c.Abort()
			return
		}

		if role.(string) == "admin" {
			c.Next()
			return
		}

		roomIDStr := c.Param("room_id")
		if roomIDStr == "" {
			roomIDStr = c.Param("id")
		}

		roomID, err := strconv.ParseUint(roomIDStr, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
			c.Abort()
			return
		}

		room, err := m.roomRepo.GetByID(uint(roomID))
		if err != nil {
			utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
			c.Abort()
			return
		}

		hasAccess, err := m.userHotelRepo.UserHasAccessToHotel(userID.(uint), room.HotelID)
		if err != nil {
			utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to verify access")
			c.Abort()
			return
		}

		if !hasAccess {
			utils.ErrorResponse(c, http.StatusForbidden, "Access denied: you don't have permission to access this room")
			c.Abort()
			return
		}

		c.Next()
	}
}
