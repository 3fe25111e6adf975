package service

import (
	"context"
	"fmt"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/cache"
	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
	"hotel-management-backend/pkg/logger"
)

// HotelService manages hotel records and staff-to-hotel assignments.
type HotelService struct {
	hotelRepo     *repository.HotelRepository
	roomRepo      *repository.RoomRepository
	userHotelRepo *repository.UserHotelRepository
	auditRepo     *repository.AuditRepository
	statsCache    *cache.StatsCache
}

func NewHotelService(
	hotelRepo *repository.HotelRepository,
	roomRepo *repository.RoomRepository,
	userHotelRepo *repository.UserHotelRepository,
	auditRepo *repository.AuditRepository,
	statsCache *cache.StatsCache,
) *HotelService {
	return &HotelService{
		hotelRepo:     hotelRepo,
		roomRepo:      roomRepo,
		userHotelRepo: userHotelRepo,
		auditRepo:     auditRepo,
		statsCache:    statsCache,
	}
}

// ListForUser returns all hotels for admins, or just the assigned hotels
// for a staff account.
func (s *HotelService) ListForUser(userID uint, role string) ([]models.Hotel, error) {
	if role == models.RoleAdmin {
		return s.hotelRepo.GetAll()
	}

	ids, err := s.userHotelRepo.HotelIDsForUser(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Hotel{}, nil
	}
	return s.hotelRepo.GetByIDs(ids)
}

// Get retrieves a single hotel, enforcing staff assignment.
func (s *HotelService) Get(id, userID uint, role string) (*models.Hotel, error) {
	if role != models.RoleAdmin {
		ok, err := s.userHotelRepo.UserHasAccessToHotel(userID, id)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.NotFoundf("hotel %d not found", id)
		}
	}
	return s.hotelRepo.GetByID(id)
}

// Create validates and persists a new hotel.
func (s *HotelService) Create(hotel *models.Hotel, userID uint) (*models.Hotel, error) {
	if err := hotel.Validate(); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Create(hotel); err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}

	s.audit(&userID, "hotel_create", fmt.Sprintf("Created hotel %s (ID: %d)", hotel.Name, hotel.ID))
	return hotel, nil
}

// Update applies editable fields to a hotel.
func (s *HotelService) Update(id uint, input *models.Hotel, userID uint) (*models.Hotel, error) {
	hotel, err := s.hotelRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		hotel.Name = input.Name
	}
	if input.Location != "" {
		hotel.Location = input.Location
	}
	if input.Price > 0 {
		hotel.Price = input.Price
	}
	if input.TotalRooms > 0 {
		hotel.TotalRooms = input.TotalRooms
	}
	if input.Rating > 0 {
		hotel.Rating = input.Rating
	}
	if input.Description != "" {
		hotel.Description = input.Description
	}
	if len(input.Amenities) > 0 {
		hotel.Amenities = input.Amenities
	}
	if input.Image != "" {
		hotel.Image = input.Image
	}

	if err := hotel.Validate(); err != nil {
		return nil, err
	}
	if err := s.hotelRepo.Update(hotel); err != nil {
		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	s.audit(&userID, "hotel_update", fmt.Sprintf("Updated hotel %s (ID: %d)", hotel.Name, hotel.ID))
	return hotel, nil
}

// Delete removes a hotel and all of its rooms.
func (s *HotelService) Delete(ctx context.Context, id uint, userID uint) error {
	hotel, err := s.hotelRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.hotelRepo.DeleteCascade(id, s.roomRepo); err != nil {
		return err
	}

	s.audit(&userID, "hotel_delete", fmt.Sprintf("Deleted hotel %s (ID: %d) and its rooms", hotel.Name, id))
	s.statsCache.Invalidate(ctx, id)

	return nil
}

// AssignStaff grants a staff account access to a hotel.
func (s *HotelService) AssignStaff(hotelID, staffID, adminID uint) error {
	exists, err := s.hotelRepo.Exists(hotelID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.NotFoundf("hotel %d not found", hotelID)
	}

	if err := s.userHotelRepo.Assign(staffID, hotelID); err != nil {
		return fmt.Errorf("failed to assign staff: %w", err)
	}

	s.audit(&adminID, "hotel_staff_assign", fmt.Sprintf("Assigned user %d to hotel %d", staffID, hotelID))
	return nil
}

// RevokeStaff removes a staff account's access to a hotel.
func (s *HotelService) RevokeStaff(hotelID, staffID, adminID uint) error {
	if err := s.userHotelRepo.Revoke(staffID, hotelID); err != nil {
		return fmt.Errorf("failed to revoke staff: %w", err)
	}

	s.audit(&adminID, "hotel_staff_revoke", fmt.Sprintf("Revoked user %d from hotel %d", staffID, hotelID))
	return nil
}

func (s *HotelService) audit(userID *uint, action, details string) {
	if err := s.auditRepo.CreateAuditLog(userID, action, details); err != nil {
		logger.Get().Warnf("Failed to write audit log (%s): %v", action, err)
	}
}
