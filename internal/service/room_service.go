package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/cache"
	"hotel-management-backend/internal/models"
	"hotel-management-backend/pkg/logger"
)

// BookingDetails is the caller-supplied input for booking a room. The
// payment confirmation step supplies this after a successful charge.
type BookingDetails struct {
	GuestName  string    `json:"guestName" binding:"required"`
	GuestEmail string    `json:"guestEmail" binding:"required,email"`
	GuestPhone string    `json:"guestPhone"`
	CheckIn    time.Time `json:"checkIn" binding:"required"`
	CheckOut   time.Time `json:"checkOut" binding:"required"`
	Guests     int       `json:"guests"`
}

// RoomStore is the room persistence surface the lifecycle engine needs.
// *repository.RoomRepository implements it; tests substitute an in-memory
// fake.
type RoomStore interface {
	Create(room *models.Room) error
	GetByID(id uint) (*models.Room, error)
	UpdateWithLock(id uint, fn func(*models.Room) error) (*models.Room, error)
	Delete(id uint) error
	NumberTakenInHotel(hotelID uint, roomNumber string, excludeID uint) (bool, error)
	FindExpiredOccupied(now time.Time) ([]uint, error)
}

// HotelStore is the hotel lookup surface used to validate room ownership.
type HotelStore interface {
	Exists(id uint) (bool, error)
}

// BookingStore records booking history rows alongside room transitions.
type BookingStore interface {
	Create(booking *models.Booking) error
	SetStatusByReference(reference, status string) error
}

// AuditStore writes the audit trail.
type AuditStore interface {
	CreateAuditLog(userID *uint, action, details string) error
}

// RoomService is the room lifecycle engine. Every transition runs as a
// per-room locked read-modify-write, bumps updatedAt, records an audit
// entry, and drops the cached statistics for the affected hotel.
type RoomService struct {
	roomRepo    RoomStore
	hotelRepo   HotelStore
	bookingRepo BookingStore
	auditRepo   AuditStore
	statsCache  *cache.StatsCache
}

func NewRoomService(
	roomRepo RoomStore,
	hotelRepo HotelStore,
	bookingRepo BookingStore,
	auditRepo AuditStore,
	statsCache *cache.StatsCache,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		hotelRepo:   hotelRepo,
		bookingRepo: bookingRepo,
		auditRepo:   auditRepo,
		statsCache:  statsCache,
	}
}

// Create validates and persists a new room. New rooms always start in the
// available state regardless of what the caller sent.
func (s *RoomService) Create(ctx context.Context, room *models.Room, userID uint) (*models.Room, error) {
	if room.HotelID == 0 {
		return nil, apperrors.Validationf("hotel reference is required")
	}

	exists, err := s.hotelRepo.Exists(room.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to check hotel: %w", err)
	}
	if !exists {
		return nil, apperrors.NotFoundf("hotel %d not found", room.HotelID)
	}

	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.Capacity == 0 {
		room.Capacity = 1
	}
	if room.Floor == 0 {
		room.Floor = 1
	}
	room.Status = models.StatusAvailable
	room.HousekeepingStatus = models.HousekeepingClean
	room.CurrentBooking = nil
	room.BookingCheckOut = nil

	if err := room.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.roomRepo.NumberTakenInHotel(room.HotelID, room.RoomNumber, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check room number: %w", err)
	}
	if taken {
		return nil, apperrors.Conflictf("room number %q already exists in hotel %d", room.RoomNumber, room.HotelID)
	}

	if err := s.roomRepo.Create(room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.audit(&userID, "room_create", fmt.Sprintf("Created room %s (number: %s, hotel_id: %d)", room.Name, room.RoomNumber, room.HotelID))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// mergeRoomUpdate applies the editable fields of input onto room. The only
// lifecycle change allowed here is parking a non-occupied room out of
// order; bookings and maintenance go through their own transitions.
func (s *RoomService) mergeRoomUpdate(room *models.Room, input *models.Room) error {
	if input.RoomNumber != "" && input.RoomNumber != room.RoomNumber {
		taken, err := s.roomRepo.NumberTakenInHotel(room.HotelID, input.RoomNumber, room.ID)
		if err != nil {
			return fmt.Errorf("failed to check room number: %w", err)
		}
		if taken {
			return apperrors.Conflictf("room number %q already exists in hotel %d", input.RoomNumber, room.HotelID)
		}
		room.RoomNumber = input.RoomNumber
	}
	if input.Name != "" {
		room.Name = input.Name
	}
	if input.Type != "" {
		room.Type = input.Type
	}
	if input.Price > 0 {
		room.Price = input.Price
	}
	if input.Description != "" {
		room.Description = input.Description
	}
	if input.Capacity > 0 {
		room.Capacity = input.Capacity
	}
	if input.Floor > 0 {
		room.Floor = input.Floor
	}
	if len(input.Amenities) > 0 {
		room.Amenities = input.Amenities
	}
	if len(input.Images) > 0 {
		room.Images = input.Images
	}
	if input.HousekeepingStatus != "" {
		room.HousekeepingStatus = input.HousekeepingStatus
	}
	if input.Status != "" && input.Status != room.Status {
		if input.Status != models.StatusOutOfOrder {
			return apperrors.Validationf("status cannot be set to %s here; use the booking and maintenance endpoints", input.Status)
		}
		if room.IsBooked() {
			return apperrors.InvalidStatef("room %d cannot be taken out of order while occupied", room.ID)
		}
		room.Status = models.StatusOutOfOrder
	}
	return room.Validate()
}

// Update applies editable fields to a room under lock.
func (s *RoomService) Update(ctx context.Context, id uint, input *models.Room, userID uint) (*models.Room, error) {
	input.RoomNumber = strings.TrimSpace(input.RoomNumber)

	room, err := s.roomRepo.UpdateWithLock(id, func(room *models.Room) error {
		return s.mergeRoomUpdate(room, input)
	})
	if err != nil {
		return nil, err
	}

	s.audit(&userID, "room_update", fmt.Sprintf("Updated room %s (ID: %d)", room.Name, room.ID))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// BulkUpdateResult reports what a bulk update did. Failed maps room IDs to
// the error that prevented their update.
type BulkUpdateResult struct {
	Updated []uint          `json:"updated"`
	Failed  map[uint]string `json:"failed,omitempty"`
}

// BulkUpdate applies the same editable fields to many rooms at once. Each
// room is updated under its own lock with full validation; one room's
// failure does not stop the rest.
func (s *RoomService) BulkUpdate(ctx context.Context, ids []uint, input *models.Room, userID uint) (*BulkUpdateResult, error) {
	if len(ids) == 0 {
		return nil, apperrors.Validationf("room ids are required")
	}
	input.RoomNumber = strings.TrimSpace(input.RoomNumber)

	result := &BulkUpdateResult{Updated: []uint{}}
	for _, id := range ids {
		room, err := s.roomRepo.UpdateWithLock(id, func(room *models.Room) error {
			return s.mergeRoomUpdate(room, input)
		})
		if err != nil {
			if result.Failed == nil {
				result.Failed = make(map[uint]string)
			}
			result.Failed[id] = err.Error()
			continue
		}
		s.statsCache.Invalidate(ctx, room.HotelID)
		result.Updated = append(result.Updated, id)
	}

	if len(result.Updated) > 0 {
		s.audit(&userID, "room_bulk_update", fmt.Sprintf("Bulk updated %d room(s)", len(result.Updated)))
	}

	return result, nil
}

// Get retrieves a single room.
func (s *RoomService) Get(id uint) (*models.Room, error) {
	return s.roomRepo.GetByID(id)
}

// Delete removes a room permanently.
func (s *RoomService) Delete(ctx context.Context, id uint, userID uint) error {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.roomRepo.Delete(id); err != nil {
		return err
	}

	s.audit(&userID, "room_delete", fmt.Sprintf("Deleted room %s (ID: %d)", room.Name, id))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return nil
}

// Book places a guest in an available room, stores the snapshot, and opens
// a booking history record. Rooms that are occupied, being cleaned, or
// under maintenance are rejected.
func (s *RoomService) Book(ctx context.Context, roomID uint, details BookingDetails) (*models.Room, *models.Booking, error) {
	reference := uuid.New().String()
	checkIn := details.CheckIn
	checkOut := details.CheckOut

	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		return room.ApplyBooking(models.RoomBooking{
			GuestName:  details.GuestName,
			GuestEmail: details.GuestEmail,
			GuestPhone: details.GuestPhone,
			CheckIn:    &checkIn,
			CheckOut:   &checkOut,
			Reference:  reference,
		})
	})
	if err != nil {
		return nil, nil, err
	}

	guests := details.Guests
	if guests < 1 {
		guests = 1
	}
	booking := &models.Booking{
		Reference:  reference,
		RoomID:     room.ID,
		HotelID:    room.HotelID,
		GuestName:  details.GuestName,
		GuestEmail: details.GuestEmail,
		GuestPhone: details.GuestPhone,
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Guests:     guests,
		Status:     models.BookingActive,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		// The room transition already committed; history is best effort.
		logger.Get().Warnf("Failed to record booking %s for room %d: %v", reference, room.ID, err)
	}

	s.audit(nil, "room_book", fmt.Sprintf("Booked room %d for %s (ref: %s)", room.ID, details.GuestName, reference))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, booking, nil
}

// Cancel releases a booked room back to the pool immediately. The booking
// history record is marked cancelled.
func (s *RoomService) Cancel(ctx context.Context, roomID uint, userID uint) (*models.Room, error) {
	var reference string
	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		if b := room.Booking(); b != nil {
			reference = b.Reference
		}
		return room.ApplyCancellation()
	})
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SetStatusByReference(reference, models.BookingCancelled); err != nil {
		logger.Get().Warnf("Failed to mark booking %s cancelled: %v", reference, err)
	}

	s.audit(&userID, "room_cancel", fmt.Sprintf("Cancelled booking on room %d (ref: %s)", room.ID, reference))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// Checkout ends a stay gracefully. The room moves to cleaning rather than
// straight back to available.
func (s *RoomService) Checkout(ctx context.Context, roomID uint, userID uint) (*models.Room, error) {
	var reference string
	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		if b := room.Booking(); b != nil {
			reference = b.Reference
		}
		return room.ApplyCheckout()
	})
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SetStatusByReference(reference, models.BookingCompleted); err != nil {
		logger.Get().Warnf("Failed to mark booking %s completed: %v", reference, err)
	}

	s.audit(&userID, "room_checkout", fmt.Sprintf("Checked out room %d (ref: %s)", room.ID, reference))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// SetMaintenance pulls a room from the bookable pool. An active booking is
// cancelled: maintenance overrides any stay.
func (s *RoomService) SetMaintenance(ctx context.Context, roomID uint, notes string, userID uint) (*models.Room, error) {
	var reference string
	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		if b := room.Booking(); b != nil {
			reference = b.Reference
		}
		room.ApplyMaintenance(notes, time.Now().UTC())
		return nil
	})
	if err != nil {
		return nil, err
	}

	if reference != "" {
		if err := s.bookingRepo.SetStatusByReference(reference, models.BookingCancelled); err != nil {
			logger.Get().Warnf("Failed to mark booking %s cancelled: %v", reference, err)
		}
	}

	s.audit(&userID, "room_maintenance", fmt.Sprintf("Room %d placed under maintenance: %s", room.ID, notes))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// ClearMaintenance returns a maintenance room to the bookable pool.
func (s *RoomService) ClearMaintenance(ctx context.Context, roomID uint, userID uint) (*models.Room, error) {
	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		return room.ClearMaintenance()
	})
	if err != nil {
		return nil, err
	}

	s.audit(&userID, "room_maintenance_cleared", fmt.Sprintf("Room %d returned to service", room.ID))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// CompleteCleaning finishes the turnover after a checkout and makes the
// room rebookable.
func (s *RoomService) CompleteCleaning(ctx context.Context, roomID uint, userID uint) (*models.Room, error) {
	room, err := s.roomRepo.UpdateWithLock(roomID, func(room *models.Room) error {
		return room.CompleteCleaning(time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}

	s.audit(&userID, "room_cleaned", fmt.Sprintf("Room %d cleaned and available", room.ID))
	s.statsCache.Invalidate(ctx, room.HotelID)

	return room, nil
}

// SweepResult reports what a stale-booking sweep did. Failed maps room IDs
// to the error that prevented their expiry.
type SweepResult struct {
	Expired []uint          `json:"expired"`
	Failed  map[uint]string `json:"failed,omitempty"`
}

// ExpireStaleBookings releases every occupied room whose check-out date is
// at or before now, as if checkout were called. One room's failure does not
// stop the sweep, and running the sweep twice with the same timestamp is a
// no-op the second time.
func (s *RoomService) ExpireStaleBookings(ctx context.Context, now time.Time) (*SweepResult, error) {
	ids, err := s.roomRepo.FindExpiredOccupied(now)
	if err != nil {
		return nil, fmt.Errorf("failed to find expired bookings: %w", err)
	}

	result := &SweepResult{Expired: []uint{}}
	for _, id := range ids {
		var reference string
		var hotelID uint
		room, err := s.roomRepo.UpdateWithLock(id, func(room *models.Room) error {
			// Re-check under lock: a concurrent transition may have
			// released the room between the scan and here.
			if !room.BookingExpired(now) {
				return apperrors.InvalidStatef("room %d no longer expired", room.ID)
			}
			if b := room.Booking(); b != nil {
				reference = b.Reference
			}
			return room.ApplyCheckout()
		})
		if err != nil {
			if result.Failed == nil {
				result.Failed = make(map[uint]string)
			}
			result.Failed[id] = err.Error()
			logger.Get().Warnf("Sweep failed to expire room %d: %v", id, err)
			continue
		}
		hotelID = room.HotelID

		if err := s.bookingRepo.SetStatusByReference(reference, models.BookingExpired); err != nil {
			logger.Get().Warnf("Failed to mark booking %s expired: %v", reference, err)
		}
		s.statsCache.Invalidate(ctx, hotelID)
		result.Expired = append(result.Expired, id)
	}

	if len(result.Expired) > 0 {
		s.audit(nil, "booking_sweep", fmt.Sprintf("Expired %d stale booking(s)", len(result.Expired)))
	}

	return result, nil
}

func (s *RoomService) audit(userID *uint, action, details string) {
	if err := s.auditRepo.CreateAuditLog(userID, action, details); err != nil {
		logger.Get().Warnf("Failed to write audit log (%s): %v", action, err)
	}
}
