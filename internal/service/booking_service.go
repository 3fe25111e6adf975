package service

import (
	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
)

const defaultBookingLimit = 50

// BookingService exposes the booking history kept alongside the room
// lifecycle. All writes happen through RoomService transitions; this
// service only reads.
type BookingService struct {
	bookingRepo *repository.BookingRepository
}

func NewBookingService(bookingRepo *repository.BookingRepository) *BookingService {
	return &BookingService{bookingRepo: bookingRepo}
}

// List returns a page of bookings, newest first.
func (s *BookingService) List(page, limit int) ([]models.Booking, repository.PageRequest, int64, error) {
	p := repository.NormalizePage(page, limit, defaultBookingLimit)
	bookings, total, err := s.bookingRepo.List(p)
	return bookings, p, total, err
}

// GetByReference looks up a single booking by its reference.
func (s *BookingService) GetByReference(reference string) (*models.Booking, error) {
	return s.bookingRepo.GetByReference(reference)
}

// ListByGuestEmail returns every booking made under a guest email.
func (s *BookingService) ListByGuestEmail(email string) ([]models.Booking, error) {
	return s.bookingRepo.ListByGuestEmail(email)
}
