package service

import (
	"context"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/cache"
	"hotel-management-backend/internal/models"
	"hotel-management-backend/internal/repository"
)

const (
	defaultListLimit   = 50
	defaultSearchLimit = 20
)

// RoomQueryService answers read-only filter, search, and statistics
// requests. It never mutates room state; statistics are always computed
// from current rows (the Redis layer is a short-lived cache, not derived
// state).
type RoomQueryService struct {
	roomRepo   *repository.RoomRepository
	hotelRepo  *repository.HotelRepository
	statsCache *cache.StatsCache
}

func NewRoomQueryService(
	roomRepo *repository.RoomRepository,
	hotelRepo *repository.HotelRepository,
	statsCache *cache.StatsCache,
) *RoomQueryService {
	return &RoomQueryService{
		roomRepo:   roomRepo,
		hotelRepo:  hotelRepo,
		statsCache: statsCache,
	}
}

// List returns a page of rooms matching the filter, newest first. Queries
// that match nothing return an empty page, not an error.
func (s *RoomQueryService) List(f repository.RoomFilter, page, limit int) ([]models.Room, repository.PageRequest, int64, error) {
	p := repository.NormalizePage(page, limit, defaultListLimit)
	rooms, total, err := s.roomRepo.List(f, p)
	return rooms, p, total, err
}

// ListByHotel returns one hotel's rooms in floor/room-number order. A
// missing hotel is an error, unlike an empty result.
func (s *RoomQueryService) ListByHotel(hotelID uint, page, limit int) ([]models.Room, *models.Hotel, repository.PageRequest, int64, error) {
	hotel, err := s.hotelRepo.GetByID(hotelID)
	if err != nil {
		return nil, nil, repository.PageRequest{}, 0, err
	}

	p := repository.NormalizePage(page, limit, defaultListLimit)
	rooms, total, err := s.roomRepo.ListByHotel(hotelID, p)
	return rooms, hotel, p, total, err
}

// Search runs the advanced room search.
func (s *RoomQueryService) Search(q repository.RoomSearchQuery, page, limit int) ([]models.Room, repository.PageRequest, int64, error) {
	p := repository.NormalizePage(page, limit, defaultSearchLimit)
	rooms, total, err := s.roomRepo.Search(q, p)
	return rooms, p, total, err
}

// Statistics aggregates room counts and prices, optionally scoped to a
// hotel. Scoped requests verify the hotel exists first.
func (s *RoomQueryService) Statistics(ctx context.Context, hotelID *uint) (*repository.RoomStatistics, error) {
	if hotelID != nil {
		exists, err := s.hotelRepo.Exists(*hotelID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.NotFoundf("hotel %d not found", *hotelID)
		}
	}

	if cached := s.statsCache.Get(ctx, hotelID); cached != nil {
		return cached, nil
	}

	stats, err := s.roomRepo.Statistics(hotelID)
	if err != nil {
		return nil, err
	}

	s.statsCache.Set(ctx, hotelID, stats)
	return stats, nil
}
