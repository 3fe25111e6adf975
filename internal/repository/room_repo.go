package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// NormalizePage clamps page and limit to positive values, applying the
// given default limit when none was supplied.
func NormalizePage(page, limit, defaultLimit int) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

// Offset returns the row offset for this page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// RoomFilter is the conjunctive filter set for plain room listings.
type RoomFilter struct {
	HotelID       *uint
	Type          string
	MinPrice      *float64
	MaxPrice      *float64
	AvailableOnly bool
}

// RoomSearchQuery extends RoomFilter with free text, capacity, amenity and
// floor dimensions plus caller-selectable ordering.
type RoomSearchQuery struct {
	FreeText      string
	HotelID       *uint
	Type          string
	MinPrice      *float64
	MaxPrice      *float64
	CapacityMin   *int
	AmenitiesAny  []string
	Floor         *int
	AvailableOnly bool
	SortField     string
	SortDesc      bool
}

// RoomTypeStat is one row of the per-type statistics breakdown.
type RoomTypeStat struct {
	Type     string  `json:"type"`
	Count    int64   `json:"count"`
	AvgPrice float64 `json:"avgPrice"`
}

// RoomStatistics aggregates counts and price figures over a room set.
// Empty sets produce zeroes, never nulls.
type RoomStatistics struct {
	Total         int64          `json:"total"`
	Available     int64          `json:"available"`
	Booked        int64          `json:"booked"`
	Maintenance   int64          `json:"maintenance"`
	AvgPrice      float64        `json:"avgPrice"`
	MinPrice      float64        `json:"minPrice"`
	MaxPrice      float64        `json:"maxPrice"`
	TypeBreakdown []RoomTypeStat `json:"typeBreakdown"`
}

// roomSortColumns whitelists caller-selectable sort fields against their
// database columns.
var roomSortColumns = map[string]string{
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
	"price":      "price",
	"name":       "name",
	"floor":      "floor",
	"capacity":   "capacity",
	"type":       "type",
	"roomNumber": "room_number",
}

// RoomSortColumn maps an API sort field to its column, falling back to
// created_at for unknown fields.
func RoomSortColumn(field string) string {
	if col, ok := roomSortColumns[field]; ok {
		return col
	}
	return "created_at"
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create persists a new room.
func (r *RoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// GetByID retrieves a room by ID with its hotel preloaded.
func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Preload("Hotel").First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFoundf("room %d not found", id)
		}
		return nil, err
	}
	return &room, nil
}

// UpdateWithLock runs fn against the room row under a SELECT ... FOR UPDATE
// lock and saves the result, all inside one transaction. Concurrent
// transitions on the same room serialize here, which is what prevents a
// double booking.
func (r *RoomRepository) UpdateWithLock(id uint, fn func(*models.Room) error) (*models.Room, error) {
	var room models.Room
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFoundf("room %d not found", id)
			}
			return err
		}
		if err := fn(&room); err != nil {
			return err
		}
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// Save persists changes to an existing room.
func (r *RoomRepository) Save(room *models.Room) error {
	return r.db.Save(room).Error
}

// Delete removes a room permanently.
func (r *RoomRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFoundf("room %d not found", id)
	}
	return nil
}

// NumberTakenInHotel reports whether another room in the same hotel already
// uses this room number. Empty room numbers are never considered taken.
func (r *RoomRepository) NumberTakenInHotel(hotelID uint, roomNumber string, excludeID uint) (bool, error) {
	if roomNumber == "" {
		return false, nil
	}
	var count int64
	q := r.db.Model(&models.Room{}).
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyRoomFilter(q *gorm.DB, f RoomFilter) *gorm.DB {
	if f.HotelID != nil {
		q = q.Where("hotel_id = ?", *f.HotelID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.AvailableOnly {
		q = q.Where("status NOT IN ?", []models.RoomStatus{models.StatusMaintenance, models.StatusOutOfOrder})
	}
	return q
}

// List returns a page of rooms matching the filter, newest first, with the
// total matching count.
func (r *RoomRepository) List(f RoomFilter, p PageRequest) ([]models.Room, int64, error) {
	q := applyRoomFilter(r.db.Model(&models.Room{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []models.Room
	err := q.Preload("Hotel").
		Order("created_at DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rooms).Error
	return rooms, total, err
}

// ListByHotel returns one hotel's rooms in housekeeping-walk order: floor
// ascending, then room number ascending.
func (r *RoomRepository) ListByHotel(hotelID uint, p PageRequest) ([]models.Room, int64, error) {
	q := r.db.Model(&models.Room{}).Where("hotel_id = ?", hotelID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rooms []models.Room
	err := q.Order("floor ASC, room_number ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rooms).Error
	return rooms, total, err
}

// Search runs the advanced filter query. Free text is a case-insensitive
// substring match ORed across name, description, room number, and type;
// every other dimension is ANDed.
func (r *RoomRepository) Search(query RoomSearchQuery, p PageRequest) ([]models.Room, int64, error) {
	q := r.db.Model(&models.Room{})

	if text := strings.TrimSpace(query.FreeText); text != "" {
		pattern := "%" + text + "%"
		q = q.Where(
			"name LIKE ? OR description LIKE ? OR room_number LIKE ? OR type LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}
	q = applyRoomFilter(q, RoomFilter{
		HotelID:  query.HotelID,
		Type:     query.Type,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
	})
	if query.CapacityMin != nil {
		q = q.Where("capacity >= ?", *query.CapacityMin)
	}
	if query.Floor != nil {
		q = q.Where("floor = ?", *query.Floor)
	}
	if len(query.AmenitiesAny) > 0 {
		conds := make([]string, 0, len(query.AmenitiesAny))
		args := make([]interface{}, 0, len(query.AmenitiesAny))
		for _, amenity := range query.AmenitiesAny {
			quoted, _ := json.Marshal(amenity)
			conds = append(conds, "JSON_CONTAINS(amenities, ?)")
			args = append(args, string(quoted))
		}
		q = q.Where(strings.Join(conds, " OR "), args...)
	}
	if query.AvailableOnly {
		// availableOnly on search additionally excludes occupied rooms
		q = q.Where("status IN ?", []models.RoomStatus{models.StatusAvailable, models.StatusCleaning})
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := RoomSortColumn(query.SortField)
	if query.SortDesc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var rooms []models.Room
	err := q.Preload("Hotel").
		Order(order).
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rooms).Error
	return rooms, total, err
}

// Statistics aggregates room counts and price figures, optionally scoped to
// one hotel. Counts bucket by the status projections: available means
// operationally usable and unoccupied, maintenance means pulled from the
// pool.
func (r *RoomRepository) Statistics(hotelID *uint) (*RoomStatistics, error) {
	scope := func() *gorm.DB {
		q := r.db.Model(&models.Room{})
		if hotelID != nil {
			q = q.Where("hotel_id = ?", *hotelID)
		}
		return q
	}

	var row struct {
		Total       int64
		Available   int64
		Booked      int64
		Maintenance int64
		AvgPrice    float64
		MinPrice    float64
		MaxPrice    float64
	}
	err := scope().Select(
		"COUNT(*) AS total, " +
			"COALESCE(SUM(CASE WHEN status IN ('available','cleaning') THEN 1 ELSE 0 END), 0) AS available, " +
			"COALESCE(SUM(CASE WHEN status = 'occupied' THEN 1 ELSE 0 END), 0) AS booked, " +
			"COALESCE(SUM(CASE WHEN status IN ('maintenance','out_of_order') THEN 1 ELSE 0 END), 0) AS maintenance, " +
			"COALESCE(ROUND(AVG(price)), 0) AS avg_price, " +
			"COALESCE(MIN(price), 0) AS min_price, " +
			"COALESCE(MAX(price), 0) AS max_price",
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	// The headline average is rounded; the per-type averages are not.
	var breakdown []RoomTypeStat
	err = scope().Select("type, COUNT(*) AS count, COALESCE(AVG(price), 0) AS avg_price").
		Group("type").
		Order("type ASC").
		Scan(&breakdown).Error
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		breakdown = []RoomTypeStat{}
	}

	return &RoomStatistics{
		Total:         row.Total,
		Available:     row.Available,
		Booked:        row.Booked,
		Maintenance:   row.Maintenance,
		AvgPrice:      row.AvgPrice,
		MinPrice:      row.MinPrice,
		MaxPrice:      row.MaxPrice,
		TypeBreakdown: breakdown,
	}, nil
}

// FindExpiredOccupied returns the IDs of occupied rooms whose check-out
// date is at or before now. The sweep transitions each one individually.
func (r *RoomRepository) FindExpiredOccupied(now time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Room{}).
		Where("status = ? AND booking_check_out IS NOT NULL AND booking_check_out <= ?", models.StatusOccupied, now).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteByHotelTx removes all rooms of a hotel inside the caller's
// transaction. Used by the hotel-deletion cascade.
func (r *RoomRepository) DeleteByHotelTx(tx *gorm.DB, hotelID uint) error {
	return tx.Where("hotel_id = ?", hotelID).Delete(&models.Room{}).Error
}
