package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"hotel-management-backend/internal/apperrors"
)

// RoomStatus is the single authoritative lifecycle state of a room. The
// isAvailable/isBooked flags exposed over the API are projections of it,
// so inconsistent flag combinations cannot be stored.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "available"
	StatusOccupied    RoomStatus = "occupied"
	StatusCleaning    RoomStatus = "cleaning"
	StatusMaintenance RoomStatus = "maintenance"
	StatusOutOfOrder  RoomStatus = "out_of_order"
)

// Room types accepted on create/update.
const (
	RoomTypeSingle       = "single"
	RoomTypeDouble       = "double"
	RoomTypeDeluxe       = "deluxe"
	RoomTypeSuite        = "suite"
	RoomTypePresidential = "presidential"
)

// Housekeeping statuses tracked independently of the lifecycle state.
const (
	HousekeepingClean      = "clean"
	HousekeepingDirty      = "dirty"
	HousekeepingInspected  = "inspected"
	HousekeepingOutOfOrder = "out_of_order"
)

var roomTypes = map[string]bool{
	RoomTypeSingle:       true,
	RoomTypeDouble:       true,
	RoomTypeDeluxe:       true,
	RoomTypeSuite:        true,
	RoomTypePresidential: true,
}

var housekeepingStatuses = map[string]bool{
	HousekeepingClean:      true,
	HousekeepingDirty:      true,
	HousekeepingInspected:  true,
	HousekeepingOutOfOrder: true,
}

// roomAmenities is the fixed amenity vocabulary.
var roomAmenities = map[string]bool{
	"wifi": true, "tv": true, "ac": true, "minibar": true, "balcony": true,
	"parking": true, "breakfast": true, "gym": true, "pool": true, "spa": true,
	"roomservice": true, "laundry": true, "safe": true, "hairdryer": true,
	"bathtub": true, "shower": true, "workdesk": true, "telephone": true,
	"coffemaker": true, "refrigerator": true,
}

// ValidRoomType reports whether t is an accepted room type.
func ValidRoomType(t string) bool {
	return roomTypes[t]
}

// ValidAmenity reports whether a is part of the amenity vocabulary.
func ValidAmenity(a string) bool {
	return roomAmenities[a]
}

// ValidHousekeepingStatus reports whether s is an accepted housekeeping
// status.
func ValidHousekeepingStatus(s string) bool {
	return housekeepingStatuses[s]
}

// RoomBooking is the guest snapshot held by a room while it is occupied.
// It is cleared on checkout, cancellation, and maintenance.
type RoomBooking struct {
	GuestName  string     `json:"guestName"`
	GuestEmail string     `json:"guestEmail"`
	GuestPhone string     `json:"guestPhone,omitempty"`
	CheckIn    *time.Time `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	Reference  string     `json:"reference"`
}

// Room represents a bookable unit belonging to exactly one hotel.
type Room struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	HotelID     uint    `gorm:"not null;index" json:"hotelId"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	RoomNumber  string  `gorm:"size:10;index" json:"roomNumber"`
	Type        string  `gorm:"size:20;not null" json:"type"`
	Price       float64 `gorm:"not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Capacity    int     `gorm:"default:1" json:"capacity"`
	Floor       int     `gorm:"default:1" json:"floor"`

	Amenities datatypes.JSON `gorm:"type:json" json:"amenities"`
	Images    datatypes.JSON `gorm:"type:json" json:"images"`

	Status             RoomStatus `gorm:"size:20;default:'available';index" json:"status"`
	HousekeepingStatus string     `gorm:"size:20;default:'clean'" json:"housekeepingStatus"`

	MaintenanceNotes string     `gorm:"type:text" json:"maintenanceNotes,omitempty"`
	LastMaintenance  *time.Time `json:"lastMaintenance,omitempty"`
	LastCleaned      *time.Time `json:"lastCleaned,omitempty"`

	// CurrentBooking holds the serialized guest snapshot while occupied.
	// BookingCheckOut mirrors the snapshot's check-out date in its own
	// indexed column so the expiry sweep can query it directly.
	CurrentBooking  datatypes.JSON `gorm:"type:json" json:"-"`
	BookingCheckOut *time.Time     `gorm:"index" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Hotel *Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}

// IsAvailable reports whether the room is operationally usable, i.e. not
// pulled from the pool for maintenance.
func (r *Room) IsAvailable() bool {
	return r.Status != StatusMaintenance && r.Status != StatusOutOfOrder
}

// IsBooked reports whether the room is currently occupied.
func (r *Room) IsBooked() bool {
	return r.Status == StatusOccupied
}

// IsBookable reports whether a booking may be placed right now.
func (r *Room) IsBookable() bool {
	return r.Status == StatusAvailable
}

// Booking decodes the current guest snapshot. Returns nil when the room is
// not occupied.
func (r *Room) Booking() *RoomBooking {
	if len(r.CurrentBooking) == 0 {
		return nil
	}
	var b RoomBooking
	if err := json.Unmarshal(r.CurrentBooking, &b); err != nil {
		return nil
	}
	return &b
}

func (r *Room) setBooking(b *RoomBooking) {
	if b == nil {
		r.CurrentBooking = nil
		r.BookingCheckOut = nil
		return
	}
	raw, _ := json.Marshal(b)
	r.CurrentBooking = datatypes.JSON(raw)
	r.BookingCheckOut = b.CheckOut
}

// MarshalJSON adds the isAvailable/isBooked projections and the decoded
// guest snapshot so API responses keep the shape clients expect.
func (r Room) MarshalJSON() ([]byte, error) {
	type alias Room
	return json.Marshal(struct {
		alias
		IsAvailable    bool         `json:"isAvailable"`
		IsBooked       bool         `json:"isBooked"`
		CurrentBooking *RoomBooking `json:"currentBooking,omitempty"`
	}{
		alias:          alias(r),
		IsAvailable:    r.IsAvailable(),
		IsBooked:       r.IsBooked(),
		CurrentBooking: r.Booking(),
	})
}

// Validate checks field bounds and enumerations before a create or update.
func (r *Room) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.Validationf("room name is required")
	}
	if r.Type == "" {
		return apperrors.Validationf("room type is required")
	}
	if !ValidRoomType(r.Type) {
		return apperrors.Validationf("room type must be single, double, deluxe, suite, or presidential")
	}
	if r.Price <= 0 {
		return apperrors.Validationf("room price is required and must be greater than zero")
	}
	if r.Capacity < 1 || r.Capacity > 10 {
		return apperrors.Validationf("capacity must be between 1 and 10")
	}
	if r.Floor < 1 {
		return apperrors.Validationf("floor must be at least 1")
	}
	if r.HousekeepingStatus != "" && !ValidHousekeepingStatus(r.HousekeepingStatus) {
		return apperrors.Validationf("housekeeping status must be clean, dirty, inspected, or out_of_order")
	}
	for _, a := range r.AmenityList() {
		if !ValidAmenity(a) {
			return apperrors.Validationf("unknown amenity %q", a)
		}
	}
	return nil
}

// AmenityList decodes the amenities JSON column. A missing or malformed
// column yields an empty list.
func (r *Room) AmenityList() []string {
	if len(r.Amenities) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(r.Amenities, &list); err != nil {
		return nil
	}
	return list
}

// ApplyBooking transitions available -> occupied and stores the guest
// snapshot. Rooms in any other state are rejected: callers are expected to
// pre-filter, and the engine refuses to double-book regardless.
func (r *Room) ApplyBooking(b RoomBooking) error {
	if !r.IsBookable() {
		return apperrors.InvalidStatef("room %d cannot be booked while %s", r.ID, r.Status)
	}
	if strings.TrimSpace(b.GuestName) == "" || strings.TrimSpace(b.GuestEmail) == "" {
		return apperrors.Validationf("guest name and email are required")
	}
	if b.CheckIn == nil || b.CheckOut == nil {
		return apperrors.Validationf("check-in and check-out dates are required")
	}
	r.Status = StatusOccupied
	r.setBooking(&b)
	return nil
}

// ApplyCancellation transitions occupied -> available and clears the guest
// snapshot. Used for admin cancellations; the room is immediately rebookable.
func (r *Room) ApplyCancellation() error {
	if !r.IsBooked() {
		return apperrors.InvalidStatef("room %d is not booked", r.ID)
	}
	r.Status = StatusAvailable
	r.setBooking(nil)
	return nil
}

// ApplyCheckout transitions occupied -> cleaning. Unlike cancellation the
// room needs a housekeeping pass before it becomes rebookable.
func (r *Room) ApplyCheckout() error {
	if !r.IsBooked() {
		return apperrors.InvalidStatef("room %d is not booked", r.ID)
	}
	r.Status = StatusCleaning
	r.HousekeepingStatus = HousekeepingDirty
	r.setBooking(nil)
	return nil
}

// ApplyMaintenance pulls the room from the bookable pool. Maintenance
// overrides any booking, so this never fails; an active guest snapshot is
// dropped to keep the snapshot-iff-occupied invariant.
func (r *Room) ApplyMaintenance(notes string, now time.Time) {
	r.Status = StatusMaintenance
	r.setBooking(nil)
	r.MaintenanceNotes = notes
	r.LastMaintenance = &now
}

// ClearMaintenance returns a maintenance or out-of-order room to the pool.
func (r *Room) ClearMaintenance() error {
	if r.Status != StatusMaintenance && r.Status != StatusOutOfOrder {
		return apperrors.InvalidStatef("room %d is not under maintenance", r.ID)
	}
	r.Status = StatusAvailable
	return nil
}

// CompleteCleaning finishes the turnover step after a checkout.
func (r *Room) CompleteCleaning(now time.Time) error {
	if r.Status != StatusCleaning {
		return apperrors.InvalidStatef("room %d is not being cleaned", r.ID)
	}
	r.Status = StatusAvailable
	r.HousekeepingStatus = HousekeepingClean
	r.LastCleaned = &now
	return nil
}

// BookingExpired reports whether the current booking's check-out date has
// passed. Rooms without an active booking are never expired.
func (r *Room) BookingExpired(now time.Time) bool {
	if !r.IsBooked() || r.BookingCheckOut == nil {
		return false
	}
	return !r.BookingCheckOut.After(now)
}
