package models

import "time"

// Booking lifecycle states for the history record. The room itself only
// knows about its current occupant; history rows outlive the stay.
const (
	BookingActive    = "active"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
	BookingExpired   = "expired"
)

// Booking is the persistent record of a stay, kept after the room's
// guest snapshot is cleared. Invoice rendering reads these rows.
type Booking struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Reference  string     `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	RoomID     uint       `gorm:"not null;index" json:"roomId"`
	HotelID    uint       `gorm:"index" json:"hotelId"`
	GuestName  string     `gorm:"size:100;not null" json:"guestName"`
	GuestEmail string     `gorm:"size:255;not null;index" json:"guestEmail"`
	GuestPhone string     `gorm:"size:30" json:"guestPhone,omitempty"`
	CheckIn    *time.Time `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut"`
	Guests     int        `gorm:"default:1" json:"guests"`
	Status     string     `gorm:"size:20;default:'active';index" json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`

	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}
