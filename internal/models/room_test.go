package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/internal/apperrors"
)

func validRoom() *Room {
	return &Room{
		ID:       1,
		HotelID:  1,
		Name:     "Ocean View",
		Type:     RoomTypeDouble,
		Price:    120,
		Capacity: 2,
		Floor:    3,
		Status:   StatusAvailable,
	}
}

func sampleBooking() RoomBooking {
	checkIn := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 4, 11, 0, 0, 0, time.UTC)
	return RoomBooking{
		GuestName:  "Alice Smith",
		GuestEmail: "alice@example.com",
		CheckIn:    &checkIn,
		CheckOut:   &checkOut,
		Reference:  "ref-123",
	}
}

func TestApplyBooking(t *testing.T) {
	room := validRoom()

	err := room.ApplyBooking(sampleBooking())
	require.NoError(t, err)

	assert.Equal(t, StatusOccupied, room.Status)
	assert.True(t, room.IsBooked())
	assert.True(t, room.IsAvailable())
	assert.False(t, room.IsBookable())

	b := room.Booking()
	require.NotNil(t, b)
	assert.Equal(t, "Alice Smith", b.GuestName)
	assert.Equal(t, "ref-123", b.Reference)
	require.NotNil(t, room.BookingCheckOut)
	assert.Equal(t, *b.CheckOut, *room.BookingCheckOut)
}

func TestApplyBookingRejectsNonAvailableStates(t *testing.T) {
	for _, status := range []RoomStatus{StatusOccupied, StatusCleaning, StatusMaintenance, StatusOutOfOrder} {
		room := validRoom()
		room.Status = status

		err := room.ApplyBooking(sampleBooking())
		require.Error(t, err, "status %s", status)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
	}
}

func TestApplyBookingRequiresGuestDetails(t *testing.T) {
	room := validRoom()
	b := sampleBooking()
	b.GuestEmail = ""

	err := room.ApplyBooking(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Equal(t, StatusAvailable, room.Status)

	room = validRoom()
	b = sampleBooking()
	b.CheckOut = nil

	err = room.ApplyBooking(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestApplyCancellation(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))

	err := room.ApplyCancellation()
	require.NoError(t, err)

	assert.Equal(t, StatusAvailable, room.Status)
	assert.Nil(t, room.Booking())
	assert.Nil(t, room.BookingCheckOut)
	assert.True(t, room.IsBookable())
}

func TestApplyCancellationRequiresBooking(t *testing.T) {
	room := validRoom()

	err := room.ApplyCancellation()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestApplyCheckout(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))

	err := room.ApplyCheckout()
	require.NoError(t, err)

	assert.Equal(t, StatusCleaning, room.Status)
	assert.Equal(t, HousekeepingDirty, room.HousekeepingStatus)
	assert.Nil(t, room.Booking())
	assert.False(t, room.IsBookable())
	assert.True(t, room.IsAvailable())
}

func TestApplyMaintenanceOverridesBooking(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))

	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	room.ApplyMaintenance("leaking pipe", now)

	assert.Equal(t, StatusMaintenance, room.Status)
	assert.Equal(t, "leaking pipe", room.MaintenanceNotes)
	require.NotNil(t, room.LastMaintenance)
	assert.Equal(t, now, *room.LastMaintenance)
	assert.Nil(t, room.Booking())
	assert.False(t, room.IsAvailable())
	assert.False(t, room.IsBooked())
}

func TestClearMaintenance(t *testing.T) {
	room := validRoom()
	room.ApplyMaintenance("repaint", time.Now())

	require.NoError(t, room.ClearMaintenance())
	assert.Equal(t, StatusAvailable, room.Status)

	room.Status = StatusOutOfOrder
	require.NoError(t, room.ClearMaintenance())
	assert.Equal(t, StatusAvailable, room.Status)

	err := room.ClearMaintenance()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestCompleteCleaning(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))
	require.NoError(t, room.ApplyCheckout())

	now := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	require.NoError(t, room.CompleteCleaning(now))

	assert.Equal(t, StatusAvailable, room.Status)
	assert.Equal(t, HousekeepingClean, room.HousekeepingStatus)
	require.NotNil(t, room.LastCleaned)
	assert.Equal(t, now, *room.LastCleaned)

	err := room.CompleteCleaning(now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))
}

func TestBookingExpired(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))

	checkOut := *room.BookingCheckOut

	assert.False(t, room.BookingExpired(checkOut.Add(-time.Hour)))
	assert.True(t, room.BookingExpired(checkOut))
	assert.True(t, room.BookingExpired(checkOut.Add(time.Hour)))

	// Released rooms are never expired, even with stale data
	require.NoError(t, room.ApplyCancellation())
	assert.False(t, room.BookingExpired(checkOut.Add(time.Hour)))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Room)
		valid  bool
	}{
		{"valid room", func(r *Room) {}, true},
		{"missing name", func(r *Room) { r.Name = " " }, false},
		{"missing type", func(r *Room) { r.Type = "" }, false},
		{"unknown type", func(r *Room) { r.Type = "penthouse" }, false},
		{"negative price", func(r *Room) { r.Price = -1 }, false},
		{"missing price", func(r *Room) { r.Price = 0 }, false},
		{"valid housekeeping", func(r *Room) { r.HousekeepingStatus = HousekeepingInspected }, true},
		{"unknown housekeeping", func(r *Room) { r.HousekeepingStatus = "spotless" }, false},
		{"zero capacity", func(r *Room) { r.Capacity = 0 }, false},
		{"capacity too large", func(r *Room) { r.Capacity = 11 }, false},
		{"zero floor", func(r *Room) { r.Floor = 0 }, false},
		{"valid amenities", func(r *Room) { r.Amenities = mustJSON([]string{"wifi", "tv"}) }, true},
		{"unknown amenity", func(r *Room) { r.Amenities = mustJSON([]string{"wifi", "jacuzzi"}) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := validRoom()
			tt.mutate(room)

			err := room.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, apperrors.ErrValidation))
			}
		})
	}
}

func TestMarshalJSONProjections(t *testing.T) {
	room := validRoom()
	require.NoError(t, room.ApplyBooking(sampleBooking()))

	raw, err := json.Marshal(room)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, true, out["isAvailable"])
	assert.Equal(t, true, out["isBooked"])
	assert.Equal(t, string(StatusOccupied), out["status"])

	booking, ok := out["currentBooking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Alice Smith", booking["guestName"])

	// Snapshot disappears once the room is released
	require.NoError(t, room.ApplyCancellation())
	raw, err = json.Marshal(room)
	require.NoError(t, err)
	out = map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, false, out["isBooked"])
	_, present := out["currentBooking"]
	assert.False(t, present)
}

func TestAmenityList(t *testing.T) {
	room := validRoom()
	assert.Empty(t, room.AmenityList())

	room.Amenities = mustJSON([]string{"wifi", "pool"})
	assert.Equal(t, []string{"wifi", "pool"}, room.AmenityList())

	room.Amenities = []byte("{not json")
	assert.Empty(t, room.AmenityList())
}

func mustJSON(v interface{}) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
