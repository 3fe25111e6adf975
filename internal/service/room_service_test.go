package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"
)

type fakeRoomStore struct {
	rooms map[uint]*models.Room
	// lockErrs fails UpdateWithLock for a room; staleScanIDs injects extra
	// ids into the expiry scan to model a stale snapshot.
	lockErrs     map[uint]error
	staleScanIDs []uint
	nextID       uint
}

func newFakeRoomStore() *fakeRoomStore {
	return &fakeRoomStore{rooms: map[uint]*models.Room{}, lockErrs: map[uint]error{}}
}

func (f *fakeRoomStore) Create(room *models.Room) error {
	f.nextID++
	room.ID = f.nextID
	copied := *room
	f.rooms[room.ID] = &copied
	return nil
}

func (f *fakeRoomStore) GetByID(id uint) (*models.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundf("room %d not found", id)
	}
	copied := *room
	return &copied, nil
}

// UpdateWithLock mirrors the transactional repo: fn works on a copy and
// nothing is saved when it fails.
func (f *fakeRoomStore) UpdateWithLock(id uint, fn func(*models.Room) error) (*models.Room, error) {
	if err := f.lockErrs[id]; err != nil {
		return nil, err
	}
	room, ok := f.rooms[id]
	if !ok {
		return nil, apperrors.NotFoundf("room %d not found", id)
	}
	copied := *room
	if err := fn(&copied); err != nil {
		return nil, err
	}
	*room = copied
	out := copied
	return &out, nil
}

func (f *fakeRoomStore) Delete(id uint) error {
	if _, ok := f.rooms[id]; !ok {
		return apperrors.NotFoundf("room %d not found", id)
	}
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomStore) NumberTakenInHotel(hotelID uint, roomNumber string, excludeID uint) (bool, error) {
	if roomNumber == "" {
		return false, nil
	}
	for _, room := range f.rooms {
		if room.HotelID == hotelID && room.RoomNumber == roomNumber && room.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRoomStore) FindExpiredOccupied(now time.Time) ([]uint, error) {
	ids := append([]uint{}, f.staleScanIDs...)
	for id, room := range f.rooms {
		if room.Status == models.StatusOccupied && room.BookingCheckOut != nil && !room.BookingCheckOut.After(now) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeHotelStore struct {
	hotels map[uint]bool
}

func (f *fakeHotelStore) Exists(id uint) (bool, error) {
	return f.hotels[id], nil
}

type fakeBookingStore struct {
	created  []models.Booking
	statuses map[string]string
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{statuses: map[string]string{}}
}

func (f *fakeBookingStore) Create(booking *models.Booking) error {
	f.created = append(f.created, *booking)
	f.statuses[booking.Reference] = booking.Status
	return nil
}

func (f *fakeBookingStore) SetStatusByReference(reference, status string) error {
	if reference == "" {
		return nil
	}
	f.statuses[reference] = status
	return nil
}

type fakeAuditStore struct {
	actions []string
}

func (f *fakeAuditStore) CreateAuditLog(userID *uint, action, details string) error {
	f.actions = append(f.actions, action)
	return nil
}

func newTestRoomService() (*RoomService, *fakeRoomStore, *fakeBookingStore) {
	rooms := newFakeRoomStore()
	bookings := newFakeBookingStore()
	svc := NewRoomService(
		rooms,
		&fakeHotelStore{hotels: map[uint]bool{1: true, 2: true}},
		bookings,
		&fakeAuditStore{},
		nil,
	)
	return svc, rooms, bookings
}

func seedRoom(t *testing.T, rooms *fakeRoomStore, hotelID uint, number string) *models.Room {
	t.Helper()
	room := &models.Room{
		HotelID:            hotelID,
		Name:               "Room " + number,
		RoomNumber:         number,
		Type:               models.RoomTypeDouble,
		Price:              150,
		Capacity:           2,
		Floor:              1,
		Status:             models.StatusAvailable,
		HousekeepingStatus: models.HousekeepingClean,
	}
	require.NoError(t, rooms.Create(room))
	return room
}

func occupyRoom(t *testing.T, svc *RoomService, roomID uint, checkOut time.Time) {
	t.Helper()
	_, _, err := svc.Book(context.Background(), roomID, BookingDetails{
		GuestName:  "Alice Smith",
		GuestEmail: "alice@example.com",
		CheckIn:    checkOut.Add(-48 * time.Hour),
		CheckOut:   checkOut,
	})
	require.NoError(t, err)
}

func TestCreateRejectsMissingPrice(t *testing.T) {
	svc, _, _ := newTestRoomService()

	_, err := svc.Create(context.Background(), &models.Room{
		HotelID: 1,
		Name:    "No Price",
		Type:    models.RoomTypeSingle,
	}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestCreateRoomNumberUniquePerHotel(t *testing.T) {
	svc, rooms, _ := newTestRoomService()
	seedRoom(t, rooms, 1, "101")

	// Same number in another hotel is fine
	created, err := svc.Create(context.Background(), &models.Room{
		HotelID:    2,
		Name:       "Twin",
		RoomNumber: "101",
		Type:       models.RoomTypeDouble,
		Price:      120,
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "101", created.RoomNumber)

	// Same number in the same hotel conflicts
	_, err = svc.Create(context.Background(), &models.Room{
		HotelID:    1,
		Name:       "Clash",
		RoomNumber: "101",
		Type:       models.RoomTypeDouble,
		Price:      120,
	}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
}

func TestUpdateStatusGuard(t *testing.T) {
	svc, rooms, _ := newTestRoomService()
	room := seedRoom(t, rooms, 1, "201")

	// Parking a free room out of order is allowed
	updated, err := svc.Update(context.Background(), room.ID, &models.Room{Status: models.StatusOutOfOrder}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOutOfOrder, updated.Status)
	assert.False(t, updated.IsAvailable())

	// And reversed through the maintenance path
	updated, err = svc.ClearMaintenance(context.Background(), room.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, updated.Status)

	// Occupied rooms cannot be parked
	occupyRoom(t, svc, room.ID, time.Now().Add(24*time.Hour))
	_, err = svc.Update(context.Background(), room.ID, &models.Room{Status: models.StatusOutOfOrder}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidState))

	// Other lifecycle states are not reachable through update
	_, err = svc.Update(context.Background(), room.ID, &models.Room{Status: models.StatusCleaning}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestBulkUpdateIsolatesFailures(t *testing.T) {
	svc, rooms, _ := newTestRoomService()
	a := seedRoom(t, rooms, 1, "301")
	b := seedRoom(t, rooms, 1, "302")

	result, err := svc.BulkUpdate(context.Background(), []uint{a.ID, 999, b.ID}, &models.Room{Price: 220}, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint{a.ID, b.ID}, result.Updated)
	require.Contains(t, result.Failed, uint(999))

	for _, id := range []uint{a.ID, b.ID} {
		room, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, 220.0, room.Price)
	}
}

func TestBulkUpdateRequiresIDs(t *testing.T) {
	svc, _, _ := newTestRoomService()

	_, err := svc.BulkUpdate(context.Background(), nil, &models.Room{Price: 220}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestExpireStaleBookingsIsIdempotent(t *testing.T) {
	svc, rooms, bookings := newTestRoomService()
	now := time.Now().UTC()

	stale1 := seedRoom(t, rooms, 1, "401")
	stale2 := seedRoom(t, rooms, 1, "402")
	fresh := seedRoom(t, rooms, 1, "403")
	occupyRoom(t, svc, stale1.ID, now.Add(-time.Hour))
	occupyRoom(t, svc, stale2.ID, now.Add(-2*time.Hour))
	occupyRoom(t, svc, fresh.ID, now.Add(24*time.Hour))

	result, err := svc.ExpireStaleBookings(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []uint{stale1.ID, stale2.ID}, result.Expired)
	assert.Empty(t, result.Failed)

	for _, id := range result.Expired {
		room, err := svc.Get(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusCleaning, room.Status)
		assert.Nil(t, room.Booking())
	}

	freshRoom, err := svc.Get(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, freshRoom.Status)

	// Expired history rows are marked, the future one stays active
	expiredCount := 0
	for _, status := range bookings.statuses {
		if status == models.BookingExpired {
			expiredCount++
		}
	}
	assert.Equal(t, 2, expiredCount)

	// A second sweep at the same instant finds nothing to do
	result, err = svc.ExpireStaleBookings(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, result.Expired)
	assert.Empty(t, result.Failed)
}

func TestExpireStaleBookingsIsolatesFailures(t *testing.T) {
	svc, rooms, _ := newTestRoomService()
	now := time.Now().UTC()

	ok1 := seedRoom(t, rooms, 1, "501")
	bad := seedRoom(t, rooms, 1, "502")
	ok2 := seedRoom(t, rooms, 1, "503")
	occupyRoom(t, svc, ok1.ID, now.Add(-time.Hour))
	occupyRoom(t, svc, bad.ID, now.Add(-time.Hour))
	occupyRoom(t, svc, ok2.ID, now.Add(-time.Hour))

	rooms.lockErrs[bad.ID] = errors.New("deadlock detected")

	result, err := svc.ExpireStaleBookings(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, []uint{ok1.ID, ok2.ID}, result.Expired)
	require.Contains(t, result.Failed, bad.ID)
	assert.Contains(t, result.Failed[bad.ID], "deadlock")

	// The failed room keeps its booking for the next sweep
	badRoom, err := svc.Get(bad.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, badRoom.Status)
}

func TestExpireStaleBookingsRechecksUnderLock(t *testing.T) {
	svc, rooms, _ := newTestRoomService()
	now := time.Now().UTC()

	// The scan reports a room that was released before the sweep could
	// lock it: the re-check must refuse the transition.
	room := seedRoom(t, rooms, 1, "601")
	rooms.staleScanIDs = []uint{room.ID}

	result, err := svc.ExpireStaleBookings(context.Background(), now)
	require.NoError(t, err)
	assert.Empty(t, result.Expired)
	require.Contains(t, result.Failed, room.ID)

	freed, err := svc.Get(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, freed.Status)
}
