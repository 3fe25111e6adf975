package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"hotel-management-backend/internal/apperrors"
	"hotel-management-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Hotel{}, &models.Room{}))
	return db
}

func seedTestRoom(t *testing.T, repo *RoomRepository, hotelID uint, number, roomType string, price float64, status models.RoomStatus) *models.Room {
	t.Helper()
	room := &models.Room{
		HotelID:    hotelID,
		Name:       roomType + " " + number,
		RoomNumber: number,
		Type:       roomType,
		Price:      price,
		Capacity:   2,
		Floor:      1,
		Status:     status,
	}
	require.NoError(t, repo.Create(room))
	return room
}

func TestStatisticsEmptySet(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	stats, err := repo.Statistics(nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, int64(0), stats.Available)
	assert.Equal(t, int64(0), stats.Booked)
	assert.Equal(t, int64(0), stats.Maintenance)
	assert.Equal(t, 0.0, stats.AvgPrice)
	assert.Equal(t, 0.0, stats.MinPrice)
	assert.Equal(t, 0.0, stats.MaxPrice)
	assert.Empty(t, stats.TypeBreakdown)
	assert.NotNil(t, stats.TypeBreakdown)
}

func TestStatisticsBucketsAndAverages(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	seedTestRoom(t, repo, 1, "101", models.RoomTypeDeluxe, 1000, models.StatusAvailable)
	seedTestRoom(t, repo, 1, "102", models.RoomTypeDeluxe, 2000, models.StatusOccupied)
	seedTestRoom(t, repo, 1, "103", models.RoomTypeSuite, 3000, models.StatusMaintenance)
	// Another hotel's room must not leak into the scoped numbers
	seedTestRoom(t, repo, 2, "201", models.RoomTypeSingle, 500, models.StatusAvailable)

	hotelID := uint(1)
	stats, err := repo.Statistics(&hotelID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Available)
	assert.Equal(t, int64(1), stats.Booked)
	assert.Equal(t, int64(1), stats.Maintenance)
	assert.Equal(t, 2000.0, stats.AvgPrice)
	assert.Equal(t, 1000.0, stats.MinPrice)
	assert.Equal(t, 3000.0, stats.MaxPrice)

	require.Len(t, stats.TypeBreakdown, 2)
	byType := map[string]RoomTypeStat{}
	for _, row := range stats.TypeBreakdown {
		byType[row.Type] = row
	}
	assert.Equal(t, int64(2), byType[models.RoomTypeDeluxe].Count)
	assert.Equal(t, 1500.0, byType[models.RoomTypeDeluxe].AvgPrice)
	assert.Equal(t, int64(1), byType[models.RoomTypeSuite].Count)
}

func TestStatisticsCountsCleaningAsAvailable(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	seedTestRoom(t, repo, 1, "101", models.RoomTypeSingle, 100, models.StatusCleaning)
	seedTestRoom(t, repo, 1, "102", models.RoomTypeSingle, 100, models.StatusOutOfOrder)

	stats, err := repo.Statistics(nil)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.Available)
	assert.Equal(t, int64(1), stats.Maintenance)
	assert.Equal(t, int64(0), stats.Booked)
}

func TestStatisticsTypeBreakdownUnrounded(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	seedTestRoom(t, repo, 1, "101", models.RoomTypeSingle, 100, models.StatusAvailable)
	seedTestRoom(t, repo, 1, "102", models.RoomTypeSingle, 101, models.StatusAvailable)

	stats, err := repo.Statistics(nil)
	require.NoError(t, err)

	// Headline average is rounded, the per-type one is not
	assert.Equal(t, 101.0, stats.AvgPrice)
	require.Len(t, stats.TypeBreakdown, 1)
	assert.Equal(t, 100.5, stats.TypeBreakdown[0].AvgPrice)
}

func TestSearchFreeText(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	match1 := seedTestRoom(t, repo, 1, "101", models.RoomTypeDeluxe, 300, models.StatusAvailable)
	match2 := &models.Room{
		HotelID: 1, Name: "Garden Twin", RoomNumber: "102", Type: models.RoomTypeDouble,
		Price: 200, Capacity: 2, Floor: 1, Status: models.StatusOccupied,
		Description: "A deluxe garden view",
	}
	require.NoError(t, repo.Create(match2))
	seedTestRoom(t, repo, 1, "103", models.RoomTypeSingle, 100, models.StatusAvailable)

	rooms, total, err := repo.Search(RoomSearchQuery{FreeText: "deluxe"}, NormalizePage(1, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	ids := []uint{rooms[0].ID, rooms[1].ID}
	assert.ElementsMatch(t, []uint{match1.ID, match2.ID}, ids)

	// availableOnly additionally drops the occupied match
	rooms, total, err = repo.Search(RoomSearchQuery{FreeText: "deluxe", AvailableOnly: true}, NormalizePage(1, 20, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rooms, 1)
	assert.Equal(t, match1.ID, rooms[0].ID)
}

func TestSearchSortsByWhitelistedField(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	seedTestRoom(t, repo, 1, "101", models.RoomTypeSingle, 300, models.StatusAvailable)
	seedTestRoom(t, repo, 1, "102", models.RoomTypeSingle, 100, models.StatusAvailable)
	seedTestRoom(t, repo, 1, "103", models.RoomTypeSingle, 200, models.StatusAvailable)

	rooms, _, err := repo.Search(RoomSearchQuery{SortField: "price"}, NormalizePage(1, 20, 20))
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, 100.0, rooms[0].Price)
	assert.Equal(t, 300.0, rooms[2].Price)
}

func TestNumberTakenInHotelScoping(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	room := seedTestRoom(t, repo, 1, "101", models.RoomTypeSingle, 100, models.StatusAvailable)

	taken, err := repo.NumberTakenInHotel(1, "101", 0)
	require.NoError(t, err)
	assert.True(t, taken)

	// Other hotels and the room itself don't count
	taken, err = repo.NumberTakenInHotel(2, "101", 0)
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = repo.NumberTakenInHotel(1, "101", room.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestFindExpiredOccupied(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	stale := seedTestRoom(t, repo, 1, "101", models.RoomTypeSingle, 100, models.StatusOccupied)
	stale.BookingCheckOut = &past
	require.NoError(t, repo.Save(stale))

	fresh := seedTestRoom(t, repo, 1, "102", models.RoomTypeSingle, 100, models.StatusOccupied)
	fresh.BookingCheckOut = &future
	require.NoError(t, repo.Save(fresh))

	released := seedTestRoom(t, repo, 1, "103", models.RoomTypeSingle, 100, models.StatusAvailable)
	released.BookingCheckOut = &past
	require.NoError(t, repo.Save(released))

	ids, err := repo.FindExpiredOccupied(now)
	require.NoError(t, err)
	assert.Equal(t, []uint{stale.ID}, ids)
}

func TestDeleteMissingRoom(t *testing.T) {
	repo := NewRoomRepo(openTestDB(t))

	err := repo.Delete(99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
