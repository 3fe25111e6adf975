package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	p := NormalizePage(0, 0, 50)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.Limit)

	p = NormalizePage(-3, -1, 20)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.Limit)

	p = NormalizePage(4, 10, 50)
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 10, p.Limit)
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 25}.Offset())
	assert.Equal(t, 25, PageRequest{Page: 2, Limit: 25}.Offset())
	assert.Equal(t, 90, PageRequest{Page: 10, Limit: 10}.Offset())
}

func TestRoomSortColumn(t *testing.T) {
	assert.Equal(t, "price", RoomSortColumn("price"))
	assert.Equal(t, "room_number", RoomSortColumn("roomNumber"))
	assert.Equal(t, "created_at", RoomSortColumn("createdAt"))

	// Unknown fields fall back instead of reaching the query
	assert.Equal(t, "created_at", RoomSortColumn("id; DROP TABLE rooms"))
	assert.Equal(t, "created_at", RoomSortColumn(""))
}
