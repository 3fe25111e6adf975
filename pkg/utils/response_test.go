package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	p := NewPagination(1, 20, 20, 45)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 20, p.Count)
	assert.Equal(t, int64(45), p.TotalRecords)

	// Empty result sets still report one page
	p = NewPagination(1, 20, 0, 0)
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, 0, p.Count)

	// Exact multiple does not add a trailing page
	p = NewPagination(2, 10, 10, 30)
	assert.Equal(t, 3, p.Total)
}
