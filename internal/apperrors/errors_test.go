package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{Validationf("price cannot be negative"), ErrValidation},
		{NotFoundf("room %d not found", 7), ErrNotFound},
		{Conflictf("room number %q already exists", "101"), ErrConflict},
		{InvalidStatef("room %d cannot be booked", 7), ErrInvalidState},
	}

	for _, tt := range tests {
		assert.True(t, errors.Is(tt.err, tt.sentinel), "%v", tt.err)
	}

	// Kinds never cross-match
	assert.False(t, errors.Is(NotFoundf("x"), ErrConflict))
	assert.False(t, errors.Is(Validationf("x"), ErrInvalidState))
}

func TestWrappingPreservesKind(t *testing.T) {
	inner := NotFoundf("room 3 not found")
	outer := fmt.Errorf("lookup failed: %w", inner)

	assert.True(t, errors.Is(outer, ErrNotFound))
	assert.Contains(t, outer.Error(), "room 3 not found")
}
