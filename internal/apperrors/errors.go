package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds reported by the service layer. Handlers map these to HTTP
// status codes with errors.Is, so services never touch gin or net/http.
var (
	// ErrValidation marks malformed or missing required input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a referenced hotel, room, or record that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation, e.g. a duplicate room number
	// within the same hotel.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState marks a lifecycle transition attempted from a state
	// that does not allow it, e.g. cancelling a room that is not booked.
	ErrInvalidState = errors.New("invalid state")
)

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted detail message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// InvalidStatef wraps ErrInvalidState with a formatted detail message.
func InvalidStatef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidState, fmt.Sprintf(format, args...))
}
