package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied is returned when the actor lacks the required
	// role or doesn't own the record.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrConflict is returned when a write collides with existing state.
	ErrConflict = errors.New("conflict")
)

// ValidationError reports a constraint violation on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
