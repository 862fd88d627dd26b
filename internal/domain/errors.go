package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrConstraintViolation is returned when a write breaks a uniqueness or reference rule
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrStorageUnavailable means the store could not be reached or queried
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageCorrupt means a structural query failed, e.g. a table is missing
	ErrStorageCorrupt = errors.New("storage corrupt")
	// ErrInvalidInput is returned when user supplied data fails validation
	ErrInvalidInput = errors.New("invalid input")
)

// StorageError wraps a driver error with its classification
type StorageError struct {
	Kind error
	Op   string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the driver error to errors.Is/As
func (e *StorageError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
