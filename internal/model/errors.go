package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUsernameTaken     = errors.New("username already registered")
	ErrInvalidToken      = errors.New("invalid card token")
	ErrImageTooLarge     = errors.New("card image is too large")
	ErrInvalidImage      = errors.New("card image is not a png")
	ErrSourceUnavailable = errors.New("profile source unavailable")
)

// ValidationError reports bad caller input. Operations failing with it have no side effects.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError reports an infrastructure failure of the backing store.
// The whole operation may be retried.
type StorageError struct {
	Op  string
	Err error
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
