package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrKeyNotFound is returned when a requested key has never been written.
	ErrKeyNotFound = errors.New("key not found")

	// ErrWriteFailed is returned when a write could not be made durable.
	ErrWriteFailed = errors.New("write failed")
)

// IsNotFound checks whether an error indicates an absent key.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// StoreError is a custom error type for store-specific errors with
// additional context.
type StoreError struct {
	Key       string // the state key involved
	Operation string // the operation that failed (e.g. "get", "set")
	Err       error  // original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q failed: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("%s %q failed", e.Operation, e.Key)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(key, operation string, err error) *StoreError {
	return &StoreError{Key: key, Operation: operation, Err: err}
}
