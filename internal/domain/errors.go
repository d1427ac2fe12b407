package domain

import "errors"

// Common domain errors used across the engine.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidPullCount is returned when a collection entry's pull count
	// is below one.
	ErrInvalidPullCount = errors.New("pull count must be at least 1")

	// ErrInvalidReviewLevel is returned when a review level is outside [0, 5].
	ErrInvalidReviewLevel = errors.New("review level out of range")
)
