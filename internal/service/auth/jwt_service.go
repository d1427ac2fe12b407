// Package auth issues and validates device-session tokens for the API.
// There are no user accounts: a client exchanges its device ID for a
// long-lived bearer token, and the engine itself stays auth-agnostic.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common auth errors.
var (
	// ErrInvalidToken is returned when a token fails signature or claim
	// validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the validated identity of a device session.
type Claims struct {
	DeviceID uuid.UUID
}

// JWTService issues and validates device-session tokens.
type JWTService interface {
	// GenerateToken creates a signed session token for a device.
	GenerateToken(ctx context.Context, deviceID uuid.UUID) (string, error)

	// ValidateToken validates a session token and returns its claims.
	// Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
