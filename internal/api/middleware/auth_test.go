package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solenne/arcana-api/internal/config"
	"github.com/solenne/arcana-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "thisisasecretkeythatis32charslong!!",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)
	return svc
}

// protectedProbe records whether the wrapped handler ran and what device ID
// it saw.
func protectedProbe(called *bool, seen *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, ok := GetDeviceID(r); ok {
			*seen = id
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateValidToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	deviceID := uuid.New()
	token, err := svc.GenerateToken(context.Background(), deviceID)
	require.NoError(t, err)

	var called bool
	var seen uuid.UUID
	handler := NewAuthMiddleware(svc).Authenticate(protectedProbe(&called, &seen))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
	assert.Equal(t, deviceID, seen, "device ID lands in the request context")
}

func TestAuthenticateRejections(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic abc123"},
		{name: "malformed header", header: "Bearer"},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var called bool
			var seen uuid.UUID
			handler := NewAuthMiddleware(svc).Authenticate(protectedProbe(&called, &seen))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "the protected handler must not run")
		})
	}
}

func TestGetDeviceIDMissing(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetDeviceID(req)
	assert.False(t, ok)
}
