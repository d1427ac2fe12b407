package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/platform/logger"
	"github.com/solenne/arcana-api/internal/service/auth"
)

// SessionHandler handles device-session requests.
type SessionHandler struct {
	jwtService auth.JWTService
	logger     *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(jwtService auth.JWTService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SessionHandler")
	}
	return &SessionHandler{
		jwtService: jwtService,
		logger:     logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSessionRequest represents the request body for opening a session.
type CreateSessionRequest struct {
	DeviceID string `json:"device_id" validate:"required,uuid4"`
}

// CreateSessionResponse represents the issued session token.
type CreateSessionResponse struct {
	Token string `json:"token"`
}

// CreateSession handles POST /session requests. It exchanges a device ID
// for a signed bearer token.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "device_id must be a UUID")
		return
	}

	deviceID, err := uuid.Parse(req.DeviceID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "device_id must be a UUID")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), deviceID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	log.Debug("session created", slog.String("device_id", deviceID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateSessionResponse{Token: token})
}
