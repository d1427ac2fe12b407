package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/platform/logger"
	"github.com/solenne/arcana-api/internal/service/minigame"
)

// MinigameHandler handles mini-game reward and sphere wallet HTTP requests.
type MinigameHandler struct {
	bridge *minigame.Bridge
	wallet *minigame.Wallet
	logger *slog.Logger
}

// NewMinigameHandler creates a new MinigameHandler.
func NewMinigameHandler(
	bridge *minigame.Bridge,
	wallet *minigame.Wallet,
	logger *slog.Logger,
) *MinigameHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MinigameHandler")
	}
	return &MinigameHandler{
		bridge: bridge,
		wallet: wallet,
		logger: logger.With(slog.String("component", "minigame_handler")),
	}
}

// SphereBalanceResponse reports the current sphere wallet state.
type SphereBalanceResponse struct {
	Spheres        int  `json:"spheres"`
	CanOpenBooster bool `json:"can_open_booster"`
}

// GetSpheres handles GET /spheres requests.
func (h *MinigameHandler) GetSpheres(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, SphereBalanceResponse{
		Spheres:        h.wallet.Balance(),
		CanOpenBooster: h.wallet.CanOpenBooster(),
	})
}

// WinResponse is the reward granted for a recorded win plus updated totals.
type WinResponse struct {
	Game               minigame.Game `json:"game"`
	SpheresAwarded     int           `json:"spheres_awarded"`
	MemoryProgress     int           `json:"memory_progress"`
	Spheres            int           `json:"spheres"`
	TotalPlayed        int           `json:"total_played"`
	TotalSpheresEarned int           `json:"total_spheres_earned"`
}

// RecordWin handles POST /minigames/{game}/win requests.
func (h *MinigameHandler) RecordWin(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	game := minigame.Game(chi.URLParam(r, "game"))
	result, err := h.bridge.RewardWin(r.Context(), game)
	if err != nil {
		if errors.Is(err, minigame.ErrUnknownGame) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Unknown game")
			return
		}
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to record win", err)
		return
	}

	totalPlayed, totalEarned, memoryProgress := h.bridge.Stats()
	log.Debug("minigame win recorded",
		slog.String("game", string(game)),
		slog.Int("spheres_awarded", result.SpheresAwarded))

	shared.RespondWithJSON(w, r, http.StatusOK, WinResponse{
		Game:               game,
		SpheresAwarded:     result.SpheresAwarded,
		MemoryProgress:     memoryProgress,
		Spheres:            h.wallet.Balance(),
		TotalPlayed:        totalPlayed,
		TotalSpheresEarned: totalEarned,
	})
}
