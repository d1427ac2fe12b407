package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/platform/logger"
	"github.com/solenne/arcana-api/internal/service/booster"
	"github.com/solenne/arcana-api/internal/service/minigame"
)

// BoosterHandler handles booster economy HTTP requests.
type BoosterHandler struct {
	engine *booster.Engine
	wallet *minigame.Wallet
	logger *slog.Logger
}

// NewBoosterHandler creates a new BoosterHandler.
func NewBoosterHandler(
	engine *booster.Engine,
	wallet *minigame.Wallet,
	logger *slog.Logger,
) *BoosterHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for BoosterHandler")
	}
	return &BoosterHandler{
		engine: engine,
		wallet: wallet,
		logger: logger.With(slog.String("component", "booster_handler")),
	}
}

// BoosterStatusResponse describes the current gate and streak state.
type BoosterStatusResponse struct {
	Available        bool       `json:"available"`
	NextAvailableAt  *time.Time `json:"next_available_at,omitempty"`
	TimeRemaining    string     `json:"time_remaining"`
	OpenedToday      int        `json:"opened_today"`
	Streak           int        `json:"streak"`
	PremiumAvailable bool       `json:"premium_available"`
}

// GetStatus handles GET /boosters requests. The optional premium query
// parameter reflects the client's entitlement; purchase verification is
// outside this service.
func (h *BoosterHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	isPremium := r.URL.Query().Get("premium") == "true"

	resp := BoosterStatusResponse{
		Available:        h.engine.CanOpen(),
		TimeRemaining:    h.engine.FormattedTimeRemaining(),
		OpenedToday:      h.engine.OpenedToday(),
		Streak:           h.engine.Streak(),
		PremiumAvailable: h.engine.HasPremiumBoosterAvailable(isPremium),
	}
	if next, locked := h.engine.NextAvailableAt(); locked {
		resp.NextAvailableAt = &next
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// OpenBoosterResponse is the result of an open attempt. A locked gate is
// not an error: opened is false and cards is empty.
type OpenBoosterResponse struct {
	Opened bool                `json:"opened"`
	Cards  []domain.DrawResult `json:"cards"`
	Streak int                 `json:"streak"`
}

// OpenBooster handles POST /boosters/open requests.
func (h *BoosterHandler) OpenBooster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cards := h.engine.OpenBooster(r.Context())
	resp := OpenBoosterResponse{
		Opened: len(cards) > 0,
		Cards:  cards,
		Streak: h.engine.Streak(),
	}
	if !resp.Opened {
		log.Debug("booster open refused, cooldown active")
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// OpenSphereBooster handles POST /boosters/sphere requests. It spends the
// sphere price first; an insufficient balance is a 409 and nothing is drawn.
func (h *BoosterHandler) OpenSphereBooster(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !h.wallet.SpendForBooster(r.Context()) {
		shared.RespondWithError(w, r, http.StatusConflict, "Not enough spheres")
		return
	}

	cards := h.engine.OpenSphereBooster(r.Context())
	log.Debug("sphere booster opened", slog.Int("balance", h.wallet.Balance()))
	shared.RespondWithJSON(w, r, http.StatusOK, OpenBoosterResponse{
		Opened: true,
		Cards:  cards,
		Streak: h.engine.Streak(),
	})
}

// OpenPremiumBooster handles POST /boosters/premium requests.
func (h *BoosterHandler) OpenPremiumBooster(w http.ResponseWriter, r *http.Request) {
	cards := h.engine.OpenPremiumBooster(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, OpenBoosterResponse{
		Opened: true,
		Cards:  cards,
		Streak: h.engine.Streak(),
	})
}
