package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/platform/logger"
	"github.com/solenne/arcana-api/internal/service/review"
)

// ReviewHandler handles spaced-repetition HTTP requests.
type ReviewHandler struct {
	scheduler *review.Scheduler
	catalog   catalog.Catalog
	logger    *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(
	scheduler *review.Scheduler,
	cat catalog.Catalog,
	logger *slog.Logger,
) *ReviewHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ReviewHandler")
	}
	return &ReviewHandler{
		scheduler: scheduler,
		catalog:   cat,
		logger:    logger.With(slog.String("component", "review_handler")),
	}
}

// GetDueCards handles GET /review/{deck}/due requests.
func (h *ReviewHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	deck, _, ok := deckFromRequest(w, r, h.catalog)
	if !ok {
		return
	}

	due, err := h.scheduler.CardsDueForReview(deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute due cards", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DueCardsResponse{
		Deck:  deck,
		Cards: due,
	})
}

// DueCardsResponse lists the cards currently due for one deck.
type DueCardsResponse struct {
	Deck  domain.DeckKind  `json:"deck"`
	Cards []review.DueCard `json:"cards"`
}

// ReviewStatsResponse summarizes learning progress for one deck.
type ReviewStatsResponse struct {
	Deck            domain.DeckKind `json:"deck"`
	MemorizedCount  int             `json:"memorized_count"`
	InProgressCount int             `json:"in_progress_count"`
	Mastered        bool            `json:"mastered"`
}

// GetStats handles GET /review/{deck}/stats requests.
func (h *ReviewHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	deck, _, ok := deckFromRequest(w, r, h.catalog)
	if !ok {
		return
	}
	memorized, err := h.scheduler.MemorizedCount(deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute review stats", err)
		return
	}
	inProgress, err := h.scheduler.InProgressCount(deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute review stats", err)
		return
	}
	mastered, err := h.scheduler.IsDeckMastered(deck)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to compute review stats", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewStatsResponse{
		Deck:            deck,
		MemorizedCount:  memorized,
		InProgressCount: inProgress,
		Mastered:        mastered,
	})
}

// AnswerRequest records the outcome of one review.
type AnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

// AnswerResponse is the updated schedule for the reviewed card.
type AnswerResponse struct {
	Deck         domain.DeckKind `json:"deck"`
	Number       int             `json:"number"`
	Level        int             `json:"level"`
	LevelLabel   string          `json:"level_label"`
	NextReviewAt string          `json:"next_review_at"`
	Memorized    bool            `json:"memorized"`
}

// Answer handles POST /review/{deck}/{number}/answer requests.
func (h *ReviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	deck, total, ok := deckFromRequest(w, r, h.catalog)
	if !ok {
		return
	}
	number, ok := cardNumberFromRequest(w, r, total)
	if !ok {
		return
	}
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "correct is required")
		return
	}

	id := domain.CardIdentity{Deck: deck, Number: number}
	var entry domain.ReviewEntry
	if *req.Correct {
		entry = h.scheduler.MarkCorrect(r.Context(), id)
	} else {
		entry = h.scheduler.MarkWrong(r.Context(), id)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Deck:         deck,
		Number:       number,
		Level:        entry.Level,
		LevelLabel:   domain.LevelLabel(entry.Level),
		NextReviewAt: entry.NextReviewAt.UTC().Format(time.RFC3339),
		Memorized:    entry.Level >= domain.ReviewMaxLevel,
	})
}
