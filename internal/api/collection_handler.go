package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/platform/logger"
	"github.com/solenne/arcana-api/internal/service/collection"
)

// CollectionHandler handles collection-related HTTP requests.
type CollectionHandler struct {
	ledger  *collection.Ledger
	catalog catalog.Catalog
	logger  *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(
	ledger *collection.Ledger,
	cat catalog.Catalog,
	logger *slog.Logger,
) *CollectionHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CollectionHandler")
	}
	return &CollectionHandler{
		ledger:  ledger,
		catalog: cat,
		logger:  logger.With(slog.String("component", "collection_handler")),
	}
}

// DeckSummaryResponse is the per-deck completion summary.
type DeckSummaryResponse struct {
	Deck              domain.DeckKind `json:"deck"`
	TotalCards        int             `json:"total_cards"`
	OwnedCount        int             `json:"owned_count"`
	CompletionPercent float64         `json:"completion_percent"`
	Complete          bool            `json:"complete"`
}

// CollectionSummaryResponse aggregates deck summaries.
type CollectionSummaryResponse struct {
	Decks      []DeckSummaryResponse `json:"decks"`
	TotalOwned int                   `json:"total_owned"`
}

// GetSummary handles GET /collection requests.
func (h *CollectionHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary := CollectionSummaryResponse{TotalOwned: h.ledger.TotalOwned()}
	for _, deck := range h.catalog.Decks() {
		total, err := h.catalog.TotalCards(deck)
		if err != nil {
			continue
		}
		owned, err := h.ledger.OwnedCount(deck)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				http.StatusInternalServerError, "Failed to read collection", err)
			return
		}
		percent, err := h.ledger.CompletionPercent(deck)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				http.StatusInternalServerError, "Failed to read collection", err)
			return
		}
		summary.Decks = append(summary.Decks, DeckSummaryResponse{
			Deck:              deck,
			TotalCards:        total,
			OwnedCount:        owned,
			CompletionPercent: percent,
			Complete:          owned == total,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}

// CollectionEntryResponse is one ledger slot in API form.
type CollectionEntryResponse struct {
	Deck       domain.DeckKind `json:"deck"`
	Number     int             `json:"number"`
	Rarity     domain.Rarity   `json:"rarity"`
	Golden     bool            `json:"golden"`
	ObtainedAt time.Time       `json:"obtained_at"`
	Count      int             `json:"count"`
}

// GetDeckEntries handles GET /collection/{deck} requests.
func (h *CollectionHandler) GetDeckEntries(w http.ResponseWriter, r *http.Request) {
	deck, _, ok := deckFromRequest(w, r, h.catalog)
	if !ok {
		return
	}

	entries := h.ledger.DeckEntries(deck)
	out := make([]CollectionEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CollectionEntryResponse{
			Deck:       entry.CardID.Deck,
			Number:     entry.CardID.Number,
			Rarity:     entry.Rarity,
			Golden:     entry.Rarity == domain.RarityGolden,
			ObtainedAt: entry.ObtainedAt,
			Count:      entry.Count,
		})
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// CardStatusResponse is the ownership view of one card identity.
type CardStatusResponse struct {
	Deck           domain.DeckKind `json:"deck"`
	Number         int             `json:"number"`
	Owned          bool            `json:"owned"`
	OwnsGolden     bool            `json:"owns_golden"`
	BestRarity     *domain.Rarity  `json:"best_rarity,omitempty"`
	DuplicateCount int             `json:"duplicate_count"`
}

// GetCardStatus handles GET /collection/{deck}/{number} requests.
func (h *CollectionHandler) GetCardStatus(w http.ResponseWriter, r *http.Request) {
	deck, total, ok := deckFromRequest(w, r, h.catalog)
	if !ok {
		return
	}
	number, ok := cardNumberFromRequest(w, r, total)
	if !ok {
		return
	}

	id := domain.CardIdentity{Deck: deck, Number: number}
	resp := CardStatusResponse{
		Deck:           deck,
		Number:         number,
		Owned:          h.ledger.Owns(id),
		OwnsGolden:     h.ledger.OwnsGolden(id),
		DuplicateCount: h.ledger.DuplicateCount(id),
	}
	if best, ok := h.ledger.BestRarity(id); ok {
		resp.BestRarity = &best
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// ResetCollection handles DELETE /collection requests. This is the only
// deletion path in the ledger and is expected to sit behind an explicit
// client-side confirmation.
func (h *CollectionHandler) ResetCollection(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	h.ledger.Reset(r.Context())
	log.Info("collection reset")
	w.WriteHeader(http.StatusNoContent)
}
