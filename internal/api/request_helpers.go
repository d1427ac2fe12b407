package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/solenne/arcana-api/internal/api/shared"
	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
)

// deckFromRequest resolves the {deck} URL parameter against the catalog.
// Writes a 404 and returns false when the deck is unknown.
func deckFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	cat catalog.Catalog,
) (domain.DeckKind, int, bool) {
	deck := domain.DeckKind(chi.URLParam(r, "deck"))
	total, err := cat.TotalCards(deck)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownDeckKind) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Unknown deck")
		} else {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Catalog error", err)
		}
		return "", 0, false
	}
	return deck, total, true
}

// cardNumberFromRequest resolves the {number} URL parameter within
// [1, totalCards]. Writes a 400/404 and returns false on failure.
func cardNumberFromRequest(
	w http.ResponseWriter,
	r *http.Request,
	totalCards int,
) (int, bool) {
	raw := chi.URLParam(r, "number")
	number, err := strconv.Atoi(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card number")
		return 0, false
	}
	if number < 1 || number > totalCards {
		shared.RespondWithError(w, r, http.StatusNotFound, "Card number out of range")
		return 0, false
	}
	return number, true
}
