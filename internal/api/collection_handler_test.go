package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solenne/arcana-api/internal/domain"
)

func TestGetSummaryEmptyCollection(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	router := env.router(t)

	var resp CollectionSummaryResponse
	rec := doRequest(t, router, http.MethodGet, "/collection", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, resp.TotalOwned)
	require.Len(t, resp.Decks, 2)
	assert.Equal(t, domain.DeckKind("oracle"), resp.Decks[0].Deck)
	assert.Equal(t, 3, resp.Decks[0].TotalCards)
	assert.Zero(t, resp.Decks[0].OwnedCount)
	assert.False(t, resp.Decks[0].Complete)
}

func TestGetSummaryTracksOwnership(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.ledger.AddCard(ctx, domain.CardIdentity{Deck: "oracle", Number: 1}, domain.RarityCommon)
	env.ledger.AddCard(ctx, domain.CardIdentity{Deck: "rune", Number: 1}, domain.RarityRare)
	env.ledger.AddCard(ctx, domain.CardIdentity{Deck: "rune", Number: 2}, domain.RarityGolden)

	var resp CollectionSummaryResponse
	rec := doRequest(t, env.router(t), http.MethodGet, "/collection", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, resp.TotalOwned)

	byDeck := map[domain.DeckKind]DeckSummaryResponse{}
	for _, d := range resp.Decks {
		byDeck[d.Deck] = d
	}
	assert.Equal(t, 1, byDeck["oracle"].OwnedCount)
	assert.InDelta(t, 1.0/3.0, byDeck["oracle"].CompletionPercent, 1e-9)
	assert.True(t, byDeck["rune"].Complete)
}

func TestGetDeckEntries(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	id := domain.CardIdentity{Deck: "oracle", Number: 2}
	env.ledger.AddCard(ctx, id, domain.RarityCommon)
	env.ledger.AddCard(ctx, id, domain.RarityGolden)

	var entries []CollectionEntryResponse
	rec := doRequest(t, env.router(t), http.MethodGet, "/collection/oracle", nil, &entries)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, entries, 2, "base and golden slots are both listed")

	goldenSeen := false
	for _, e := range entries {
		assert.Equal(t, domain.DeckKind("oracle"), e.Deck)
		assert.Equal(t, 2, e.Number)
		if e.Golden {
			goldenSeen = true
			assert.Equal(t, domain.RarityGolden, e.Rarity)
		}
	}
	assert.True(t, goldenSeen)
}

func TestGetDeckEntriesUnknownDeck(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := doRequest(t, env.router(t), http.MethodGet, "/collection/mystery", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetCardStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	id := domain.CardIdentity{Deck: "oracle", Number: 1}
	env.ledger.AddCard(ctx, id, domain.RarityHolographic)
	env.ledger.AddCard(ctx, id, domain.RarityHolographic)

	var resp CardStatusResponse
	rec := doRequest(t, env.router(t), http.MethodGet, "/collection/oracle/1", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Owned)
	assert.False(t, resp.OwnsGolden)
	require.NotNil(t, resp.BestRarity)
	assert.Equal(t, domain.RarityHolographic, *resp.BestRarity)
	assert.Equal(t, 1, resp.DuplicateCount)
}

func TestGetCardStatusUnowned(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	var resp CardStatusResponse
	rec := doRequest(t, env.router(t), http.MethodGet, "/collection/oracle/3", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Owned)
	assert.Nil(t, resp.BestRarity, "unowned cards omit the rarity")
	assert.Zero(t, resp.DuplicateCount)
}

func TestGetCardStatusBadNumber(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	router := env.router(t)

	rec := doRequest(t, router, http.MethodGet, "/collection/oracle/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "non-numeric card number")

	rec = doRequest(t, router, http.MethodGet, "/collection/oracle/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "number beyond the deck size")

	rec = doRequest(t, router, http.MethodGet, "/collection/oracle/0", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "card numbers are 1-based")
}

func TestResetCollection(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()
	env.ledger.AddCard(ctx, domain.CardIdentity{Deck: "oracle", Number: 1}, domain.RarityCommon)
	router := env.router(t)

	rec := doRequest(t, router, http.MethodDelete, "/collection", nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var resp CollectionSummaryResponse
	doRequest(t, router, http.MethodGet, "/collection", nil, &resp)
	assert.Equal(t, 0, resp.TotalOwned)
}
