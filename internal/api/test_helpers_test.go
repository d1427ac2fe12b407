package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/domain"
	"github.com/solenne/arcana-api/internal/domain/rarity"
	"github.com/solenne/arcana-api/internal/platform/memstore"
	"github.com/solenne/arcana-api/internal/service/booster"
	"github.com/solenne/arcana-api/internal/service/collection"
	"github.com/solenne/arcana-api/internal/service/minigame"
	"github.com/solenne/arcana-api/internal/service/review"
	"github.com/solenne/arcana-api/internal/timekeep"
)

var testStart = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

// testEnv bundles the service graph behind the handlers, backed by an
// in-memory store and a manual clock.
type testEnv struct {
	store     *memstore.StateStore
	clock     *timekeep.Manual
	catalog   catalog.Catalog
	ledger    *collection.Ledger
	engine    *booster.Engine
	scheduler *review.Scheduler
	wallet    *minigame.Wallet
	bridge    *minigame.Bridge
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat, err := catalog.New(
		map[domain.DeckKind]int{"oracle": 3, "rune": 2},
		[]domain.DeckKind{"oracle", "rune"},
	)
	require.NoError(t, err)

	ctx := context.Background()
	st := memstore.New()
	clock := timekeep.NewManual(testStart)
	ledger := collection.NewLedger(ctx, st, cat, clock, slog.Default())
	engine := booster.NewEngine(
		ctx, st, ledger, cat,
		rarity.NewRoller(rarity.NewSeededRNG(1)),
		clock, booster.DefaultCooldown, booster.DefaultSize, slog.Default(),
	)
	scheduler := review.NewScheduler(ctx, st, cat, clock, slog.Default())
	wallet := minigame.NewWallet(ctx, st, slog.Default())
	bridge := minigame.NewBridge(ctx, st, wallet, slog.Default())

	return &testEnv{
		store:     st,
		clock:     clock,
		catalog:   cat,
		ledger:    ledger,
		engine:    engine,
		scheduler: scheduler,
		wallet:    wallet,
		bridge:    bridge,
	}
}

// router builds a chi router with the full authenticated route set, minus
// authentication itself (middleware behavior has its own tests).
func (env *testEnv) router(t *testing.T) http.Handler {
	t.Helper()

	collectionHandler := NewCollectionHandler(env.ledger, env.catalog, slog.Default())
	boosterHandler := NewBoosterHandler(env.engine, env.wallet, slog.Default())
	reviewHandler := NewReviewHandler(env.scheduler, env.catalog, slog.Default())
	minigameHandler := NewMinigameHandler(env.bridge, env.wallet, slog.Default())

	r := chi.NewRouter()
	r.Get("/collection", collectionHandler.GetSummary)
	r.Get("/collection/{deck}", collectionHandler.GetDeckEntries)
	r.Get("/collection/{deck}/{number}", collectionHandler.GetCardStatus)
	r.Delete("/collection", collectionHandler.ResetCollection)
	r.Get("/boosters", boosterHandler.GetStatus)
	r.Post("/boosters/open", boosterHandler.OpenBooster)
	r.Post("/boosters/sphere", boosterHandler.OpenSphereBooster)
	r.Post("/boosters/premium", boosterHandler.OpenPremiumBooster)
	r.Get("/review/{deck}/due", reviewHandler.GetDueCards)
	r.Get("/review/{deck}/stats", reviewHandler.GetStats)
	r.Post("/review/{deck}/{number}/answer", reviewHandler.Answer)
	r.Get("/spheres", minigameHandler.GetSpheres)
	r.Post("/minigames/{game}/win", minigameHandler.RecordWin)
	return r
}

// doRequest executes one request against the router and decodes the JSON
// body into out (when out is non-nil).
func doRequest(t *testing.T, handler http.Handler, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
			"response body: %s", rec.Body.String())
	}
	return rec
}
