package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/solenne/arcana-api/internal/api"
	apiMiddleware "github.com/solenne/arcana-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	sessionHandler := api.NewSessionHandler(app.jwtService, app.logger)
	collectionHandler := api.NewCollectionHandler(app.ledger, app.catalog, app.logger)
	boosterHandler := api.NewBoosterHandler(app.engine, app.wallet, app.logger)
	reviewHandler := api.NewReviewHandler(app.scheduler, app.catalog, app.logger)
	minigameHandler := api.NewMinigameHandler(app.bridge, app.wallet, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Session endpoint (public)
		r.Post("/session", sessionHandler.CreateSession)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Collection endpoints
			r.Get("/collection", collectionHandler.GetSummary)
			r.Get("/collection/{deck}", collectionHandler.GetDeckEntries)
			r.Get("/collection/{deck}/{number}", collectionHandler.GetCardStatus)
			r.Delete("/collection", collectionHandler.ResetCollection)

			// Booster endpoints
			r.Get("/boosters", boosterHandler.GetStatus)
			r.Post("/boosters/open", boosterHandler.OpenBooster)
			r.Post("/boosters/sphere", boosterHandler.OpenSphereBooster)
			r.Post("/boosters/premium", boosterHandler.OpenPremiumBooster)

			// Review endpoints
			r.Get("/review/{deck}/due", reviewHandler.GetDueCards)
			r.Get("/review/{deck}/stats", reviewHandler.GetStats)
			r.Post("/review/{deck}/{number}/answer", reviewHandler.Answer)

			// Sphere wallet and mini-game endpoints
			r.Get("/spheres", minigameHandler.GetSpheres)
			r.Post("/minigames/{game}/win", minigameHandler.RecordWin)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
