package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/solenne/arcana-api/internal/catalog"
	"github.com/solenne/arcana-api/internal/config"
	"github.com/solenne/arcana-api/internal/domain/rarity"
	"github.com/solenne/arcana-api/internal/platform/memstore"
	"github.com/solenne/arcana-api/internal/platform/postgres"
	"github.com/solenne/arcana-api/internal/service/auth"
	"github.com/solenne/arcana-api/internal/service/booster"
	"github.com/solenne/arcana-api/internal/service/collection"
	"github.com/solenne/arcana-api/internal/service/minigame"
	"github.com/solenne/arcana-api/internal/service/review"
	"github.com/solenne/arcana-api/internal/store"
	"github.com/solenne/arcana-api/internal/timekeep"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	stateStore store.StateStore
	catalog    catalog.Catalog
	clock      timekeep.Clock

	jwtService auth.JWTService
	ledger     *collection.Ledger
	engine     *booster.Engine
	scheduler  *review.Scheduler
	wallet     *minigame.Wallet
	bridge     *minigame.Bridge
}

// newApplication creates a new application instance with all dependencies
// initialized. When no database URL is configured the server runs with an
// in-memory state store and loses state on restart.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		catalog: catalog.Default(),
		clock:   timekeep.SystemClock{},
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT session service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	if cfg.Database.URL != "" {
		app.db, err = setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(app.db, logger); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.stateStore = postgres.NewStateStore(app.db, logger)
	} else {
		logger.Warn("no database URL configured, using in-memory state store")
		app.stateStore = memstore.New()
	}

	roller := rarity.NewRoller(rarity.DefaultRNG())

	app.ledger = collection.NewLedger(ctx, app.stateStore, app.catalog, app.clock, logger)
	app.engine = booster.NewEngine(
		ctx,
		app.stateStore,
		app.ledger,
		app.catalog,
		roller,
		app.clock,
		time.Duration(cfg.Booster.CooldownHours)*time.Hour,
		cfg.Booster.Size,
		logger,
	)
	app.scheduler = review.NewScheduler(ctx, app.stateStore, app.catalog, app.clock, logger)
	app.wallet = minigame.NewWallet(ctx, app.stateStore, logger)
	app.bridge = minigame.NewBridge(ctx, app.stateStore, app.wallet, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
