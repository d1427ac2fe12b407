// Package main implements the entry point for the Arcana API server,
// which manages card collections, booster economy, spaced-repetition
// review scheduling, and the mini-game sphere wallet.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/solenne/arcana-api/internal/config"
	"github.com/solenne/arcana-api/internal/platform/logger"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and storage, and
// wires the application dependencies.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"persistent", cfg.Database.URL != "")

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}
	return app, nil
}
