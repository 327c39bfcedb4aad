package cmd

import (
	"context"
	"fmt"

	"item-catalog/core/config"
	"item-catalog/core/database"
	"item-catalog/core/logger"
	"item-catalog/core/storage"
	"item-catalog/feature/items"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is what every catalog command needs: configuration, a logger and an open catalog.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	client storage.Client
	items  *items.Feature
}

// openRuntime loads configuration, connects the database and the optional dump
// archive, and makes sure the catalog schema is ready.
func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	feature := items.NewFeature(db, client, cfg.Storage, cfg.Server, cfg.Catalog, l)
	if err := feature.Store().EnsureReady(ctx); err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: l, db: db, client: client, items: feature}, nil
}
