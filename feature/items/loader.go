package items

import (
	"context"
	"fmt"

	"item-catalog/core/server"
	"item-catalog/core/storage"
	"item-catalog/feature/items/ledger"
	"item-catalog/feature/items/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	store   *store.Store
	service *Service
	handler *Handler
}

// NewFeature creates the items feature. client may be nil when the dump archive is disabled.
func NewFeature(db *gorm.DB, client storage.Client, storageCfg storage.Config, serverCfg server.Config, cfg Config, logger *zap.Logger) *Feature {
	st := store.New(db)
	svc := NewService(
		st,
		ledger.New(st, logger),
		NewArchive(client, storageCfg.Bucket, storageCfg.ArchivePrefix),
		cfg,
		logger,
	)
	return &Feature{store: st, service: svc, handler: NewHandler(svc, serverCfg)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "items"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the catalog tables and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.store.EnsureReady(context.Background()); err != nil {
		return fmt.Errorf("catalog storage is not ready: %w", err)
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service, for the CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}

// Store returns the feature's storage collaborator.
func (f *Feature) Store() *store.Store {
	return f.store
}
