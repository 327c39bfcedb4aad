package suggestions

import (
	"context"

	"item-catalog/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the suggestions feature on top of the catalog lookup.
func NewFeature(db *gorm.DB, items ItemLookup, serverCfg server.Config, logger *zap.Logger) *Feature {
	svc := NewService(db, items, logger)
	return &Feature{service: svc, handler: NewHandler(svc, serverCfg)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "suggestions"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the suggestions table and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.EnsureReady(context.Background()); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
