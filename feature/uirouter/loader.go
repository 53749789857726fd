package uirouter

import (
	"cellular/core/resource"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	enabled bool
	handler *Handler
}

// NewFeature creates the UI router feature. enabled comes from the plane's
// ui.enabled setting.
func NewFeature(resolver resource.Resolver, enabled bool, logger *zap.Logger) *Feature {
	return &Feature{enabled: enabled, handler: NewHandler(resolver, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "ui"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
