package plane

import (
	"context"
	"errors"
	"fmt"

	"cellular/core/config"
	"cellular/core/resource"
	"cellular/core/structure"

	"go.uber.org/zap"
)

// ErrUnknownFormat is returned when no decoding format can be chosen for a
// resource.
var ErrUnknownFormat = errors.New("unknown resource format")

// Service loads the plane configuration and inspects resources.
type Service struct {
	loader   *resource.Loader
	logger   *zap.Logger
	settings Settings
}

// NewService creates the plane service and loads its configuration. A nil
// logger disables logging.
//
// The configuration resource is tried first, then the fallback. When neither
// exists the plane runs on defaults. A configuration that exists but cannot
// be decoded is an error.
func NewService(ctx context.Context, loader *resource.Loader, cfg config.PlaneConfig, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{loader: loader, logger: logger, settings: DefaultSettings()}

	for _, name := range candidates(cfg) {
		v, ok, err := loader.Load(ctx, name, formatFor(name))
		if err != nil {
			return nil, fmt.Errorf("failed to load plane configuration: %w", err)
		}
		if !ok {
			logger.Debug("Plane configuration not found", zap.String("resource", name))
			continue
		}
		s.settings = ParseSettings(v)
		s.settings.Source = name
		break
	}

	if s.settings.Source == "" {
		logger.Warn("No plane configuration found, using defaults", zap.Strings("tried", candidates(cfg)))
	} else {
		logger.Info("Loaded plane configuration",
			zap.String("plane", s.settings.Name),
			zap.String("source", s.settings.Source),
		)
	}
	return s, nil
}

func candidates(cfg config.PlaneConfig) []string {
	var names []string
	if cfg.Config != "" {
		names = append(names, cfg.Config)
	}
	if cfg.Fallback != "" && cfg.Fallback != cfg.Config {
		names = append(names, cfg.Fallback)
	}
	return names
}

// formatFor picks the configuration format from the name, defaulting to Recon.
func formatFor(name string) resource.Format {
	if f, ok := resource.FormatFromName(name); ok {
		return f
	}
	return resource.FormatRecon
}

// Settings returns the loaded plane settings.
func (s *Service) Settings() Settings {
	return s.settings
}

// Inspect loads a resource by alias or name. An empty format selects the
// format from the resource's extension.
func (s *Service) Inspect(ctx context.Context, alias, format string) (structure.Value, bool, error) {
	name := s.settings.ResourceName(alias)

	var f resource.Format
	if format != "" {
		parsed, err := resource.ParseFormat(format)
		if err != nil {
			return structure.Absent(), false, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
		}
		f = parsed
	} else {
		byName, ok := resource.FormatFromName(name)
		if !ok {
			return structure.Absent(), false, fmt.Errorf("%w: cannot infer format of %q", ErrUnknownFormat, name)
		}
		f = byName
	}

	return s.loader.Load(ctx, name, f)
}
