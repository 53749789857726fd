package cmd

import (
	"context"
	"fmt"

	"cellular/core/config"
	"cellular/core/database"
	"cellular/core/logger"
	"cellular/core/resource"
	"cellular/core/storage"
	"cellular/resources"

	"go.uber.org/zap"
)

// newSearchPath connects the backends named in the resource sources and
// builds the search path over them.
func newSearchPath(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*resource.ChainResolver, error) {
	backends := resource.Backends{
		Embedded: resources.FS,
		Bucket:   cfg.Storage.Bucket,
	}

	if cfg.Resources.HasSource(resource.SourceStorage) {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		// An unreachable bucket is reported but does not block startup
		if err := resource.NewStorageResolver(client, cfg.Storage.Bucket, cfg.Resources.Prefix).Check(ctx); err != nil {
			logg.Warn("Storage resource source unavailable", zap.Error(err))
		}
		backends.Storage = client
	}

	if cfg.Resources.HasSource(resource.SourceDatabase) {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database resource source: %w", err)
		}
		if err := resource.NewDBResolver(db, cfg.Resources.Table).Migrate(); err != nil {
			return nil, err
		}
		logg.Info("Connected to resource database", zap.String("driver", cfg.Database.Driver))
		backends.DB = db
	}

	chain, err := resource.NewResolver(cfg.Resources, backends)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource search path: %w", err)
	}
	logg.Debug("Resource search path ready", zap.Strings("sources", cfg.Resources.Sources))
	return chain, nil
}

// cliLogger creates the logger used by one-shot commands. Logs go to stderr so
// command output on stdout stays clean.
func cliLogger(cfg *config.Config) (*zap.Logger, error) {
	logCfg := cfg.Log
	logCfg.Format = "console"
	return logger.New(&logCfg)
}
