package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"cellular/core/storage"

	"gorm.io/gorm"
)

// Source names accepted in Config.Sources.
const (
	SourceEmbed    = "embed"
	SourceDir      = "dir"
	SourceStorage  = "storage"
	SourceDatabase = "database"
)

// Config holds configuration for the resource search path.
type Config struct {
	// Sources lists where resources are searched, in order.
	Sources []string `mapstructure:"sources" default:"dir,embed"`
	// Dir is the directory used by the "dir" source.
	Dir string `mapstructure:"dir" default:"resources"`
	// Prefix is the object prefix used by the "storage" source.
	Prefix string `mapstructure:"prefix" default:""`
	// Table is the table used by the "database" source.
	Table string `mapstructure:"table" default:"resources"`
}

// Backends carries the clients the configured sources are built on. Only
// the backends named in Config.Sources need to be set.
type Backends struct {
	Embedded fs.FS
	Storage  storage.Client
	Bucket   string
	DB       *gorm.DB
}

// NewResolver builds the search path described by cfg.
func NewResolver(cfg Config, b Backends) (*ChainResolver, error) {
	if len(cfg.Sources) == 0 {
		return nil, errors.New("no resource sources configured")
	}

	var resolvers []Resolver
	for _, raw := range cfg.Sources {
		switch source := strings.ToLower(strings.TrimSpace(raw)); source {
		case SourceEmbed:
			if b.Embedded == nil {
				return nil, errors.New("embed source requires embedded resources")
			}
			resolvers = append(resolvers, NewFSResolver(b.Embedded))
		case SourceDir:
			resolvers = append(resolvers, NewFSResolver(os.DirFS(cfg.Dir)))
		case SourceStorage:
			if b.Storage == nil {
				return nil, errors.New("storage source requires a storage client")
			}
			resolvers = append(resolvers, NewStorageResolver(b.Storage, b.Bucket, cfg.Prefix))
		case SourceDatabase:
			if b.DB == nil {
				return nil, errors.New("database source requires a database connection")
			}
			resolvers = append(resolvers, NewDBResolver(b.DB, cfg.Table))
		case "":
		default:
			return nil, fmt.Errorf("unknown resource source %q", raw)
		}
	}

	return NewChainResolver(resolvers...), nil
}

// HasSource reports whether source is part of the configured search path.
func (c Config) HasSource(source string) bool {
	for _, s := range c.Sources {
		if strings.EqualFold(strings.TrimSpace(s), source) {
			return true
		}
	}
	return false
}
