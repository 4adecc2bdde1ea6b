package cmd

import (
	"context"
	"fmt"

	"github.com/madstone-tech/appstream-go/internal/adapters/cache"
	"github.com/madstone-tech/appstream-go/internal/adapters/config"
	"github.com/madstone-tech/appstream-go/internal/adapters/desktopentry"
	"github.com/madstone-tech/appstream-go/internal/adapters/filesystem"
	"github.com/madstone-tech/appstream-go/internal/adapters/logging"
	"github.com/madstone-tech/appstream-go/internal/adapters/metaxml"
	"github.com/madstone-tech/appstream-go/internal/adapters/metayaml"
	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/pool"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
	"github.com/spf13/viper"
)

// buildPool wires every adapter package into a ready-to-Load Pool, reading
// layered configuration for ProjectRoot the way every subcommand needs it.
func buildPool(ctx context.Context) (*pool.Pool, error) {
	return buildPoolWithMonitor(ctx, false)
}

// buildPoolWithMonitor is buildPool, but forceMonitor overrides the
// configured PoolFlags.Monitor value (used by the watch subcommand, which
// always needs a live FileWatcher regardless of what appstream.toml says).
func buildPoolWithMonitor(ctx context.Context, forceMonitor bool) (*pool.Pool, error) {
	logger := logging.NewFromEnv()

	loader := config.NewLoader(logger)
	poolConfig, err := loader.LoadConfig(ctx, ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	paths := config.NewXDGPathResolver()
	cacheDir := poolConfig.CacheLocation
	if cacheDir == "" {
		cacheDir = paths.CacheDir()
	}

	for _, loc := range extraLocations {
		poolConfig.ExtraLocations = append(poolConfig.ExtraLocations, loc)
	}

	// APPSTREAM_* environment variables sit above the file hierarchy
	// config.Loader already applied.
	if v := viper.GetString("locale"); v != "" {
		poolConfig.Locale = v
	}
	if v := viper.GetString("cache_dir"); v != "" {
		cacheDir = v
	}
	if forceMonitor {
		poolConfig.PoolFlags.Monitor = true
	}

	sources := map[entities.FormatKind]ports.MetadataSource{
		entities.FormatKindXML:          metaxml.New(logger),
		entities.FormatKindYAML:         metayaml.New(logger),
		entities.FormatKindDesktopEntry: desktopentry.New(logger),
	}

	var store ports.CacheStore
	if !poolConfig.CacheFlags.RefreshAlways {
		store = cache.New(cacheDir, logger)
	}

	var watcher ports.FileWatcher
	if poolConfig.PoolFlags.Monitor {
		fw, err := filesystem.NewFileMonitor()
		if err != nil {
			return nil, fmt.Errorf("failed to create file monitor: %w", err)
		}
		watcher = fw
	}

	return pool.New(poolConfig, sources, store, watcher, logger), nil
}
