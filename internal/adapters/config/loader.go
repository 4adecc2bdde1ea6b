// Package config provides configuration loading from appstream.toml files,
// layered over a global XDG config file and environment variables.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
	"github.com/pelletier/go-toml/v2"
)

// Loader implements ports.ConfigLoader for TOML configuration files, with
// the global file resolved via an XDGPathResolver.
type Loader struct {
	paths  *XDGPathResolver
	logger ports.Logger
}

// NewLoader creates a config loader. logger may be nil.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{paths: NewXDGPathResolver(), logger: logger}
}

// tomlConfig mirrors the appstream.toml layout.
type tomlConfig struct {
	Locations []tomlLocation `toml:"locations"`
	Cache     tomlCache      `toml:"cache"`
	Pool      tomlPool       `toml:"pool"`
	Locale    string         `toml:"locale"`
	Strict    *bool          `toml:"strict"`
}

type tomlLocation struct {
	Path string `toml:"path"`
	Kind string `toml:"kind"`
}

type tomlCache struct {
	Location      string `toml:"location"`
	IgnoreAge     *bool  `toml:"ignore_age"`
	ReadOnly      *bool  `toml:"read_only"`
	NoWrite       *bool  `toml:"no_write"`
	RefreshAlways *bool  `toml:"refresh_always"`
}

type tomlPool struct {
	LoadStdLocations *bool `toml:"load_std_locations"`
	Monitor          *bool `toml:"monitor"`
	ResolveAddons    *bool `toml:"resolve_addons"`
	LoadOSCollection *bool `toml:"load_os_collection"`
	LoadFlatpak      *bool `toml:"load_flatpak"`
	LoadMetaInfo     *bool `toml:"load_metainfo"`
	LoadDesktopFiles *bool `toml:"load_desktop_files"`
}

func parseKind(s string) entities.FormatKind {
	switch strings.ToLower(s) {
	case "yaml":
		return entities.FormatKindYAML
	case "desktop-entry", "desktop":
		return entities.FormatKindDesktopEntry
	default:
		return entities.FormatKindXML
	}
}

func (tc tomlConfig) toPoolConfig() *entities.PoolConfig {
	cfg := &entities.PoolConfig{Locale: tc.Locale}

	for _, l := range tc.Locations {
		if l.Path == "" {
			continue
		}
		cfg.ExtraLocations = append(cfg.ExtraLocations, entities.DataLocation{
			Path: l.Path,
			Kind: parseKind(l.Kind),
		})
	}

	cfg.CacheLocation = tc.Cache.Location
	if tc.Cache.IgnoreAge != nil {
		cfg.CacheFlags.IgnoreAge = *tc.Cache.IgnoreAge
	}
	if tc.Cache.ReadOnly != nil {
		cfg.CacheFlags.ReadOnly = *tc.Cache.ReadOnly
	}
	if tc.Cache.NoWrite != nil {
		cfg.CacheFlags.NoWrite = *tc.Cache.NoWrite
	}
	if tc.Cache.RefreshAlways != nil {
		cfg.CacheFlags.RefreshAlways = *tc.Cache.RefreshAlways
	}

	if tc.Pool.LoadStdLocations != nil {
		cfg.LoadStdLocations = *tc.Pool.LoadStdLocations
	}
	if tc.Pool.Monitor != nil {
		cfg.PoolFlags.Monitor = *tc.Pool.Monitor
	}
	if tc.Pool.ResolveAddons != nil {
		cfg.PoolFlags.ResolveAddons = *tc.Pool.ResolveAddons
	}
	if tc.Pool.LoadOSCollection != nil {
		cfg.PoolFlags.LoadOSCollection = *tc.Pool.LoadOSCollection
	}
	if tc.Pool.LoadFlatpak != nil {
		cfg.PoolFlags.LoadFlatpak = *tc.Pool.LoadFlatpak
	}
	if tc.Pool.LoadMetaInfo != nil {
		cfg.PoolFlags.LoadMetaInfo = *tc.Pool.LoadMetaInfo
	}
	if tc.Pool.LoadDesktopFiles != nil {
		cfg.PoolFlags.LoadDesktopFiles = *tc.Pool.LoadDesktopFiles
	}
	if tc.Strict != nil {
		cfg.Strict = *tc.Strict
	}

	return cfg
}

func fromPoolConfig(cfg *entities.PoolConfig) tomlConfig {
	tc := tomlConfig{
		Locale: cfg.Locale,
		Cache: tomlCache{
			Location:      cfg.CacheLocation,
			IgnoreAge:     &cfg.CacheFlags.IgnoreAge,
			ReadOnly:      &cfg.CacheFlags.ReadOnly,
			NoWrite:       &cfg.CacheFlags.NoWrite,
			RefreshAlways: &cfg.CacheFlags.RefreshAlways,
		},
		Pool: tomlPool{
			LoadStdLocations: &cfg.LoadStdLocations,
			Monitor:          &cfg.PoolFlags.Monitor,
			ResolveAddons:    &cfg.PoolFlags.ResolveAddons,
			LoadOSCollection: &cfg.PoolFlags.LoadOSCollection,
			LoadFlatpak:      &cfg.PoolFlags.LoadFlatpak,
			LoadMetaInfo:     &cfg.PoolFlags.LoadMetaInfo,
			LoadDesktopFiles: &cfg.PoolFlags.LoadDesktopFiles,
		},
		Strict: &cfg.Strict,
	}
	for _, l := range cfg.ExtraLocations {
		tc.Locations = append(tc.Locations, tomlLocation{Path: l.Path, Kind: l.Kind.String()})
	}
	return tc
}

// LoadConfig reads appstream.toml from projectRoot, layered over the
// global config file, then defaults (global→project precedence: the
// project file overrides the global one field-by-field).
func (l *Loader) LoadConfig(ctx context.Context, projectRoot string) (*entities.PoolConfig, error) {
	config := entities.NewPoolConfig()

	global, err := l.LoadGlobalConfig(ctx)
	if err != nil {
		return nil, err
	}
	config.Merge(global)

	projectPath := filepath.Join(projectRoot, "appstream.toml")
	if _, err := os.Stat(projectPath); err == nil {
		project, err := loadFile(projectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load project config: %w", err)
		}
		config.Merge(project)
	}

	l.logDebug("config: loaded", "project_root", projectRoot)
	return config, nil
}

// LoadGlobalConfig reads the global config file only, returning an empty
// PoolConfig (not an error) when no file exists.
func (l *Loader) LoadGlobalConfig(ctx context.Context) (*entities.PoolConfig, error) {
	path := l.paths.ConfigFile()
	if _, err := os.Stat(path); err != nil {
		return &entities.PoolConfig{}, nil
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load global config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string) (*entities.PoolConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var tc tomlConfig
	if err := toml.Unmarshal(data, &tc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return tc.toPoolConfig(), nil
}

// SaveConfig persists config as appstream.toml under projectRoot.
func (l *Loader) SaveConfig(ctx context.Context, projectRoot string, config *entities.PoolConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := os.MkdirAll(projectRoot, 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	return writeFile(filepath.Join(projectRoot, "appstream.toml"), config)
}

// SaveGlobalConfig persists config as the global XDG config file.
func (l *Loader) SaveGlobalConfig(ctx context.Context, config *entities.PoolConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	path := l.paths.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return writeFile(path, config)
}

func writeFile(path string, config *entities.PoolConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	f.WriteString("# appstream pool configuration\n\n")

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(fromPoolConfig(config)); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func (l *Loader) logDebug(msg string, kv ...any) {
	if l.logger != nil {
		l.logger.Debug(msg, kv...)
	}
}
