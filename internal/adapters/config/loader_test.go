package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func TestLoader_LoadConfig_DefaultsWhenNoFiles(t *testing.T) {
	loader := NewLoader(nil)
	loader.paths.paths.ConfigHome = t.TempDir() // no config.toml present here
	ctx := context.Background()

	tmpDir := t.TempDir()
	cfg, err := loader.LoadConfig(ctx, tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	defaults := entities.NewPoolConfig()
	if cfg.Locale != defaults.Locale {
		t.Errorf("Locale = %q, want %q", cfg.Locale, defaults.Locale)
	}
	if cfg.LoadStdLocations != defaults.LoadStdLocations {
		t.Errorf("LoadStdLocations = %v, want %v", cfg.LoadStdLocations, defaults.LoadStdLocations)
	}
	if cfg.PoolFlags != defaults.PoolFlags {
		t.Errorf("PoolFlags = %+v, want %+v", cfg.PoolFlags, defaults.PoolFlags)
	}
}

func TestLoader_LoadConfig_ProjectFileOverridesDefaults(t *testing.T) {
	loader := NewLoader(nil)
	loader.paths.paths.ConfigHome = t.TempDir()

	tmpDir := t.TempDir()
	projectToml := `
locale = "de_DE"
strict = true

[[locations]]
path = "/opt/custom/share/appstream"
kind = "yaml"

[cache]
location = "/var/cache/custom-appstream"
ignore_age = true

[pool]
monitor = true
load_flatpak = true
`
	if err := os.WriteFile(filepath.Join(tmpDir, "appstream.toml"), []byte(projectToml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loader.LoadConfig(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Locale != "de_DE" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if !cfg.Strict {
		t.Error("expected Strict = true")
	}
	if len(cfg.ExtraLocations) != 1 || cfg.ExtraLocations[0].Path != "/opt/custom/share/appstream" {
		t.Fatalf("ExtraLocations = %+v", cfg.ExtraLocations)
	}
	if cfg.ExtraLocations[0].Kind != entities.FormatKindYAML {
		t.Errorf("Kind = %v, want yaml", cfg.ExtraLocations[0].Kind)
	}
	if cfg.CacheLocation != "/var/cache/custom-appstream" {
		t.Errorf("CacheLocation = %q", cfg.CacheLocation)
	}
	if !cfg.CacheFlags.IgnoreAge {
		t.Error("expected CacheFlags.IgnoreAge = true")
	}
	if !cfg.PoolFlags.Monitor || !cfg.PoolFlags.LoadFlatpak {
		t.Errorf("PoolFlags = %+v", cfg.PoolFlags)
	}
	// Pool flags not mentioned in the project file still default to true
	// (carried from NewPoolConfig before Merge).
	if !cfg.PoolFlags.LoadMetaInfo {
		t.Error("expected LoadMetaInfo to retain its default of true")
	}
}

func TestLoader_SaveConfig_RoundTrips(t *testing.T) {
	loader := NewLoader(nil)
	loader.paths.paths.ConfigHome = t.TempDir()
	tmpDir := t.TempDir()

	cfg := entities.NewPoolConfig()
	cfg.Locale = "fr_FR"
	cfg.CacheLocation = "/tmp/cache"
	cfg.ExtraLocations = []entities.DataLocation{{Path: "/data/one", Kind: entities.FormatKindDesktopEntry}}

	if err := loader.SaveConfig(context.Background(), tmpDir, cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	got, err := loadFile(filepath.Join(tmpDir, "appstream.toml"))
	if err != nil {
		t.Fatalf("loadFile failed: %v", err)
	}
	if got.Locale != "fr_FR" {
		t.Errorf("Locale = %q", got.Locale)
	}
	if got.CacheLocation != "/tmp/cache" {
		t.Errorf("CacheLocation = %q", got.CacheLocation)
	}
	if len(got.ExtraLocations) != 1 || got.ExtraLocations[0].Kind != entities.FormatKindDesktopEntry {
		t.Fatalf("ExtraLocations = %+v", got.ExtraLocations)
	}
}

func TestLoader_SaveConfig_NilIsError(t *testing.T) {
	loader := NewLoader(nil)
	if err := loader.SaveConfig(context.Background(), t.TempDir(), nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
