package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

const appName = "appstream"

// defaultDataDirs mirrors the XDG Base Directory Specification's fallback
// for XDG_DATA_DIRS when the environment variable is unset or empty.
var defaultDataDirs = []string{"/usr/local/share", "/usr/share"}

// XDGPathResolver implements ports.PathResolver using the XDG Base
// Directory Specification, with an APPSTREAM_CACHE_DIR override for the
// cache location.
type XDGPathResolver struct {
	paths entities.XDGPaths
}

// NewXDGPathResolver creates a path resolver with XDG-compliant directory
// resolution, reading the environment once at construction time.
func NewXDGPathResolver() *XDGPathResolver {
	home, _ := os.UserHomeDir()

	return &XDGPathResolver{
		paths: entities.XDGPaths{
			ConfigHome: resolveDir(
				envWithSuffix("XDG_CONFIG_HOME", appName),
				filepath.Join(home, ".config", appName),
			),
			DataHome: resolveDir(
				envWithSuffix("XDG_DATA_HOME", appName),
				filepath.Join(home, ".local", "share", appName),
			),
			DataDirs: resolveDataDirs(),
			CacheHome: resolveDir(
				os.Getenv("APPSTREAM_CACHE_DIR"),
				envWithSuffix("XDG_CACHE_HOME", appName),
				filepath.Join(home, ".cache", appName),
			),
		},
	}
}

// DataHome returns the user-scope metadata directory.
func (r *XDGPathResolver) DataHome() string { return r.paths.DataHome }

// DataDirs returns the system-wide metadata search directories, each
// already suffixed with the appstream subdirectory.
func (r *XDGPathResolver) DataDirs() []string { return r.paths.DataDirs }

// CacheDir returns the resolved cache directory.
func (r *XDGPathResolver) CacheDir() string { return r.paths.CacheHome }

// ConfigFile returns the path to the global pool config file.
func (r *XDGPathResolver) ConfigFile() string { return r.paths.ConfigFile() }

// Paths returns the resolved XDG paths as a value object.
func (r *XDGPathResolver) Paths() entities.XDGPaths { return r.paths }

// EnsureDir creates the directory if it doesn't exist (lazy creation on
// first write).
func (r *XDGPathResolver) EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// resolveDir returns the first non-empty path from the candidates.
func resolveDir(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}

// envWithSuffix returns the env var value with appName appended, or empty
// string if not set.
func envWithSuffix(envVar, suffix string) string {
	val := os.Getenv(envVar)
	if val == "" {
		return ""
	}
	return filepath.Join(val, suffix)
}

// resolveDataDirs parses XDG_DATA_DIRS (colon-separated) and appends
// appName to each entry, falling back to defaultDataDirs when unset.
func resolveDataDirs() []string {
	raw := os.Getenv("XDG_DATA_DIRS")
	var roots []string
	if raw == "" {
		roots = defaultDataDirs
	} else {
		for _, p := range strings.Split(raw, ":") {
			if p != "" {
				roots = append(roots, p)
			}
		}
		if len(roots) == 0 {
			roots = defaultDataDirs
		}
	}

	dirs := make([]string, 0, len(roots))
	for _, r := range roots {
		dirs = append(dirs, filepath.Join(r, appName))
	}
	return dirs
}
