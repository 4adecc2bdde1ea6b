package entities

import "path/filepath"

// XDGPaths holds resolved XDG-compliant paths for the pool's on-disk cache
// and metadata search locations. Path resolution (including the
// APPSTREAM_CACHE_DIR override) is performed by the config adapter; this
// entity stores the results as a value object.
type XDGPaths struct {
	// ConfigHome is the resolved configuration directory, typically
	// ~/.config/appstream/ or overridden by XDG_CONFIG_HOME.
	ConfigHome string

	// DataHome is the resolved user metadata directory, typically
	// ~/.local/share/ or overridden by XDG_DATA_HOME. User-scope metainfo
	// and collection files live under here.
	DataHome string

	// DataDirs lists additional system-wide data directories to search,
	// from XDG_DATA_DIRS (colon-separated), defaulting to
	// /usr/local/share:/usr/share when unset.
	DataDirs []string

	// CacheHome is the resolved cache directory, typically ~/.cache/appstream/
	// or overridden by APPSTREAM_CACHE_DIR.
	CacheHome string
}

// ConfigFile returns the path to the global pool config file.
func (p XDGPaths) ConfigFile() string {
	return filepath.Join(p.ConfigHome, "config.toml")
}

// CacheDir returns the cache directory path (same as CacheHome).
func (p XDGPaths) CacheDir() string {
	return p.CacheHome
}

// Validate checks that all required paths are set and absolute.
func (p XDGPaths) Validate() error {
	if p.DataHome == "" {
		return NewValidationError("XDGPaths", "DataHome", "", "data home path is required", nil)
	}
	if !filepath.IsAbs(p.DataHome) {
		return NewValidationError("XDGPaths", "DataHome", p.DataHome, "data home path must be absolute", nil)
	}
	if p.CacheHome == "" {
		return NewValidationError("XDGPaths", "CacheHome", "", "cache home path is required", nil)
	}
	if !filepath.IsAbs(p.CacheHome) {
		return NewValidationError("XDGPaths", "CacheHome", p.CacheHome, "cache home path must be absolute", nil)
	}
	for _, d := range p.DataDirs {
		if !filepath.IsAbs(d) {
			return NewValidationError("XDGPaths", "DataDirs", d, "data dirs entries must be absolute", nil)
		}
	}
	return nil
}
