// Package ports declares the interfaces the Pool core depends on but does
// not implement itself: metadata discovery, cache storage, filesystem
// monitoring, logging, and configuration loading. Concrete implementations
// live under internal/adapters; the core only ever imports this package and
// internal/core/entities.
package ports

import (
	"context"
	"time"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// MetadataSource discovers and parses metadata files under one configured
// root, yielding Components and queued merge operations bound to a shared
// Context. A Location (GLOSSARY) is served by exactly one MetadataSource
// implementation per format style (XML, YAML, desktop-entry).
type MetadataSource interface {
	// Discover walks root and returns every file this source recognizes,
	// newest-mtime information included so the Pool can fingerprint the
	// location without a second filesystem pass.
	Discover(ctx context.Context, root string) ([]FileRef, error)

	// Parse reads one discovered file and returns the Components and
	// merge operations it contains, bound to ctx. A parse failure for one
	// file MUST NOT prevent the caller from processing the rest of a
	// location's files (spec: file-level errors do not abort the load).
	Parse(ctx context.Context, ref FileRef, pctx *entities.Context) ([]*entities.Component, []entities.MergeOp, error)
}

// FileRef identifies one file a MetadataSource discovered, carrying enough
// filesystem metadata for fingerprinting without re-stat'ing it.
type FileRef struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// CacheStore persists and recovers a serialized index snapshot for one
// Location, keyed by its content fingerprint.
type CacheStore interface {
	// Load reads the cache file for fingerprint. Returns (nil, false, nil)
	// if no cache file exists yet; returns an error only for I/O failures
	// distinct from "absent" or "corrupt" (both of which force a re-parse
	// rather than propagate).
	Load(ctx context.Context, fingerprint string) (*CacheRecord, bool, error)

	// Store atomically writes a cache file for fingerprint (temp file,
	// fsync, rename), overwriting any existing file for the same
	// fingerprint.
	Store(ctx context.Context, fingerprint string, record *CacheRecord) error

	// Fingerprint computes the content fingerprint for a sorted file
	// listing: a hash over (path, mtime, size) triples.
	Fingerprint(files []FileRef) string
}

// CacheRecord is the decoded payload of one cache file: every Component
// recovered for a Location, plus the fingerprint it was written under.
type CacheRecord struct {
	Fingerprint string
	Components  []*entities.Component
}

// FileWatcher monitors filesystem locations and emits coalesced change
// events, via a channel plus context shape rather than a callback
// registry.
type FileWatcher interface {
	// Watch starts monitoring rootPath for changes, returning a channel of
	// coalesced events. The channel is closed by Stop; cancelling ctx ends
	// delivery for rootPath without closing it.
	Watch(ctx context.Context, rootPath string) (<-chan FileChangeEvent, error)

	// Stop halts watching and closes every channel Watch returned.
	Stop() error
}

// FileChangeEvent describes one coalesced change reported by a FileWatcher.
type FileChangeEvent struct {
	Path string
	Op   FileChangeOp
}

// FileChangeOp is one of the three change signals a FileWatcher reports.
type FileChangeOp int

const (
	FileAdded FileChangeOp = iota
	FileRemoved
	FileChanged
)

func (op FileChangeOp) String() string {
	switch op {
	case FileAdded:
		return "added"
	case FileRemoved:
		return "removed"
	default:
		return "changed"
	}
}

// Logger is the structured, leveled logging interface the core and every
// adapter depend on. Implementations emit JSON records to stderr, driven by
// APPSTREAM_DEBUG.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, err error, keysAndValues ...any)

	WithContext(ctx context.Context) Logger
	WithFields(keysAndValues ...any) Logger
}

// ConfigLoader loads a PoolConfig from layered sources: defaults, global
// file, project/caller file, environment variables, struct overrides.
type ConfigLoader interface {
	// LoadConfig reads appstream.toml from projectRoot (if present),
	// layers the global config file and environment variables beneath it,
	// and returns the merged result.
	LoadConfig(ctx context.Context, projectRoot string) (*entities.PoolConfig, error)

	// SaveConfig persists config as appstream.toml under projectRoot.
	SaveConfig(ctx context.Context, projectRoot string, config *entities.PoolConfig) error

	// LoadGlobalConfig reads the global config file
	// (~/.config/appstream/config.toml) only.
	LoadGlobalConfig(ctx context.Context) (*entities.PoolConfig, error)

	// SaveGlobalConfig persists the global config file.
	SaveGlobalConfig(ctx context.Context, config *entities.PoolConfig) error
}

// PathResolver resolves XDG-compliant paths for the Pool's data and cache
// directories (APPSTREAM_CACHE_DIR, XDG_DATA_DIRS, XDG_DATA_HOME).
type PathResolver interface {
	DataHome() string
	DataDirs() []string
	CacheDir() string
	ConfigFile() string
}
