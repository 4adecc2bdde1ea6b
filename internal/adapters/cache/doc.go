// Package cache implements ports.CacheStore as a content-addressed,
// gob-encoded on-disk store: one file per location fingerprint, under a
// configured cache directory. gob is the standard library's binary object
// codec and is the natural fit here — the format is private and
// non-human-facing, unlike the corpus's TOML/YAML/TOON text formats,
// which this package deliberately does not reach for.
package cache

import (
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// formatTag identifies this package's on-disk record layout. A mismatch
// (or a version bump) forces a re-parse instead of a failed decode.
const formatTag = "appstream-cache-v1"

// Store implements ports.CacheStore by writing one gob-encoded file per
// fingerprint under Dir.
type Store struct {
	Dir    string
	Logger ports.Logger
}

// New returns a Store rooted at dir. dir is created on first Store call if
// it does not already exist.
func New(dir string, logger ports.Logger) *Store {
	return &Store{Dir: dir, Logger: logger}
}

func (s *Store) logWarn(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, kv...)
	}
}

func (s *Store) logDebug(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, kv...)
	}
}
