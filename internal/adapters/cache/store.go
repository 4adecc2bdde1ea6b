package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// envelope wraps a CacheRecord with the format tag Load checks before
// trusting the gob payload, so a stale on-disk layout from an older
// version of this package is treated as corrupt rather than misdecoded.
type envelope struct {
	Tag    string
	Record ports.CacheRecord
}

func (s *Store) path(fingerprint string) string {
	return filepath.Join(s.Dir, fingerprint+".gob")
}

// Load reads the cache file for fingerprint. A missing file, a format-tag
// mismatch, or a truncated/corrupt gob stream all return (nil, false, nil):
// the caller re-parses from source rather than treating any of these as
// fatal.
func (s *Store) Load(ctx context.Context, fingerprint string) (*ports.CacheRecord, bool, error) {
	data, err := os.ReadFile(s.path(fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, entities.NewError(entities.KindFile, "cache-load", s.path(fingerprint), err)
	}

	var env envelope
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&env); err != nil {
		s.logWarn("cache: discarding corrupt cache file", "path", s.path(fingerprint), "error", err)
		return nil, false, nil
	}
	if env.Tag != formatTag {
		s.logWarn("cache: discarding cache file with mismatched format tag", "path", s.path(fingerprint), "tag", env.Tag)
		return nil, false, nil
	}
	if env.Record.Fingerprint != fingerprint {
		s.logWarn("cache: discarding cache file with mismatched fingerprint", "path", s.path(fingerprint))
		return nil, false, nil
	}
	return &env.Record, true, nil
}

// Store atomically writes a cache file for fingerprint: encode to a temp
// file in the same directory, fsync, then rename over the final path.
func (s *Store) Store(ctx context.Context, fingerprint string, record *ports.CacheRecord) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return entities.NewError(entities.KindCache, "cache-store", s.Dir, err)
	}

	var buf bytes.Buffer
	env := envelope{Tag: formatTag, Record: *record}
	if err := gob.NewEncoder(&buf).Encode(&env); err != nil {
		return entities.NewError(entities.KindCache, "cache-encode", fingerprint, err)
	}

	finalPath := s.path(fingerprint)
	tmp, err := os.CreateTemp(s.Dir, ".cache-*.tmp")
	if err != nil {
		return entities.NewError(entities.KindCache, "cache-store", finalPath, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return entities.NewError(entities.KindCache, "cache-store", finalPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return entities.NewError(entities.KindCache, "cache-store", finalPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return entities.NewError(entities.KindCache, "cache-store", finalPath, err)
	}
	if err := os.Rename(tmpPath, finalPath); err != nil {
		os.Remove(tmpPath)
		return entities.NewError(entities.KindCache, "cache-store", finalPath, err)
	}
	return nil
}

// Fingerprint hashes a sorted (path, mtime, size) listing so a
// reordered-but-identical directory listing yields the same fingerprint.
func (s *Store) Fingerprint(files []ports.FileRef) string {
	sorted := make([]ports.FileRef, len(files))
	copy(sorted, files)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	h := sha256.New()
	for _, f := range sorted {
		fmt.Fprintf(h, "%s\x00%d\x00%d\x00", f.Path, f.ModTime.UnixNano(), f.Size)
	}
	return hex.EncodeToString(h.Sum(nil))
}
