package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

func newTestRecord(fingerprint string) *ports.CacheRecord {
	ctx := entities.NewContext()
	c := entities.NewComponent("org.example.cached", ctx)
	c.Name.Set("C", "Cached App")
	return &ports.CacheRecord{Fingerprint: fingerprint, Components: []*entities.Component{c}}
}

func TestStore_LoadMissingReturnsNotFoundNotError(t *testing.T) {
	s := New(t.TempDir(), nil)
	rec, ok, err := s.Load(context.Background(), "absent")
	if err != nil || ok || rec != nil {
		t.Fatalf("Load() = %+v, %v, %v; want nil, false, nil", rec, ok, err)
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := New(t.TempDir(), nil)
	want := newTestRecord("abc123")

	if err := s.Store(context.Background(), "abc123", want); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, ok, err := s.Load(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !ok {
		t.Fatal("Load() ok = false after Store()")
	}
	if got.Fingerprint != want.Fingerprint {
		t.Errorf("Fingerprint = %q, want %q", got.Fingerprint, want.Fingerprint)
	}
	if len(got.Components) != 1 || got.Components[0].ID != "org.example.cached" {
		t.Fatalf("Components = %+v", got.Components)
	}
	if v, _ := got.Components[0].Name.Get("C"); v != "Cached App" {
		t.Errorf("Name = %q", v)
	}
}

func TestStore_CorruptFileTreatedAsMiss(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	if err := os.WriteFile(filepath.Join(dir, "bad.gob"), []byte("not a gob stream"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec, ok, err := s.Load(context.Background(), "bad")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil (corrupt cache forces re-parse)", err)
	}
	if ok || rec != nil {
		t.Fatalf("Load() = %+v, %v; want nil, false for corrupt file", rec, ok)
	}
}

func TestStore_MismatchedFingerprintTreatedAsMiss(t *testing.T) {
	s := New(t.TempDir(), nil)
	if err := s.Store(context.Background(), "written-as", newTestRecord("written-as")); err != nil {
		t.Fatal(err)
	}
	// Load under a different fingerprint: the file doesn't exist at that
	// path, so this must also behave as a plain cache miss.
	_, ok, err := s.Load(context.Background(), "looked-up-as")
	if err != nil || ok {
		t.Fatalf("Load() = %v, %v; want miss for unwritten fingerprint", ok, err)
	}
}

func TestStore_NoLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, nil)
	if err := s.Store(context.Background(), "fp", newTestRecord("fp")); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "fp.gob" {
		t.Fatalf("directory contents = %v, want exactly fp.gob", entries)
	}
}

func TestFingerprint_StableUnderReordering(t *testing.T) {
	s := New(t.TempDir(), nil)
	now := time.Unix(1700000000, 0)
	a := ports.FileRef{Path: "/data/a.xml", ModTime: now, Size: 10}
	b := ports.FileRef{Path: "/data/b.xml", ModTime: now, Size: 20}

	fp1 := s.Fingerprint([]ports.FileRef{a, b})
	fp2 := s.Fingerprint([]ports.FileRef{b, a})
	if fp1 != fp2 {
		t.Errorf("Fingerprint not order-independent: %q != %q", fp1, fp2)
	}
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	s := New(t.TempDir(), nil)
	now := time.Unix(1700000000, 0)
	a := ports.FileRef{Path: "/data/a.xml", ModTime: now, Size: 10}
	aChanged := ports.FileRef{Path: "/data/a.xml", ModTime: now, Size: 11}

	if s.Fingerprint([]ports.FileRef{a}) == s.Fingerprint([]ports.FileRef{aChanged}) {
		t.Error("Fingerprint did not change when file size changed")
	}
}
