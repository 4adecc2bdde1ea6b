package metayaml

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
	"github.com/ulikunitz/xz"
)

const sampleStream = `File: DEP-11
Version: '0.14'
Origin: distro-main
MediaBaseUrl: https://cdn.example.org/media
Architecture: x86_64
Priority: 10
---
Type: desktop-application
ID: org.gnome.Calculator
Name:
  C: Calculator
  fr: Calculatrice
Summary:
  C: Perform arithmetic calculations
Categories:
  - Utility
  - Science
Keywords:
  en:
    - math
    - arithmetic
Url:
  homepage: https://example.org/calculator
Icon:
  cached:
    - name: calculator.png
      width: 64
      height: 64
Launchable:
  desktop-id:
    - org.gnome.Calculator.desktop
Provides:
  binaries:
    - gnome-calculator
Releases:
  - version: '2.0'
    unix-timestamp: 1000
  - version: '1.0'
    unix-timestamp: 500
---
Type: desktop-application
ID: org.example.App
Name:
  C: Example App
Icon:
  remote:
    - name: icons/example.png
      width: 32
      height: 32
---
Merge: replace
ID: org.example.App
Name:
  C: Renamed Example
`

func TestParseBytes_Stream(t *testing.T) {
	src := New(nil)
	ctx := entities.NewContext()

	comps, merges, err := src.ParseBytes(context.Background(), []byte(sampleStream), ctx, "stream.yml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if len(comps) != 2 {
		t.Fatalf("expected 2 components, got %d", len(comps))
	}
	if len(merges) != 1 {
		t.Fatalf("expected 1 merge op, got %d", len(merges))
	}

	c := comps[0]
	if c.ID != "org.gnome.Calculator" {
		t.Errorf("ID = %q", c.ID)
	}
	if v, _ := c.Name.Get("C"); v != "Calculator" {
		t.Errorf("Name[C] = %q", v)
	}
	if v, _ := c.Name.Get("fr"); v != "Calculatrice" {
		t.Errorf("Name[fr] = %q", v)
	}
	if !c.HasCategory("Utility") || !c.HasCategory("Science") {
		t.Errorf("Categories = %v", c.Categories)
	}
	if c.Origin != "distro-main" {
		t.Errorf("Origin = %q, want inherited from header", c.Origin)
	}
	if c.Priority != 10 {
		t.Errorf("Priority = %d, want inherited default 10", c.Priority)
	}
	if entry, ok := c.LaunchableOfKind(entities.LaunchableDesktopID); !ok || entry != "org.gnome.Calculator.desktop" {
		t.Errorf("Launchable desktop-id = %q, %v", entry, ok)
	}
	bins := c.ProvidesOfKind(entities.ProvidedBinary)
	if len(bins) != 1 || bins[0] != "gnome-calculator" {
		t.Errorf("Provides binary = %v", bins)
	}
	if len(c.Releases) != 2 || c.Releases[0].Version != "2.0" {
		t.Errorf("Releases not sorted descending: %+v", c.Releases)
	}

	c2 := comps[1]
	wantURL := "https://cdn.example.org/media/icons/example.png"
	if c2.Icons[0].URL != wantURL {
		t.Errorf("Icon URL = %q, want %q (media_baseurl resolved)", c2.Icons[0].URL, wantURL)
	}

	m := merges[0]
	if m.Kind != entities.MergeReplace || m.Target != "org.example.App" {
		t.Errorf("merge op = %+v", m)
	}
	if m.OriginPriority != 10 || m.OriginName != "distro-main" {
		t.Errorf("merge op did not inherit origin fields: %+v", m)
	}
}

func TestParseBytes_MissingHeaderFails(t *testing.T) {
	src := New(nil)
	ctx := entities.NewContext()
	_, _, err := src.ParseBytes(context.Background(), []byte("ID: org.example.NoHeader\n"), ctx, "bad.yml")
	if err == nil {
		t.Fatal("expected error for stream missing DEP-11 header")
	}
}

func TestParseBytes_MissingIDFails(t *testing.T) {
	src := New(nil)
	ctx := entities.NewContext()
	doc := "File: DEP-11\nVersion: '0.14'\n---\nName:\n  C: No ID\n"
	_, _, err := src.ParseBytes(context.Background(), []byte(doc), ctx, "bad.yml")
	if err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestParseBytes_UnknownKeyTolerated(t *testing.T) {
	src := New(nil)
	ctx := entities.NewContext()
	doc := "File: DEP-11\nVersion: '0.14'\n---\nID: org.example.Tolerant\nUnknownKey: ignored\n"
	comps, _, err := src.ParseBytes(context.Background(), []byte(doc), ctx, "tolerant.yml")
	if err != nil {
		t.Fatalf("unexpected error tolerating unknown key: %v", err)
	}
	if len(comps) != 1 || comps[0].ID != "org.example.Tolerant" {
		t.Fatalf("comps = %+v", comps)
	}
}

func TestParse_DecompressesGzAndXz(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	if _, err := w.Write([]byte(sampleStream)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	gzPath := filepath.Join(dir, "stream.yml.gz")
	if err := os.WriteFile(gzPath, gz.Bytes(), 0o644); err != nil {
		t.Fatalf("write gz fixture: %v", err)
	}

	var xzBuf bytes.Buffer
	xw, err := xz.NewWriter(&xzBuf)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := xw.Write([]byte(sampleStream)); err != nil {
		t.Fatalf("xz write: %v", err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("xz close: %v", err)
	}
	xzPath := filepath.Join(dir, "stream.yml.xz")
	if err := os.WriteFile(xzPath, xzBuf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xz fixture: %v", err)
	}

	src := New(nil)
	ctx := entities.NewContext()
	for _, path := range []string{gzPath, xzPath} {
		comps, _, err := src.Parse(context.Background(), ports.FileRef{Path: path}, ctx)
		if err != nil {
			t.Fatalf("Parse(%s): %v", path, err)
		}
		if len(comps) != 2 {
			t.Fatalf("Parse(%s) comps = %+v", path, comps)
		}
	}
}
