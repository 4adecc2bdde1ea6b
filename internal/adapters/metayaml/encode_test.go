package metayaml

import (
	"context"
	"strings"
	"testing"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func TestEncode_RoundTripsThroughParse(t *testing.T) {
	ctx := entities.NewContext()
	ctx.Origin = "my-distro"
	ctx.FormatVersion = "0.14"
	ctx.DefaultPriority = 5

	orig := entities.NewComponent("org.example.RoundTrip", ctx)
	orig.Kind = entities.KindDesktopApplication
	orig.Name.Set("C", "Round Trip")
	orig.Summary.Set("C", "Tests symmetric serialization")
	orig.AddCategory("Utility")
	orig.Keywords.Add("en", "roundtrip")
	orig.URLs["homepage"] = "https://example.org"
	orig.Provides = []entities.ProvidedItem{{Kind: entities.ProvidedBinary, Value: "roundtripctl"}}
	orig.Releases = []entities.Release{{Version: "1.0", URL: map[string]string{}, Description: entities.LocalizedText{}}}

	var buf strings.Builder
	if err := Encode(&buf, []*entities.Component{orig}, ctx); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	src := New(nil)
	comps, _, err := src.ParseBytes(context.Background(), []byte(buf.String()), entities.NewContext(), "roundtrip.yml")
	if err != nil {
		t.Fatalf("re-parsing encoded stream failed: %v\n%s", err, buf.String())
	}
	if len(comps) != 1 {
		t.Fatalf("expected 1 component after round trip, got %d", len(comps))
	}
	got := comps[0]
	if got.ID != orig.ID {
		t.Errorf("ID = %q, want %q", got.ID, orig.ID)
	}
	if v, _ := got.Name.Get("C"); v != "Round Trip" {
		t.Errorf("Name = %q", v)
	}
	if !got.HasCategory("Utility") {
		t.Errorf("Categories = %v", got.Categories)
	}
	if got.URLs["homepage"] != orig.URLs["homepage"] {
		t.Errorf("URLs = %v", got.URLs)
	}
	bins := got.ProvidesOfKind(entities.ProvidedBinary)
	if len(bins) != 1 || bins[0] != "roundtripctl" {
		t.Errorf("Provides = %v", bins)
	}
	if got.Origin != "my-distro" {
		t.Errorf("Origin = %q, want inherited from re-parsed header", got.Origin)
	}
}

func TestEncode_QuotesBooleanLookingLocaleKeys(t *testing.T) {
	ctx := entities.NewContext()
	c := entities.NewComponent("org.example.Booleanish", ctx)
	c.Name.Set("no", "Norwegian-ish locale tag")

	var buf strings.Builder
	if err := Encode(&buf, []*entities.Component{c}, ctx); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"no":`) {
		t.Errorf("expected boolean-looking locale key to be quoted, got:\n%s", buf.String())
	}

	src := New(nil)
	comps, _, err := src.ParseBytes(context.Background(), []byte(buf.String()), entities.NewContext(), "boolish.yml")
	if err != nil {
		t.Fatalf("re-parsing quoted-key stream failed: %v\n%s", err, buf.String())
	}
	if v, ok := comps[0].Name.Get("no"); !ok || v != "Norwegian-ish locale tag" {
		t.Errorf("Name[no] = %q, %v", v, ok)
	}
}
