package entities

import "testing"

func TestNewContext_Defaults(t *testing.T) {
	ctx := NewContext()
	if ctx.Locale != "C" {
		t.Errorf("Locale = %q, want C", ctx.Locale)
	}
	if ctx.Style != FormatStyleMetaInfo {
		t.Errorf("Style = %v, want FormatStyleMetaInfo", ctx.Style)
	}
}

func TestContext_ResolveMediaURL(t *testing.T) {
	ctx := NewContext()
	ctx.MediaBaseURL = "https://example.com/media"

	if got := ctx.ResolveMediaURL("icons/app.png"); got != "https://example.com/media/icons/app.png" {
		t.Errorf("ResolveMediaURL = %q", got)
	}
	if got := ctx.ResolveMediaURL("https://other.example/app.png"); got != "https://other.example/app.png" {
		t.Errorf("ResolveMediaURL should leave absolute URLs untouched, got %q", got)
	}
}

func TestContext_StripMediaURL(t *testing.T) {
	ctx := NewContext()
	ctx.MediaBaseURL = "https://example.com/media"

	if got := ctx.StripMediaURL("https://example.com/media/icons/app.png"); got != "icons/app.png" {
		t.Errorf("StripMediaURL = %q, want icons/app.png", got)
	}
	if got := ctx.StripMediaURL("unrelated/path.png"); got != "unrelated/path.png" {
		t.Errorf("StripMediaURL should leave non-matching paths untouched, got %q", got)
	}
}

func TestFormatStyle_String(t *testing.T) {
	if FormatStyleMetaInfo.String() != "metainfo" {
		t.Error("FormatStyleMetaInfo.String() mismatch")
	}
	if FormatStyleCollection.String() != "collection" {
		t.Error("FormatStyleCollection.String() mismatch")
	}
}
