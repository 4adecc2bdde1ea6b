package entities

import "testing"

func TestCanonicalizeLocale(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty defaults to C", "", "C"},
		{"plain language", "en", "en"},
		{"language and territory", "en_GB", "en_GB"},
		{"strips utf-8 suffix", "de_DE.UTF-8", "de_DE"},
		{"strips utf8 suffix case-insensitively", "de_DE.utf8", "de_DE"},
		{"cruft placeholder dropped", "x-test", ""},
		{"quot modifier dropped", "en@quot", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanonicalizeLocale(tt.input); got != tt.expected {
				t.Errorf("CanonicalizeLocale(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLocaleLanguage(t *testing.T) {
	tests := []struct{ in, want string }{
		{"en", "en"},
		{"en_GB", "en"},
		{"zh_CN@modifier", "zh"},
	}
	for _, tt := range tests {
		if got := LocaleLanguage(tt.in); got != tt.want {
			t.Errorf("LocaleLanguage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLocaleMatches(t *testing.T) {
	tests := []struct {
		name          string
		stored        string
		active        string
		hasExactMatch bool
		want          bool
	}{
		{"exact", "en_GB", "en_GB", true, true},
		{"stored is language prefix of active", "en", "en_GB", false, true},
		{"active is language prefix of stored, no exact", "en_GB", "en", false, true},
		{"active is language prefix of stored, but exact exists elsewhere", "en_GB", "en", true, false},
		{"no relation", "de", "en_GB", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocaleMatches(tt.stored, tt.active, tt.hasExactMatch); got != tt.want {
				t.Errorf("LocaleMatches(%q, %q, %v) = %v, want %v", tt.stored, tt.active, tt.hasExactMatch, got, tt.want)
			}
		})
	}
}

func TestLocalizedText_GetFallback(t *testing.T) {
	txt := LocalizedText{}
	txt.Set("C", "Calculator")
	txt.Set("de", "Rechner")

	if v, ok := txt.Get("de_DE"); !ok || v != "Rechner" {
		t.Errorf("Get(de_DE) = (%q, %v), want (Rechner, true)", v, ok)
	}
	if v, ok := txt.Get("fr"); !ok || v != "Calculator" {
		t.Errorf("Get(fr) = (%q, %v), want (Calculator, true) via C fallback", v, ok)
	}
}

func TestLocalizedText_SetDropsCruft(t *testing.T) {
	txt := LocalizedText{}
	txt.Set("x-test", "should not appear")
	if len(txt) != 0 {
		t.Errorf("expected cruft locale to be dropped, got %v", txt)
	}
}

func TestKeywords_AddDedup(t *testing.T) {
	kw := Keywords{}
	kw.Add("C", "math")
	kw.Add("C", "math")
	kw.Add("C", "calculator")
	if len(kw["C"]) != 2 {
		t.Errorf("expected 2 deduped keywords, got %v", kw["C"])
	}
}
