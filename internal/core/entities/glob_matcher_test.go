package entities

import (
	"testing"
)

func TestGlobMatcher_ExactMatch(t *testing.T) {
	m := NewGlobMatcher("org.gnome.Calculator")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org.gnome.Calculator", true},
		{"org.gnome.gedit", false},
		{"org.kde.kate", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_PrefixWildcard(t *testing.T) {
	m := NewGlobMatcher("org.gnome.*")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org.gnome.", true},
		{"org.gnome.Calculator", true},
		{"org.gnome.gedit", true},
		{"org.kde.kate", false},
		{"net.org.gnome.Calculator", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_SuffixWildcard(t *testing.T) {
	m := NewGlobMatcher("*.desktop")

	tests := []struct {
		text     string
		expected bool
	}{
		{"kiki.desktop", true},
		{"firefox.desktop", true},
		{"org.gnome.gedit.desktop", true},
		{"desktop", false}, // no "." before "desktop"
		{"kiki.service", false},
		{"desktop.kiki", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_MiddleWildcard(t *testing.T) {
	m := NewGlobMatcher("org-*-fwupd")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org-lvfs-fwupd", true},
		{"org-vendor-fwupd", true},
		{"org-fwupd", false}, // the two "-" cannot share one character
		{"org-lvfs", false},
		{"lvfs-fwupd", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_MultipleWildcards(t *testing.T) {
	m := NewGlobMatcher("*-lvfs-*")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org-lvfs-fwupd", true},
		{"vendor-lvfs-driver", true},
		{"lvfs-fwupd", false},    // no "-" before "lvfs"
		{"org-lvfs", false},      // no "-" after "lvfs"
		{"org-fwupd", false},
		{"-lvfs-", true}, // minimal match
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_MatchAll(t *testing.T) {
	m := NewGlobMatcher("*")

	tests := []string{
		"org.gnome.Calculator",
		"fwupd",
		"",
		"any-thing-at-all",
	}

	for _, text := range tests {
		if !m.Match(text) {
			t.Errorf("Match(%q) = false, want true (should match everything)", text)
		}
	}
}

func TestGlobMatcher_SingleCharWildcard(t *testing.T) {
	m := NewGlobMatcher("org.fwupd.lvfs-?")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org.fwupd.lvfs-1", true},
		{"org.fwupd.lvfs-a", true},
		{"org.fwupd.lvfs-x", true},
		{"org.fwupd.lvfs-10", false},
		{"org.fwupd.lvfs-", false},
		{"org.fwupd.lvfs", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestGlobMatcher_MixedWildcards(t *testing.T) {
	m := NewGlobMatcher("org.fwupd.?-*")

	tests := []struct {
		text     string
		expected bool
	}{
		{"org.fwupd.1-lvfs", true},
		{"org.fwupd.a-driver", true},
		{"org.fwupd.x-", true},
		{"org.fwupd.10-lvfs", false}, // ? matches a single char
		{"org.fwupd.lvfs", false},
	}

	for _, tt := range tests {
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestMatchAny(t *testing.T) {
	patterns := []string{"org.gnome.*", "*.desktop", "org.fwupd.lvfs-?"}

	tests := []struct {
		text     string
		expected bool
	}{
		{"org.gnome.gedit", true},       // matches org.gnome.*
		{"kiki.desktop", true},          // matches *.desktop
		{"org.fwupd.lvfs-1", true},      // matches org.fwupd.lvfs-?
		{"org.gnome.Calculator.desktop", true}, // matches both patterns
		{"org.kde.kate", false},         // matches none
	}

	for _, tt := range tests {
		if got := MatchAny(tt.text, patterns); got != tt.expected {
			t.Errorf("MatchAny(%q, %v) = %v, want %v", tt.text, patterns, got, tt.expected)
		}
	}
}

func TestGlobMatcher_EdgeCases(t *testing.T) {
	tests := []struct {
		pattern  string
		text     string
		expected bool
	}{
		{"", "", true},           // empty matches empty
		{"", "text", false},      // empty doesn't match non-empty
		{"text", "", false},      // non-empty doesn't match empty
		{"**", "anything", true}, // multiple wildcards
		{"*a*b*", "aXb", true},   // overlapping wildcards
		{"*a*b*", "ab", true},    // consecutive letters
		{"*a*b*", "ba", false},   // wrong order
	}

	for _, tt := range tests {
		m := NewGlobMatcher(tt.pattern)
		if got := m.Match(tt.text); got != tt.expected {
			t.Errorf("NewGlobMatcher(%q).Match(%q) = %v, want %v",
				tt.pattern, tt.text, got, tt.expected)
		}
	}
}
