package entities

import "strings"

// craftSuffixes are encoding/cruft suffixes stripped from a raw locale
// string on ingest
var craftSuffixes = []string{".utf-8", ".utf8", ".iso-8859-1", ".iso88591"}

// craftLocales are synthetic placeholder locale values some upstreams emit
// that never name a real language and are dropped entirely on ingest.
var craftLocales = map[string]bool{
	"x-test":     true,
	"xx":         true,
	"en@quot":    true,
	"en@boldquot": true,
}

// CanonicalizeLocale normalizes a raw `xml:lang`/YAML locale key into the
// canonical `lang[_TERRITORY][@modifier]` form used as a LocalizedText map
// key: encoding suffixes are stripped (matched case-insensitively), the
// letter case of the rest is kept as given, an empty locale becomes "C",
// and cruft/placeholder locales collapse to "" (meaning: drop this entry,
// it carries no usable localization).
func CanonicalizeLocale(raw string) string {
	l := strings.TrimSpace(raw)
	if l == "" {
		return "C"
	}
	lower := strings.ToLower(l)
	if craftLocales[lower] {
		return ""
	}
	for _, suf := range craftSuffixes {
		if strings.HasSuffix(lower, suf) {
			l = l[:len(l)-len(suf)]
			lower = lower[:len(lower)-len(suf)]
			break
		}
	}
	return l
}

// LocaleLanguage returns the language-only prefix of a canonical locale,
// i.e. everything before the first "_" or "@".
func LocaleLanguage(locale string) string {
	if i := strings.IndexAny(locale, "_@"); i >= 0 {
		return locale[:i]
	}
	return locale
}

// LocaleMatches reports whether stored locale L is compatible with active
// locale A under the compatibility rule:
//
//	L == A, or L is the language-only prefix of A, or A is the
//	language-only prefix of L and no exact match for A exists.
//
// hasExactMatch tells LocaleMatches whether some other stored locale in
// the same map equals A exactly; when it does, the "A is prefix of L"
// branch must not fire (an exact match always wins over a broader one).
func LocaleMatches(stored, active string, hasExactMatch bool) bool {
	if stored == active {
		return true
	}
	if stored == LocaleLanguage(active) {
		return true
	}
	if !hasExactMatch && active == LocaleLanguage(stored) {
		return true
	}
	return false
}
