package search

import (
	"strings"
	"unicode/utf8"
)

// Stemmer reduces a token to its stem for matching purposes, keyed on the
// active locale's language. An identity stemmer is a correct (if
// unaggressive) implementation for locales without a table entry.
type Stemmer interface {
	Stem(token string) string
}

// IdentityStemmer returns tokens unchanged; used for every locale without
// a dedicated entry in stemmers.
type IdentityStemmer struct{}

func (IdentityStemmer) Stem(token string) string { return token }

// englishSuffixes are stripped longest-first, Porter-lite: common
// inflectional endings are removed without the full Porter algorithm's
// multi-pass rewrite rules.
var englishSuffixes = []string{
	"ational", "ization", "fulness", "ousness", "iveness",
	"ating", "ation", "ator", "edly",
	"ing", "ies", "ied", "ed", "es", "ly", "s",
}

// EnglishStemmer implements the suffix-stripping rule above. It never
// shortens a token below three runes, avoiding over-stemming short words
// like "is" or "as".
type EnglishStemmer struct{}

func (EnglishStemmer) Stem(token string) string {
	for _, suf := range englishSuffixes {
		if strings.HasSuffix(token, suf) && utf8.RuneCountInString(token)-len(suf) >= 3 {
			return token[:len(token)-len(suf)]
		}
	}
	return token
}

var stemmers = map[string]Stemmer{
	"en": EnglishStemmer{},
}

// StemmerFor returns the stemmer registered for locale's language,
// falling back to IdentityStemmer for locales with no table entry.
func StemmerFor(locale string) Stemmer {
	lang := locale
	if i := strings.IndexAny(locale, "_@"); i >= 0 {
		lang = locale[:i]
	}
	if s, ok := stemmers[strings.ToLower(lang)]; ok {
		return s
	}
	return IdentityStemmer{}
}
