package search

import (
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// field names the source a token was extracted from, for scoring:
// id > keyword > name > summary > category > provides.
type field int

const (
	fieldID field = iota
	fieldKeyword
	fieldName
	fieldSummary
	fieldCategory
	fieldProvides
)

// fieldWeight assigns each field's contribution to a Component's score.
// Order matches listed precedence.
var fieldWeight = map[field]int{
	fieldID:       60,
	fieldKeyword:  50,
	fieldName:     40,
	fieldSummary:  30,
	fieldCategory: 20,
	fieldProvides: 10,
}

// fieldTokens is the per-field token breakdown the scorer consults, and
// what SetCachedTokens flattens for entities.Component's cache.
type fieldTokens map[field][]string

// buildFieldTokens extracts every search token from c for the given
// locale, grouped by source field: id segments, name (all locales if
// locale-use-all), summary, keywords, categories, provided binaries,
// MIME types.
func buildFieldTokens(c *entities.Component, locale string, useAllLocales bool) fieldTokens {
	ft := make(fieldTokens)

	ft[fieldID] = Tokenize(strings.ReplaceAll(c.ID, ".", " "))

	if useAllLocales {
		for _, v := range c.Name.GetAll() {
			ft[fieldName] = append(ft[fieldName], Tokenize(v)...)
		}
	} else if v, ok := c.Name.Get(locale); ok {
		ft[fieldName] = Tokenize(v)
	}

	if v, ok := c.Summary.Get(locale); ok {
		ft[fieldSummary] = Tokenize(v)
	}

	ft[fieldKeyword] = c.Keywords.All()
	ft[fieldCategory] = append([]string(nil), c.Categories...)

	ft[fieldProvides] = append(
		c.ProvidesOfKind(entities.ProvidedBinary),
		c.ProvidesOfKind(entities.ProvidedMediaType)...,
	)

	return ft
}

// flatten collapses a fieldTokens breakdown into the single token list
// entities.Component.SetCachedTokens stores.
func (ft fieldTokens) flatten() []string {
	var out []string
	for _, toks := range ft {
		out = append(out, toks...)
	}
	return out
}

// contains reports whether stemmed token tok is present in field f's
// token list, stemming each stored token before comparing.
func (ft fieldTokens) contains(f field, tok string, stemmer Stemmer) bool {
	for _, stored := range ft[f] {
		if stemmer.Stem(stored) == tok {
			return true
		}
	}
	return false
}
