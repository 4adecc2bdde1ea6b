package search

import (
	"sort"
	"sync"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// MinScore filters out results whose total score falls below this
// threshold.
const MinScore = 1

// Result is one scored match.
type Result struct {
	Component *entities.Component
	Score     int
}

// cacheKey identifies one (Component, locale, all-locales) token-cache entry.
type cacheKey struct {
	component *entities.Component
	locale    string
	useAll    bool
}

// Engine runs queries over a set of Components, maintaining the per-locale
// token cache built once per Component per locale.
type Engine struct {
	mu    sync.Mutex
	cache map[cacheKey]fieldTokens
}

// NewEngine returns a ready-to-use search Engine.
func NewEngine() *Engine {
	return &Engine{cache: make(map[cacheKey]fieldTokens)}
}

// tokensFor returns the field-token breakdown for c at locale, building
// and caching it on first use. useAllLocales controls whether Name tokens
// are drawn from every stored translation instead of just the active one.
func (e *Engine) tokensFor(c *entities.Component, locale string, useAllLocales bool) fieldTokens {
	key := cacheKey{component: c, locale: locale, useAll: useAllLocales}

	e.mu.Lock()
	defer e.mu.Unlock()

	if ft, ok := e.cache[key]; ok {
		return ft
	}
	ft := buildFieldTokens(c, locale, useAllLocales)
	e.cache[key] = ft
	c.SetCachedTokens(locale, ft.flatten())
	return ft
}

// Invalidate drops every cached token entry for c (call after a merge
// mutates it, alongside entities.Component.InvalidateTokenCache).
func (e *Engine) Invalidate(c *entities.Component) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for key := range e.cache {
		if key.component == c {
			delete(e.cache, key)
		}
	}
}

// Query runs the full search lifecycle: normalize, tokenize, optionally stem,
// AND-match every token against each Component's per-field token cache,
// sum per-field weights for matched tokens, filter below MinScore, and
// break ties by priority then id. If raw is shorter than MinTokenLength,
// every Component in components is returned unscored ("browse all").
func (e *Engine) Query(components []*entities.Component, raw, locale string, useAllLocales, stem bool) []Result {
	if IsBrowseAll(raw) {
		out := make([]Result, len(components))
		for i, c := range components {
			out[i] = Result{Component: c}
		}
		return out
	}

	queryTokens := TokenizeQuery(raw)
	stemmer := Stemmer(IdentityStemmer{})
	if stem {
		stemmer = StemmerFor(locale)
	}
	for i, t := range queryTokens {
		queryTokens[i] = stemmer.Stem(t)
	}

	var results []Result
	for _, c := range components {
		ft := e.tokensFor(c, locale, useAllLocales)
		score, matchedAll := scoreComponent(ft, queryTokens, stemmer)
		if !matchedAll || score < MinScore {
			continue
		}
		results = append(results, Result{Component: c, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Component.Priority != results[j].Component.Priority {
			return results[i].Component.Priority > results[j].Component.Priority
		}
		return results[i].Component.ID < results[j].Component.ID
	})
	return results
}

// fieldPrecedence is the order scoreComponent checks fields in when a
// token matches more than one; the first (highest-weight) match wins the
// token's contribution, matching id > keyword > name >
// summary > category > provides precedence.
var fieldPrecedence = []field{fieldID, fieldKeyword, fieldName, fieldSummary, fieldCategory, fieldProvides}

// scoreComponent returns the component's total score and whether every
// query token matched at least one field (AND semantics).
func scoreComponent(ft fieldTokens, queryTokens []string, stemmer Stemmer) (int, bool) {
	total := 0
	for _, tok := range queryTokens {
		matched := false
		for _, f := range fieldPrecedence {
			if ft.contains(f, tok, stemmer) {
				total += fieldWeight[f]
				matched = true
				break
			}
		}
		if !matched {
			return 0, false
		}
	}
	return total, len(queryTokens) > 0
}
