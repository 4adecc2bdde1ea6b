// Package pool implements the Pool: the subsystem that discovers metadata
// under configured locations, parses it into Components, applies merge
// operations, indexes and caches the result, and answers queries.
//
// # Thread safety
//
// index is NOT thread-safe during construction. It is built once per load
// (or reload), then frozen and shared: Pool never mutates an installed
// index in place. A completed reload builds a brand-new index and swaps
// the Pool's pointer atomically, so concurrent readers always see either
// the old or the new index, never a partially-built one.
package pool

import (
	"sort"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// providedKey and launchableKey are the (kind, value) composite keys the
// Indexer groups on.
type providedKey struct {
	Kind  entities.ProvidedKind
	Value string
}

type launchableKey struct {
	Kind  entities.LaunchableKind
	Entry string
}

// index holds four purpose-built lookup maps, one per query shape, each
// maintained for O(1) lookup, rather than one generic structure scanned
// per query.
type index struct {
	byID          map[string][]*entities.Component
	byProvided    map[providedKey][]*entities.Component
	byLaunchable  map[launchableKey][]*entities.Component
	byCategory    map[string][]*entities.Component

	// all is every indexed Component, used by Search's browse-all path.
	all []*entities.Component
}

func newIndex() *index {
	return &index{
		byID:         make(map[string][]*entities.Component),
		byProvided:   make(map[providedKey][]*entities.Component),
		byLaunchable: make(map[launchableKey][]*entities.Component),
		byCategory:   make(map[string][]*entities.Component),
	}
}

// buildIndex constructs a frozen index from a flat list of already-merged
// Components. Components sharing (id, scope) are deduplicated here: the
// higher-priority one wins; ties break by more-specific origin, then by
// lexicographic origin name.
func buildIndex(components []*entities.Component) *index {
	idx := newIndex()

	winners := resolveCollisions(components)
	idx.all = winners

	for _, c := range winners {
		idx.byID[c.ID] = append(idx.byID[c.ID], c)

		for _, p := range c.Provides {
			key := providedKey{Kind: p.Kind, Value: p.Value}
			idx.byProvided[key] = append(idx.byProvided[key], c)
		}
		for _, l := range c.Launchables {
			key := launchableKey{Kind: l.Kind, Entry: l.Entry}
			idx.byLaunchable[key] = append(idx.byLaunchable[key], c)
		}
		for _, cat := range c.Categories {
			idx.byCategory[cat] = append(idx.byCategory[cat], c)
		}
	}

	for id, group := range idx.byID {
		sortByIDResult(group)
		idx.byID[id] = group
	}

	return idx
}

// resolveCollisions drops lower-priority duplicates sharing (id, scope),
// keeping the highest-priority survivor. No CollisionError is raised
// here; this function only implements the deterministic tiebreak.
func resolveCollisions(components []*entities.Component) []*entities.Component {
	type groupKey struct {
		id    string
		scope entities.Scope
	}
	best := make(map[groupKey]*entities.Component)

	for _, c := range components {
		key := groupKey{id: c.ID, scope: c.Scope}
		existing, ok := best[key]
		if !ok || winsOver(c, existing) {
			best[key] = c
		}
	}

	out := make([]*entities.Component, 0, len(best))
	for _, c := range best {
		out = append(out, c)
	}
	return out
}

// winsOver reports whether candidate outranks incumbent under the
// collision tiebreak: higher priority wins; equal priority favors the
// more-specific origin (a non-empty origin beats an empty one);
// remaining ties favor the lexicographically later origin name
// (later-loaded wins).
func winsOver(candidate, incumbent *entities.Component) bool {
	if candidate.Priority != incumbent.Priority {
		return candidate.Priority > incumbent.Priority
	}
	candidateSpecific := candidate.Origin != ""
	incumbentSpecific := incumbent.Origin != ""
	if candidateSpecific != incumbentSpecific {
		return candidateSpecific
	}
	return candidate.Origin > incumbent.Origin
}

// sortByIDResult orders a by-id result group priority-descending, then
// origin-lexicographic.
func sortByIDResult(group []*entities.Component) {
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].Priority != group[j].Priority {
			return group[i].Priority > group[j].Priority
		}
		return group[i].Origin < group[j].Origin
	})
}

// ByID returns every Component registered under id, in priority-descending,
// origin-lex order.
func (idx *index) ByID(id string) []*entities.Component {
	return idx.byID[id]
}

// ByProvided returns every Component advertising the given provided-item
// (kind, value) pair.
func (idx *index) ByProvided(kind entities.ProvidedKind, value string) []*entities.Component {
	return idx.byProvided[providedKey{Kind: kind, Value: value}]
}

// ByLaunchable returns every Component exposing the given launchable
// (kind, entry) pair.
func (idx *index) ByLaunchable(kind entities.LaunchableKind, entry string) []*entities.Component {
	return idx.byLaunchable[launchableKey{Kind: kind, Entry: entry}]
}

// ByCategory returns every Component tagged with the given category id.
func (idx *index) ByCategory(cat string) []*entities.Component {
	return idx.byCategory[cat]
}

// All returns every indexed Component.
func (idx *index) All() []*entities.Component {
	return idx.all
}

// resolveAddons attaches each addon Component to its extends targets by
// pointer, a weak back-reference resolved on demand rather than an owning
// cycle. Addons is populated only when
// PoolFlags.ResolveAddons is set.
func resolveAddons(idx *index) map[string][]*entities.Component {
	extendsMap := make(map[string][]*entities.Component)
	for _, c := range idx.all {
		if c.Kind != entities.KindAddon {
			continue
		}
		for _, targetID := range c.Extends {
			if len(idx.ByID(targetID)) == 0 {
				continue // target not present in this index; weak reference left unresolved
			}
			extendsMap[targetID] = append(extendsMap[targetID], c)
		}
	}
	return extendsMap
}
