package pool

import (
	"sort"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// applyMerges drains mergeOps, in ascending (origin-priority, origin-name,
// document-order) order, against components keyed by id. A
// merge targeting an id absent from components is silently discarded. The
// merge pseudo-components themselves are never added to components.
func applyMerges(components []*entities.Component, mergeOps []entities.MergeOp) []*entities.Component {
	if len(mergeOps) == 0 {
		return components
	}

	ordered := append([]entities.MergeOp(nil), mergeOps...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Less(ordered[j])
	})

	byID := make(map[string][]*entities.Component)
	var order []string
	for _, c := range components {
		if _, seen := byID[c.ID]; !seen {
			order = append(order, c.ID)
		}
		byID[c.ID] = append(byID[c.ID], c)
	}

	for _, op := range ordered {
		targets, ok := byID[op.Target]
		if !ok {
			continue // merge targets a non-existent id: discarded
		}

		switch op.Kind {
		case entities.MergeRemoveComponent:
			delete(byID, op.Target)

		case entities.MergeReplace:
			for _, t := range targets {
				applyReplace(t, op.Payload)
			}

		case entities.MergeAppend:
			for _, t := range targets {
				applyAppend(t, op.Payload)
			}
		}
	}

	out := make([]*entities.Component, 0, len(components))
	for _, id := range order {
		out = append(out, byID[id]...)
	}
	return out
}

// applyReplace overwrites target's Name, Summary, Description, Icons,
// Categories, Keywords, Screenshots and URLs with payload's wherever those
// are non-empty, leaving fields absent from the payload untouched. Other
// payload fields (releases, provides, launchables, developer name, ...)
// are not applied.
func applyReplace(target, payload *entities.Component) {
	if payload == nil {
		return
	}
	if len(payload.Name) > 0 {
		target.Name = payload.Name
	}
	if len(payload.Summary) > 0 {
		target.Summary = payload.Summary
	}
	if len(payload.Description) > 0 {
		target.Description = payload.Description
	}
	if len(payload.Icons) > 0 {
		target.Icons = payload.Icons
	}
	if len(payload.Categories) > 0 {
		target.Categories = payload.Categories
	}
	if len(payload.Keywords) > 0 {
		target.Keywords = payload.Keywords
	}
	if len(payload.Screenshots) > 0 {
		target.Screenshots = payload.Screenshots
	}
	if len(payload.URLs) > 0 {
		target.URLs = payload.URLs
	}
	target.InvalidateTokenCache()
}

// applyAppend adds payload's list-valued fields onto target's, de-duplicating
// after addition.
func applyAppend(target, payload *entities.Component) {
	if payload == nil {
		return
	}
	for cat := range setOf(payload.Categories) {
		target.AddCategory(cat)
	}
	target.Screenshots = dedupScreenshots(append(target.Screenshots, payload.Screenshots...))
	target.Releases = dedupReleases(append(target.Releases, payload.Releases...))
	target.Provides = dedupProvides(append(target.Provides, payload.Provides...))
	for locale, toks := range payload.Keywords {
		for _, tok := range toks {
			target.Keywords.Add(locale, tok)
		}
	}
	entities.SortReleases(target.Releases)
	target.InvalidateTokenCache()
}

func setOf(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[it] = true
	}
	return out
}

func dedupProvides(items []entities.ProvidedItem) []entities.ProvidedItem {
	seen := make(map[entities.ProvidedItem]bool, len(items))
	out := make([]entities.ProvidedItem, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// dedupReleases keeps the first entry seen for each version, so applying
// the same append merge twice never duplicates a release.
func dedupReleases(items []entities.Release) []entities.Release {
	seen := make(map[string]bool, len(items))
	out := make([]entities.Release, 0, len(items))
	for _, it := range items {
		if seen[it.Version] {
			continue
		}
		seen[it.Version] = true
		out = append(out, it)
	}
	return out
}

// screenshotIdentity keys a Screenshot by its media: a video's URL, or its
// images' URLs sorted and joined (order-independent, since a second append
// of the same screenshot may list its images in a different order).
func screenshotIdentity(s entities.Screenshot) string {
	if s.Video != nil {
		return "video:" + s.Video.URL
	}
	urls := make([]string, len(s.Images))
	for i, img := range s.Images {
		urls[i] = img.URL
	}
	sort.Strings(urls)
	return "images:" + strings.Join(urls, ",")
}

// dedupScreenshots keeps the first entry seen for each screenshotIdentity.
func dedupScreenshots(items []entities.Screenshot) []entities.Screenshot {
	seen := make(map[string]bool, len(items))
	out := make([]entities.Screenshot, 0, len(items))
	for _, it := range items {
		k := screenshotIdentity(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}
