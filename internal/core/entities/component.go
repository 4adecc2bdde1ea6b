package entities

import "sort"

// Keywords is a per-locale set of search/filter tokens. Unlike
// LocalizedText, each locale maps to a list, not a scalar.
type Keywords map[string][]string

// Add appends tok under locale's canonical form, de-duplicating.
func (k Keywords) Add(locale, tok string) {
	canon := CanonicalizeLocale(locale)
	if canon == "" || tok == "" {
		return
	}
	for _, existing := range k[canon] {
		if existing == tok {
			return
		}
	}
	k[canon] = append(k[canon], tok)
}

// All returns the flattened, de-duplicated set of every keyword across
// every stored locale (used by the search token cache for every query).
func (k Keywords) All() []string {
	seen := make(map[string]bool)
	var out []string
	for _, toks := range k {
		for _, t := range toks {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Component is the central AppStream entity. A Component is
// mutable only while being parsed or merged; once published to a Pool's
// index it must be treated as read-only.
type Component struct {
	ID           string
	Kind         ComponentKind
	Scope        Scope
	Origin       string
	FormatKind   FormatKind
	Priority     int
	MergeKind    MergeKind
	Architecture string
	Branch       string

	Name          LocalizedText
	Summary       LocalizedText
	Description   LocalizedText
	DeveloperName LocalizedText
	Keywords      Keywords
	Categories    []string

	Icons          []Icon
	URLs           map[string]string // role -> URL ("homepage", "bugtracker", "help", "donation", "translate", "contact", "vcs-browser", "contribute")
	Launchables    []Launchable
	Provides       []ProvidedItem
	Bundles        []Bundle
	Releases       []Release
	Screenshots    []Screenshot
	Relations      []Relation
	ContentRatings []ContentRating
	Extends        []string // ids of components this addon extends
	Replaces       []string // ids this component supersedes

	SourcePackage  string
	BinaryPackages []string

	// Context is the environment (locale/base-URL/origin) this Component
	// was parsed under. Exactly one Context per Component lifetime;
	// SetContext re-resolves localized views that cache a pointer.
	Context *Context

	// tokens is the per-locale search token cache, built once
	// per Component per locale and invalidated whenever the component is
	// mutated during loading/merging.
	tokens map[string][]string
}

// NewComponent creates an empty Component bound to ctx, with its map
// fields initialized so callers can populate it directly.
func NewComponent(id string, ctx *Context) *Component {
	if ctx == nil {
		ctx = NewContext()
	}
	return &Component{
		ID:            id,
		Context:       ctx,
		Origin:        ctx.Origin,
		Architecture:  ctx.Architecture,
		Priority:      ctx.DefaultPriority,
		Name:          LocalizedText{},
		Summary:       LocalizedText{},
		Description:   LocalizedText{},
		DeveloperName: LocalizedText{},
		Keywords:      Keywords{},
		URLs:          map[string]string{},
	}
}

// SetContext rebinds the Component to a new Context and invalidates any
// cached localized views / search tokens
func (c *Component) SetContext(ctx *Context) {
	c.Context = ctx
	c.tokens = nil
}

// IndexKey returns the fully qualified identity key of a Component:
// (id, scope, bundle-kind, origin, architecture, branch). The pool index
// does not use it; it deduplicates on (id, scope) only.
type IndexKey struct {
	ID           string
	Scope        Scope
	BundleKind   string
	Origin       string
	Architecture string
	Branch       string
}

func (c *Component) IndexKey() IndexKey {
	return IndexKey{
		ID:           c.ID,
		Scope:        c.Scope,
		BundleKind:   c.primaryBundleKind(),
		Origin:       c.Origin,
		Architecture: c.Architecture,
		Branch:       c.Branch,
	}
}

func (c *Component) primaryBundleKind() string {
	if len(c.Bundles) == 0 {
		return ""
	}
	return c.Bundles[0].Kind
}

// Validate checks the universal invariants: id pattern, non-unknown
// scope/kind, and that nested value types are internally consistent.
func (c *Component) Validate() error {
	var errs ValidationErrors

	if err := ValidateID(c.ID); err != nil {
		errs.Add("Component", "ID", c.ID, "invalid id", err)
	}
	if c.Kind == KindUnknown {
		errs.Add("Component", "Kind", c.ID, "unknown component kind", ErrUnknownKind)
	}
	if c.Scope == ScopeUnknown {
		errs.Add("Component", "Scope", c.ID, "unknown component scope", ErrUnknownScope)
	}
	for i, s := range c.Screenshots {
		if err := s.Validate(); err != nil {
			errs.Add("Component", "Screenshots", c.ID, "invalid screenshot at index", err)
			_ = i
		}
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// LocalizedName resolves the display name for the Component's current
// Context locale.
func (c *Component) LocalizedName() string {
	v, _ := c.Name.Get(c.Context.Locale)
	return v
}

// LocalizedSummary resolves the one-line summary for the current locale.
func (c *Component) LocalizedSummary() string {
	v, _ := c.Summary.Get(c.Context.Locale)
	return v
}

// HasCategory reports whether cat is among the Component's categories.
func (c *Component) HasCategory(cat string) bool {
	for _, existing := range c.Categories {
		if existing == cat {
			return true
		}
	}
	return false
}

// AddCategory appends cat if not already present.
func (c *Component) AddCategory(cat string) {
	if !c.HasCategory(cat) {
		c.Categories = append(c.Categories, cat)
	}
}

// ProvidesOfKind returns every provided-item value of the given kind.
func (c *Component) ProvidesOfKind(kind ProvidedKind) []string {
	var out []string
	for _, p := range c.Provides {
		if p.Kind == kind {
			out = append(out, p.Value)
		}
	}
	return out
}

// LaunchableOfKind returns the first launchable entry of the given kind,
// or ("", false) if none.
func (c *Component) LaunchableOfKind(kind LaunchableKind) (string, bool) {
	for _, l := range c.Launchables {
		if l.Kind == kind {
			return l.Entry, true
		}
	}
	return "", false
}

// InvalidateTokenCache clears the cached search tokens, forcing a rebuild
// on the next search. Called whenever a merge mutates the component.
func (c *Component) InvalidateTokenCache() {
	c.tokens = nil
}

// CachedTokens returns the search tokens cached for locale, and whether a
// cache entry exists. The search package builds and stores this cache via
// SetCachedTokens, once per Component per locale.
func (c *Component) CachedTokens(locale string) ([]string, bool) {
	toks, ok := c.tokens[locale]
	return toks, ok
}

// SetCachedTokens stores the search tokens for locale.
func (c *Component) SetCachedTokens(locale string, tokens []string) {
	if c.tokens == nil {
		c.tokens = make(map[string][]string)
	}
	c.tokens[locale] = tokens
}

// Clone returns a deep-enough copy suitable for merge application: a new
// Component whose top-level slices and maps are fresh copies, so list
// append operations during merge never retroactively mutate an
// already-indexed Component — read-only once published. Maps held inside
// list elements (release descriptions and URLs, screenshot captions) are
// not copied and stay shared with the original.
func (c *Component) Clone() *Component {
	clone := *c
	clone.Name = cloneLocalized(c.Name)
	clone.Summary = cloneLocalized(c.Summary)
	clone.Description = cloneLocalized(c.Description)
	clone.DeveloperName = cloneLocalized(c.DeveloperName)
	clone.Keywords = cloneKeywords(c.Keywords)
	clone.Categories = append([]string(nil), c.Categories...)
	clone.Icons = append([]Icon(nil), c.Icons...)
	clone.URLs = cloneStringMap(c.URLs)
	clone.Launchables = append([]Launchable(nil), c.Launchables...)
	clone.Provides = append([]ProvidedItem(nil), c.Provides...)
	clone.Bundles = append([]Bundle(nil), c.Bundles...)
	clone.Releases = append([]Release(nil), c.Releases...)
	clone.Screenshots = append([]Screenshot(nil), c.Screenshots...)
	clone.Relations = append([]Relation(nil), c.Relations...)
	clone.ContentRatings = append([]ContentRating(nil), c.ContentRatings...)
	clone.Extends = append([]string(nil), c.Extends...)
	clone.Replaces = append([]string(nil), c.Replaces...)
	clone.BinaryPackages = append([]string(nil), c.BinaryPackages...)
	clone.tokens = nil
	return &clone
}

func cloneLocalized(t LocalizedText) LocalizedText {
	out := make(LocalizedText, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

func cloneKeywords(k Keywords) Keywords {
	out := make(Keywords, len(k))
	for locale, toks := range k {
		out[locale] = append([]string(nil), toks...)
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
