package entities

// FormatStyle distinguishes a single-component metainfo document from a
// multi-component collection document.
type FormatStyle int

const (
	FormatStyleMetaInfo FormatStyle = iota
	FormatStyleCollection
)

func (s FormatStyle) String() string {
	if s == FormatStyleCollection {
		return "collection"
	}
	return "metainfo"
}

// FormatKind records which concrete file format produced a Component.
type FormatKind int

const (
	FormatKindXML FormatKind = iota
	FormatKindYAML
	FormatKindDesktopEntry
)

func (k FormatKind) String() string {
	switch k {
	case FormatKindYAML:
		return "yaml"
	case FormatKindDesktopEntry:
		return "desktop-entry"
	default:
		return "xml"
	}
}

// Context represents the environment a block of parsed metadata was read
// under: the active locale, the media base URL, and the origin/priority/
// format attributes a collection document's root applies to every child
//. Each Component belongs to exactly one Context for its
// lifetime; replacing it re-resolves localized views.
type Context struct {
	// Locale is the active locale used by localized-lookup helpers.
	Locale string
	// LocaleUseAll records the locale-use-all setting. The localized
	// accessors do not read it and always resolve one translation; search
	// takes the setting as its own argument.
	LocaleUseAll bool
	// MediaBaseURL is prefixed onto relative media paths (icons,
	// screenshots) during parsing and stripped again on serialization.
	MediaBaseURL string
	// Origin labels which catalog produced this block of metadata.
	Origin string
	// Architecture is the collection document's declared architecture,
	// inherited by every child component unless overridden.
	Architecture string
	// DefaultPriority seeds Component.Priority for children that do not
	// set their own.
	DefaultPriority int
	// Style is metainfo vs collection.
	Style FormatStyle
	// FormatVersion is the document's declared format/schema version
	// (e.g. the DEP-11 "Version" header, or a collection XML "version"
	// attribute).
	FormatVersion string
}

// NewContext returns a Context defaulted the way a bare metainfo document
// (no collection root) is treated: locale "C", metainfo style, no origin.
func NewContext() *Context {
	return &Context{
		Locale: "C",
		Style:  FormatStyleMetaInfo,
	}
}

// ResolveMediaURL prefixes a relative path with the Context's media base
// URL. Absolute URLs (containing "://") are returned unchanged.
func (c *Context) ResolveMediaURL(path string) string {
	if path == "" || c.MediaBaseURL == "" {
		return path
	}
	if containsScheme(path) {
		return path
	}
	sep := "/"
	if len(c.MediaBaseURL) > 0 && c.MediaBaseURL[len(c.MediaBaseURL)-1] == '/' {
		sep = ""
	}
	return c.MediaBaseURL + sep + path
}

// StripMediaURL reverses ResolveMediaURL for serialization: if path is
// prefixed by the Context's media base URL, the prefix is removed.
func (c *Context) StripMediaURL(path string) string {
	if c.MediaBaseURL == "" {
		return path
	}
	prefix := c.MediaBaseURL
	if len(prefix) > 0 && prefix[len(prefix)-1] != '/' {
		prefix += "/"
	}
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return path[len(prefix):]
	}
	return path
}

func containsScheme(s string) bool {
	for i := 0; i < len(s)-2; i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return true
		}
	}
	return false
}
