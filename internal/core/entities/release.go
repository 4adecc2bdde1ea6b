package entities

import "sort"

// ReleaseKind distinguishes a stable release from a development snapshot.
type ReleaseKind int

const (
	ReleaseKindStable ReleaseKind = iota
	ReleaseKindDevelopment
)

// ReleaseArtifact describes one downloadable build of a Release; only the
// fields the Pool needs to index or round-trip are kept.
type ReleaseArtifact struct {
	Kind     string // "source", "binary"
	Platform string // target platform triplet, e.g. "x86_64-linux-gnu"
	URL      string
	Checksum map[string]string // algorithm -> hex digest
	SizeKind map[string]int64  // "download"/"installed" -> bytes
}

// Release describes one version entry in a Component's release history.
type Release struct {
	Version     string
	Kind        ReleaseKind
	Timestamp   int64 // unix seconds; 0 if unknown
	Description LocalizedText
	URL         map[string]string // role -> URL (e.g. "details")
	Artifacts   []ReleaseArtifact
}

// SortReleases orders releases by version, non-increasing
// ("kept sorted by version, descending").
func SortReleases(releases []Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		return CompareVersions(releases[i].Version, releases[j].Version) > 0
	})
}

// Screenshot describes one screenshot entry; it carries either a list of
// static images (one per resolution) or a single video, never both.
type Screenshot struct {
	Default     bool
	Caption     LocalizedText
	Images      []ScreenshotImage
	Video       *ScreenshotVideo
}

// ScreenshotImage is one resolution/density variant of a screenshot.
type ScreenshotImage struct {
	URL    string
	Width  int
	Height int
	Scale  int
}

// ScreenshotVideo is a screenshot's video variant.
type ScreenshotVideo struct {
	URL       string
	Codec     string
	Container string
	Width     int
	Height    int
}

// Validate enforces the screenshot invariant: the default screenshot must
// not be a video, and a screenshot must carry images XOR a video, not
// both or neither.
func (s Screenshot) Validate() error {
	hasImages := len(s.Images) > 0
	hasVideo := s.Video != nil
	if hasImages == hasVideo {
		return NewValidationError("Screenshot", "", "", "must contain either images or a single video, not both or neither", nil)
	}
	if s.Default && hasVideo {
		return NewValidationError("Screenshot", "Default", "", "the default screenshot must not be a video", nil)
	}
	return nil
}

// ProvidedItem is one capability a Component advertises, grouped by kind.
type ProvidedItem struct {
	Kind  ProvidedKind
	Value string
}

// Launchable is one handle by which a Component can be started.
type Launchable struct {
	Kind  LaunchableKind
	Entry string
}

// Bundle describes one packaging format a Component ships as (flatpak,
// snap, appimage, ...). Only the identifying reference is modeled; the
// Pool treats bundle contents as opaque (installing/extracting bundles is
// a package-manager concern, out of scope).
type Bundle struct {
	Kind      string // "flatpak", "snap", "appimage", "tarball", "cabinet"
	Reference string
	RuntimeID string // flatpak runtime id, when Kind == "flatpak"
}

// RelationItem is one clause of a Relation.
type RelationItem struct {
	Kind       RelationKind
	Value      string
	Comparator VersionComparator
	Version    string // compared version, when Kind == RelationItemID
}

// Relation groups RelationItems under a role (requires/recommends/supports).
type Relation struct {
	Role  RelationRole
	Items []RelationItem
}

// ContentRatingEntry is one attribute rated by a content-rating scheme
// (e.g. an OARS attribute id and its severity).
type ContentRatingEntry struct {
	ID       string
	Severity string // "none", "mild", "moderate", "intense"
}

// ContentRating groups rating entries under a scheme id (e.g. "oars-1.1").
// The CSM-age mapping lives in contentrating.go; this type only stores the
// raw entries the Pool indexes and round-trips.
type ContentRating struct {
	Scheme  string
	Entries []ContentRatingEntry
}
