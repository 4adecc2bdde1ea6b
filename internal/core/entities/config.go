package entities

// DataLocation is one configured filesystem root the Pool scans, monitors,
// and caches as a unit (GLOSSARY "Location"), paired with the metadata
// format expected under it (which MetadataSource parses it).
type DataLocation struct {
	Path string
	Kind FormatKind
}

// CacheFlags toggles cache behavior.
type CacheFlags struct {
	IgnoreAge    bool // force re-parse even when the fingerprint matches
	ReadOnly     bool // never write a new cache file
	NoWrite      bool // skip writing, but still read an existing cache
	RefreshAlways bool // always reload from source without reading the cache; the result is still written unless ReadOnly/NoWrite
}

// PoolFlags toggles which sources and passes the Pool runs.
type PoolFlags struct {
	Monitor           bool // watch locations for changes and auto-reload
	ResolveAddons     bool // run the addon extends-resolution pass after merge
	LoadOSCollection  bool // load the default system collection locations
	LoadFlatpak       bool // load flatpak-provided collection locations
	LoadMetaInfo      bool // load the default metainfo locations
	LoadDesktopFiles  bool // fall back to desktop-entry ingest where no metainfo exists
}

// DefaultPoolFlags mirrors the behavior of a Pool constructed with no
// explicit configuration: load OS collections, metainfo and desktop
// files, resolve addons; flatpak locations are not loaded and nothing is
// monitored.
func DefaultPoolFlags() PoolFlags {
	return PoolFlags{
		ResolveAddons:    true,
		LoadOSCollection: true,
		LoadMetaInfo:     true,
		LoadDesktopFiles: true,
	}
}

// PoolConfig is the programmatic configuration surface for a Pool,
// also the shape persisted to/from appstream.toml.
type PoolConfig struct {
	ExtraLocations      []DataLocation
	LoadStdLocations     bool
	CacheLocation        string
	CacheFlags           CacheFlags
	PoolFlags            PoolFlags
	Locale               string
	Strict               bool
}

// NewPoolConfig returns a PoolConfig with the same defaults a bare Pool
// constructor would apply.
func NewPoolConfig() *PoolConfig {
	return &PoolConfig{
		LoadStdLocations: true,
		PoolFlags:        DefaultPoolFlags(),
		Locale:           "C",
	}
}

// Merge overlays non-zero fields of other onto c, used to apply the
// global-then-project-then-struct precedence chain.
func (c *PoolConfig) Merge(other *PoolConfig) {
	if other == nil {
		return
	}
	if len(other.ExtraLocations) > 0 {
		c.ExtraLocations = append(c.ExtraLocations, other.ExtraLocations...)
	}
	if other.CacheLocation != "" {
		c.CacheLocation = other.CacheLocation
	}
	if other.Locale != "" {
		c.Locale = other.Locale
	}
	c.LoadStdLocations = other.LoadStdLocations || c.LoadStdLocations
	c.Strict = other.Strict || c.Strict
	c.CacheFlags = mergeCacheFlags(c.CacheFlags, other.CacheFlags)
	c.PoolFlags = mergePoolFlags(c.PoolFlags, other.PoolFlags)
}

func mergeCacheFlags(base, override CacheFlags) CacheFlags {
	return CacheFlags{
		IgnoreAge:     base.IgnoreAge || override.IgnoreAge,
		ReadOnly:      base.ReadOnly || override.ReadOnly,
		NoWrite:       base.NoWrite || override.NoWrite,
		RefreshAlways: base.RefreshAlways || override.RefreshAlways,
	}
}

func mergePoolFlags(base, override PoolFlags) PoolFlags {
	return PoolFlags{
		Monitor:          base.Monitor || override.Monitor,
		ResolveAddons:    base.ResolveAddons || override.ResolveAddons,
		LoadOSCollection: base.LoadOSCollection || override.LoadOSCollection,
		LoadFlatpak:      base.LoadFlatpak || override.LoadFlatpak,
		LoadMetaInfo:     base.LoadMetaInfo || override.LoadMetaInfo,
		LoadDesktopFiles: base.LoadDesktopFiles || override.LoadDesktopFiles,
	}
}
