package entities

// ComponentKind enumerates the AppStream component kinds.
type ComponentKind int

const (
	KindGeneric ComponentKind = iota
	KindDesktopApplication
	KindConsoleApplication
	KindWebApplication
	KindAddon
	KindFont
	KindCodec
	KindInputMethod
	KindFirmware
	KindDriver
	KindLocalization
	KindService
	KindRepository
	KindOperatingSystem
	KindRuntime
	KindIconTheme
	KindUnknown
)

var kindNames = map[ComponentKind]string{
	KindGeneric:            "generic",
	KindDesktopApplication: "desktop-application",
	KindConsoleApplication: "console-application",
	KindWebApplication:     "web-application",
	KindAddon:              "addon",
	KindFont:               "font",
	KindCodec:              "codec",
	KindInputMethod:        "input-method",
	KindFirmware:           "firmware",
	KindDriver:             "driver",
	KindLocalization:       "localization",
	KindService:            "service",
	KindRepository:         "repository",
	KindOperatingSystem:    "operating-system",
	KindRuntime:            "runtime",
	KindIconTheme:          "icon-theme",
}

func (k ComponentKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseComponentKind maps a metadata-file spelling to a ComponentKind.
// Unknown values return (KindUnknown, false) so callers can record a
// ValueError and drop the field rather than abort the file.
func ParseComponentKind(s string) (ComponentKind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindUnknown, false
}

// Scope distinguishes system-wide from per-user components.
type Scope int

const (
	ScopeSystem Scope = iota
	ScopeUser
	ScopeUnknown
)

func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "user"
	case ScopeSystem:
		return "system"
	default:
		return "unknown"
	}
}

// ParseScope maps a metadata-file spelling to a Scope.
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "system", "":
		return ScopeSystem, true
	case "user":
		return ScopeUser, true
	default:
		return ScopeUnknown, false
	}
}

// MergeKind enumerates the merge pseudo-component operations.
type MergeKind int

const (
	MergeNone MergeKind = iota
	MergeAppend
	MergeReplace
	MergeRemoveComponent
)

func (m MergeKind) String() string {
	switch m {
	case MergeAppend:
		return "append"
	case MergeReplace:
		return "replace"
	case MergeRemoveComponent:
		return "remove-component"
	default:
		return "none"
	}
}

// ParseMergeKind maps the `merge="..."` attribute/key value to a MergeKind.
func ParseMergeKind(s string) (MergeKind, bool) {
	switch s {
	case "", "none":
		return MergeNone, true
	case "append":
		return MergeAppend, true
	case "replace":
		return MergeReplace, true
	case "remove-component":
		return MergeRemoveComponent, true
	default:
		return MergeNone, false
	}
}

// ProvidedKind enumerates the capability kinds a Component can advertise.
type ProvidedKind int

const (
	ProvidedBinary ProvidedKind = iota
	ProvidedLibrary
	ProvidedMediaType
	ProvidedFirmwareRuntime
	ProvidedFirmwareFlashed
	ProvidedPython2
	ProvidedPython3
	ProvidedFont
	ProvidedModalias
	ProvidedDBusSystem
	ProvidedDBusUser
)

var providedKindNames = map[ProvidedKind]string{
	ProvidedBinary:          "binary",
	ProvidedLibrary:         "library",
	ProvidedMediaType:       "mediatype",
	ProvidedFirmwareRuntime: "firmware-runtime",
	ProvidedFirmwareFlashed: "firmware-flashed",
	ProvidedPython2:         "python2",
	ProvidedPython3:         "python3",
	ProvidedFont:            "font",
	ProvidedModalias:        "modalias",
	ProvidedDBusSystem:      "dbus-system",
	ProvidedDBusUser:        "dbus-user",
}

func (k ProvidedKind) String() string {
	if s, ok := providedKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseProvidedKind maps a metadata-file element/key name to a ProvidedKind.
func ParseProvidedKind(s string) (ProvidedKind, bool) {
	for k, name := range providedKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// LaunchableKind enumerates the ways a Component can be launched.
type LaunchableKind int

const (
	LaunchableDesktopID LaunchableKind = iota
	LaunchableService
	LaunchableURL
	LaunchableCockpitManifest
)

var launchableKindNames = map[LaunchableKind]string{
	LaunchableDesktopID:       "desktop-id",
	LaunchableService:         "service",
	LaunchableURL:             "url",
	LaunchableCockpitManifest: "cockpit-manifest",
}

func (k LaunchableKind) String() string {
	if s, ok := launchableKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseLaunchableKind maps a metadata-file attribute value to a LaunchableKind.
func ParseLaunchableKind(s string) (LaunchableKind, bool) {
	for k, name := range launchableKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// IconKind enumerates the icon storage kinds.
type IconKind int

const (
	IconKindCached IconKind = iota
	IconKindStock
	IconKindLocal
	IconKindRemote
)

var iconKindNames = map[IconKind]string{
	IconKindCached: "cached",
	IconKindStock:  "stock",
	IconKindLocal:  "local",
	IconKindRemote: "remote",
}

func (k IconKind) String() string {
	if s, ok := iconKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseIconKind maps a metadata-file attribute/key value to an IconKind.
func ParseIconKind(s string) (IconKind, bool) {
	for k, name := range iconKindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// RelationKind enumerates the relation item kinds.
type RelationKind int

const (
	RelationItemID RelationKind = iota
	RelationItemModalias
	RelationItemKernel
	RelationItemMemory
	RelationItemFirmware
	RelationItemHardware
	RelationItemInternet
)

var relationKindNames = map[RelationKind]string{
	RelationItemID:       "id",
	RelationItemModalias: "modalias",
	RelationItemKernel:   "kernel",
	RelationItemMemory:   "memory",
	RelationItemFirmware: "firmware",
	RelationItemHardware: "hardware",
	RelationItemInternet: "internet",
}

func (k RelationKind) String() string {
	if s, ok := relationKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// RelationRole distinguishes requires/recommends/supports.
type RelationRole int

const (
	RelationRequires RelationRole = iota
	RelationRecommends
	RelationSupports
)

func (r RelationRole) String() string {
	switch r {
	case RelationRecommends:
		return "recommends"
	case RelationSupports:
		return "supports"
	default:
		return "requires"
	}
}

// VersionComparator enumerates the comparison operators a relation item's
// version constraint may use.
type VersionComparator int

const (
	CompareEq VersionComparator = iota
	CompareNe
	CompareLt
	CompareLe
	CompareGt
	CompareGe
)

func ParseVersionComparator(s string) (VersionComparator, bool) {
	switch s {
	case "eq":
		return CompareEq, true
	case "ne":
		return CompareNe, true
	case "lt":
		return CompareLt, true
	case "le":
		return CompareLe, true
	case "gt":
		return CompareGt, true
	case "ge":
		return CompareGe, true
	default:
		return CompareEq, false
	}
}
