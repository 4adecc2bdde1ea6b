package entities

import (
	"regexp"
	"strings"
)

// idLabelPattern matches one reverse-DNS label: lowercase alphanumerics plus
// "-_", no leading digit.
var idLabelPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateID checks that id matches the reverse-DNS-like component id
// pattern: lowercase dotted labels, ASCII alphanumerics plus "-_", no
// label starting with a digit. Three or more segments is only
// recommended, not required, so it is not enforced here.
func ValidateID(id string) error {
	if id == "" {
		return ErrEmptyID
	}
	labels := strings.Split(id, ".")
	if len(labels) < 2 {
		return ErrInvalidID
	}
	for _, label := range labels {
		if label == "" || !idLabelPattern.MatchString(label) {
			return ErrInvalidID
		}
	}
	return nil
}

// ValidatePath checks if a path is valid (non-empty, no traversal).
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.Contains(path, "..") {
		return ErrInvalidID
	}
	return nil
}

// DesktopIDToComponentID derives a component id from a desktop-entry
// basename of the form "<tld>.<vendor>.<app>.desktop" by stripping the
// ".desktop" suffix. The shape check is ValidateID applied with letter
// case ignored, so "org.gnome.Calculator.desktop" qualifies. Basenames
// that are not already reverse-DNS shaped are returned unchanged (desktop-entry ingest keeps them as a
// launchable entry rather than a component id).
func DesktopIDToComponentID(basename string) string {
	id := strings.TrimSuffix(basename, ".desktop")
	if ValidateID(strings.ToLower(id)) == nil {
		return id
	}
	return basename
}
