// Package desktopentry implements ports.MetadataSource as a fallback
// ingest path: it produces a desktop-application Component from a
// .desktop file when no metainfo document exists for it. No .desktop/INI
// library appears anywhere in the retrieved corpus, so this package
// hand-parses the XDG Desktop Entry format's INI-like group/key shape with
// bufio.Scanner.
package desktopentry

import (
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// Source implements ports.MetadataSource for .desktop files.
type Source struct {
	Logger ports.Logger

	// RetainIgnored, when true, still returns components that the entry
	// itself marks ignored (NoDisplay, Hidden, OnlyShowIn, X-AppStream-Ignore)
	// instead of dropping them.
	RetainIgnored bool
}

// New returns a Source that logs sanitization and parse warnings via
// logger. A nil logger is treated as a no-op sink.
func New(logger ports.Logger) *Source {
	return &Source{Logger: logger}
}

func (s *Source) logDebug(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Debug(msg, kv...)
	}
}

func (s *Source) logWarn(msg string, kv ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, kv...)
	}
}
