// Package metaxml implements ports.MetadataSource for metainfo and
// collection XML documents. Element handling is table-driven: a
// map[string]elementHandler keyed by local element name, built once as a
// package-level var, mirroring the dispatch-table shape an http.ServeMux
// uses for path routing.
package metaxml

import (
	"encoding/xml"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// Source implements ports.MetadataSource for .xml, .xml.gz and .xml.xz files.
type Source struct {
	Logger ports.Logger
}

// New returns a Source that logs unknown elements and parse warnings via
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

// elementHandler populates the in-progress component/merge payload from
// one child element of a <component> node.
type elementHandler func(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error

// componentState accumulates a Component (or a merge payload Component)
// while its child elements are decoded.
type componentState struct {
	component *entities.Component
	ctx       *entities.Context
}
