// Package metayaml implements ports.MetadataSource for DEP-11 YAML
// streams: one header document followed by one document per component.
// Nodes are walked as gopkg.in/yaml.v3 *yaml.Node trees rather than
// unmarshaled into a fixed struct, so shape-flexible fields (Icon: a
// single mapping or a sequence of mappings) can be told apart before
// committing to a Go type, and so the handler table can mirror the XML
// parser's field for field, keyed by DEP-11 spellings.
package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
	"github.com/madstone-tech/appstream-go/internal/core/ports"
)

// Source implements ports.MetadataSource for .yml/.yaml files (plain,
// gzip- or xz-compressed).
type Source struct {
	Logger ports.Logger
}

// New returns a Source that logs unknown keys and parse warnings via
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

// componentHandler populates the in-progress Component from one
// top-level key's value node of a component document.
type componentHandler func(s *Source, cs *componentState, value *yaml.Node) error

// componentState accumulates a Component (or merge payload Component)
// while its document's keys are decoded.
type componentState struct {
	component *entities.Component
	ctx       *entities.Context
}
