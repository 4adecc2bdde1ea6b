package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// handleLocalizedScalar returns a handler for a DEP-11 field whose value
// is a mapping from locale to string (Name:, Summary:, Description:,
// DeveloperName:).
func handleLocalizedScalar(field func(*entities.Component) *entities.LocalizedText) componentHandler {
	return func(s *Source, cs *componentState, value *yaml.Node) error {
		f := field(cs.component)
		if *f == nil {
			*f = entities.LocalizedText{}
		}
		if value.Kind == yaml.ScalarNode {
			(*f).Set("C", value.Value)
			return nil
		}
		if value.Kind != yaml.MappingNode {
			return nil
		}
		for i := 0; i+1 < len(value.Content); i += 2 {
			locale := value.Content[i].Value
			(*f).Set(locale, value.Content[i+1].Value)
		}
		return nil
	}
}

// handleKeywords decodes the DEP-11 "Keywords:" mapping from locale to a
// sequence of keyword strings.
func handleKeywords(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		locale := value.Content[i].Value
		entries := value.Content[i+1]
		for _, item := range entries.Content {
			cs.component.Keywords.Add(locale, item.Value)
		}
	}
	return nil
}

// handleURL decodes the DEP-11 "Url:" mapping from role to URL.
func handleURL(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		role := value.Content[i].Value
		cs.component.URLs[role] = cs.ctx.ResolveMediaURL(value.Content[i+1].Value)
	}
	return nil
}

// handleProvides decodes the DEP-11 "Provides:" mapping, keyed by a
// pluralized provided-item kind name (e.g. "binaries", "libraries",
// "mediatypes") whose value is a sequence of strings.
func handleProvides(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		kindName := value.Content[i].Value
		kind, ok := providesKindByYAMLKey(kindName)
		if !ok {
			s.logDebug("metayaml: unknown provides key", "key", kindName)
			continue
		}
		for _, item := range value.Content[i+1].Content {
			cs.component.Provides = append(cs.component.Provides, entities.ProvidedItem{Kind: kind, Value: item.Value})
		}
	}
	return nil
}

var providesYAMLKeys = map[string]entities.ProvidedKind{
	"binaries":          entities.ProvidedBinary,
	"libraries":         entities.ProvidedLibrary,
	"mediatypes":        entities.ProvidedMediaType,
	"firmware-runtime":  entities.ProvidedFirmwareRuntime,
	"firmware-flashed":  entities.ProvidedFirmwareFlashed,
	"python2":           entities.ProvidedPython2,
	"python3":           entities.ProvidedPython3,
	"fonts":             entities.ProvidedFont,
	"modaliases":        entities.ProvidedModalias,
	"dbus-system":       entities.ProvidedDBusSystem,
	"dbus-user":         entities.ProvidedDBusUser,
}

func providesKindByYAMLKey(key string) (entities.ProvidedKind, bool) {
	k, ok := providesYAMLKeys[key]
	return k, ok
}

func provideYAMLKeyByKind(kind entities.ProvidedKind) string {
	for key, k := range providesYAMLKeys {
		if k == kind {
			return key
		}
	}
	return kind.String()
}
