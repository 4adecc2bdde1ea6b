package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// handlerTable maps a component document's top-level DEP-11 key to the
// handler that populates the in-progress Component from its value node.
// Semantically the same dispatch as the XML parser's handlerTable, keyed
// by this format's own spelling instead of an XML element name.
var handlerTable = map[string]componentHandler{
	"ID":             handleID,
	"Name":           handleLocalizedScalar(func(c *entities.Component) *entities.LocalizedText { return &c.Name }),
	"Summary":        handleLocalizedScalar(func(c *entities.Component) *entities.LocalizedText { return &c.Summary }),
	"Description":    handleLocalizedScalar(func(c *entities.Component) *entities.LocalizedText { return &c.Description }),
	"DeveloperName":  handleLocalizedScalar(func(c *entities.Component) *entities.LocalizedText { return &c.DeveloperName }),
	"Categories":     handleCategories,
	"Keywords":       handleKeywords,
	"Url":            handleURL,
	"Icon":           handleIcon,
	"Launchable":     handleLaunchable,
	"Provides":       handleProvides,
	"Bundle":         handleBundle,
	"Releases":       handleReleases,
	"Screenshots":    handleScreenshots,
	"ContentRating":  handleContentRating,
	"Requires":       handleRelation(entities.RelationRequires),
	"Recommends":     handleRelation(entities.RelationRecommends),
	"Supports":       handleRelation(entities.RelationSupports),
	"Replaces":       handleReplaces,
	"Extends":        handleExtends,
	"Branch":         handleBranch,
	"SourcePackage":  handleSourcePackage,
	"Pkgname":        handleBinaryPackage,
}

// decodeComponentDocument decodes one DEP-11 component document. If the
// document carries a "Merge" key, the populated Component is returned as
// a MergeOp payload instead of a queryable Component.
func (s *Source) decodeComponentDocument(doc *yaml.Node, ctx *entities.Context, order int) (*entities.Component, *entities.MergeOp, error) {
	root := documentRoot(doc)
	if root == nil {
		return nil, nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, nil, entities.NewError(entities.KindParse, "parse-yaml-component", "", errNotAMapping)
	}

	comp := entities.NewComponent("", ctx)
	cs := &componentState{component: comp, ctx: ctx}

	var mergeKind entities.MergeKind
	var isMerge bool

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		val := root.Content[i+1]

		switch key {
		case "Type":
			if k, ok := entities.ParseComponentKind(val.Value); ok {
				comp.Kind = k
			} else {
				s.logWarn("metayaml: unknown component type", "value", val.Value)
			}
			continue
		case "Merge":
			if mk, ok := entities.ParseMergeKind(val.Value); ok && mk != entities.MergeNone {
				mergeKind, isMerge = mk, true
			}
			continue
		case "Priority":
			if p, ok := yamlInt(val); ok {
				comp.Priority = p
			}
			continue
		case "Scope":
			if scope, ok := entities.ParseScope(val.Value); ok {
				comp.Scope = scope
			}
			continue
		}

		h, ok := handlerTable[key]
		if !ok {
			s.logDebug("metayaml: unknown component key", "key", key)
			continue
		}
		if err := h(s, cs, val); err != nil {
			return nil, nil, err
		}
	}

	if comp.ID == "" {
		return nil, nil, entities.NewError(entities.KindParse, "parse-yaml-component", "", entities.ErrEmptyID)
	}

	if isMerge {
		return nil, &entities.MergeOp{
			Kind:           mergeKind,
			Target:         comp.ID,
			OriginPriority: ctx.DefaultPriority,
			OriginName:     ctx.Origin,
			DocumentOrder:  order,
			Payload:        comp,
		}, nil
	}
	return comp, nil, nil
}

type notAMappingError struct{}

func (notAMappingError) Error() string { return "component document root must be a mapping" }

var errNotAMapping = notAMappingError{}

func handleID(s *Source, cs *componentState, value *yaml.Node) error {
	cs.component.ID = value.Value
	return nil
}

func handleBranch(s *Source, cs *componentState, value *yaml.Node) error {
	cs.component.Branch = value.Value
	return nil
}

func handleSourcePackage(s *Source, cs *componentState, value *yaml.Node) error {
	cs.component.SourcePackage = value.Value
	return nil
}

func handleBinaryPackage(s *Source, cs *componentState, value *yaml.Node) error {
	cs.component.BinaryPackages = append(cs.component.BinaryPackages, value.Value)
	return nil
}

func handleExtends(s *Source, cs *componentState, value *yaml.Node) error {
	return forEachScalar(value, func(v string) {
		cs.component.Extends = append(cs.component.Extends, v)
	})
}

func handleReplaces(s *Source, cs *componentState, value *yaml.Node) error {
	return forEachScalar(value, func(v string) {
		cs.component.Replaces = append(cs.component.Replaces, v)
	})
}

func handleCategories(s *Source, cs *componentState, value *yaml.Node) error {
	return forEachScalar(value, func(v string) {
		cs.component.AddCategory(v)
	})
}

func handleLaunchable(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		kindName := value.Content[i].Value
		kind, ok := entities.ParseLaunchableKind(kindName)
		if !ok {
			s.logWarn("metayaml: unknown launchable kind", "value", kindName)
			continue
		}
		entries := value.Content[i+1]
		if err := forEachScalar(entries, func(v string) {
			cs.component.Launchables = append(cs.component.Launchables, entities.Launchable{Kind: kind, Entry: v})
		}); err != nil {
			return err
		}
	}
	return nil
}

func handleBundle(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		kind := value.Content[i].Value
		item := value.Content[i+1]
		if item.Kind == yaml.MappingNode {
			bundle := entities.Bundle{Kind: kind}
			for j := 0; j+1 < len(item.Content); j += 2 {
				switch item.Content[j].Value {
				case "value":
					bundle.Reference = item.Content[j+1].Value
				case "runtime":
					bundle.RuntimeID = item.Content[j+1].Value
				}
			}
			cs.component.Bundles = append(cs.component.Bundles, bundle)
			continue
		}
		cs.component.Bundles = append(cs.component.Bundles, entities.Bundle{Kind: kind, Reference: item.Value})
	}
	return nil
}

// forEachScalar iterates a sequence node's scalar children, or treats a
// bare scalar node as a single-element sequence.
func forEachScalar(value *yaml.Node, fn func(string)) error {
	if value.Kind == yaml.ScalarNode {
		fn(value.Value)
		return nil
	}
	for _, item := range value.Content {
		fn(item.Value)
	}
	return nil
}

func yamlInt(n *yaml.Node) (int, bool) {
	var v int
	if err := n.Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}
