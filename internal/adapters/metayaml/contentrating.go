package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// handleContentRating decodes the DEP-11 "ContentRating:" mapping, keyed
// by scheme id, whose value is a mapping from attribute id to severity.
func handleContentRating(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		scheme := value.Content[i].Value
		cr := entities.ContentRating{Scheme: scheme}
		attrs := value.Content[i+1]
		for j := 0; j+1 < len(attrs.Content); j += 2 {
			cr.Entries = append(cr.Entries, entities.ContentRatingEntry{
				ID:       attrs.Content[j].Value,
				Severity: attrs.Content[j+1].Value,
			})
		}
		cs.component.ContentRatings = append(cs.component.ContentRatings, cr)
	}
	return nil
}

// handleRelation returns a handler for Requires/Recommends/Supports: a
// sequence of single-key mappings, each key a relation item kind.
func handleRelation(role entities.RelationRole) componentHandler {
	return func(s *Source, cs *componentState, value *yaml.Node) error {
		if value.Kind != yaml.SequenceNode {
			return nil
		}
		rel := entities.Relation{Role: role}
		for _, item := range value.Content {
			for i := 0; i+1 < len(item.Content); i += 2 {
				kindName := item.Content[i].Value
				kind, ok := relationKindByYAMLKey(kindName)
				if !ok {
					s.logDebug("metayaml: unknown relation item key", "key", kindName)
					continue
				}
				val := item.Content[i+1]
				if val.Kind == yaml.MappingNode {
					var ri entities.RelationItem
					ri.Kind = kind
					for j := 0; j+1 < len(val.Content); j += 2 {
						switch val.Content[j].Value {
						case "value":
							ri.Value = val.Content[j+1].Value
						case "version":
							ri.Version = val.Content[j+1].Value
						case "compare":
							ri.Comparator, _ = entities.ParseVersionComparator(val.Content[j+1].Value)
						}
					}
					rel.Items = append(rel.Items, ri)
					continue
				}
				rel.Items = append(rel.Items, entities.RelationItem{Kind: kind, Value: val.Value})
			}
		}
		cs.component.Relations = append(cs.component.Relations, rel)
		return nil
	}
}

func relationKindByYAMLKey(key string) (entities.RelationKind, bool) {
	switch key {
	case "id":
		return entities.RelationItemID, true
	case "modalias":
		return entities.RelationItemModalias, true
	case "kernel":
		return entities.RelationItemKernel, true
	case "memory":
		return entities.RelationItemMemory, true
	case "firmware":
		return entities.RelationItemFirmware, true
	case "hardware":
		return entities.RelationItemHardware, true
	case "internet":
		return entities.RelationItemInternet, true
	default:
		return 0, false
	}
}
