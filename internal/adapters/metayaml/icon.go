package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// handleIcon decodes the DEP-11 "Icon:" mapping, whose keys are icon
// kinds (cached, stock, remote, local) and whose values are either a
// single icon object (legacy) or a sequence of icon objects (current);
// both shapes are accepted.
func handleIcon(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		kind, ok := entities.ParseIconKind(value.Content[i].Value)
		if !ok {
			s.logWarn("metayaml: unknown icon kind", "value", value.Content[i].Value)
			continue
		}
		entry := value.Content[i+1]

		if kind == entities.IconKindStock && entry.Kind == yaml.ScalarNode {
			cs.component.Icons = append(cs.component.Icons, entities.Icon{Kind: kind, Name: entry.Value})
			continue
		}

		switch entry.Kind {
		case yaml.MappingNode:
			cs.component.Icons = append(cs.component.Icons, decodeIconObject(cs, kind, entry))
		case yaml.SequenceNode:
			for _, obj := range entry.Content {
				cs.component.Icons = append(cs.component.Icons, decodeIconObject(cs, kind, obj))
			}
		}
	}
	return nil
}

func decodeIconObject(cs *componentState, kind entities.IconKind, node *yaml.Node) entities.Icon {
	icon := entities.Icon{Kind: kind, Scale: 1}
	if node.Kind == yaml.ScalarNode {
		icon.Name = node.Value
		if kind != entities.IconKindStock {
			icon.URL = cs.ctx.ResolveMediaURL(node.Value)
		}
		return icon
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "width":
			icon.Width, _ = yamlInt(val)
		case "height":
			icon.Height, _ = yamlInt(val)
		case "scale":
			if n, ok := yamlInt(val); ok {
				icon.Scale = n
			}
		case "name":
			icon.Name = val.Value
			if kind != entities.IconKindStock {
				icon.URL = cs.ctx.ResolveMediaURL(val.Value)
			}
		}
	}
	return icon
}
