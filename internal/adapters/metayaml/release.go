package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func handleReleases(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	for _, item := range value.Content {
		rel, err := decodeRelease(s, cs, item)
		if err != nil {
			return err
		}
		cs.component.Releases = append(cs.component.Releases, rel)
	}
	entities.SortReleases(cs.component.Releases)
	return nil
}

func decodeRelease(s *Source, cs *componentState, node *yaml.Node) (entities.Release, error) {
	rel := entities.Release{
		URL:         map[string]string{},
		Description: entities.LocalizedText{},
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "version":
			rel.Version = val.Value
		case "type":
			if val.Value == "development" {
				rel.Kind = entities.ReleaseKindDevelopment
			}
		case "unix-timestamp", "timestamp":
			if ts, ok := yamlInt(val); ok {
				rel.Timestamp = int64(ts)
			}
		case "description":
			for j := 0; j+1 < len(val.Content); j += 2 {
				rel.Description.Set(val.Content[j].Value, normalizeText(val.Content[j+1].Value))
			}
		case "url":
			if val.Kind == yaml.MappingNode {
				for j := 0; j+1 < len(val.Content); j += 2 {
					rel.URL[val.Content[j].Value] = val.Content[j+1].Value
				}
			} else {
				rel.URL["details"] = val.Value
			}
		default:
			s.logDebug("metayaml: unknown release key", "key", key)
		}
	}
	return rel, nil
}
