package metaxml

import (
	"encoding/xml"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func handleContentRating(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	cr := entities.ContentRating{Scheme: attrValue(start, "type")}
	err := walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "content_attribute" {
			return skipCurrent(dec)
		}
		id := attrValue(child, "id")
		text, err := charData(dec)
		if err != nil {
			return err
		}
		cr.Entries = append(cr.Entries, entities.ContentRatingEntry{ID: id, Severity: trimSpace(text)})
		return nil
	})
	if err != nil {
		return err
	}
	cs.component.ContentRatings = append(cs.component.ContentRatings, cr)
	return nil
}

// handleRelation returns a handler for requires/recommends/supports: each
// shares the same child-item shape, varying only in the RelationRole it
// attaches.
func handleRelation(role entities.RelationRole) elementHandler {
	return func(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
		rel := entities.Relation{Role: role}
		err := walkChildren(dec, start, func(child xml.StartElement) error {
			kind, ok := relationKindByElement(child.Name.Local)
			if !ok {
				s.logDebug("metaxml: unknown relation item element", "element", child.Name.Local)
				return skipCurrent(dec)
			}
			comparator, _ := entities.ParseVersionComparator(attrValue(child, "compare"))
			version := attrValue(child, "version")
			text, err := charData(dec)
			if err != nil {
				return err
			}
			rel.Items = append(rel.Items, entities.RelationItem{
				Kind: kind, Value: trimSpace(text), Comparator: comparator, Version: version,
			})
			return nil
		})
		if err != nil {
			return err
		}
		cs.component.Relations = append(cs.component.Relations, rel)
		return nil
	}
}

func relationKindByElement(name string) (entities.RelationKind, bool) {
	switch name {
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
