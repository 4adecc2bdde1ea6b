package metaxml

import (
	"encoding/xml"
	"strconv"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func handleReleases(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	err := walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "release" {
			return skipCurrent(dec)
		}
		rel, err := decodeRelease(s, cs, dec, child)
		if err != nil {
			return err
		}
		cs.component.Releases = append(cs.component.Releases, rel)
		return nil
	})
	if err != nil {
		return err
	}
	entities.SortReleases(cs.component.Releases)
	return nil
}

func decodeRelease(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) (entities.Release, error) {
	rel := entities.Release{
		Version: attrValue(start, "version"),
		URL:     map[string]string{},
	}
	if attrValue(start, "type") == "development" {
		rel.Kind = entities.ReleaseKindDevelopment
	}
	if ts := attrValue(start, "timestamp"); ts != "" {
		if v, err := strconv.ParseInt(ts, 10, 64); err == nil {
			rel.Timestamp = v
		}
	}
	rel.Description = entities.LocalizedText{}

	err := walkChildren(dec, start, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "description":
			lang := attrValue(child, "lang")
			if lang == "" {
				lang = cs.ctx.Locale
			}
			text, err := charData(dec)
			if err != nil {
				return err
			}
			rel.Description.Set(lang, normalizeText(text))
			return nil
		case "url":
			role := attrValue(child, "type")
			if role == "" {
				role = "details"
			}
			text, err := charData(dec)
			if err != nil {
				return err
			}
			rel.URL[role] = trimSpace(text)
			return nil
		case "artifacts":
			return walkChildren(dec, child, func(a xml.StartElement) error {
				if a.Name.Local != "artifact" {
					return skipCurrent(dec)
				}
				artifact, err := decodeArtifact(dec, a)
				if err != nil {
					return err
				}
				rel.Artifacts = append(rel.Artifacts, artifact)
				return nil
			})
		default:
			s.logDebug("metaxml: unknown release element", "element", child.Name.Local)
			return skipCurrent(dec)
		}
	})
	return rel, err
}

func decodeArtifact(dec *xml.Decoder, start xml.StartElement) (entities.ReleaseArtifact, error) {
	artifact := entities.ReleaseArtifact{
		Kind:     attrValue(start, "type"),
		Platform: attrValue(start, "platform"),
		Checksum: map[string]string{},
		SizeKind: map[string]int64{},
	}
	err := walkChildren(dec, start, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "location":
			text, err := charData(dec)
			if err != nil {
				return err
			}
			artifact.URL = trimSpace(text)
			return nil
		case "checksum":
			kind := attrValue(child, "type")
			text, err := charData(dec)
			if err != nil {
				return err
			}
			artifact.Checksum[kind] = trimSpace(text)
			return nil
		case "size":
			kind := attrValue(child, "type")
			text, err := charData(dec)
			if err != nil {
				return err
			}
			if v, err := strconv.ParseInt(trimSpace(text), 10, 64); err == nil {
				artifact.SizeKind[kind] = v
			}
			return nil
		default:
			return skipCurrent(dec)
		}
	})
	return artifact, err
}
