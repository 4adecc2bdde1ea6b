package metaxml

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// handlerTable maps a <component> child element's local name to the
// handler that populates the in-progress Component from it. Built once;
// never mutated after init.
var handlerTable = map[string]elementHandler{
	"id":              handleID,
	"name":            handleLocalizedField(func(c *entities.Component) *entities.LocalizedText { return &c.Name }),
	"summary":         handleLocalizedField(func(c *entities.Component) *entities.LocalizedText { return &c.Summary }),
	"description":     handleDescription,
	"developer_name":  handleLocalizedField(func(c *entities.Component) *entities.LocalizedText { return &c.DeveloperName }),
	"categories":      handleCategories,
	"keywords":        handleKeywords,
	"url":             handleURL,
	"icon":            handleIcon,
	"launchable":      handleLaunchable,
	"provides":        handleProvides,
	"bundle":          handleBundle,
	"releases":        handleReleases,
	"screenshots":     handleScreenshots,
	"content_rating":  handleContentRating,
	"requires":        handleRelation(entities.RelationRequires),
	"recommends":      handleRelation(entities.RelationRecommends),
	"supports":        handleRelation(entities.RelationSupports),
	"replaces":        handleReplaces,
	"extends":         handleExtends,
	"branch":          handleBranch,
	"source_package":  handleSourcePackage,
	"pkgname":         handleBinaryPackage,
}

// decodeComponent reads one <component> subtree starting at start. If the
// node carries a merge attribute, the populated Component is returned as
// a MergeOp payload instead of a queryable Component.
func (s *Source) decodeComponent(dec *xml.Decoder, start xml.StartElement, ctx *entities.Context, order int) (*entities.Component, *entities.MergeOp, error) {
	comp := entities.NewComponent("", ctx)

	var mergeKind entities.MergeKind
	var isMerge bool

	for _, a := range start.Attr {
		switch a.Name.Local {
		case "type":
			if k, ok := entities.ParseComponentKind(a.Value); ok {
				comp.Kind = k
			} else {
				s.logWarn("metaxml: unknown component type", "value", a.Value)
			}
		case "merge":
			if mk, ok := entities.ParseMergeKind(a.Value); ok && mk != entities.MergeNone {
				mergeKind = mk
				isMerge = true
			}
		case "priority":
			if p, err := strconv.Atoi(a.Value); err == nil {
				comp.Priority = p
			}
		}
	}
	if !isMerge {
		scope, ok := entities.ParseScope(attrValue(start, "scope"))
		if ok {
			comp.Scope = scope
		} else {
			comp.Scope = entities.ScopeSystem
		}
	}

	cs := &componentState{component: comp, ctx: ctx}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, entities.NewError(entities.KindParse, "parse-xml-component", comp.ID, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			h, ok := handlerTable[t.Name.Local]
			if !ok {
				s.logDebug("metaxml: unknown component element", "element", t.Name.Local)
				if err := dec.Skip(); err != nil {
					return nil, nil, entities.NewError(entities.KindParse, "parse-xml-component", comp.ID, err)
				}
				continue
			}
			if err := h(s, cs, dec, t); err != nil {
				return nil, nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				goto done
			}
		}
	}
done:

	if comp.ID == "" {
		return nil, nil, entities.NewError(entities.KindParse, "parse-xml-component", "", entities.ErrEmptyID)
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

func attrValue(start xml.StartElement, local string) string {
	for _, a := range start.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func handleID(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.ID = trimSpace(text)
	return nil
}

func handleLocalizedField(field func(*entities.Component) *entities.LocalizedText) elementHandler {
	return func(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
		lang := attrValue(start, "lang")
		if lang == "" {
			lang = cs.ctx.Locale
		}
		text, err := charData(dec)
		if err != nil {
			return err
		}
		f := field(cs.component)
		if *f == nil {
			*f = entities.LocalizedText{}
		}
		(*f).Set(lang, normalizeText(text))
		return nil
	}
}

func handleCategories(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	return walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "category" {
			return skipCurrent(dec)
		}
		text, err := charData(dec)
		if err != nil {
			return err
		}
		cs.component.AddCategory(trimSpace(text))
		return nil
	})
}

func handleKeywords(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	lang := attrValue(start, "lang")
	if lang == "" {
		lang = cs.ctx.Locale
	}
	return walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "keyword" {
			return skipCurrent(dec)
		}
		text, err := charData(dec)
		if err != nil {
			return err
		}
		cs.component.Keywords.Add(lang, trimSpace(text))
		return nil
	})
}

func handleURL(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	role := attrValue(start, "type")
	text, err := charData(dec)
	if err != nil {
		return err
	}
	if role == "" {
		role = "homepage"
	}
	cs.component.URLs[role] = cs.ctx.ResolveMediaURL(trimSpace(text))
	return nil
}

func handleIcon(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	kind, ok := entities.ParseIconKind(attrValue(start, "type"))
	if !ok {
		s.logWarn("metaxml: unknown icon type", "value", attrValue(start, "type"))
	}
	width, _ := strconv.Atoi(attrValue(start, "width"))
	height, _ := strconv.Atoi(attrValue(start, "height"))
	scale, _ := strconv.Atoi(attrValue(start, "scale"))
	if scale == 0 {
		scale = 1
	}
	text, err := charData(dec)
	if err != nil {
		return err
	}
	value := trimSpace(text)

	icon := entities.Icon{Kind: kind, Width: width, Height: height, Scale: scale}
	switch kind {
	case entities.IconKindStock:
		icon.Name = value
	case entities.IconKindLocal, entities.IconKindRemote, entities.IconKindCached:
		icon.Name = value
		icon.URL = cs.ctx.ResolveMediaURL(value)
	}
	cs.component.Icons = append(cs.component.Icons, icon)
	return nil
}

func handleLaunchable(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	kind, ok := entities.ParseLaunchableKind(attrValue(start, "type"))
	if !ok {
		s.logWarn("metaxml: unknown launchable type", "value", attrValue(start, "type"))
	}
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.Launchables = append(cs.component.Launchables, entities.Launchable{Kind: kind, Entry: trimSpace(text)})
	return nil
}

func handleProvides(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	return walkChildren(dec, start, func(child xml.StartElement) error {
		kind, ok := entities.ParseProvidedKind(child.Name.Local)
		if !ok {
			s.logDebug("metaxml: unknown provides element", "element", child.Name.Local)
			return skipCurrent(dec)
		}
		text, err := charData(dec)
		if err != nil {
			return err
		}
		cs.component.Provides = append(cs.component.Provides, entities.ProvidedItem{Kind: kind, Value: trimSpace(text)})
		return nil
	})
}

func handleBundle(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	kind := attrValue(start, "type")
	runtime := attrValue(start, "runtime")
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.Bundles = append(cs.component.Bundles, entities.Bundle{
		Kind: kind, Reference: trimSpace(text), RuntimeID: runtime,
	})
	return nil
}

func handleReplaces(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	return walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "id" {
			return skipCurrent(dec)
		}
		text, err := charData(dec)
		if err != nil {
			return err
		}
		cs.component.Replaces = append(cs.component.Replaces, trimSpace(text))
		return nil
	})
}

func handleExtends(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.Extends = append(cs.component.Extends, trimSpace(text))
	return nil
}

func handleBranch(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.Branch = trimSpace(text)
	return nil
}

func handleSourcePackage(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.SourcePackage = trimSpace(text)
	return nil
}

func handleBinaryPackage(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	text, err := charData(dec)
	if err != nil {
		return err
	}
	cs.component.BinaryPackages = append(cs.component.BinaryPackages, trimSpace(text))
	return nil
}
