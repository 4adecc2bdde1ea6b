package metaxml

import (
	"encoding/xml"
	"strconv"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func handleScreenshots(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	return walkChildren(dec, start, func(child xml.StartElement) error {
		if child.Name.Local != "screenshot" {
			return skipCurrent(dec)
		}
		shot, err := decodeScreenshot(s, cs, dec, child)
		if err != nil {
			return err
		}
		cs.component.Screenshots = append(cs.component.Screenshots, shot)
		return nil
	})
}

func decodeScreenshot(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) (entities.Screenshot, error) {
	shot := entities.Screenshot{
		Default: attrValue(start, "type") == "default",
		Caption: entities.LocalizedText{},
	}
	err := walkChildren(dec, start, func(child xml.StartElement) error {
		switch child.Name.Local {
		case "caption":
			lang := attrValue(child, "lang")
			if lang == "" {
				lang = cs.ctx.Locale
			}
			text, err := charData(dec)
			if err != nil {
				return err
			}
			shot.Caption.Set(lang, normalizeText(text))
			return nil
		case "image":
			width, _ := strconv.Atoi(attrValue(child, "width"))
			height, _ := strconv.Atoi(attrValue(child, "height"))
			scale, _ := strconv.Atoi(attrValue(child, "scale"))
			if scale == 0 {
				scale = 1
			}
			text, err := charData(dec)
			if err != nil {
				return err
			}
			shot.Images = append(shot.Images, entities.ScreenshotImage{
				URL: cs.ctx.ResolveMediaURL(trimSpace(text)), Width: width, Height: height, Scale: scale,
			})
			return nil
		case "video":
			width, _ := strconv.Atoi(attrValue(child, "width"))
			height, _ := strconv.Atoi(attrValue(child, "height"))
			text, err := charData(dec)
			if err != nil {
				return err
			}
			shot.Video = &entities.ScreenshotVideo{
				URL:       cs.ctx.ResolveMediaURL(trimSpace(text)),
				Codec:     attrValue(child, "codec"),
				Container: attrValue(child, "container"),
				Width:     width,
				Height:    height,
			}
			return nil
		default:
			s.logDebug("metaxml: unknown screenshot element", "element", child.Name.Local)
			return skipCurrent(dec)
		}
	})
	return shot, err
}
