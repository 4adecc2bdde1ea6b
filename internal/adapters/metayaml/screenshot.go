package metayaml

import (
	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

func handleScreenshots(s *Source, cs *componentState, value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return nil
	}
	for _, item := range value.Content {
		shot := decodeScreenshot(s, cs, item)
		cs.component.Screenshots = append(cs.component.Screenshots, shot)
	}
	return nil
}

func decodeScreenshot(s *Source, cs *componentState, node *yaml.Node) entities.Screenshot {
	shot := entities.Screenshot{Caption: entities.LocalizedText{}}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "default":
			shot.Default = val.Value == "true" || val.Value == "yes"
		case "caption":
			if val.Kind == yaml.MappingNode {
				for j := 0; j+1 < len(val.Content); j += 2 {
					shot.Caption.Set(val.Content[j].Value, normalizeText(val.Content[j+1].Value))
				}
			} else {
				shot.Caption.Set(cs.ctx.Locale, normalizeText(val.Value))
			}
		case "source-image", "thumbnails":
			for _, img := range val.Content {
				shot.Images = append(shot.Images, decodeScreenshotImage(cs, img))
			}
		case "video":
			v := decodeScreenshotVideo(cs, val)
			shot.Video = &v
		default:
			s.logDebug("metayaml: unknown screenshot key", "key", key)
		}
	}
	return shot
}

func decodeScreenshotImage(cs *componentState, node *yaml.Node) entities.ScreenshotImage {
	img := entities.ScreenshotImage{Scale: 1}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "url":
			img.URL = cs.ctx.ResolveMediaURL(val.Value)
		case "width":
			img.Width, _ = yamlInt(val)
		case "height":
			img.Height, _ = yamlInt(val)
		case "scale":
			if n, ok := yamlInt(val); ok {
				img.Scale = n
			}
		}
	}
	return img
}

func decodeScreenshotVideo(cs *componentState, node *yaml.Node) entities.ScreenshotVideo {
	v := entities.ScreenshotVideo{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch key {
		case "url":
			v.URL = cs.ctx.ResolveMediaURL(val.Value)
		case "codec":
			v.Codec = val.Value
		case "container":
			v.Container = val.Value
		case "width":
			v.Width, _ = yamlInt(val)
		case "height":
			v.Height, _ = yamlInt(val)
		}
	}
	return v
}
