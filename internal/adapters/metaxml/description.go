package metaxml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/madstone-tech/appstream-go/internal/core/entities"
)

// allowedDescTags is the restricted HTML-like subset a <description> body
// may use; anything else is flattened to its text content and reported
// as a parse warning, without aborting the document.
var allowedDescTags = map[string]bool{
	"p": true, "ul": true, "ol": true, "li": true, "em": true, "code": true,
}

func handleDescription(s *Source, cs *componentState, dec *xml.Decoder, start xml.StartElement) error {
	lang := attrValue(start, "lang")
	if lang == "" {
		lang = cs.ctx.Locale
	}
	text, err := decodeDescriptionBody(s, dec, start)
	if err != nil {
		return err
	}
	if cs.component.Description == nil {
		cs.component.Description = entities.LocalizedText{}
	}
	cs.component.Description.Set(lang, text)
	return nil
}

// decodeDescriptionBody reconstructs the normalized markup for a
// <description> subtree: allowed tags are re-emitted verbatim, text runs
// have internal whitespace collapsed, and any non-subset element is
// flattened (its own tags dropped, its text content kept) with a parse
// warning logged.
func decodeDescriptionBody(s *Source, dec *xml.Decoder, start xml.StartElement) (string, error) {
	var b strings.Builder
	depth := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.WriteString(normalizeText(string(t)))
		case xml.StartElement:
			if allowedDescTags[t.Name.Local] {
				b.WriteByte('<')
				b.WriteString(t.Name.Local)
				b.WriteByte('>')
			} else {
				s.logWarn("metaxml: description uses non-subset markup", "element", t.Name.Local)
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
			if allowedDescTags[t.Name.Local] {
				b.WriteString("</")
				b.WriteString(t.Name.Local)
				b.WriteByte('>')
			}
		}
	}
}
