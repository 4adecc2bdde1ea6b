package metaxml

import (
	"encoding/xml"
	"io"
	"strings"
)

// charData reads and concatenates every character-data token up to the
// current element's matching EndElement, skipping any nested elements by
// flattening their text content too (sufficient for the scalar/simple
// list elements that call this; structured children use their own
// sub-parsers instead of charData).
func charData(dec *xml.Decoder) (string, error) {
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
			b.Write(t)
		case xml.StartElement:
			depth++
			_ = t
		case xml.EndElement:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		}
	}
}

// walkChildren iterates start's direct children, invoking fn for each
// StartElement. fn is responsible for consuming that element's subtree
// (via charData, skipCurrent, or a nested walkChildren).
func walkChildren(dec *xml.Decoder, start xml.StartElement, fn func(child xml.StartElement) error) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// skipCurrent discards the element whose StartElement token was already
// consumed by the caller's switch/dispatch, without the decoder needing
// that token passed back in (dec.Skip assumes the decoder cursor is
// positioned right after a StartElement, which walkChildren guarantees).
func skipCurrent(dec *xml.Decoder) error {
	return dec.Skip()
}

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

// normalizeText trims and folds line breaks/runs of whitespace into single
// spaces, per the "text content is normalized" rule for name/summary/
// description scalars.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
