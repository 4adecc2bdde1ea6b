package metayaml

import "strings"

// normalizeText folds runs of whitespace/line breaks into single spaces,
// matching the XML parser's text normalization so the two formats agree
// on stored string content.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
