package desktopentry

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// sanitizeText replaces invalid UTF-8 sequences and non-printable code
// points with the Unicode replacement character, reporting whether the
// input needed any replacement.
func sanitizeText(s string) (string, bool) {
	valid := strings.ToValidUTF8(s, string(utf8.RuneError))
	changed := valid != s

	var b strings.Builder
	b.Grow(len(valid))
	for _, r := range valid {
		if r == utf8.RuneError || (!unicode.IsPrint(r) && r != ' ') {
			b.WriteRune(utf8.RuneError)
			changed = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), changed
}
