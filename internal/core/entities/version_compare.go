package entities

import (
	"strconv"
	"strings"
)

// CompareVersions implements RPM-style version ordering: split on
// ".-~+", compare chunks numerically when both parse as integers and
// lexicographically otherwise, with a "~" chunk (pre-release) sorting
// before the empty chunk. Returns -1, 0, or 1.
func CompareVersions(a, b string) int {
	ac := splitVersionChunks(a)
	bc := splitVersionChunks(b)

	n := len(ac)
	if len(bc) > n {
		n = len(bc)
	}
	for i := 0; i < n; i++ {
		var ca, cb string
		if i < len(ac) {
			ca = ac[i]
		}
		if i < len(bc) {
			cb = bc[i]
		}
		if c := compareChunk(ca, cb); c != 0 {
			return c
		}
	}
	return 0
}

// splitVersionChunks splits a version string on any of ".-~+", keeping the
// "~" itself as its own chunk so pre-release ordering can be detected.
func splitVersionChunks(v string) []string {
	var chunks []string
	var cur strings.Builder
	flush := func() {
		chunks = append(chunks, cur.String())
		cur.Reset()
	}
	for _, r := range v {
		switch r {
		case '.', '-', '+':
			flush()
		case '~':
			flush()
			chunks = append(chunks, "~")
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return chunks
}

// compareChunk compares two version chunks. A "~" chunk sorts before the
// empty chunk, which sorts before any real chunk — this gives pre-release
// suffixes their ordering. Otherwise numeric chunks compare numerically
// and everything else compares lexicographically.
func compareChunk(a, b string) int {
	if a == b {
		return 0
	}
	rank := func(s string) int {
		switch s {
		case "~":
			return 0
		case "":
			return 1
		default:
			return 2
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	if ra != 2 {
		return 0 // both "~" or both ""
	}

	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
