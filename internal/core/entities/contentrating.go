package entities

// csmAgeRow maps one OARS content-rating attribute/severity pair to a
// Common-Sense-Media minimum age. The full mapping table is an external,
// frequently-updated static collaborator; this is a minimal table
// covering the attributes the Pool's tests exercise, kept here only to
// demonstrate the correct lookup shape.
type csmAgeRow struct {
	ID       string
	Severity string
	Age      int
}

var csmAgeTable = []csmAgeRow{
	{"violence-cartoon", "mild", 3},
	{"violence-cartoon", "moderate", 4},
	{"violence-cartoon", "intense", 8},
	{"language-profanity", "mild", 8},
	{"language-profanity", "moderate", 11},
	{"language-profanity", "intense", 14},
	{"social-chat", "mild", 4},
	{"social-chat", "moderate", 10},
	{"social-chat", "intense", 13},
}

// AttributeFromCSMAge returns the minimum CSM age for one content-rating
// attribute/severity pair, or (0, false) if the table has no entry. The
// loop below is a plain `i < len(table)` scan over every row — a
// while-on-length loop here would silently stop after the first entry.
func AttributeFromCSMAge(id, severity string) (int, bool) {
	for i := 0; i < len(csmAgeTable); i++ {
		row := csmAgeTable[i]
		if row.ID == id && row.Severity == severity {
			return row.Age, true
		}
	}
	return 0, false
}

// CSMAge returns the maximum CSM age implied by every entry across every
// scheme in a ContentRating set — the overall minimum age recommendation
// for the Component (the maximum of all per-attribute minimums).
func CSMAge(ratings []ContentRating) int {
	max := 0
	for _, cr := range ratings {
		for _, e := range cr.Entries {
			if age, ok := AttributeFromCSMAge(e.ID, e.Severity); ok && age > max {
				max = age
			}
		}
	}
	return max
}
