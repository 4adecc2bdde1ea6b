package entities

// LocalizedText maps a canonical locale (per CanonicalizeLocale) to its
// translated value. "C" is the untranslated fallback, always populated by
// well-formed metainfo (the <name>/<summary> without xml:lang, or the
// first value under a YAML scalar key).
type LocalizedText map[string]string

// Set stores value under the canonicalized form of locale. A cruft or
// placeholder locale (CanonicalizeLocale returns "") is dropped silently.
func (t LocalizedText) Set(locale, value string) {
	canon := CanonicalizeLocale(locale)
	if canon == "" {
		return
	}
	t[canon] = value
}

// Get resolves the best value for activeLocale using LocaleMatches,
// falling back to "C" and then to any single stored value when nothing
// else matches. Returns ("", false) for a genuinely empty map.
func (t LocalizedText) Get(activeLocale string) (string, bool) {
	if len(t) == 0 {
		return "", false
	}
	if v, ok := t[activeLocale]; ok {
		return v, true
	}
	_, exact := t[activeLocale]
	var best string
	var bestFound bool
	for locale, v := range t {
		if LocaleMatches(locale, activeLocale, exact) {
			// Prefer an exact language match over a broader one; since we
			// already handled the true exact case above, any match here is
			// already a concrete compatibility hit, so the first is kept
			// unless a later one is the stricter "stored==active" case
			// (impossible here since that was checked first).
			if !bestFound {
				best, bestFound = v, true
			}
		}
	}
	if bestFound {
		return best, true
	}
	if v, ok := t["C"]; ok {
		return v, true
	}
	for _, v := range t {
		return v, true
	}
	return "", false
}

// GetAll returns every stored (locale, value) pair, used when a Context's
// locale-use-all flag is set so search indexing and
// serialization see every translation rather than just the active one.
func (t LocalizedText) GetAll() map[string]string {
	out := make(map[string]string, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
