package registry

import "strings"

// Algorithm names are case-insensitive. The canonical form is upper case
// with surrounding whitespace removed; no semantic rewriting is performed.
// A record's name field may carry several aliases separated by '|', e.g.
// "SHA2-256|SHA-256|SHA256".

const aliasSeparator = "|"

// CanonicalName folds an algorithm identifier to its canonical form.
func CanonicalName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// expandAliases splits a record's name field into the set of canonical
// aliases it claims. Empty segments are dropped.
func expandAliases(names string) []string {
	parts := strings.Split(names, aliasSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if c := CanonicalName(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// aliasMatch reports whether the canonical identifier is a member of the
// record's expanded alias set.
func aliasMatch(names, canonical string) bool {
	for _, alias := range expandAliases(names) {
		if alias == canonical {
			return true
		}
	}
	return false
}
