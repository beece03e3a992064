package scan

import (
	"strings"
)

// Normalize converts a caller-supplied search term into its canonical
// lib<name>.so form:
//   - terms already containing ".so" are used verbatim;
//   - terms with a "lib" prefix get ".so" appended;
//   - anything else gets both "lib" prepended and ".so" appended.
//
// The rule is idempotent: a canonical form normalizes to itself.
func Normalize(term string) string {
	if strings.Contains(term, ".so") {
		return term
	}
	if strings.HasPrefix(term, "lib") {
		return term + ".so"
	}
	return "lib" + term + ".so"
}

// Matcher tests raw NEEDED entries against the configured search terms.
type Matcher struct {
	canonical []string
}

// NewMatcher normalizes the search terms once, preserving caller order.
// Order matters: a dependency matching several terms is attributed to the
// first one supplied.
func NewMatcher(terms []string) *Matcher {
	canonical := make([]string, len(terms))
	for i, term := range terms {
		canonical[i] = Normalize(term)
	}
	return &Matcher{canonical: canonical}
}

// Canonical returns the normalized search terms in configuration order.
func (m *Matcher) Canonical() []string { return m.canonical }

// Match returns the canonical form of the first configured term contained
// in the dependency name. Substring matching tolerates version suffixes:
// canonical "libc.so" matches the raw entry "libc.so.6".
func (m *Matcher) Match(dependency string) (string, bool) {
	for _, canon := range m.canonical {
		if strings.Contains(dependency, canon) {
			return canon, true
		}
	}
	return "", false
}
