// Package pattern models company email-address templates and synthesizes
// candidate addresses from display names.
package pattern

import "strings"

// Placeholder tokens recognized inside a Template. Literal text outside these
// tokens (typically the domain suffix) passes through untouched.
const (
	TokenFirst        = "{first}"
	TokenLast         = "{last}"
	TokenFirstInitial = "{first[0]}"
	TokenFirstLast    = "{firstlast}"
)

// Unknown is the sentinel an inferrer returns when it cannot guess a pattern.
// It is a valid Template value; synthesis treats it as plain literal text.
const Unknown = "unknown"

// Template is an email-address pattern such as "{first}.{last}@corp.com".
type Template string

// IsUnknown reports whether the template is the non-actionable sentinel.
func (t Template) IsUnknown() bool {
	return strings.EqualFold(strings.TrimSpace(string(t)), Unknown)
}

// SplitName returns the first and last whitespace-separated tokens of a
// display name. Middle tokens are dropped. A single-token name has an empty
// last token; an empty name has both tokens empty.
func SplitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}

// Synthesize applies the template to a display name and returns the candidate
// address. First and last tokens are lower-cased before substitution. The
// function is total: it never fails, and performs no validation on the result.
//
// Each placeholder is replaced as an exact literal in a single pass, so
// replacement text is never re-scanned even if a name happens to contain a
// placeholder token. {firstlast} and {first[0]} are listed before {first}:
// the token literals are mutually disjoint, but longest-first ordering keeps
// substitution safe if that ever changes.
func Synthesize(t Template, name string) string {
	first, last := SplitName(name)
	first = strings.ToLower(first)
	last = strings.ToLower(last)

	initial := ""
	if first != "" {
		initial = first[:1]
	}

	r := strings.NewReplacer(
		TokenFirstLast, first+last,
		TokenFirstInitial, initial,
		TokenFirst, first,
		TokenLast, last,
	)
	return r.Replace(string(t))
}
