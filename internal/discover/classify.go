package discover

import (
	"regexp"
	"strings"
)

// nameRe matches the first two-token capitalized pair in free text, e.g.
// "Jordan Smith" inside "Jordan Smith - University Recruiter at Example".
var nameRe = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)

// shapeRe re-checks a candidate as a whole: exactly two capitalized words.
var shapeRe = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)

// Verdict classifies an extracted candidate string.
type Verdict int

const (
	// Accepted means the candidate passed all filters and is treated as a
	// person's display name.
	Accepted Verdict = iota
	// RejectedShape means the candidate failed the two-capitalized-token
	// shape or the per-token length bounds.
	RejectedShape
	// RejectedWord means a token matched the greeting or role-word denylist.
	RejectedWord
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedShape:
		return "rejected-shape"
	case RejectedWord:
		return "rejected-word"
	default:
		return "unknown"
	}
}

// Token length must exceed minTokenLen and stay below maxTokenLen.
const (
	minTokenLen = 2
	maxTokenLen = 16
)

var greetings = map[string]struct{}{
	"hi":    {},
	"hey":   {},
	"hello": {},
}

// roleWords lists lower-cased tokens that mark a candidate as a job title or
// organizational phrase rather than a person's name.
var roleWords = map[string]struct{}{
	"recruiter":     {},
	"university":    {},
	"student":       {},
	"community":     {},
	"friends":       {},
	"team":          {},
	"cohort":        {},
	"class":         {},
	"talent":        {},
	"intern":        {},
	"grad":          {},
	"cycle":         {},
	"specialist":    {},
	"hiring":        {},
	"developer":     {},
	"senior":        {},
	"technical":     {},
	"relations":     {},
	"manager":       {},
	"scientist":     {},
	"partner":       {},
	"solutions":     {},
	"architect":     {},
	"engineer":      {},
	"associate":     {},
	"analyst":       {},
	"human":         {},
	"san":           {},
	"one":           {},
	"zuckerberg":    {},
	"your":          {},
	"differenciate": {},
}

// Classify judges whether a candidate string looks like a person's display
// name. The verdict keeps the shape rule and the word denylist independently
// testable.
func Classify(candidate string) Verdict {
	if !shapeRe.MatchString(candidate) {
		return RejectedShape
	}

	parts := strings.SplitN(strings.ToLower(candidate), " ", 2)
	first, last := parts[0], parts[1]
	if len(first) <= minTokenLen || len(first) >= maxTokenLen {
		return RejectedShape
	}
	if len(last) <= minTokenLen || len(last) >= maxTokenLen {
		return RejectedShape
	}

	if _, ok := greetings[first]; ok {
		return RejectedWord
	}
	if _, ok := roleWords[first]; ok {
		return RejectedWord
	}
	if _, ok := roleWords[last]; ok {
		return RejectedWord
	}
	return Accepted
}

// ExtractCandidate returns the first name-shaped substring of a search-result
// title, or "" when the title contains none.
func ExtractCandidate(title string) string {
	return nameRe.FindString(title)
}
