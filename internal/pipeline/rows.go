// Package pipeline joins inferred patterns with discovered names into the
// recipient table and moves that table through CSV.
package pipeline

import (
	"strings"

	"github.com/recruiterradar/outreach/internal/pattern"
)

// Recipient is one row of the outreach table: a discovered display name, the
// company it was discovered for, and the synthesized address. The email is
// derived, not validated.
type Recipient struct {
	Name    string
	Company string
	Email   string
}

// Header returns the stable CSV header for Recipient.
func Header() []string {
	return []string{"name", "company", "email"}
}

// BuildRecipients joins discovered names with the inferred template. Names
// are assumed to be pre-deduplicated by discovery; order is preserved.
func BuildRecipients(t pattern.Template, company string, names []string) []Recipient {
	company = strings.ToLower(strings.TrimSpace(company))
	rows := make([]Recipient, 0, len(names))
	for _, name := range names {
		rows = append(rows, Recipient{
			Name:    name,
			Company: company,
			Email:   pattern.Synthesize(t, name),
		})
	}
	return rows
}
