// Package infer defines the email-pattern inference capability.
package infer

import (
	"context"

	"github.com/recruiterradar/outreach/internal/pattern"
)

// Inferrer guesses a company's email-address template. Implementations return
// either a template over the recognized placeholder tokens or the
// pattern.Unknown sentinel; no correctness guarantee is made either way.
type Inferrer interface {
	Infer(ctx context.Context, company string) (pattern.Template, error)
}
