// Package discover finds candidate recruiter names for a company by mining
// web-search result titles.
package discover

import (
	"context"
	"fmt"
	"strings"

	"github.com/recruiterradar/outreach/internal/search"
)

// Searcher is the page-fetching capability discovery depends on.
type Searcher interface {
	Search(ctx context.Context, query string, start int) (search.Page, error)
}

// Options bounds a discovery run.
type Options struct {
	// MaxPages caps the number of result pages fetched. Defaults to 3.
	MaxPages int
}

func (o Options) withDefaults() Options {
	if o.MaxPages <= 0 {
		o.MaxPages = 3
	}
	return o
}

// Query renders the search expression for a company and phrase, restricted to
// the professional-network domain.
func Query(company, phrase string) string {
	return fmt.Sprintf(`site:linkedin.com %q %s`, phrase, company)
}

// Discover pages through search results for the company and phrase, extracts
// accepted candidate names from result titles, and returns them unique by
// exact string in first-seen order.
//
// Pagination stops early when a response carries no next-page cursor. Any
// page-level error aborts the whole call; pages accumulated so far are not
// surfaced separately.
func Discover(ctx context.Context, s Searcher, company, phrase string, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	query := Query(company, phrase)

	var names []string
	start := 1
	for page := 0; page < opts.MaxPages; page++ {
		pg, err := s.Search(ctx, query, start)
		if err != nil {
			return nil, fmt.Errorf("search page starting at %d: %w", start, err)
		}
		for _, item := range pg.Items {
			candidate := ExtractCandidate(item.Title)
			if candidate == "" {
				continue
			}
			if Classify(candidate) != Accepted {
				continue
			}
			names = append(names, candidate)
		}
		if pg.NextStart <= 0 {
			break
		}
		start = pg.NextStart
	}
	return dedupePreserveOrder(names), nil
}

func dedupePreserveOrder(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
