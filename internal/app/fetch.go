// Package app orchestrates the outreach pipeline: fetch (infer + discover +
// synthesize into a CSV) and send (CSV + resume + templates into a mail
// batch).
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/recruiterradar/outreach/internal/discover"
	"github.com/recruiterradar/outreach/internal/infer"
	"github.com/recruiterradar/outreach/internal/pattern"
	"github.com/recruiterradar/outreach/internal/pipeline"
)

// DefaultPhrase is the search phrase used when the caller supplies none.
const DefaultPhrase = "university recruiter"

const previewLimit = 5

// FetchParams configures one fetch run.
type FetchParams struct {
	Company  string
	Phrase   string
	MaxPages int

	// OutputPath is the recipients CSV destination. Defaults to
	// "<company>_recruiters.csv".
	OutputPath string
}

// Fetch infers the company's email pattern, discovers candidate names, and
// joins both into the recipient table. Inference and discovery are
// independent; either failure aborts the call.
func Fetch(
	ctx context.Context,
	inferrer infer.Inferrer,
	searcher discover.Searcher,
	p FetchParams,
) (pattern.Template, []pipeline.Recipient, error) {
	company := strings.ToLower(strings.TrimSpace(p.Company))
	if company == "" {
		return "", nil, errors.New("company is required")
	}
	phrase := strings.TrimSpace(p.Phrase)
	if phrase == "" {
		phrase = DefaultPhrase
	}

	tmpl, err := inferrer.Infer(ctx, company)
	if err != nil {
		return "", nil, fmt.Errorf("infer pattern: %w", err)
	}

	names, err := discover.Discover(ctx, searcher, company, phrase, discover.Options{MaxPages: p.MaxPages})
	if err != nil {
		return "", nil, fmt.Errorf("discover names: %w", err)
	}

	return tmpl, pipeline.BuildRecipients(tmpl, company, names), nil
}

// RunFetch runs Fetch and writes the recipient table to the output CSV.
func RunFetch(ctx context.Context, inferrer infer.Inferrer, searcher discover.Searcher, p FetchParams) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	return runFetch(ctx, logger, inferrer, searcher, p)
}

func runFetch(ctx context.Context, logger *log.Logger, inferrer infer.Inferrer, searcher discover.Searcher, p FetchParams) error {
	logf := runLogf(logger)
	start := time.Now()

	tmpl, recipients, err := Fetch(ctx, inferrer, searcher, p)
	if err != nil {
		return err
	}

	logf("most likely e-mail pattern: %s", tmpl)
	if tmpl.IsUnknown() {
		logf("pattern is unknown; synthesized addresses will be the literal sentinel")
	}
	logf("discovered %d recipients for %q", len(recipients), strings.ToLower(strings.TrimSpace(p.Company)))
	logf("preview: %s", previewAddresses(recipients))

	out := strings.TrimSpace(p.OutputPath)
	if out == "" {
		out = fmt.Sprintf("%s_recruiters.csv", strings.ToLower(strings.TrimSpace(p.Company)))
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	if err := pipeline.WriteCSV(f, recipients); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	logf("wrote %s in %s", out, time.Since(start).Round(time.Millisecond))
	return nil
}

func previewAddresses(recipients []pipeline.Recipient) string {
	n := len(recipients)
	if n == 0 {
		return "(none)"
	}
	limit := n
	if limit > previewLimit {
		limit = previewLimit
	}
	addrs := make([]string, 0, limit)
	for _, r := range recipients[:limit] {
		addrs = append(addrs, r.Email)
	}
	s := strings.Join(addrs, ", ")
	if n > previewLimit {
		s += " ..."
	}
	return s
}

func runLogf(logger *log.Logger) func(format string, args ...any) {
	runID := fmt.Sprintf("run-%d", time.Now().UnixNano())
	return func(format string, args ...any) {
		prefix := make([]any, 0, len(args)+1)
		prefix = append(prefix, runID)
		prefix = append(prefix, args...)
		logger.Printf("run=%s "+format, prefix...)
	}
}
