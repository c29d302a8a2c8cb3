package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/recruiterradar/outreach/internal/mailer"
	"github.com/recruiterradar/outreach/internal/pattern"
	"github.com/recruiterradar/outreach/internal/pipeline"
	"github.com/recruiterradar/outreach/internal/util"
)

// BatchSender is the delivery capability RunSend drives.
type BatchSender interface {
	SendBatch(
		ctx context.Context,
		recipients []pipeline.Recipient,
		tmpl pattern.Template,
		templates mailer.Templates,
		att mailer.Attachment,
		creds mailer.Credentials,
	) (mailer.Report, error)
}

// SendParams configures one send run.
type SendParams struct {
	// InputPath is the recipients CSV produced by fetch.
	InputPath string
	// ResumePath is the PDF attached to every message.
	ResumePath string

	// Pattern re-synthesizes addresses for rows missing one.
	Pattern     pattern.Template
	Templates   mailer.Templates
	Credentials mailer.Credentials
}

// RunSend reads the recipient table and resume, then delivers the batch.
// Per-recipient failures are reported and do not fail the run; session-level
// failures do.
func RunSend(ctx context.Context, sender BatchSender, p SendParams) error {
	logger := log.New(os.Stdout, "", log.LstdFlags)
	return runSend(ctx, logger, sender, p)
}

func runSend(ctx context.Context, logger *log.Logger, sender BatchSender, p SendParams) error {
	logf := runLogf(logger)
	start := time.Now()

	if strings.TrimSpace(p.InputPath) == "" {
		return errors.New("input CSV is required")
	}
	if strings.TrimSpace(p.ResumePath) == "" {
		return errors.New("resume PDF is required")
	}

	in, err := os.Open(p.InputPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	recipients, err := pipeline.ReadCSV(in)
	if err != nil {
		return fmt.Errorf("read recipients: %w", err)
	}
	if len(recipients) == 0 {
		return errors.New("input CSV contains no recipients")
	}

	resume, err := os.ReadFile(p.ResumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	if len(resume) == 0 {
		return errors.New("resume PDF is empty")
	}

	logf("sending to %d recipients from %s", len(recipients), p.InputPath)

	rep, err := sender.SendBatch(ctx, recipients, p.Pattern, p.Templates, mailer.Attachment{Data: resume}, p.Credentials)
	if err != nil {
		return err
	}

	logf("delivered %d of %d messages in %s", len(rep.Sent), len(recipients), time.Since(start).Round(time.Millisecond))
	for _, d := range rep.Failed {
		logf("failed recipient %s: %s", d.Addr, util.RedactSecrets(d.Err.Error()))
	}
	return nil
}
