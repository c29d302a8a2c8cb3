package app

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/recruiterradar/outreach/internal/mailer"
	"github.com/recruiterradar/outreach/internal/pattern"
	"github.com/recruiterradar/outreach/internal/pipeline"
	"github.com/recruiterradar/outreach/internal/search"
)

type stubInferrer struct {
	tmpl pattern.Template
	err  error
}

func (s stubInferrer) Infer(context.Context, string) (pattern.Template, error) {
	return s.tmpl, s.err
}

type stubSearcher struct {
	page search.Page
	err  error
}

func (s stubSearcher) Search(context.Context, string, int) (search.Page, error) {
	return s.page, s.err
}

func TestFetch(t *testing.T) {
	searcher := stubSearcher{page: search.Page{Items: []search.Result{
		{Title: "Jordan Smith - University Recruiter at Example"},
		{Title: "Careers at Example"},
	}}}

	tmpl, recipients, err := Fetch(context.Background(), stubInferrer{tmpl: "{first}.{last}@example.com"}, searcher, FetchParams{Company: "Example"})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if tmpl != "{first}.{last}@example.com" {
		t.Errorf("unexpected template %q", tmpl)
	}

	want := []pipeline.Recipient{
		{Name: "Jordan Smith", Company: "example", Email: "jordan.smith@example.com"},
	}
	if diff := cmp.Diff(want, recipients); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchRequiresCompany(t *testing.T) {
	_, _, err := Fetch(context.Background(), stubInferrer{}, stubSearcher{}, FetchParams{Company: "  "})
	if err == nil {
		t.Fatal("expected error for empty company")
	}
}

func TestFetchInferenceFailureIsFatal(t *testing.T) {
	_, _, err := Fetch(context.Background(), stubInferrer{err: errors.New("quota")}, stubSearcher{}, FetchParams{Company: "example"})
	if err == nil || !strings.Contains(err.Error(), "infer pattern") {
		t.Fatalf("expected inference error, got %v", err)
	}
}

func TestRunFetchWritesCSV(t *testing.T) {
	searcher := stubSearcher{page: search.Page{Items: []search.Result{
		{Title: "Jordan Smith - University Recruiter at Example"},
	}}}
	out := filepath.Join(t.TempDir(), "out.csv")

	logger := log.New(io.Discard, "", 0)
	err := runFetch(context.Background(), logger, stubInferrer{tmpl: "{first[0]}{last}@example.com"}, searcher, FetchParams{
		Company:    "example",
		OutputPath: out,
	})
	if err != nil {
		t.Fatalf("runFetch: %v", err)
	}

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	if !strings.Contains(got, "jsmith@example.com") {
		t.Errorf("output CSV missing synthesized address:\n%s", got)
	}
}

type stubSender struct {
	rep      mailer.Report
	err      error
	gotCount int
}

func (s *stubSender) SendBatch(
	_ context.Context,
	recipients []pipeline.Recipient,
	_ pattern.Template,
	_ mailer.Templates,
	_ mailer.Attachment,
	_ mailer.Credentials,
) (mailer.Report, error) {
	s.gotCount = len(recipients)
	return s.rep, s.err
}

func writeSendFixtures(t *testing.T) (csvPath, resumePath string) {
	t.Helper()
	dir := t.TempDir()

	csvPath = filepath.Join(dir, "recipients.csv")
	csvBody := "name,company,email\nJordan Smith,example,jordan.smith@example.com\n"
	if err := os.WriteFile(csvPath, []byte(csvBody), 0o600); err != nil {
		t.Fatal(err)
	}

	resumePath = filepath.Join(dir, "resume.pdf")
	if err := os.WriteFile(resumePath, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}
	return csvPath, resumePath
}

func TestRunSend(t *testing.T) {
	csvPath, resumePath := writeSendFixtures(t)
	sender := &stubSender{rep: mailer.Report{Sent: []string{"jordan.smith@example.com"}}}

	logger := log.New(io.Discard, "", 0)
	err := runSend(context.Background(), logger, sender, SendParams{
		InputPath:   csvPath,
		ResumePath:  resumePath,
		Credentials: mailer.Credentials{Username: "me@example.com", Password: "pw"},
	})
	if err != nil {
		t.Fatalf("runSend: %v", err)
	}
	if sender.gotCount != 1 {
		t.Errorf("sender received %d recipients, want 1", sender.gotCount)
	}
}

func TestRunSendPartialFailureIsNotFatal(t *testing.T) {
	csvPath, resumePath := writeSendFixtures(t)
	sender := &stubSender{rep: mailer.Report{
		Failed: []mailer.Delivery{{Addr: "jordan.smith@example.com", Err: errors.New("550")}},
	}}

	logger := log.New(io.Discard, "", 0)
	err := runSend(context.Background(), logger, sender, SendParams{InputPath: csvPath, ResumePath: resumePath})
	if err != nil {
		t.Fatalf("runSend: %v", err)
	}
}

func TestRunSendSessionFailureIsFatal(t *testing.T) {
	csvPath, resumePath := writeSendFixtures(t)
	sender := &stubSender{err: mailer.ErrAuth}

	logger := log.New(io.Discard, "", 0)
	err := runSend(context.Background(), logger, sender, SendParams{InputPath: csvPath, ResumePath: resumePath})
	if !errors.Is(err, mailer.ErrAuth) {
		t.Fatalf("expected ErrAuth, got %v", err)
	}
}

func TestRunSendValidatesInputs(t *testing.T) {
	logger := log.New(io.Discard, "", 0)

	if err := runSend(context.Background(), logger, &stubSender{}, SendParams{ResumePath: "r.pdf"}); err == nil {
		t.Error("expected error for missing input CSV")
	}
	if err := runSend(context.Background(), logger, &stubSender{}, SendParams{InputPath: "in.csv"}); err == nil {
		t.Error("expected error for missing resume")
	}

	dir := t.TempDir()
	emptyCSV := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(emptyCSV, []byte("name,company,email\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	resume := filepath.Join(dir, "resume.pdf")
	if err := os.WriteFile(resume, []byte("%PDF"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := runSend(context.Background(), logger, &stubSender{}, SendParams{InputPath: emptyCSV, ResumePath: resume}); err == nil {
		t.Error("expected error for empty recipient table")
	}
}
