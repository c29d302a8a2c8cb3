package pipeline_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/recruiterradar/outreach/internal/pipeline"
)

func TestBuildRecipients(t *testing.T) {
	rows := pipeline.BuildRecipients("{first}.{last}@example.com", "Example", []string{
		"Jordan Smith",
		"Taylor Reed",
	})

	want := []pipeline.Recipient{
		{Name: "Jordan Smith", Company: "example", Email: "jordan.smith@example.com"},
		{Name: "Taylor Reed", Company: "example", Email: "taylor.reed@example.com"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("recipients mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReadCSVRoundTrip(t *testing.T) {
	in := []pipeline.Recipient{
		{Name: "Jordan Smith", Company: "example", Email: "jordan.smith@example.com"},
		{Name: "Taylor Reed", Company: "example", Email: "taylor.reed@example.com"},
	}

	var buf bytes.Buffer
	if err := pipeline.WriteCSV(&buf, in); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	first, _, _ := strings.Cut(buf.String(), "\n")
	if first != strings.Join(pipeline.Header(), ",") {
		t.Errorf("unexpected header line %q", first)
	}

	out, err := pipeline.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVIgnoresExtraColumns(t *testing.T) {
	in := "name,company,email,notes\nJordan Smith,example,jordan.smith@example.com,x\n"
	rows, err := pipeline.ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(rows) != 1 || rows[0].Email != "jordan.smith@example.com" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	in := "name,company\nJordan Smith,example\n"
	if _, err := pipeline.ReadCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected error for missing email column")
	}
}
