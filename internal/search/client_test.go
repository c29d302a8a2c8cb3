package search_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/recruiterradar/outreach/internal/search"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *search.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := search.NewClient(search.Config{
		APIKey:   "test-key",
		EngineID: "test-cx",
		BaseURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestSearch(t *testing.T) {
	var gotQuery map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"key":   r.URL.Query().Get("key"),
			"cx":    r.URL.Query().Get("cx"),
			"q":     r.URL.Query().Get("q"),
			"start": r.URL.Query().Get("start"),
		}
		_, _ = w.Write([]byte(`{
			"items": [
				{"title": "Jordan Smith - University Recruiter", "link": "https://www.linkedin.com/in/jordansmith"},
				{"title": "Careers at Example"}
			],
			"queries": {"nextPage": [{"startIndex": 11}]}
		}`))
	})

	page, err := c.Search(context.Background(), `site:linkedin.com "university recruiter" example`, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	wantQuery := map[string]string{
		"key":   "test-key",
		"cx":    "test-cx",
		"q":     `site:linkedin.com "university recruiter" example`,
		"start": "1",
	}
	if diff := cmp.Diff(wantQuery, gotQuery); diff != "" {
		t.Errorf("request params mismatch (-want +got):\n%s", diff)
	}

	want := search.Page{
		Items: []search.Result{
			{Title: "Jordan Smith - University Recruiter", Link: "https://www.linkedin.com/in/jordansmith"},
			{Title: "Careers at Example"},
		},
		NextStart: 11,
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("page mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchLastPageHasNoCursor(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [{"title": "Casey Jones - Recruiting"}]}`))
	})

	page, err := c.Search(context.Background(), "anything", 21)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.NextStart != 0 {
		t.Errorf("NextStart = %d, want 0", page.NextStart)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"code": 429}}`, http.StatusTooManyRequests)
	})

	if _, err := c.Search(context.Background(), "anything", 1); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestSearchMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := c.Search(context.Background(), "anything", 1); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := search.NewClient(search.Config{EngineID: "cx"}); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := search.NewClient(search.Config{APIKey: "k"}); err == nil {
		t.Error("expected error for missing engine id")
	}
	if _, err := search.NewClient(search.Config{APIKey: "k", EngineID: "cx", BaseURL: "::bad::"}); err == nil {
		t.Error("expected error for bad base URL")
	}
}
