// Package search provides a minimal client for the Google Custom Search JSON
// API, scoped to the paginated query shape this module issues.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://customsearch.googleapis.com/customsearch/v1"

// Config carries the credentials and knobs for the search client. All fields
// are passed explicitly; the client never reads the environment.
type Config struct {
	// APIKey is the Custom Search API key.
	APIKey string
	// EngineID is the Programmable Search Engine id (the "cx" parameter).
	EngineID string

	// BaseURL overrides the API endpoint. Useful for tests.
	BaseURL string

	// Timeout bounds each page request. Defaults to 15 seconds.
	Timeout time.Duration

	// RateLimitRPS paces requests globally. Set to <=0 to disable.
	RateLimitRPS float64
}

// Client issues Custom Search requests.
type Client struct {
	baseURL  *url.URL
	apiKey   string
	engineID string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient validates the config and constructs a client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("search API key is required")
	}
	if strings.TrimSpace(cfg.EngineID) == "" {
		return nil, fmt.Errorf("search engine id is required")
	}

	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = defaultBaseURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse search base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("search base URL must include a host (got %q)", raw)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}

	return &Client{
		baseURL:  u,
		apiKey:   strings.TrimSpace(cfg.APIKey),
		engineID: strings.TrimSpace(cfg.EngineID),
		http:     &http.Client{Timeout: timeout},
		limiter:  limiter,
	}, nil
}

// Result is one search hit. Only the fields this module consumes.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Page is one page of results plus the pagination cursor.
type Page struct {
	Items []Result
	// NextStart is the 1-based start index of the following page, or 0 when
	// the response reports no further page.
	NextStart int
}

type responseEnvelope struct {
	Items   []Result `json:"items"`
	Queries struct {
		NextPage []struct {
			StartIndex int `json:"startIndex"`
		} `json:"nextPage"`
	} `json:"queries"`
}

// Search fetches one page of results for the query, starting at the 1-based
// result offset.
func (c *Client) Search(ctx context.Context, query string, start int) (Page, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Page{}, err
		}
	}

	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("start", strconv.Itoa(start))

	u := *c.baseURL
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Page{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("search request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Page{}, fmt.Errorf("search returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var env responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Page{}, fmt.Errorf("decode search response: %w", err)
	}

	page := Page{Items: env.Items}
	if len(env.Queries.NextPage) > 0 {
		page.NextStart = env.Queries.NextPage[0].StartIndex
	}
	return page, nil
}
