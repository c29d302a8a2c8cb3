package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/recruiterradar/outreach/internal/app"
	"github.com/recruiterradar/outreach/internal/config"
	"github.com/recruiterradar/outreach/internal/infer/gemini"
	"github.com/recruiterradar/outreach/internal/mailer"
	"github.com/recruiterradar/outreach/internal/pattern"
	"github.com/recruiterradar/outreach/internal/search"
	"github.com/recruiterradar/outreach/internal/util"
	"github.com/recruiterradar/outreach/internal/version"
)

func main() {
	ctx := context.Background()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		usage(os.Stdout)
		return
	case "version":
		fmt.Println(version.Current)
		return
	case "fetch":
		os.Exit(runFetch(ctx, os.Args[2:]))
	case "send":
		os.Exit(runSend(ctx, os.Args[2:]))
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage(os.Stderr)
		os.Exit(2)
	}
}

func runFetch(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	company := fs.String("company", "", "Company identifier, lower-case (required)")
	phrase := fs.String("phrase", app.DefaultPhrase, "Search phrase to match in result titles")
	maxPages := fs.Int("max-pages", 3, "Max search result pages to fetch")
	output := fs.String("output", "", "Output CSV path (default <company>_recruiters.csv)")
	geminiModel := fs.String("gemini-model", cfg.Gemini.Model, "Gemini model name (env: GEMINI_MODEL)")
	geminiBaseURL := fs.String("gemini-base-url", cfg.Gemini.BaseURL, "Gemini API base URL override (env: GEMINI_BASE_URL)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *company == "" {
		_, _ = fmt.Fprintln(os.Stderr, "fetch requires --company")
		return 2
	}
	if err := cfg.ValidateFetch(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	inferrer, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   *geminiModel,
		BaseURL: *geminiBaseURL,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "gemini config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	searcher, err := search.NewClient(search.Config{
		APIKey:       cfg.Search.APIKey,
		EngineID:     cfg.Search.EngineID,
		Timeout:      cfg.Search.Timeout,
		RateLimitRPS: cfg.Search.RateLimitRPS,
	})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "search config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	if err := app.RunFetch(ctx, inferrer, searcher, app.FetchParams{
		Company:    *company,
		Phrase:     *phrase,
		MaxPages:   *maxPages,
		OutputPath: *output,
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "fetch failed: %s\n", util.RedactSecrets(err.Error()))
		return 1
	}
	return 0
}

func runSend(ctx context.Context, args []string) int {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	input := fs.String("input", "", "Recipients CSV produced by fetch (required)")
	resume := fs.String("resume", "", "Resume PDF to attach (required)")
	templates := fs.String("templates", "", "YAML file with subject/intro/closing templates")
	patternFlag := fs.String("pattern", "", "Email pattern for rows missing an address")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *input == "" || *resume == "" {
		_, _ = fmt.Fprintln(os.Stderr, "send requires --input and --resume")
		return 2
	}
	if err := cfg.ValidateSend(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "config error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	tpl, err := config.LoadTemplates(*templates)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "templates error: %s\n", util.RedactSecrets(err.Error()))
		return 2
	}

	sender := mailer.New(mailer.Config{
		Host: cfg.SMTP.Host,
		Port: cfg.SMTP.Port,
		From: cfg.SMTP.From,
	})

	if err := app.RunSend(ctx, sender, app.SendParams{
		InputPath:  *input,
		ResumePath: *resume,
		Pattern:    pattern.Template(*patternFlag),
		Templates:  tpl,
		Credentials: mailer.Credentials{
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		},
	}); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "send failed: %s\n", util.RedactSecrets(err.Error()))
		return 1
	}
	return 0
}

func usage(w *os.File) {
	_, _ = fmt.Fprintf(w, `outreach: recruiter discovery and e-mail outreach pipeline

Usage:
  outreach <command> [flags]

Commands:
  fetch    Infer the company's e-mail pattern, discover recruiter names, and
           write the recipients CSV
  send     Deliver one message per CSV row over a single SMTP session
  version  Print the module version

Examples:
  outreach fetch --company nvidia --phrase "university recruiter"
  outreach send --input nvidia_recruiters.csv --resume Resume.pdf

Environment (fetch):
  GEMINI_API_KEY                Gemini API key (required)
  GEMINI_MODEL                  Gemini model name (default gemini-2.5-flash)
  GEMINI_BASE_URL               Optional base URL override (proxies/testing)
  GOOGLE_CUSTOM_SEARCH_API_KEY  Custom Search API key (required)
  GOOGLE_CX_ID                  Programmable Search Engine id (required)
  SEARCH_TIMEOUT                Per-page request timeout (default 15s)
  SEARCH_RATE_LIMIT_RPS         Request pacing, 0 disables (default 0)

Environment (send):
  SMTP_HOST  Submission host (default smtp.gmail.com)
  SMTP_PORT  Submission port, implicit TLS (default 465)
  SMTP_USER  Account username (required)
  SMTP_PASS  Account password or app password (required)
  SMTP_FROM  From/Reply-To address (default: each recipient's own address)

`)
}
