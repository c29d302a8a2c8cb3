// Package gemini infers company email patterns with the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/recruiterradar/outreach/internal/pattern"
)

type Config struct {
	APIKey string
	Model  string

	// BaseURL overrides the Gemini API base URL. Useful for proxies/testing.
	BaseURL string
}

type Inferrer struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Inferrer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  strings.TrimSpace(cfg.APIKey),
		Backend: genai.BackendGeminiAPI,
	}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		cc.HTTPOptions.BaseURL = strings.TrimSpace(cfg.BaseURL)
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &Inferrer{
		client: client,
		model:  strings.TrimSpace(cfg.Model),
	}, nil
}

// Infer asks the model for the company's most likely email pattern and
// returns its trimmed answer verbatim. The response is trusted to be either a
// template over the four placeholders or the literal "unknown"; no validation
// happens here and transport errors propagate unretried.
func (in *Inferrer) Infer(ctx context.Context, company string) (pattern.Template, error) {
	company = strings.ToLower(strings.TrimSpace(company))
	if company == "" {
		return "", errors.New("empty company")
	}

	temperature := float32(0.1)
	resp, err := in.client.Models.GenerateContent(
		ctx,
		in.model,
		genai.Text(buildPrompt(company)),
		&genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: 25,
			CandidateCount:  1,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	return pattern.Template(strings.TrimSpace(resp.Text())), nil
}

func buildPrompt(company string) string {
	// Keep this prompt public-safe: the company identifier is the only
	// caller-supplied text embedded in it.
	return strings.TrimSpace(`
You are an expert at inferring corporate e-mail address formats.
Return one pattern using ONLY these placeholders: {first}, {first[0]}, {last}, {firstlast}.
Use latest public data to infer this pattern.
Example for company 'google' the output would be - {first[0]}{last}@google.com
If unsure, answer "unknown".

What is the most likely employee e-mail pattern at ` + company + `? Return only the pattern.
`)
}
