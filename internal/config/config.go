// Package config loads environment-sourced settings and the outreach
// template file. Components never read the environment themselves; everything
// is passed in explicitly from here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/recruiterradar/outreach/internal/mailer"
)

type SearchConfig struct {
	APIKey       string
	EngineID     string
	Timeout      time.Duration
	RateLimitRPS float64
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Search SearchConfig
	Gemini GeminiConfig
	SMTP   SMTPConfig
}

// Load reads a .env file if present, then the process environment. Presence
// checks are deferred to ValidateFetch/ValidateSend since the two commands
// need different credential sets.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := envDuration("SEARCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	rps, err := envFloat("SEARCH_RATE_LIMIT_RPS", 0)
	if err != nil {
		return nil, err
	}
	port, err := envInt("SMTP_PORT", mailer.DefaultPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		Search: SearchConfig{
			APIKey:       getEnv("GOOGLE_CUSTOM_SEARCH_API_KEY", ""),
			EngineID:     getEnv("GOOGLE_CX_ID", ""),
			Timeout:      timeout,
			RateLimitRPS: rps,
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getEnv("GEMINI_BASE_URL", ""),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", mailer.DefaultHost),
			Port:     port,
			Username: getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASS", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
	}, nil
}

// ValidateFetch checks the credentials the fetch command needs.
func (c *Config) ValidateFetch() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Search.APIKey == "" {
		return fmt.Errorf("GOOGLE_CUSTOM_SEARCH_API_KEY is required")
	}
	if c.Search.EngineID == "" {
		return fmt.Errorf("GOOGLE_CX_ID is required")
	}
	return nil
}

// ValidateSend checks the credentials the send command needs.
func (c *Config) ValidateSend() error {
	if c.SMTP.Username == "" {
		return fmt.Errorf("SMTP_USER is required")
	}
	if c.SMTP.Password == "" {
		return fmt.Errorf("SMTP_PASS is required")
	}
	return nil
}

// LoadTemplates reads the subject/intro/closing set from a YAML file. An
// empty path returns the stock defaults; fields omitted from the file fall
// back to the defaults too.
func LoadTemplates(path string) (mailer.Templates, error) {
	var t mailer.Templates
	if strings.TrimSpace(path) == "" {
		return t.WithDefaults(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read templates file: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return t, fmt.Errorf("parse templates YAML: %w", err)
	}
	return t.WithDefaults(), nil
}

func getEnv(varName, fallback string) string {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(varName string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envFloat(varName string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}

func envDuration(varName string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(varName))
	if v == "" {
		return fallback, nil
	}
	out, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q: %w", varName, v, err)
	}
	return out, nil
}
