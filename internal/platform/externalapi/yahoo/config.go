// Package yahoo provides a client for the Yahoo Finance quote and chart APIs.
package yahoo

import (
	"os"
	"time"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Config holds configuration for the Yahoo Finance API client.
type Config struct {
	BaseURL string        // Base URL for the API (e.g., "https://query1.finance.yahoo.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("YAHOO_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
