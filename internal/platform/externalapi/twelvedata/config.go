// Package twelvedata provides a client for the Twelve Data market data API.
package twelvedata

import (
	"os"
	"time"
)

const defaultBaseURL = "https://api.twelvedata.com"

// Config holds configuration for the Twelve Data API client.
type Config struct {
	TwelveDataAPIKey string            // API key for authentication
	BaseURL          string            // e.g. "https://api.twelvedata.com"
	Timeout          time.Duration     // HTTP request timeout
	Aliases          map[string]string // internal symbol -> Twelve Data symbol
}

// LoadConfig loads Twelve Data configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		TwelveDataAPIKey: os.Getenv("TWELVE_DATA_API_KEY"),
		BaseURL:          os.Getenv("TWELVE_DATA_BASE_URL"),
		Timeout:          10 * time.Second,
		Aliases:          DefaultAliases(),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return cfg
}

// DefaultAliases maps Yahoo-style index tickers to their Twelve Data symbols.
func DefaultAliases() map[string]string {
	return map[string]string{
		"^GSPC": "SPX",
		"^NDX":  "NDX",
		"^DJI":  "DJI",
		"^N225": "N225",
	}
}
