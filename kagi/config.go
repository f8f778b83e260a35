package kagi

import (
	"errors"
	"time"
)

// DefaultBaseURL is the production Kagi API endpoint.
const DefaultBaseURL = "https://kagi.com/api/v0"

// Config holds the Kagi integration settings. Fields carry env tags so the
// server binary can populate them from the environment; library callers fill
// the struct directly.
type Config struct {
	// APIKey authenticates against the Kagi API.
	APIKey string `env:"KAGI_API_KEY"`

	// SummarizerEngine is the engine used when a summarize call does not
	// specify one.
	SummarizerEngine string `env:"KAGI_SUMMARIZER_ENGINE" envDefault:"cecil"`

	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string `env:"KAGI_API_BASE_URL"`

	// SearchLimit caps the number of results requested per search query.
	SearchLimit int `env:"KAGI_SEARCH_LIMIT" envDefault:"10"`

	// HTTPTimeout bounds each API request including retries' individual
	// attempts.
	HTTPTimeout time.Duration `env:"KAGI_HTTP_TIMEOUT" envDefault:"30s"`

	// RetryAttempts is the number of tries per API call. 1 disables retry.
	RetryAttempts uint `env:"KAGI_RETRY_ATTEMPTS" envDefault:"3"`
}

// Validate checks the configuration and fills defaults for zero values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("kagi: API key is required (set KAGI_API_KEY or pass --api-key)")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.SearchLimit <= 0 {
		c.SearchLimit = 10
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = 3
	}
	c.SummarizerEngine = string(ParseEngine(c.SummarizerEngine, EngineCecil))
	return nil
}

// DefaultEngine returns the configured summarizer engine.
func (c *Config) DefaultEngine() Engine {
	return ParseEngine(c.SummarizerEngine, EngineCecil)
}
