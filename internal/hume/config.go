// Package hume provides a Hume AI client for prosody-based emotion analysis.
package hume

import (
	"errors"
	"os"
)

// ErrMissingAPIKey is returned when HUME_API_KEY is not set.
var ErrMissingAPIKey = errors.New("missing HUME_API_KEY environment variable")

// Config holds Hume API configuration.
type Config struct {
	APIKey string
}

// LoadConfig reads Hume configuration from environment variables.
// Returns ErrMissingAPIKey if HUME_API_KEY is not set.
func LoadConfig() (*Config, error) {
	apiKey := os.Getenv("HUME_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return &Config{APIKey: apiKey}, nil
}
