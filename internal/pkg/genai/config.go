package genai

import (
	"fmt"
	"time"
)

// Config carries the settings for the generative language API client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string

	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("genai api key is required")
	}
	if c.Model == "" {
		return fmt.Errorf("genai model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("genai timeout must be positive")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("genai max retries must be at least 1")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://generativelanguage.googleapis.com/v1beta",
		Model:      "gemini-2.0-flash",
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}
