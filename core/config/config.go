// Package config loads StylePipe settings from the environment.
// A .env file in the working directory is read first when present;
// variables already set in the process environment win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Browser screenshot modes.
const (
	BrowserAuto = "auto"
	BrowserOn   = "on"
	BrowserOff  = "off"
)

// Config holds all application configuration
type Config struct {
	// Fetch contains page and stylesheet download settings
	Fetch FetchConfig

	// Screenshot contains capture strategy settings
	Screenshot ScreenshotConfig

	// Replicate contains generative provider settings
	Replicate ReplicateConfig
}

// FetchConfig holds download configuration
type FetchConfig struct {
	// ProxyURL is prepended to the escaped target URL, e.g. "https://corsproxy.io/?"
	ProxyURL string

	// TimeoutSeconds bounds a single request
	TimeoutSeconds int

	// MaxConcurrent caps parallel stylesheet downloads
	MaxConcurrent int

	// RateLimit is the request rate in requests per second; 0 disables limiting
	RateLimit float64

	// CacheTTLSeconds is how long fetched documents stay cached
	CacheTTLSeconds int
}

// ScreenshotConfig holds capture configuration
type ScreenshotConfig struct {
	// API is the screenshot endpoint; empty skips the endpoint strategy
	API string

	// Browser is auto, on or off
	Browser string
}

// ReplicateConfig holds provider configuration
type ReplicateConfig struct {
	Provider     string
	Model        string
	AnthropicKey string
	OpenAIKey    string
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// CacheTTL returns the fetch cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Fetch.CacheTTLSeconds) * time.Second
}

// APIKey returns the key for the configured provider.
func (c *Config) APIKey() string {
	switch strings.ToLower(c.Replicate.Provider) {
	case "openai", "gpt":
		return c.Replicate.OpenAIKey
	default:
		return c.Replicate.AnthropicKey
	}
}

// ValidationError reports an invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Load reads .env (if any) and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return LoadFromEnv()
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Fetch: FetchConfig{
			ProxyURL:        getEnvOrDefault("STYLEPIPE_PROXY_URL", ""),
			TimeoutSeconds:  getEnvAsIntOrDefault("STYLEPIPE_TIMEOUT_SECONDS", 30),
			MaxConcurrent:   getEnvAsIntOrDefault("STYLEPIPE_MAX_FETCHES", 8),
			RateLimit:       getEnvAsFloatOrDefault("STYLEPIPE_RATE_LIMIT", 0),
			CacheTTLSeconds: getEnvAsIntOrDefault("STYLEPIPE_CACHE_TTL_SECONDS", 300),
		},
		Screenshot: ScreenshotConfig{
			API:     getEnvOrDefault("STYLEPIPE_SCREENSHOT_API", ""),
			Browser: strings.ToLower(getEnvOrDefault("STYLEPIPE_BROWSER", BrowserAuto)),
		},
		Replicate: ReplicateConfig{
			Provider:     strings.ToLower(getEnvOrDefault("STYLEPIPE_PROVIDER", "claude")),
			Model:        getEnvOrDefault("STYLEPIPE_MODEL", ""),
			AnthropicKey: firstEnv("STYLEPIPE_ANTHROPIC_KEY", "ANTHROPIC_API_KEY"),
			OpenAIKey:    firstEnv("STYLEPIPE_OPENAI_KEY", "OPENAI_API_KEY"),
		},
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Fetch.TimeoutSeconds < 1 {
		return &ValidationError{Field: "STYLEPIPE_TIMEOUT_SECONDS", Message: "must be at least 1 second"}
	}
	if c.Fetch.MaxConcurrent < 1 {
		return &ValidationError{Field: "STYLEPIPE_MAX_FETCHES", Message: "must be at least 1"}
	}
	if c.Fetch.RateLimit < 0 {
		return &ValidationError{Field: "STYLEPIPE_RATE_LIMIT", Message: "cannot be negative"}
	}
	if c.Fetch.CacheTTLSeconds < 1 {
		return &ValidationError{Field: "STYLEPIPE_CACHE_TTL_SECONDS", Message: "must be at least 1 second"}
	}
	switch c.Screenshot.Browser {
	case BrowserAuto, BrowserOn, BrowserOff:
	default:
		return &ValidationError{Field: "STYLEPIPE_BROWSER", Message: "must be 'auto', 'on' or 'off'"}
	}
	switch c.Replicate.Provider {
	case "claude", "anthropic", "openai", "gpt":
	default:
		return &ValidationError{Field: "STYLEPIPE_PROVIDER", Message: "must be 'claude' or 'openai'"}
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
