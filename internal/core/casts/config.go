package casts

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config validation errors
var (
	// ErrInvalidAPIBaseURL is returned when APIBaseURL is not an absolute http(s) URL
	ErrInvalidAPIBaseURL = errors.New("APIBaseURL must be an absolute http(s) URL")
	// ErrInvalidWebBaseURL is returned when WebBaseURL is not an absolute http(s) URL
	ErrInvalidWebBaseURL = errors.New("WebBaseURL must be an absolute http(s) URL")
	// ErrInvalidFetchTimeout is returned when FetchTimeout is not positive
	ErrInvalidFetchTimeout = errors.New("FetchTimeout must be positive")
	// ErrInvalidTimezone is returned when DisplayTimezone is not a known IANA zone
	ErrInvalidTimezone = errors.New("DisplayTimezone must be a valid IANA time zone")
	// ErrMissingUserAgent is returned when UserAgent is empty
	ErrMissingUserAgent = errors.New("UserAgent is required")
)

// Config holds the configuration for cast resolution and display.
type Config struct {
	// APIBaseURL is the provider API origin serving /v2/user-thread-casts.
	APIBaseURL string

	// WebBaseURL is the provider's public web origin. Profile and cast links are built on it.
	WebBaseURL string

	// UserAgent is sent on every provider request.
	UserAgent string

	// DisplayTimezone is the IANA zone timestamps are rendered in.
	DisplayTimezone string

	// FetchTimeout bounds a single provider request.
	FetchTimeout time.Duration
}

// NewConfig creates a new Config with the provided values and validates it.
func NewConfig(apiBaseURL, webBaseURL, userAgent, displayTimezone string, fetchTimeout time.Duration) (Config, error) {
	cfg := Config{
		APIBaseURL:      apiBaseURL,
		WebBaseURL:      webBaseURL,
		UserAgent:       userAgent,
		DisplayTimezone: displayTimezone,
		FetchTimeout:    fetchTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if !isAbsoluteHTTPURL(c.APIBaseURL) {
		return fmt.Errorf("%w: got %q", ErrInvalidAPIBaseURL, c.APIBaseURL)
	}
	if !isAbsoluteHTTPURL(c.WebBaseURL) {
		return fmt.Errorf("%w: got %q", ErrInvalidWebBaseURL, c.WebBaseURL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidFetchTimeout, c.FetchTimeout)
	}
	if c.UserAgent == "" {
		return ErrMissingUserAgent
	}
	if _, err := time.LoadLocation(c.DisplayTimezone); err != nil {
		return fmt.Errorf("%w: got %q", ErrInvalidTimezone, c.DisplayTimezone)
	}

	return nil
}

// Location returns the display time zone, falling back to UTC when it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.DisplayTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultConfig returns a Config pointing at the public Warpcast endpoints.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:      "https://client.warpcast.com",
		WebBaseURL:      "https://warpcast.com",
		UserAgent:       "Castcard/1.0",
		DisplayTimezone: "UTC",
		FetchTimeout:    10 * time.Second,
	}
}

// ConfigFromEnv creates a Config from environment variables.
// Uses defaults for any missing environment variables.
//
// Environment variables:
//   - CASTCARD_API_BASE_URL: provider API origin (default: "https://client.warpcast.com")
//   - CASTCARD_WEB_BASE_URL: provider web origin for links (default: "https://warpcast.com")
//   - CASTCARD_USER_AGENT: User-Agent for provider requests (default: "Castcard/1.0")
//   - CASTCARD_DISPLAY_TIMEZONE: IANA zone for timestamps (default: "UTC")
//   - CASTCARD_FETCH_TIMEOUT_SECONDS: provider request timeout in seconds (default: 10)
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("CASTCARD_API_BASE_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	if v := os.Getenv("CASTCARD_WEB_BASE_URL"); v != "" {
		cfg.WebBaseURL = v
	}

	if v := os.Getenv("CASTCARD_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}

	if v := os.Getenv("CASTCARD_DISPLAY_TIMEZONE"); v != "" {
		if _, err := time.LoadLocation(v); err == nil {
			cfg.DisplayTimezone = v
		} else {
			slog.Warn("[CAST] invalid CASTCARD_DISPLAY_TIMEZONE value, using default",
				"value", v,
				"default", cfg.DisplayTimezone,
				"error", err,
			)
		}
	}

	if v := os.Getenv("CASTCARD_FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeout = time.Duration(n) * time.Second
		} else {
			slog.Warn("[CAST] invalid CASTCARD_FETCH_TIMEOUT_SECONDS value, using default",
				"value", v,
				"default_seconds", int(cfg.FetchTimeout.Seconds()),
				"error", err,
			)
		}
	}

	return cfg
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
