package config

import (
	"fmt"
	"net/url"
	"slices"

	"resumeradar/internal/errors"
)

var (
	validPersonas = []string{"faang", "startup", "enterprise"}
	validMatchers = []string{"substring", "wholeword"}
	validColors   = []string{"auto", "always", "never"}
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(validPersonas, c.Analysis.DefaultPersona) {
		return invalid("analysis.defaultPersona must be one of %v, got %q", validPersonas, c.Analysis.DefaultPersona)
	}
	if !slices.Contains(validMatchers, c.Analysis.Matcher) {
		return invalid("analysis.matcher must be one of %v, got %q", validMatchers, c.Analysis.Matcher)
	}
	if err := c.Analysis.TrendFeed.validate(); err != nil {
		return err
	}

	if c.Server.Port == "" {
		return invalid("server port is required")
	}
	if c.Server.Sessions.MaxSessions <= 0 {
		return invalid("server.sessions.maxSessions must be positive")
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RequestsPerMin <= 0 {
		return invalid("server.rateLimit.requestsPerMin must be positive when rate limiting is enabled")
	}

	if !slices.Contains(c.App.SupportedFormats, c.App.DefaultFormat) {
		return invalid("invalid default format: %s", c.App.DefaultFormat)
	}
	if c.App.MaxFileSize <= 0 {
		return invalid("app.maxFileSize must be positive")
	}
	if !slices.Contains(validColors, c.App.Color) {
		return invalid("app.color must be one of %v, got %q", validColors, c.App.Color)
	}
	if c.Watch.DebounceDelay < 0 {
		return invalid("watch.debounceDelay must not be negative")
	}

	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}
	return nil
}

func (t TrendFeedConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	u, err := url.Parse(t.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return invalid("analysis.trendFeed.url must be an absolute http(s) URL, got %q", t.URL)
	}
	if t.Timeout <= 0 {
		return invalid("analysis.trendFeed.timeout must be positive")
	}
	if t.MaxRetries < 0 {
		return invalid("analysis.trendFeed.maxRetries must not be negative")
	}
	cb := t.CircuitBreaker
	if cb.Enabled && (cb.FailureThreshold <= 0 || cb.FailureThreshold > 1) {
		return invalid("analysis.trendFeed.circuitBreaker.failureThreshold must be in (0, 1]")
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.NewConfigError(errors.ErrCodeInvalidConfig, fmt.Sprintf(format, args...), nil)
}
