package github

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/gate-discovery/internal/core/domain"
)

// Config holds the client configuration for the GitHub REST API.
type Config struct {
	// BaseURL overrides the API root, e.g. for GitHub Enterprise.
	// Default: https://api.github.com/
	BaseURL string

	// Timeout bounds each HTTP request.
	// Default: DefaultTimeout
	Timeout time.Duration

	// RequestsPerSecond is the proactive throttle rate.
	// Default: DefaultRequestsPerSecond
	RequestsPerSecond float64
}

// ConfigFromSettings builds a client Config from application settings.
func ConfigFromSettings(s domain.GitHubSettings) Config {
	return Config{
		BaseURL:           s.BaseURL,
		RequestsPerSecond: s.RequestsPerSecond,
	}
}

// withDefaults returns a copy of c with unset fields defaulted.
func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return c
}

// parseBaseURL validates the base URL and ensures a trailing slash.
// An empty string yields nil, meaning the public API.
func parseBaseURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: github base url: %w", domain.ErrInvalidInput, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: github base url %q must be absolute", domain.ErrInvalidInput, raw)
	}
	return u, nil
}
