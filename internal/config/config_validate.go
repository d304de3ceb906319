// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tomtom215/lineup/internal/logging"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateAggregator(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	if err := c.validateSupervisor(); err != nil {
		return err
	}

	return c.validateProviders()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

var validLogFormats = map[string]bool{"json": true, "console": true}

// validateLogging validates the log level and format enums
func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic, disabled")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateCache validates TTLs and the durable tier location
func (c *Config) validateCache() error {
	ttls := []struct {
		name  string
		value time.Duration
	}{
		{"CACHE_REALTIME_TTL", c.Cache.RealtimeTTL},
		{"CACHE_GENERAL_TTL", c.Cache.GeneralTTL},
		{"CACHE_STATIC_TTL", c.Cache.StaticTTL},
		{"CACHE_SWEEP_INTERVAL", c.Cache.SweepInterval},
	}
	for _, ttl := range ttls {
		if ttl.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", ttl.name, ttl.value)
		}
	}

	if c.Cache.DurableEnabled && !c.Cache.DurableInMemory && c.Cache.DurablePath == "" {
		return fmt.Errorf("CACHE_DURABLE_PATH is required when CACHE_DURABLE_ENABLED=true")
	}
	return nil
}

// validateAggregator validates fan-out bounds
func (c *Config) validateAggregator() error {
	if c.Aggregator.ProviderTimeout <= 0 {
		return fmt.Errorf("AGGREGATOR_PROVIDER_TIMEOUT must be positive")
	}
	if c.Aggregator.MaxLimit < 1 {
		return fmt.Errorf("AGGREGATOR_MAX_LIMIT must be at least 1")
	}
	if c.Aggregator.DefaultLimit < 1 || c.Aggregator.DefaultLimit > c.Aggregator.MaxLimit {
		return fmt.Errorf("AGGREGATOR_DEFAULT_LIMIT must be between 1 and AGGREGATOR_MAX_LIMIT (%d)", c.Aggregator.MaxLimit)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// validateRateLimits validates inbound rate limiting bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateSupervisor validates suture parameters. Zero values fall back to
// suture defaults, so only negatives are rejected.
func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold < 0 || c.Supervisor.FailureDecay < 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD and SUPERVISOR_FAILURE_DECAY must not be negative")
	}
	if c.Supervisor.FailureBackoff < 0 || c.Supervisor.ShutdownTimeout < 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF and SUPERVISOR_SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// validateProviders validates each enabled provider block
func (c *Config) validateProviders() error {
	checks := []struct {
		id       string
		cfg      *ProviderConfig
		required func(*ProviderConfig) map[string]string
	}{
		{"livefeed", &c.Providers.Livefeed, func(p *ProviderConfig) map[string]string {
			return map[string]string{"SITE_ID": p.SiteID, "PARTNER_ID": p.PartnerID, "ACCESS_KEY": p.AccessKey}
		}},
		{"camstream", &c.Providers.Camstream, func(p *ProviderConfig) map[string]string {
			return map[string]string{"CAMPAIGN": p.Campaign}
		}},
		{"videofeed", &c.Providers.Videofeed, func(p *ProviderConfig) map[string]string {
			return map[string]string{"PARTNER_ID": p.PartnerID, "ACCESS_KEY": p.AccessKey}
		}},
	}

	for _, check := range checks {
		if !check.cfg.Enabled {
			continue
		}
		if err := check.cfg.validate(check.id, check.required(check.cfg)); err != nil {
			return err
		}
	}
	return nil
}

// validate checks one enabled provider. required maps env suffixes to values.
func (p *ProviderConfig) validate(id string, required map[string]string) error {
	prefix := strings.ToUpper(id)

	if p.BaseURL == "" {
		return fmt.Errorf("%s_BASE_URL is required when %s_ENABLED=true", prefix, prefix)
	}
	if err := validateBaseURL(p.BaseURL, prefix+"_BASE_URL"); err != nil {
		return err
	}

	// Deterministic error order for the same misconfiguration.
	for _, suffix := range []string{"SITE_ID", "PARTNER_ID", "ACCESS_KEY", "CAMPAIGN"} {
		value, needed := required[suffix]
		if needed && strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s_%s is required when %s_ENABLED=true", prefix, suffix, prefix)
		}
	}

	if p.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive", prefix)
	}
	if p.RateLimit < 0 {
		return fmt.Errorf("%s_RATE_LIMIT must not be negative", prefix)
	}
	if p.RateLimit > 0 && p.RateBurst < 1 {
		return fmt.Errorf("%s_RATE_BURST must be at least 1 when %s_RATE_LIMIT is set", prefix, prefix)
	}
	if p.MaxBodyBytes <= 0 {
		return fmt.Errorf("%s_MAX_BODY_BYTES must be positive", prefix)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// validateBaseURL accepts an http(s) URL with a host and an optional path
// prefix. Query parameters and userinfo are rejected: adapters add the
// request parameters, and credentials have their own settings.
func validateBaseURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", name)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", name, u.RawQuery)
	}
	if u.User != nil {
		return fmt.Errorf("%s must not embed credentials", name)
	}
	return nil
}
