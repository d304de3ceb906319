// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Cache      CacheConfig      `koanf:"cache"`
	Aggregator AggregatorConfig `koanf:"aggregator"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
	Providers  ProvidersConfig  `koanf:"providers"`
	Taxonomy   TaxonomyConfig   `koanf:"taxonomy"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
	Environment  string        `koanf:"environment"` // development, staging, production
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CacheConfig holds listing cache settings for both tiers.
//
// Environment Variables:
//   - CACHE_REALTIME_TTL: TTL for live model listings (default: 60s)
//   - CACHE_GENERAL_TTL: TTL for video listings (default: 5m)
//   - CACHE_STATIC_TTL: TTL for taxonomy data (default: 1h)
//   - CACHE_SWEEP_INTERVAL: Expired entry sweep period (default: 1m)
//   - CACHE_DURABLE_ENABLED: Enable the BadgerDB tier (default: false)
//   - CACHE_DURABLE_PATH: BadgerDB directory (default: /data/lineup-cache)
type CacheConfig struct {
	RealtimeTTL   time.Duration `koanf:"realtime_ttl"`
	GeneralTTL    time.Duration `koanf:"general_ttl"`
	StaticTTL     time.Duration `koanf:"static_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`

	DurableEnabled  bool   `koanf:"durable_enabled"`
	DurablePath     string `koanf:"durable_path"`
	DurableInMemory bool   `koanf:"durable_in_memory"` // tests and ephemeral deployments
}

// AggregatorConfig holds fan-out and merge settings.
type AggregatorConfig struct {
	// ProviderTimeout bounds each provider task, including rate limiter waits.
	ProviderTimeout time.Duration `koanf:"provider_timeout"`

	// DefaultLimit applies when an inbound request omits limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps the requested page size.
	MaxLimit int `koanf:"max_limit"`

	// DebugRaw keeps each item's raw provider record in responses.
	DebugRaw bool `koanf:"debug_raw"`
}

// SecurityConfig holds inbound rate limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// SupervisorConfig mirrors the suture failure parameters of the process tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// ProvidersConfig holds one block per supported content provider.
type ProvidersConfig struct {
	Livefeed  ProviderConfig `koanf:"livefeed"`
	Camstream ProviderConfig `koanf:"camstream"`
	Videofeed ProviderConfig `koanf:"videofeed"`
}

// ProviderConfig holds the static connection settings of one provider.
// Which credential fields are required depends on the provider:
//   - livefeed: site_id, partner_id, access_key
//   - camstream: campaign
//   - videofeed: partner_id, access_key
type ProviderConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`

	SiteID    string `koanf:"site_id"`
	PartnerID string `koanf:"partner_id"`
	AccessKey string `koanf:"access_key"`
	Campaign  string `koanf:"campaign"`
	ClientIP  string `koanf:"client_ip"`

	// DefaultOrientation is the content classifier sent when the category
	// does not determine one (video providers only).
	DefaultOrientation string `koanf:"default_orientation"`

	Timeout      time.Duration `koanf:"timeout"`
	RateLimit    float64       `koanf:"rate_limit"` // requests per second, 0 = unlimited
	RateBurst    int           `koanf:"rate_burst"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"`
	UserAgent    string        `koanf:"user_agent"`
}

// TaxonomyConfig controls where provider vocabularies come from.
type TaxonomyConfig struct {
	// OverrideDir holds *.yaml files replacing the built-in taxonomies of
	// the providers they name. Empty uses the built-ins only.
	OverrideDir string `koanf:"override_dir"`
}

// EnabledProviders returns the IDs of enabled providers in registry order.
func (c *Config) EnabledProviders() []string {
	var ids []string
	if c.Providers.Livefeed.Enabled {
		ids = append(ids, "livefeed")
	}
	if c.Providers.Camstream.Enabled {
		ids = append(ids, "camstream")
	}
	if c.Providers.Videofeed.Enabled {
		ids = append(ids, "videofeed")
	}
	return ids
}

// Load reads configuration with precedence ENV > File > Defaults.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
