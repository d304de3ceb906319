// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/lineup/config.yaml",
	"/etc/lineup/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultProvider(baseURL string) ProviderConfig {
	return ProviderConfig{
		Enabled:      false,
		BaseURL:      baseURL,
		Timeout:      8 * time.Second,
		RateLimit:    10,
		RateBurst:    5,
		MaxBodyBytes: 4 << 20, // 4MB
		UserAgent:    "lineup/1.0",
	}
}

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	videofeed := defaultProvider("https://api.videofeed.example")
	videofeed.DefaultOrientation = "straight"

	return &Config{
		Server: ServerConfig{
			Port:         3858,
			Host:         "0.0.0.0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
			Environment:  "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Cache: CacheConfig{
			RealtimeTTL:     60 * time.Second,
			GeneralTTL:      5 * time.Minute,
			StaticTTL:       time.Hour,
			SweepInterval:   time.Minute,
			DurableEnabled:  false,
			DurablePath:     "/data/lineup-cache",
			DurableInMemory: false,
		},
		Aggregator: AggregatorConfig{
			ProviderTimeout: 10 * time.Second,
			DefaultLimit:    24,
			MaxLimit:        100,
			DebugRaw:        false,
		},
		Security: SecurityConfig{
			RateLimitReqs:     120,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5.0,
			FailureDecay:     30.0,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
		Providers: ProvidersConfig{
			Livefeed:  defaultProvider("https://api.livefeed.example"),
			Camstream: defaultProvider("https://api.camstream.example"),
			Videofeed: videofeed,
		},
		Taxonomy: TaxonomyConfig{
			OverrideDir: "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":          "server.port",
	"http_host":          "server.host",
	"http_read_timeout":  "server.read_timeout",
	"http_write_timeout": "server.write_timeout",
	"http_idle_timeout":  "server.idle_timeout",
	"environment":        "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Cache
	"cache_realtime_ttl":      "cache.realtime_ttl",
	"cache_general_ttl":       "cache.general_ttl",
	"cache_static_ttl":        "cache.static_ttl",
	"cache_sweep_interval":    "cache.sweep_interval",
	"cache_durable_enabled":   "cache.durable_enabled",
	"cache_durable_path":      "cache.durable_path",
	"cache_durable_in_memory": "cache.durable_in_memory",

	// Aggregator
	"aggregator_provider_timeout": "aggregator.provider_timeout",
	"aggregator_default_limit":    "aggregator.default_limit",
	"aggregator_max_limit":        "aggregator.max_limit",
	"aggregator_debug_raw":        "aggregator.debug_raw",

	// Security
	"rate_limit_reqs":     "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"rate_limit_disabled": "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",

	// Taxonomy
	"taxonomy_override_dir": "taxonomy.override_dir",
}

// providerEnvFields are the per-provider settings exposed as
// <PROVIDER>_<FIELD> environment variables, e.g. LIVEFEED_ACCESS_KEY.
var providerEnvFields = []string{
	"enabled", "base_url", "site_id", "partner_id", "access_key", "campaign",
	"client_ip", "default_orientation", "timeout", "rate_limit", "rate_burst",
	"max_body_bytes", "user_agent",
}

var providerEnvPrefixes = []string{"livefeed", "camstream", "videofeed"}

//nolint:gochecknoinits // env mapping table is derived once
func init() {
	for _, p := range providerEnvPrefixes {
		for _, f := range providerEnvFields {
			envMappings[p+"_"+f] = "providers." + p + "." + f
		}
	}
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - CACHE_REALTIME_TTL -> cache.realtime_ttl
//   - LIVEFEED_ACCESS_KEY -> providers.livefeed.access_key
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// Unmapped keys are skipped so unrelated environment variables
	// never pollute the config.
	return ""
}
