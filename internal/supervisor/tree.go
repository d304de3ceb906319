// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"github.com/tomtom215/lineup/internal/config"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// TreeConfigFrom maps the supervisor config section onto a TreeConfig.
func TreeConfigFrom(cfg config.SupervisorConfig) TreeConfig {
	return TreeConfig{
		FailureThreshold: cfg.FailureThreshold,
		FailureDecay:     cfg.FailureDecay,
		FailureBackoff:   cfg.FailureBackoff,
		ShutdownTimeout:  cfg.ShutdownTimeout,
	}
}

// SupervisorTree is the process tree of the listing service.
//
//	lineup
//	├── cache-layer  (cache sweeper)
//	└── api-layer    (HTTP server)
//
// A sweeper that keeps failing backs off on its own without taking the
// HTTP server down with it.
type SupervisorTree struct {
	root   *suture.Supervisor
	cache  *suture.Supervisor
	api    *suture.Supervisor
	logger *slog.Logger
	config TreeConfig
}

// NewSupervisorTree creates a new supervisor tree with the given configuration.
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	defaults := DefaultTreeConfig()
	if config.FailureThreshold == 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = defaults.FailureDecay
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = defaults.FailureBackoff
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = defaults.ShutdownTimeout
	}

	// MustHook has a pointer receiver.
	handler := &sutureslog.Handler{Logger: logger}
	eventHook := handler.MustHook()

	rootSpec := suture.Spec{
		EventHook:        eventHook,
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	// Children inherit the EventHook when added to the root.
	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("lineup", rootSpec)
	cacheLayer := suture.New("cache-layer", childSpec)
	api := suture.New("api-layer", childSpec)

	root.Add(cacheLayer)
	root.Add(api)

	return &SupervisorTree{
		root:   root,
		cache:  cacheLayer,
		api:    api,
		logger: logger,
		config: config,
	}, nil
}

// Root returns the root supervisor for direct access if needed.
func (t *SupervisorTree) Root() *suture.Supervisor {
	return t.root
}

// AddCacheService adds a service to the cache layer supervisor.
func (t *SupervisorTree) AddCacheService(svc suture.Service) suture.ServiceToken {
	return t.cache.Add(svc)
}

// AddAPIService adds a service to the API layer supervisor.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve starts the supervisor tree and blocks until the context is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the supervisor tree in a background goroutine.
// Returns a channel that receives the error (or nil) when the supervisor stops.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport lists services that did not stop within the
// shutdown timeout.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
