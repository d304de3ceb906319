// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	_ "github.com/tomtom215/lineup/docs" // swagger document
	"github.com/tomtom215/lineup/internal/aggregator"
	"github.com/tomtom215/lineup/internal/api"
	"github.com/tomtom215/lineup/internal/cache"
	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/logging"
	"github.com/tomtom215/lineup/internal/metrics"
	"github.com/tomtom215/lineup/internal/providers"
	"github.com/tomtom215/lineup/internal/supervisor"
	"github.com/tomtom215/lineup/internal/supervisor/services"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
		Fields: map[string]string{"service": "lineup", "version": version},
	})
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Bool("durable_cache", cfg.Cache.DurableEnabled).
		Msg("Starting Lineup with supervisor tree")

	taxonomies, err := taxonomy.Load(cfg.Taxonomy.OverrideDir)
	if err != nil {
		logging.Fatal().Err(err).Str("override_dir", cfg.Taxonomy.OverrideDir).Msg("Failed to load taxonomies")
	}

	opts := providers.DefaultOptions()
	opts.KeepRaw = cfg.Aggregator.DebugRaw
	registry, err := providers.FromConfig(&cfg.Providers, taxonomies, opts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build provider registry")
	}
	if registry.Len() == 0 {
		logging.Warn().Msg("No providers enabled; listing requests will be rejected with UNKNOWN_PROVIDER")
	}
	for _, a := range registry.All() {
		logging.Info().Str("provider", a.ID()).Str("kind", string(a.Kind())).Msg("Provider enabled")
	}

	results, err := cache.Open(cfg.Cache)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open result cache")
	}
	defer func() {
		if err := results.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing result cache")
		}
	}()

	agg := aggregator.New(registry, results, aggregator.ConfigFrom(cfg))
	handler := api.NewHandler(agg, results, cfg.Cache.StaticTTL)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFrom(cfg.Security))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddCacheService(services.NewCacheSweeperService(results, cfg.Cache.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
