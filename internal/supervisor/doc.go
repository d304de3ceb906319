// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

/*
Package supervisor provides process supervision using suture v4.

# Overview

	RootSupervisor ("lineup")
	├── CacheSupervisor ("cache-layer")
	│   └── CacheSweeperService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff;
each layer counts failures independently. Supervisor events are logged
through sutureslog over the zerolog slog adapter.

# Usage Example

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(),
	    supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCacheService(services.NewCacheSweeperService(results, cfg.Cache.SweepInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped with error")
	}

Services live in the services subpackage.
*/
package supervisor
