// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package providers

import (
	"fmt"

	"github.com/tomtom215/lineup/internal/config"
	"github.com/tomtom215/lineup/internal/taxonomy"
)

// FromConfig builds a registry holding every enabled provider, in the
// fixed order livefeed, camstream, videofeed.
func FromConfig(cfg *config.ProvidersConfig, taxonomies *taxonomy.Registry, opts Options) (*Registry, error) {
	type entry struct {
		id    string
		cfg   *config.ProviderConfig
		build func(*config.ProviderConfig, *taxonomy.Taxonomy, Options) Adapter
	}
	entries := []entry{
		{LivefeedID, &cfg.Livefeed, func(c *config.ProviderConfig, t *taxonomy.Taxonomy, o Options) Adapter {
			return NewLivefeed(c, t, o)
		}},
		{CamstreamID, &cfg.Camstream, func(c *config.ProviderConfig, t *taxonomy.Taxonomy, o Options) Adapter {
			return NewCamstream(c, t, o)
		}},
		{VideofeedID, &cfg.Videofeed, func(c *config.ProviderConfig, t *taxonomy.Taxonomy, o Options) Adapter {
			return NewVideofeed(c, t, o)
		}},
	}

	reg := NewRegistry()
	for _, e := range entries {
		if !e.cfg.Enabled {
			continue
		}
		tax, ok := taxonomies.Get(e.id)
		if !ok {
			return nil, fmt.Errorf("provider %s: no taxonomy loaded", e.id)
		}
		reg.Register(e.build(e.cfg, tax, opts))
	}
	return reg, nil
}
