// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package taxonomy

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed taxonomies/*.yaml
var builtin embed.FS

// Registry holds one Taxonomy per provider. It is immutable after Load and
// safe for concurrent use.
type Registry struct {
	byProvider map[string]*Taxonomy
}

// bytesProvider feeds an in-memory YAML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, fmt.Errorf("bytes provider does not support Read()")
}

// Load returns a registry of the built-in taxonomies. When overrideDir is
// not empty, every *.yaml / *.yml file in it replaces the built-in taxonomy
// of the provider it names.
func Load(overrideDir string) (*Registry, error) {
	r := &Registry{byProvider: make(map[string]*Taxonomy)}

	entries, err := builtin.ReadDir("taxonomies")
	if err != nil {
		return nil, fmt.Errorf("failed to list built-in taxonomies: %w", err)
	}
	for _, e := range entries {
		data, err := builtin.ReadFile("taxonomies/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read taxonomy %s: %w", e.Name(), err)
		}
		t, err := parse(bytesProvider(data), e.Name())
		if err != nil {
			return nil, err
		}
		r.byProvider[t.Provider] = t
	}

	if overrideDir == "" {
		return r, nil
	}

	files, err := os.ReadDir(overrideDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy directory %s: %w", overrideDir, err)
	}
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if f.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(overrideDir, f.Name())
		t, err := parse(file.Provider(path), path)
		if err != nil {
			return nil, err
		}
		r.byProvider[t.Provider] = t
	}
	return r, nil
}

func parse(p koanf.Provider, name string) (*Taxonomy, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy %s: %w", name, err)
	}
	t := &Taxonomy{}
	if err := k.Unmarshal("", t); err != nil {
		return nil, fmt.Errorf("failed to decode taxonomy %s: %w", name, err)
	}
	t.Provider = strings.TrimSpace(t.Provider)
	if t.Provider == "" {
		return nil, fmt.Errorf("taxonomy %s: provider is required", name)
	}
	return t.Build(), nil
}

// NewRegistry builds a registry from already constructed taxonomies.
// Used by tests and by callers that assemble vocabularies in code.
func NewRegistry(taxonomies ...*Taxonomy) *Registry {
	r := &Registry{byProvider: make(map[string]*Taxonomy, len(taxonomies))}
	for _, t := range taxonomies {
		r.byProvider[t.Provider] = t.Build()
	}
	return r
}

// Get returns the taxonomy for provider.
func (r *Registry) Get(provider string) (*Taxonomy, bool) {
	t, ok := r.byProvider[provider]
	return t, ok
}

// Providers returns the provider IDs with a taxonomy, sorted.
func (r *Registry) Providers() []string {
	out := make([]string, 0, len(r.byProvider))
	for id := range r.byProvider {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
