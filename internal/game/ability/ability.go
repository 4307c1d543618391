// Package ability holds the static ability catalog referenced by species.
package ability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the static description of one ability.
type Definition struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Element     string `yaml:"element"`
	Power       int    `yaml:"power"`
	Cost        int    `yaml:"cost"`
	Description string `yaml:"description"`
}

// Validate checks definition invariants.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("ability ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("ability %q: name must not be empty", d.ID)
	}
	if d.Power < 0 {
		return fmt.Errorf("ability %q: power must be >= 0, got %d", d.ID, d.Power)
	}
	if d.Cost < 0 {
		return fmt.Errorf("ability %q: cost must be >= 0, got %d", d.ID, d.Cost)
	}
	return nil
}

// Registry holds all known abilities keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds def, overwriting any existing entry with the same ID.
func (r *Registry) Register(def *Definition) {
	r.defs[def.ID] = def
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Has reports whether id is a known ability.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// All returns all registered definitions sorted by id.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir and returns a populated
// Registry.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var file struct {
			Abilities []*Definition `yaml:"abilities"`
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, def := range file.Abilities {
			if err := def.Validate(); err != nil {
				return nil, fmt.Errorf("validating %q: %w", path, err)
			}
			reg.Register(def)
		}
	}
	return reg, nil
}
