// Package shop holds the per-area shop catalog and its story-flag-gated
// stock filtering.
package shop

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

// Stock is one purchasable entry in a shop.
type Stock struct {
	Item  string `yaml:"item" json:"item"`
	Price int    `yaml:"price" json:"price"`
	// RequiresFlag hides the entry until the story milestone is reached.
	// Empty means always visible.
	RequiresFlag string `yaml:"requires_flag" json:"requires_flag,omitempty"`
}

// Definition is the static description of one shop.
type Definition struct {
	ID     string  `yaml:"id"`
	Name   string  `yaml:"name"`
	AreaID string  `yaml:"area"`
	Stock  []Stock `yaml:"stock"`
}

// Validate checks definition invariants.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("shop ID must not be empty")
	}
	if d.AreaID == "" {
		return fmt.Errorf("shop %q: area must not be empty", d.ID)
	}
	for i, s := range d.Stock {
		if s.Item == "" {
			return fmt.Errorf("shop %q: stock[%d] must name an item", d.ID, i)
		}
		if s.Price < 0 {
			return fmt.Errorf("shop %q: stock[%d] price must be >= 0, got %d", d.ID, i, s.Price)
		}
	}
	return nil
}

// Registry holds all known shops keyed by ID with a per-area index.
type Registry struct {
	defs   map[string]*Definition
	byArea map[string][]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		defs:   make(map[string]*Definition),
		byArea: make(map[string][]*Definition),
	}
}

// Register adds def to the registry and the per-area index.
//
// Postcondition: returns an error on duplicate shop IDs.
func (r *Registry) Register(def *Definition) error {
	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("duplicate shop ID: %q", def.ID)
	}
	r.defs[def.ID] = def
	r.byArea[def.AreaID] = append(r.byArea[def.AreaID], def)
	return nil
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// ByArea returns the shops located in the area, sorted by id.
// Missing areas degrade to an empty slice.
func (r *Registry) ByArea(areaID string) []*Definition {
	shops := append([]*Definition(nil), r.byArea[areaID]...)
	sort.Slice(shops, func(i, j int) bool { return shops[i].ID < shops[j].ID })
	return shops
}

// All returns all registered shops sorted by id.
func (r *Registry) All() []*Definition {
	out := make([]*Definition, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered shops.
func (r *Registry) Count() int { return len(r.defs) }

// Catalog returns the stock visible to the player across all shops in the
// area. Entries gated on a story flag the snapshot lacks are omitted.
func (r *Registry) Catalog(areaID string, snap unlock.Snapshot) []Stock {
	var out []Stock
	for _, shop := range r.ByArea(areaID) {
		for _, stock := range shop.Stock {
			if stock.RequiresFlag != "" && !snap.HasFlag(stock.RequiresFlag) {
				continue
			}
			out = append(out, stock)
		}
	}
	return out
}

// LoadDirectory reads every *.yaml file in dir and returns a populated
// Registry.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading shop dir %q: %w", dir, err)
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
			Shops []*Definition `yaml:"shops"`
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, def := range file.Shops {
			if err := def.Validate(); err != nil {
				return nil, fmt.Errorf("validating %q: %w", path, err)
			}
			if err := reg.Register(def); err != nil {
				return nil, fmt.Errorf("registering shop from %q: %w", path, err)
			}
		}
	}
	return reg, nil
}
