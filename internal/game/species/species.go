// Package species holds the creature catalog: static species definitions
// and the habitat-based encounter fallback used when an area defines no
// spawn table.
package species

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Habitat places a species in an area with the level band it appears at.
type Habitat struct {
	AreaID   string `yaml:"area"`
	MinLevel int    `yaml:"min_level"`
	MaxLevel int    `yaml:"max_level"` // 0 = unbounded
}

// Contains reports whether level falls inside the habitat band.
func (h Habitat) Contains(level int) bool {
	if level < h.MinLevel {
		return false
	}
	return h.MaxLevel == 0 || level <= h.MaxLevel
}

// Definition is the static description of one creature species.
type Definition struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Element     string    `yaml:"element"`
	Rarity      string    `yaml:"rarity"`
	BaseHP      int       `yaml:"base_hp"`
	BaseAttack  int       `yaml:"base_attack"`
	BaseDefense int       `yaml:"base_defense"`
	BaseSpeed   int       `yaml:"base_speed"`
	Abilities   []string  `yaml:"abilities"`
	Habitats    []Habitat `yaml:"habitats"`
}

// Validate checks definition invariants.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("species ID must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("species %q: name must not be empty", d.ID)
	}
	for i, h := range d.Habitats {
		if h.AreaID == "" {
			return fmt.Errorf("species %q: habitat[%d] must name an area", d.ID, i)
		}
		if h.MaxLevel != 0 && h.MinLevel > h.MaxLevel {
			return fmt.Errorf("species %q: habitat[%d] min_level (%d) must be <= max_level (%d)",
				d.ID, i, h.MinLevel, h.MaxLevel)
		}
	}
	return nil
}

// Registry holds all known species keyed by ID.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds def, overwriting any existing entry with the same ID.
//
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *Definition) {
	r.defs[def.ID] = def
}

// Get returns the Definition for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
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

// Count returns the number of registered species.
func (r *Registry) Count() int { return len(r.defs) }

// InArea returns the species whose habitats include the area at the given
// level, sorted by id.
func (r *Registry) InArea(areaID string, level int) []*Definition {
	var out []*Definition
	for _, d := range r.defs {
		for _, h := range d.Habitats {
			if h.AreaID == areaID && h.Contains(level) {
				out = append(out, d)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ValidateAbilityRefs checks that every ability a species references is
// known to the supplied lookup.
func (r *Registry) ValidateAbilityRefs(known func(id string) bool) error {
	for _, d := range r.All() {
		for _, ab := range d.Abilities {
			if !known(ab) {
				return fmt.Errorf("species %q references unknown ability %q", d.ID, ab)
			}
		}
	}
	return nil
}

// LoadDirectory reads every *.yaml file in dir, parses each as a species
// file, and returns a populated Registry.
//
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
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
			Species []*Definition `yaml:"species"`
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		for _, def := range file.Species {
			if err := def.Validate(); err != nil {
				return nil, fmt.Errorf("validating %q: %w", path, err)
			}
			reg.Register(def)
		}
	}
	return reg, nil
}
