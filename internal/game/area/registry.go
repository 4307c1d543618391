package area

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

// Registry provides read-only access to the loaded area map.
// Lookups never error: a missing area degrades to a nil or empty value,
// so callers must not assume area existence.
type Registry struct {
	mu    sync.RWMutex
	areas map[string]*Definition
}

// NewRegistry creates a Registry from the given definitions.
//
// Postcondition: returns a Registry with all areas indexed by ID, or an
// error on duplicate area IDs.
func NewRegistry(defs []*Definition) (*Registry, error) {
	r := &Registry{areas: make(map[string]*Definition, len(defs))}
	for _, def := range defs {
		if _, exists := r.areas[def.ID]; exists {
			return nil, fmt.Errorf("duplicate area ID: %q", def.ID)
		}
		r.areas[def.ID] = def
	}
	return r, nil
}

// ValidateConnections checks that every connection resolves to a known
// area. Call after NewRegistry to catch dangling references.
func (r *Registry) ValidateConnections() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.areas {
		for _, conn := range def.Connections {
			if _, ok := r.areas[conn]; !ok {
				return fmt.Errorf("area %q: connection targets unknown area %q", def.ID, conn)
			}
		}
	}
	return nil
}

// Get returns the area definition with the given ID.
//
// Postcondition: returns (def, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(id string) (*Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	return def, ok
}

// ConnectedAreas returns the ids reachable directly from the area,
// or an empty slice when the area is missing.
func (r *Registry) ConnectedAreas(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return nil
	}
	return def.Connections
}

// Services returns the area's service tags, or nil when missing.
func (r *Registry) Services(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return nil
	}
	return def.Services
}

// Monsters returns the area's fallback species pool, or nil when missing.
func (r *Registry) Monsters(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return nil
	}
	return def.Monsters
}

// Boss returns the area's guardian encounter, or nil when absent.
func (r *Registry) Boss(id string) *Boss {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return nil
	}
	return def.Boss
}

// StoryEvents returns the area's story event ids, or nil when missing.
func (r *Registry) StoryEvents(id string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return nil
	}
	return def.StoryEvents
}

// AreasByType returns the sorted ids of all areas whose type matches t.
func (r *Registry) AreasByType(t Type) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, def := range r.areas {
		if def.Type == t {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// All returns all loaded definitions sorted by id.
//
// Postcondition: returns a non-nil slice; may be empty.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.areas))
	for _, def := range r.areas {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Count returns the number of loaded areas.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.areas)
}

// UnlockInfo satisfies unlock.Source.
func (r *Registry) UnlockInfo(id string) (always bool, req *unlock.Condition, found bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.areas[id]
	if !ok {
		return false, nil, false
	}
	return def.Unlocked, def.Requirements, true
}
