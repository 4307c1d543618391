// Package area provides the static world map: area definitions with
// connections, spawn tables, loot tables, and unlock requirement data.
package area

import (
	"fmt"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

// Type classifies an area within the world graph.
type Type string

// All recognized area types.
const (
	TypeTown             Type = "town"
	TypeWilderness       Type = "wilderness"
	TypeDungeon          Type = "dungeon"
	TypeTemple           Type = "temple"
	TypeRivalArea        Type = "rival_area"
	TypeConvergencePoint Type = "convergence_point"
	TypeClassTrials      Type = "class_trials"
	TypeSpiritualPlane   Type = "spiritual_plane"
	TypeSpecial          Type = "special"
	TypeSecret           Type = "secret"
)

// Types lists every recognized area type.
var Types = []Type{
	TypeTown, TypeWilderness, TypeDungeon, TypeTemple, TypeRivalArea,
	TypeConvergencePoint, TypeClassTrials, TypeSpiritualPlane,
	TypeSpecial, TypeSecret,
}

// IsValid reports whether t is one of the recognized area types.
func (t Type) IsValid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// SpawnEntry pairs a creature species with its relative selection weight
// within an area's spawn table.
type SpawnEntry struct {
	Species string
	Weight  float64
}

// Boss describes a dungeon guardian encounter.
type Boss struct {
	Name    string
	Species string
	Level   int
	Reward  string
}

// LootDrop is a single entry in an area's loot table.
type LootDrop struct {
	Item   string
	Chance float64 // probability in (0, 1]
	Rarity string  // descriptive tag: common, uncommon, rare, legendary
}

// LootTable holds an area's drop entries and a recommended player level.
// The table is descriptive data resolved by the loot package.
type LootTable struct {
	RecommendedLevel int
	Drops            []LootDrop
}

// Definition is the static, authored description of one explorable area.
// Definitions are loaded once at startup and treated as read-only.
type Definition struct {
	// ID uniquely identifies this area.
	ID string
	// Type classifies the area.
	Type Type
	// Unlocked marks the area always accessible regardless of Requirements.
	Unlocked bool
	// Requirements gates access when Unlocked is false. Nil means open.
	Requirements *unlock.Condition
	// RawRequirements preserves the authored requirement object for
	// content linting. Not consulted at runtime.
	RawRequirements map[string]any
	// EncounterRate is the percent chance [0,100] per travel action that a
	// random encounter triggers.
	EncounterRate int
	// Monsters is the uniform fallback species pool.
	Monsters []string
	// SpawnTable, when present, takes priority over Monsters for weighted
	// species selection.
	SpawnTable []SpawnEntry
	// Connections lists area ids reachable directly from this area.
	// Bidirectional by convention, not enforced.
	Connections []string
	// Services lists facilities available in the area (shop, inn, temple).
	Services []string
	// StoryEvents lists narrative event ids that can fire in this area.
	StoryEvents []string
	// Boss is the guardian encounter, present only for dungeon-type areas.
	Boss *Boss
	// Loot is the area's descriptive loot table.
	Loot *LootTable
}

// Validate checks definition invariants.
//
// Postcondition: returns nil if valid, or an error describing the first violation.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("area ID must not be empty")
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("area %q: unknown type %q", d.ID, d.Type)
	}
	if d.EncounterRate < 0 || d.EncounterRate > 100 {
		return fmt.Errorf("area %q: encounter_rate must be in [0,100], got %d", d.ID, d.EncounterRate)
	}
	for i, entry := range d.SpawnTable {
		if entry.Species == "" {
			return fmt.Errorf("area %q: spawn_table[%d] must name a species", d.ID, i)
		}
		if entry.Weight < 0 {
			return fmt.Errorf("area %q: spawn_table[%d] weight must be >= 0, got %v", d.ID, i, entry.Weight)
		}
	}
	for _, conn := range d.Connections {
		if conn == "" {
			return fmt.Errorf("area %q: connection ids must not be empty", d.ID)
		}
	}
	if d.Boss != nil {
		if d.Boss.Species == "" {
			return fmt.Errorf("area %q: boss must name a species", d.ID)
		}
		if d.Boss.Level < 1 {
			return fmt.Errorf("area %q: boss level must be >= 1, got %d", d.ID, d.Boss.Level)
		}
	}
	if d.Loot != nil {
		for i, drop := range d.Loot.Drops {
			if drop.Item == "" {
				return fmt.Errorf("area %q: loot drop[%d] must name an item", d.ID, i)
			}
			if drop.Chance <= 0 || drop.Chance > 1.0 {
				return fmt.Errorf("area %q: loot drop[%d] chance must be in (0, 1.0], got %f", d.ID, i, drop.Chance)
			}
		}
	}
	return nil
}
