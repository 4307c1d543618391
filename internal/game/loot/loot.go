// Package loot resolves area loot tables into concrete drops.
package loot

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/rng"
)

// Drop is a single item instance produced by resolving a loot table.
type Drop struct {
	Item       string `json:"item"`
	InstanceID string `json:"instance_id"`
	Rarity     string `json:"rarity"`
}

// Resolve rolls every entry of the area's loot table once and returns the
// drops that pass their chance roll, each with a fresh instance id.
//
// Precondition: lt must have passed area.Definition.Validate().
// Postcondition: every returned drop's Item appears in lt.Drops.
func Resolve(lt *area.LootTable, src rng.Source) []Drop {
	if lt == nil {
		return nil
	}
	var out []Drop
	for _, entry := range lt.Drops {
		if src.Float64() < entry.Chance {
			out = append(out, Drop{
				Item:       entry.Item,
				InstanceID: uuid.New().String(),
				Rarity:     entry.Rarity,
			})
		}
	}
	return out
}
