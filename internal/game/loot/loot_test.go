package loot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/menagerie/internal/game/area"
	"github.com/cory-johannsen/menagerie/internal/rng"
)

// fixedSource always rolls the same float.
type fixedSource struct{ f float64 }

func (s fixedSource) Intn(n int) int   { return 0 }
func (s fixedSource) Float64() float64 { return s.f }

func testTable() *area.LootTable {
	return &area.LootTable{
		RecommendedLevel: 6,
		Drops: []area.LootDrop{
			{Item: "iron_shard", Chance: 0.5, Rarity: "common"},
			{Item: "glimmer_stone", Chance: 0.15, Rarity: "rare"},
		},
	}
}

func TestResolve_NilTable(t *testing.T) {
	assert.Nil(t, Resolve(nil, fixedSource{f: 0}))
}

func TestResolve_AllDropsPass(t *testing.T) {
	drops := Resolve(testTable(), fixedSource{f: 0.0})
	require.Len(t, drops, 2)
	assert.Equal(t, "iron_shard", drops[0].Item)
	assert.Equal(t, "common", drops[0].Rarity)
	assert.NotEmpty(t, drops[0].InstanceID)
	assert.NotEqual(t, drops[0].InstanceID, drops[1].InstanceID)
}

func TestResolve_HighRollMissesEverything(t *testing.T) {
	assert.Empty(t, Resolve(testTable(), fixedSource{f: 0.99}))
}

func TestResolve_PartialPass(t *testing.T) {
	// 0.3 passes the 0.5 entry, misses the 0.15 entry.
	drops := Resolve(testTable(), fixedSource{f: 0.3})
	require.Len(t, drops, 1)
	assert.Equal(t, "iron_shard", drops[0].Item)
}

func TestPropertyResolve_DropsAlwaysComeFromTable(t *testing.T) {
	table := testTable()
	valid := map[string]bool{}
	for _, d := range table.Drops {
		valid[d.Item] = true
	}
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.Int64().Draw(t, "seed")
		drops := Resolve(table, rng.NewPseudo(seed))
		assert.LessOrEqual(t, len(drops), len(table.Drops))
		for _, d := range drops {
			assert.True(t, valid[d.Item])
		}
	})
}
