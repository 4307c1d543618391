package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry([]*Definition{
		{
			ID: "starting_village", Type: TypeTown, Unlocked: true,
			Connections: []string{"forest_path"},
			Services:    []string{"shop"},
			StoryEvents: []string{"tutorial_intro"},
		},
		{
			ID: "forest_path", Type: TypeWilderness, EncounterRate: 30,
			Monsters:     []string{"sprig_rat"},
			Connections:  []string{"starting_village", "deep_forest"},
			Requirements: nil,
		},
		{
			ID: "deep_forest", Type: TypeWilderness, EncounterRate: 45,
			Connections:  []string{"forest_path"},
			Requirements: &unlock.Condition{Kind: unlock.KindStory, Flag: "tutorial_complete"},
			Boss:         &Boss{Name: "Alpha Wolf", Species: "den_wolf", Level: 6},
		},
	})
	require.NoError(t, err)
	return reg
}

func TestNewRegistry_DuplicateID(t *testing.T) {
	_, err := NewRegistry([]*Definition{
		{ID: "a", Type: TypeTown},
		{ID: "a", Type: TypeTown},
	})
	assert.ErrorContains(t, err, `duplicate area ID: "a"`)
}

func TestRegistry_ValidateConnections(t *testing.T) {
	reg := testRegistry(t)
	assert.NoError(t, reg.ValidateConnections())

	broken, err := NewRegistry([]*Definition{
		{ID: "a", Type: TypeTown, Connections: []string{"nowhere"}},
	})
	require.NoError(t, err)
	assert.ErrorContains(t, broken.ValidateConnections(), `unknown area "nowhere"`)
}

func TestRegistry_Get(t *testing.T) {
	reg := testRegistry(t)

	def, ok := reg.Get("forest_path")
	require.True(t, ok)
	assert.Equal(t, "forest_path", def.ID)

	def, ok = reg.Get("nowhere")
	assert.False(t, ok)
	assert.Nil(t, def)
}

func TestRegistry_MissingAreaDegradesToEmpty(t *testing.T) {
	reg := testRegistry(t)
	assert.Nil(t, reg.ConnectedAreas("nowhere"))
	assert.Nil(t, reg.Services("nowhere"))
	assert.Nil(t, reg.Monsters("nowhere"))
	assert.Nil(t, reg.Boss("nowhere"))
	assert.Nil(t, reg.StoryEvents("nowhere"))
}

func TestRegistry_Accessors(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, []string{"starting_village", "deep_forest"}, reg.ConnectedAreas("forest_path"))
	assert.Equal(t, []string{"shop"}, reg.Services("starting_village"))
	assert.Equal(t, []string{"sprig_rat"}, reg.Monsters("forest_path"))
	require.NotNil(t, reg.Boss("deep_forest"))
	assert.Equal(t, "Alpha Wolf", reg.Boss("deep_forest").Name)
	assert.Equal(t, 3, reg.Count())
}

func TestRegistry_AreasByType(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, []string{"deep_forest", "forest_path"}, reg.AreasByType(TypeWilderness))
	assert.Empty(t, reg.AreasByType(TypeDungeon))
}

func TestRegistry_All_SortedByID(t *testing.T) {
	reg := testRegistry(t)
	defs := reg.All()
	require.Len(t, defs, 3)
	assert.Equal(t, "deep_forest", defs[0].ID)
	assert.Equal(t, "forest_path", defs[1].ID)
	assert.Equal(t, "starting_village", defs[2].ID)
}

func TestRegistry_UnlockInfo(t *testing.T) {
	reg := testRegistry(t)

	always, req, found := reg.UnlockInfo("starting_village")
	assert.True(t, found)
	assert.True(t, always)
	assert.Nil(t, req)

	always, req, found = reg.UnlockInfo("deep_forest")
	assert.True(t, found)
	assert.False(t, always)
	require.NotNil(t, req)
	assert.Equal(t, unlock.KindStory, req.Kind)

	_, _, found = reg.UnlockInfo("nowhere")
	assert.False(t, found)
}
