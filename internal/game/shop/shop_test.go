package shop

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

func testShop() *Definition {
	return &Definition{
		ID:     "village_general",
		Name:   "Village General Store",
		AreaID: "starting_village",
		Stock: []Stock{
			{Item: "potion", Price: 20},
			{Item: "glow_lantern", Price: 120, RequiresFlag: "plains_crossed"},
		},
	}
}

func TestDefinition_Validate(t *testing.T) {
	assert.NoError(t, testShop().Validate())

	noID := testShop()
	noID.ID = ""
	assert.ErrorContains(t, noID.Validate(), "shop ID must not be empty")

	noArea := testShop()
	noArea.AreaID = ""
	assert.ErrorContains(t, noArea.Validate(), "area must not be empty")

	badPrice := testShop()
	badPrice.Stock[0].Price = -1
	assert.ErrorContains(t, badPrice.Validate(), "price must be >= 0")
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testShop()))
	assert.ErrorContains(t, reg.Register(testShop()), `duplicate shop ID: "village_general"`)
}

func TestRegistry_ByArea(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testShop()))

	assert.Len(t, reg.ByArea("starting_village"), 1)
	assert.Empty(t, reg.ByArea("nowhere"))
}

func TestRegistry_Catalog_FiltersGatedStock(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(testShop()))

	// No flags: only ungated stock shows.
	catalog := reg.Catalog("starting_village", unlock.NewSnapshot(nil, 1, nil, "", nil))
	require.Len(t, catalog, 1)
	assert.Equal(t, "potion", catalog[0].Item)

	// With the flag the lantern appears.
	catalog = reg.Catalog("starting_village",
		unlock.NewSnapshot([]string{"plains_crossed"}, 1, nil, "", nil))
	require.Len(t, catalog, 2)
	assert.Equal(t, "glow_lantern", catalog[1].Item)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `
shops:
  - id: village_general
    name: Village General Store
    area: starting_village
    stock:
      - item: potion
        price: 20
      - item: glow_lantern
        price: 120
        requires_flag: plains_crossed
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shops.yaml"), []byte(content), 0o644))

	reg, err := LoadDirectory(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Count())

	def, ok := reg.Get("village_general")
	require.True(t, ok)
	assert.Len(t, def.Stock, 2)
	assert.Equal(t, "plains_crossed", def.Stock[1].RequiresFlag)
}
