package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParse_EmptyObject(t *testing.T) {
	assert.Nil(t, Parse(nil))
	assert.Nil(t, Parse(map[string]any{}))
}

func TestParse_SingleLeaf(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Condition
	}{
		{
			name: "story",
			raw:  map[string]any{"story": "tutorial_complete"},
			want: Condition{Kind: KindStory, Flag: "tutorial_complete"},
		},
		{
			name: "level",
			raw:  map[string]any{"level": 5},
			want: Condition{Kind: KindLevel, Level: 5},
		},
		{
			name: "level from float",
			raw:  map[string]any{"level": 5.0},
			want: Condition{Kind: KindLevel, Level: 5},
		},
		{
			name: "item",
			raw:  map[string]any{"item": "glow_lantern"},
			want: Condition{Kind: KindItem, Item: "glow_lantern"},
		},
		{
			name: "boss defeated",
			raw:  map[string]any{"boss_defeated": "alpha_wolf"},
			want: Condition{Kind: KindBossDefeated, Boss: "alpha_wolf"},
		},
		{
			name: "legacy defeated_boss alias",
			raw:  map[string]any{"defeated_boss": "alpha_wolf"},
			want: Condition{Kind: KindBossDefeated, Boss: "alpha_wolf"},
		},
		{
			name: "single class string",
			raw:  map[string]any{"character_class": "druid"},
			want: Condition{Kind: KindClass, Classes: []string{"druid"}},
		},
		{
			name: "class list",
			raw:  map[string]any{"character_class": []any{"druid", "shaman"}},
			want: Condition{Kind: KindClass, Classes: []string{"druid", "shaman"}},
		},
		{
			name: "any story flags",
			raw:  map[string]any{"story_flags": []any{"a", "b"}},
			want: Condition{Kind: KindAnyStory, Flags: []string{"a", "b"}},
		},
		{
			name: "all items",
			raw:  map[string]any{"items": []any{"rope", "torch"}},
			want: Condition{Kind: KindAllItems, Items: []string{"rope", "torch"}},
		},
		{
			name: "all bosses",
			raw:  map[string]any{"bosses_defeated": []any{"a", "b"}},
			want: Condition{Kind: KindAllBosses, Bosses: []string{"a", "b"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParse_LevelRangeFoldsBothBounds(t *testing.T) {
	got := Parse(map[string]any{"level_min": 5, "level_max": 10})
	require.NotNil(t, got)
	assert.Equal(t, KindLevelRange, got.Kind)
	assert.Equal(t, 5, got.MinLevel)
	assert.Equal(t, 10, got.MaxLevel)
}

func TestParse_LevelMinOnlyIsUnbounded(t *testing.T) {
	got := Parse(map[string]any{"level_min": 5})
	require.NotNil(t, got)
	assert.Equal(t, KindLevelRange, got.Kind)
	assert.Equal(t, 5, got.MinLevel)
	assert.Equal(t, 0, got.MaxLevel)
}

func TestParse_MultipleFlatKeysBecomeAnd(t *testing.T) {
	got := Parse(map[string]any{
		"story": "plains_crossed",
		"level": 5,
	})
	require.NotNil(t, got)
	require.Equal(t, KindAnd, got.Kind)
	require.Len(t, got.Children, 2)
	// Keys are iterated sorted, so level comes first.
	assert.Equal(t, KindLevel, got.Children[0].Kind)
	assert.Equal(t, KindStory, got.Children[1].Kind)
}

func TestParse_Composite(t *testing.T) {
	got := Parse(map[string]any{
		"and": []any{
			map[string]any{"level": 10},
			map[string]any{"or": []any{
				map[string]any{"character_class": "pyromancer"},
				map[string]any{"item": "flame_ward"},
			}},
		},
	})
	require.NotNil(t, got)
	require.Equal(t, KindAnd, got.Kind)
	require.Len(t, got.Children, 2)
	assert.Equal(t, KindLevel, got.Children[0].Kind)
	assert.Equal(t, KindOr, got.Children[1].Kind)
	assert.Len(t, got.Children[1].Children, 2)
}

func TestParse_UnknownKeys(t *testing.T) {
	got := Parse(map[string]any{"weather": "rain"})
	require.NotNil(t, got)
	assert.Equal(t, KindUnknown, got.Kind)
	assert.Equal(t, []string{"weather"}, got.UnknownKeys)
}

func TestParse_NonListCompositeValue(t *testing.T) {
	// A composite key holding a non-list carries no usable conditions and
	// parses to an empty (vacuously true) group.
	got := Parse(map[string]any{"and": "not a list"})
	require.NotNil(t, got)
	require.Equal(t, KindAnd, got.Kind)
	assert.Empty(t, got.Children)
}

func TestParse_NonObjectChildrenAreDropped(t *testing.T) {
	got := Parse(map[string]any{"and": []any{
		map[string]any{"level": 1},
		"stray",
		42,
	}})
	require.NotNil(t, got)
	require.Equal(t, KindAnd, got.Kind)
	require.Len(t, got.Children, 1)
	assert.Equal(t, KindLevel, got.Children[0].Kind)
}

func TestCondition_Describe(t *testing.T) {
	tests := []struct {
		name string
		cond *Condition
		want string
	}{
		{"nil", nil, "no requirement"},
		{"story", &Condition{Kind: KindStory, Flag: "x"}, `story milestone "x"`},
		{"level", &Condition{Kind: KindLevel, Level: 5}, "level 5 or higher"},
		{"item", &Condition{Kind: KindItem, Item: "rope"}, `item "rope" in inventory`},
		{
			"or group",
			&Condition{Kind: KindOr, Children: []*Condition{
				{Kind: KindLevel, Level: 3},
				{Kind: KindItem, Item: "key"},
			}},
			`level 3 or higher or item "key" in inventory`,
		},
		{"empty and", &Condition{Kind: KindAnd}, "no requirement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.Describe())
		})
	}
}

func TestPropertyParse_NeverPanicsOnArbitraryObjects(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		keys := rapid.SliceOfN(rapid.StringMatching(`[a-z_]{1,20}`), 0, 6).Draw(t, "keys")
		raw := make(map[string]any, len(keys))
		for i, k := range keys {
			switch i % 3 {
			case 0:
				raw[k] = rapid.String().Draw(t, "str")
			case 1:
				raw[k] = rapid.Int().Draw(t, "int")
			default:
				raw[k] = []any{rapid.String().Draw(t, "elem")}
			}
		}
		cond := Parse(raw)
		if len(raw) == 0 {
			assert.Nil(t, cond)
		} else {
			assert.NotNil(t, cond)
		}
	})
}
