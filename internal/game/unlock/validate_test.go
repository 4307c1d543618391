package unlock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequirements_CleanObject(t *testing.T) {
	report := ValidateRequirements("fire_temple", map[string]any{
		"and": []any{
			map[string]any{"story": "ember_sigil_found"},
			map[string]any{"level": 10},
			map[string]any{"or": []any{
				map[string]any{"character_class": "pyromancer"},
				map[string]any{"item": "flame_ward"},
			}},
		},
	})
	assert.True(t, report.Valid)
	assert.Empty(t, report.Issues)
}

func TestValidateRequirements_Issues(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{
			name: "unknown key",
			raw:  map[string]any{"weather": "rain"},
			want: `a: unknown condition key "weather"`,
		},
		{
			name: "mistyped story",
			raw:  map[string]any{"story": 5},
			want: `a: "story" must be a string, got int`,
		},
		{
			name: "mistyped level",
			raw:  map[string]any{"level": "five"},
			want: `a: "level" must be numeric, got string`,
		},
		{
			name: "composite holding non-list",
			raw:  map[string]any{"and": "oops"},
			want: `a: "and" must hold a list of conditions, got string`,
		},
		{
			name: "composite holding non-object child",
			raw:  map[string]any{"or": []any{"oops"}},
			want: `a: or[0] must be a condition object, got string`,
		},
		{
			name: "mistyped string list",
			raw:  map[string]any{"items": []any{"rope", 3}},
			want: `a: "items" must be a list of strings, got []interface {}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ValidateRequirements("a", tt.raw)
			assert.False(t, report.Valid)
			require.NotEmpty(t, report.Issues)
			assert.Contains(t, report.Issues, tt.want)
		})
	}
}

func TestValidateRequirements_RecursesIntoComposites(t *testing.T) {
	report := ValidateRequirements("a", map[string]any{
		"and": []any{
			map[string]any{"level": 5},
			map[string]any{"weather": "rain"},
		},
	})
	assert.False(t, report.Valid)
	assert.Contains(t, report.Issues, `a: unknown condition key "weather"`)
}

func TestComplexity(t *testing.T) {
	tests := []struct {
		name string
		cond *Condition
		want ComplexityReport
	}{
		{"nil", nil, ComplexityReport{}},
		{"leaf", &Condition{Kind: KindLevel, Level: 5}, ComplexityReport{Depth: 1, Conditions: 1, Complexity: 1}},
		{
			"nested",
			&Condition{Kind: KindAnd, Children: []*Condition{
				{Kind: KindLevel, Level: 10},
				{Kind: KindOr, Children: []*Condition{
					{Kind: KindClass, Classes: []string{"pyromancer"}},
					{Kind: KindItem, Item: "flame_ward"},
				}},
			}},
			ComplexityReport{Depth: 3, Conditions: 3, Complexity: 9},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Complexity(tt.cond))
		})
	}
}
