// Package unlock implements the area access requirement language: a small
// predicate tree over player progression (story milestones, level, inventory,
// class, defeated bosses) composed with and/or nodes, plus the evaluator,
// diagnostics, and content-lint helpers built on top of it.
package unlock

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies which predicate a Condition node carries.
type Kind string

// The closed set of condition kinds. Anything else authored in content
// parses to KindUnknown and fails closed at evaluation time.
const (
	KindStory        Kind = "story"
	KindLevel        Kind = "level"
	KindItem         Kind = "item"
	KindClass        Kind = "character_class"
	KindBossDefeated Kind = "boss_defeated"
	KindAnyStory     Kind = "story_flags"
	KindAllItems     Kind = "items"
	KindAllBosses    Kind = "bosses_defeated"
	KindLevelRange   Kind = "level_range"
	KindAnd          Kind = "and"
	KindOr           Kind = "or"
	KindUnknown      Kind = "unknown"
)

// Condition is one node of a requirement tree. Exactly the fields relevant
// to Kind are populated; composite kinds (and/or) hold Children.
//
// Invariant: Condition values are built by Parse and treated as immutable.
type Condition struct {
	Kind Kind

	Flag    string   // KindStory
	Level   int      // KindLevel
	Item    string   // KindItem
	Classes []string // KindClass: allowed class set
	Boss    string   // KindBossDefeated
	Flags   []string // KindAnyStory: any one satisfies
	Items   []string // KindAllItems: all required
	Bosses  []string // KindAllBosses: all required

	// KindLevelRange bounds, inclusive. MaxLevel == 0 means unbounded.
	MinLevel int
	MaxLevel int

	Children []*Condition // KindAnd / KindOr

	// UnknownKeys records the unrecognized keys of a KindUnknown node
	// so warnings and lint reports can name them.
	UnknownKeys []string
}

// flatKeys are the predicate keys recognized on a single condition object.
// "defeated_boss" is a legacy alias for "boss_defeated".
var flatKeys = map[string]bool{
	"story":           true,
	"level":           true,
	"item":            true,
	"character_class": true,
	"boss_defeated":   true,
	"defeated_boss":   true,
	"story_flags":     true,
	"items":           true,
	"bosses_defeated": true,
	"level_min":       true,
	"level_max":       true,
}

// Parse converts a raw requirement object (as decoded from YAML or JSON)
// into a Condition tree. It never fails: a nil or empty object yields nil
// (no requirement), and objects carrying only unrecognized keys yield a
// KindUnknown node, which the evaluator rejects with a warning.
//
// Postcondition: returns nil iff raw contains no keys.
func Parse(raw map[string]any) *Condition {
	if len(raw) == 0 {
		return nil
	}

	if children, ok := raw["and"]; ok {
		return &Condition{Kind: KindAnd, Children: parseChildren(children)}
	}
	if children, ok := raw["or"]; ok {
		return &Condition{Kind: KindOr, Children: parseChildren(children)}
	}

	var nodes []*Condition
	var unknown []string
	for _, key := range sortedKeys(raw) {
		switch key {
		case "story":
			nodes = append(nodes, &Condition{Kind: KindStory, Flag: asString(raw[key])})
		case "level":
			nodes = append(nodes, &Condition{Kind: KindLevel, Level: asInt(raw[key])})
		case "item":
			nodes = append(nodes, &Condition{Kind: KindItem, Item: asString(raw[key])})
		case "character_class":
			nodes = append(nodes, &Condition{Kind: KindClass, Classes: asStringSlice(raw[key])})
		case "boss_defeated", "defeated_boss":
			nodes = append(nodes, &Condition{Kind: KindBossDefeated, Boss: asString(raw[key])})
		case "story_flags":
			nodes = append(nodes, &Condition{Kind: KindAnyStory, Flags: asStringSlice(raw[key])})
		case "items":
			nodes = append(nodes, &Condition{Kind: KindAllItems, Items: asStringSlice(raw[key])})
		case "bosses_defeated":
			nodes = append(nodes, &Condition{Kind: KindAllBosses, Bosses: asStringSlice(raw[key])})
		case "level_min", "level_max":
			// Both bounds fold into a single range node; skip the second key.
			if hasRangeNode(nodes) {
				continue
			}
			nodes = append(nodes, &Condition{
				Kind:     KindLevelRange,
				MinLevel: asInt(raw["level_min"]),
				MaxLevel: asInt(raw["level_max"]),
			})
		default:
			unknown = append(unknown, key)
		}
	}

	if len(nodes) == 0 {
		return &Condition{Kind: KindUnknown, UnknownKeys: unknown}
	}
	if len(nodes) == 1 {
		return nodes[0]
	}
	// Legacy flat objects carry several predicate fields that are ANDed
	// together.
	return &Condition{Kind: KindAnd, Children: nodes}
}

// parseChildren parses the value of an and/or key into child conditions.
// Malformed entries (non-objects, or a non-list composite value) are dropped
// rather than failed: they evaluate as a vacuous pass, mirroring the
// permissiveness of the original data format. ValidateRequirements still
// reports them so authors see the mistake.
func parseChildren(v any) []*Condition {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*Condition, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if c := Parse(m); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Describe returns a short human-readable description of the condition,
// used by the unlock status report and progression-hint surfaces.
func (c *Condition) Describe() string {
	if c == nil {
		return "no requirement"
	}
	switch c.Kind {
	case KindStory:
		return fmt.Sprintf("story milestone %q", c.Flag)
	case KindLevel:
		return fmt.Sprintf("level %d or higher", c.Level)
	case KindItem:
		return fmt.Sprintf("item %q in inventory", c.Item)
	case KindClass:
		return fmt.Sprintf("class one of [%s]", strings.Join(c.Classes, ", "))
	case KindBossDefeated:
		return fmt.Sprintf("boss %q defeated", c.Boss)
	case KindAnyStory:
		return fmt.Sprintf("any story milestone of [%s]", strings.Join(c.Flags, ", "))
	case KindAllItems:
		return fmt.Sprintf("all items [%s] in inventory", strings.Join(c.Items, ", "))
	case KindAllBosses:
		return fmt.Sprintf("all bosses [%s] defeated", strings.Join(c.Bosses, ", "))
	case KindLevelRange:
		if c.MaxLevel == 0 {
			return fmt.Sprintf("level %d or higher", c.MinLevel)
		}
		return fmt.Sprintf("level between %d and %d", c.MinLevel, c.MaxLevel)
	case KindAnd:
		return describeGroup(c.Children, " and ")
	case KindOr:
		return describeGroup(c.Children, " or ")
	default:
		return fmt.Sprintf("unrecognized condition (keys: %s)", strings.Join(c.UnknownKeys, ", "))
	}
}

func describeGroup(children []*Condition, sep string) string {
	if len(children) == 0 {
		return "no requirement"
	}
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = child.Describe()
	}
	return strings.Join(parts, sep)
}

func hasRangeNode(nodes []*Condition) bool {
	for _, n := range nodes {
		if n.Kind == KindLevelRange {
			return true
		}
	}
	return false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asString tolerates mistyped content: anything that is not a string
// becomes the empty string, which no progression snapshot contains.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt accepts the numeric types YAML and JSON decoders produce.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// asStringSlice accepts either a single string or a list of strings.
func asStringSlice(v any) []string {
	switch val := v.(type) {
	case string:
		return []string{val}
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	default:
		return nil
	}
}
