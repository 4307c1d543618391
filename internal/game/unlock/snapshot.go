package unlock

import "sort"

// Snapshot is a normalized, read-only view of a player's progression state.
// Build one with NewSnapshot so the evaluator can assume well-formed input.
type Snapshot struct {
	StoryFlags     map[string]bool
	Level          int
	Inventory      map[string]bool
	Class          string
	DefeatedBosses map[string]bool
}

// NewSnapshot normalizes raw progression inputs into a Snapshot.
// Nil slices become empty sets and a non-positive level becomes 1, matching
// the permissive defaults expected from optional or uninitialized call sites.
//
// Postcondition: all set fields are non-nil and Level >= 1.
func NewSnapshot(storyFlags []string, level int, inventory []string, class string, defeatedBosses []string) Snapshot {
	if level < 1 {
		level = 1
	}
	return Snapshot{
		StoryFlags:     toSet(storyFlags),
		Level:          level,
		Inventory:      toSet(inventory),
		Class:          class,
		DefeatedBosses: toSet(defeatedBosses),
	}
}

// HasFlag reports whether the story milestone is reached.
func (s Snapshot) HasFlag(flag string) bool { return s.StoryFlags[flag] }

// HasItem reports whether the item is in inventory.
func (s Snapshot) HasItem(item string) bool { return s.Inventory[item] }

// HasDefeated reports whether the boss has been defeated.
func (s Snapshot) HasDefeated(boss string) bool { return s.DefeatedBosses[boss] }

// sortedFlags, sortedInventory, and sortedBosses return deterministic
// orderings used to build cache keys.
func (s Snapshot) sortedFlags() []string     { return sortedSet(s.StoryFlags) }
func (s Snapshot) sortedInventory() []string { return sortedSet(s.Inventory) }
func (s Snapshot) sortedBosses() []string    { return sortedSet(s.DefeatedBosses) }

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
