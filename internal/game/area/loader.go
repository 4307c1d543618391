package area

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/menagerie/internal/game/unlock"
)

// yamlAreaFile is the top-level YAML structure for area files. A file may
// define one or several areas.
type yamlAreaFile struct {
	Areas []yamlArea `yaml:"areas"`
}

// yamlArea is the YAML representation of an area definition.
// UnlockRequirements is deliberately free-form: it carries the authored
// requirement object, parsed by the unlock package.
type yamlArea struct {
	ID                 string           `yaml:"id"`
	Type               string           `yaml:"type"`
	Unlocked           bool             `yaml:"unlocked"`
	UnlockRequirements map[string]any   `yaml:"unlock_requirements"`
	EncounterRate      int              `yaml:"encounter_rate"`
	Monsters           []string         `yaml:"monsters"`
	SpawnTable         []yamlSpawnEntry `yaml:"spawn_table"`
	Connections        []string         `yaml:"connections"`
	Services           []string         `yaml:"services"`
	StoryEvents        []string         `yaml:"story_events"`
	Boss               *yamlBoss        `yaml:"boss"`
	Loot               *yamlLootTable   `yaml:"loot"`
}

type yamlSpawnEntry struct {
	Species string  `yaml:"species"`
	Weight  float64 `yaml:"weight"`
}

type yamlBoss struct {
	Name    string `yaml:"name"`
	Species string `yaml:"species"`
	Level   int    `yaml:"level"`
	Reward  string `yaml:"reward"`
}

type yamlLootTable struct {
	RecommendedLevel int            `yaml:"recommended_level"`
	Drops            []yamlLootDrop `yaml:"drops"`
}

type yamlLootDrop struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	Rarity string  `yaml:"rarity"`
}

// LoadFromFile reads and validates a single area YAML file.
//
// Postcondition: returns the validated definitions or a non-nil error.
func LoadFromFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading area file %s: %w", path, err)
	}
	defs, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return defs, nil
}

// LoadFromBytes parses and validates area definitions from YAML bytes.
func LoadFromBytes(data []byte) ([]*Definition, error) {
	var file yamlAreaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing area YAML: %w", err)
	}

	defs := make([]*Definition, 0, len(file.Areas))
	for _, ya := range file.Areas {
		def := convertYAMLArea(ya)
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating area: %w", err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadDirectory loads all YAML files in dir as area definitions.
//
// Postcondition: returns all validated definitions or the first error.
func LoadDirectory(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading area directory %s: %w", dir, err)
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		fileDefs, err := LoadFromFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, fileDefs...)
	}

	if len(defs) == 0 {
		return nil, fmt.Errorf("no area files found in %s", dir)
	}
	return defs, nil
}

// convertYAMLArea converts the parsed YAML structure into the domain type.
// Requirement objects are parsed leniently here; strict linting is the
// job of unlock.ValidateRequirements in content tooling.
func convertYAMLArea(ya yamlArea) *Definition {
	def := &Definition{
		ID:              ya.ID,
		Type:            Type(ya.Type),
		Unlocked:        ya.Unlocked,
		Requirements:    unlock.Parse(normalizeRaw(ya.UnlockRequirements)),
		RawRequirements: normalizeRaw(ya.UnlockRequirements),
		EncounterRate:   ya.EncounterRate,
		Monsters:        ya.Monsters,
		Connections:     ya.Connections,
		Services:        ya.Services,
		StoryEvents:     ya.StoryEvents,
	}
	for _, entry := range ya.SpawnTable {
		def.SpawnTable = append(def.SpawnTable, SpawnEntry{
			Species: entry.Species,
			Weight:  entry.Weight,
		})
	}
	if ya.Boss != nil {
		def.Boss = &Boss{
			Name:    ya.Boss.Name,
			Species: ya.Boss.Species,
			Level:   ya.Boss.Level,
			Reward:  ya.Boss.Reward,
		}
	}
	if ya.Loot != nil {
		lt := &LootTable{RecommendedLevel: ya.Loot.RecommendedLevel}
		for _, drop := range ya.Loot.Drops {
			lt.Drops = append(lt.Drops, LootDrop{
				Item:   drop.Item,
				Chance: drop.Chance,
				Rarity: drop.Rarity,
			})
		}
		def.Loot = lt
	}
	return def
}

// normalizeRaw converts the yaml decoder's nested map[any]any values into
// map[string]any trees so the unlock package sees one canonical shape.
func normalizeRaw(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return normalizeRaw(val)
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[fmt.Sprintf("%v", k)] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}
