package unlock

import "fmt"

// ValidationReport is the outcome of linting a raw requirement object.
type ValidationReport struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// ValidateRequirements lints a raw requirement object without evaluating it.
// It accumulates human-readable issues for unknown keys and mistyped values
// and never fails; use it from content tooling before shipping area data.
//
// Postcondition: Valid == (len(Issues) == 0).
func ValidateRequirements(areaID string, raw map[string]any) ValidationReport {
	issues := lintObject(areaID, raw)
	return ValidationReport{Valid: len(issues) == 0, Issues: issues}
}

func lintObject(areaID string, raw map[string]any) []string {
	var issues []string
	for _, key := range sortedKeys(raw) {
		value := raw[key]
		switch key {
		case "and", "or":
			list, ok := value.([]any)
			if !ok {
				issues = append(issues, fmt.Sprintf("%s: %q must hold a list of conditions, got %T", areaID, key, value))
				continue
			}
			for i, item := range list {
				child, ok := item.(map[string]any)
				if !ok {
					issues = append(issues, fmt.Sprintf("%s: %s[%d] must be a condition object, got %T", areaID, key, i, item))
					continue
				}
				issues = append(issues, lintObject(areaID, child)...)
			}
		case "story", "item", "boss_defeated", "defeated_boss":
			if _, ok := value.(string); !ok {
				issues = append(issues, fmt.Sprintf("%s: %q must be a string, got %T", areaID, key, value))
			}
		case "level", "level_min", "level_max":
			if !isNumeric(value) {
				issues = append(issues, fmt.Sprintf("%s: %q must be numeric, got %T", areaID, key, value))
			}
		case "character_class":
			if !isStringOrStringList(value) {
				issues = append(issues, fmt.Sprintf("%s: %q must be a string or list of strings, got %T", areaID, key, value))
			}
		case "story_flags", "items", "bosses_defeated":
			if !isStringList(value) {
				issues = append(issues, fmt.Sprintf("%s: %q must be a list of strings, got %T", areaID, key, value))
			}
		default:
			issues = append(issues, fmt.Sprintf("%s: unknown condition key %q", areaID, key))
		}
	}
	return issues
}

// ComplexityReport summarizes a requirement tree for authoring diagnostics:
// maximum nesting depth, leaf condition count, and their product.
type ComplexityReport struct {
	Depth      int `json:"depth"`
	Conditions int `json:"conditions"`
	Complexity int `json:"complexity"`
}

// Complexity computes the ComplexityReport for a parsed requirement tree.
// A nil tree reports all zeros. Not used for runtime gating.
func Complexity(c *Condition) ComplexityReport {
	depth, leaves := measure(c)
	return ComplexityReport{Depth: depth, Conditions: leaves, Complexity: depth * leaves}
}

func measure(c *Condition) (depth, leaves int) {
	if c == nil {
		return 0, 0
	}
	if c.Kind != KindAnd && c.Kind != KindOr {
		return 1, 1
	}
	maxChild := 0
	for _, child := range c.Children {
		d, l := measure(child)
		if d > maxChild {
			maxChild = d
		}
		leaves += l
	}
	return maxChild + 1, leaves
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int64, float64:
		return true
	}
	return false
}

func isStringList(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func isStringOrStringList(v any) bool {
	if _, ok := v.(string); ok {
		return true
	}
	return isStringList(v)
}
