package unlock

import "fmt"

// RequirementStatus is one entry of the diagnostic unlock report: a single
// requirement, its human-readable description, and whether it is met.
type RequirementStatus struct {
	Type        Kind   `json:"type"`
	Description string `json:"description"`
	Met         bool   `json:"met"`
}

// Status is the progression-hint view of an area's unlock state.
type Status struct {
	Unlocked     bool                `json:"unlocked"`
	Requirements []RequirementStatus `json:"requirements"`
	Missing      []string            `json:"missing"`
}

// Status walks the area's requirement tree and reports per-condition
// satisfaction alongside the overall unlock decision. An or group counts
// as one requirement; it lands in Missing only when none of its branches
// hold, described as the disjunction of the branch descriptions.
func (e *Evaluator) Status(areaID string, snap Snapshot) Status {
	always, req, found := e.src.UnlockInfo(areaID)
	if !found {
		return Status{
			Unlocked: false,
			Missing:  []string{fmt.Sprintf("unknown area %q", areaID)},
		}
	}
	if always || req == nil {
		return Status{Unlocked: true}
	}

	st := Status{Unlocked: e.IsUnlocked(areaID, snap)}
	for _, node := range topLevel(req) {
		met := e.eval(areaID, node, snap)
		st.Requirements = append(st.Requirements, RequirementStatus{
			Type:        node.Kind,
			Description: node.Describe(),
			Met:         met,
		})
		if !met {
			st.Missing = append(st.Missing, node.Describe())
		}
	}
	return st
}

// topLevel flattens nested and groups so each reported requirement is
// either a leaf or an or group.
func topLevel(c *Condition) []*Condition {
	if c.Kind != KindAnd {
		return []*Condition{c}
	}
	var out []*Condition
	for _, child := range c.Children {
		out = append(out, topLevel(child)...)
	}
	return out
}
