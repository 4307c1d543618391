package species

import "github.com/cory-johannsen/menagerie/internal/rng"

// Picker selects species for encounters from the catalog by habitat.
// It satisfies the encounter generator's SpeciesSource interface.
type Picker struct {
	reg *Registry
	src rng.Source
}

// NewPicker creates a Picker over the registry.
//
// Precondition: reg and src must be non-nil.
func NewPicker(reg *Registry, src rng.Source) *Picker {
	return &Picker{reg: reg, src: src}
}

// GenerateEncounter picks uniformly among species whose habitats include
// the area at the given level.
//
// Postcondition: returns ("", false) when no species lives there.
func (p *Picker) GenerateEncounter(areaID string, level int) (string, bool) {
	candidates := p.reg.InArea(areaID, level)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[p.src.Intn(len(candidates))].ID, true
}
