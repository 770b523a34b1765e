package endf

import "fmt"

// Snapshot extracts the structure that gets recorded on the chain: the
// material identifier and, when present, the MF3/MT1 total cross section.
// Tapes are assumed to carry one material; revision tracking of a
// multi-material tape isn't meaningful without choosing which material the
// chain follows.
func (t *Tape) Snapshot() (map[string]interface{}, error) {
	if len(t.Materials) != 1 {
		return nil, fmt.Errorf("tape has %d materials, want 1: %w", len(t.Materials), ErrBadTape)
	}
	m := &t.Materials[0]
	zai, err := m.ZAI()
	if err != nil {
		return nil, err
	}
	energies := []float64{}
	xs := []float64{}
	if m.HasSection(3, 1) {
		cs, err := m.CrossSection(1)
		if err != nil {
			return nil, err
		}
		energies = cs.Energies
		xs = cs.Values
	}
	return map[string]interface{}{
		"zai": zai,
		"mf3": map[string]interface{}{
			"mt1": map[string]interface{}{
				"energies": energies,
				"xs":       xs,
			},
		},
	}, nil
}
