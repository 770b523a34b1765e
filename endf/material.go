package endf

import "fmt"

// Header holds the MF1/MT451 fields evalchain identifies materials by.
type Header struct {
	ZA   float64 // 1000*Z + A
	AWR  float64 // mass relative to the neutron
	LISO int     // isomeric state number
}

// Header parses the first two MF1/MT451 records.
func (m *Material) Header() (Header, error) {
	recs, ok := m.sections[sectionID{1, 451}]
	if !ok || len(recs) < 2 {
		return Header{}, fmt.Errorf("MAT %d: missing MF1/MT451 header: %w", m.MAT, ErrBadTape)
	}
	var h Header
	var err error
	if h.ZA, err = parseField(recs[0].fields[0]); err != nil {
		return Header{}, fmt.Errorf("MAT %d line %d: ZA: %v: %w", m.MAT, recs[0].line, err, ErrBadTape)
	}
	if h.AWR, err = parseField(recs[0].fields[1]); err != nil {
		return Header{}, fmt.Errorf("MAT %d line %d: AWR: %v: %w", m.MAT, recs[0].line, err, ErrBadTape)
	}
	liso, err := parseField(recs[1].fields[3])
	if err != nil {
		return Header{}, fmt.Errorf("MAT %d line %d: LISO: %v: %w", m.MAT, recs[1].line, err, ErrBadTape)
	}
	h.LISO = int(liso)
	return h, nil
}

// ZAI returns the material identifier ZA*10 + LISO.
func (m *Material) ZAI() (int64, error) {
	h, err := m.Header()
	if err != nil {
		return 0, err
	}
	return int64(h.ZA)*10 + int64(h.LISO), nil
}

// XS is one pointwise cross-section table.
type XS struct {
	Energies []float64
	Values   []float64
}

// CrossSection parses the TAB1 table of section MF3/mt: a HEAD record, a
// TAB1 control record giving NR interpolation ranges and NP points, NR
// interpolation pairs, then NP (energy, cross-section) pairs packed three
// to a record.
func (m *Material) CrossSection(mt int) (XS, error) {
	recs, ok := m.sections[sectionID{3, mt}]
	if !ok {
		return XS{}, fmt.Errorf("MAT %d: no section MF3/MT%d: %w", m.MAT, mt, ErrBadTape)
	}
	if len(recs) < 2 {
		return XS{}, fmt.Errorf("MAT %d: truncated section MF3/MT%d: %w", m.MAT, mt, ErrBadTape)
	}
	tab1 := recs[1]
	nr, err := parseField(tab1.fields[4])
	if err != nil {
		return XS{}, fmt.Errorf("MAT %d line %d: NR: %v: %w", m.MAT, tab1.line, err, ErrBadTape)
	}
	np, err := parseField(tab1.fields[5])
	if err != nil {
		return XS{}, fmt.Errorf("MAT %d line %d: NP: %v: %w", m.MAT, tab1.line, err, ErrBadTape)
	}
	if nr < 0 || np < 0 {
		return XS{}, fmt.Errorf("MAT %d line %d: negative NR or NP: %w", m.MAT, tab1.line, ErrBadTape)
	}
	// interpolation pairs occupy ceil(2*NR/6) records after the control record
	interpRecords := (2*int(nr) + 5) / 6
	dataStart := 2 + interpRecords
	if dataStart > len(recs) {
		return XS{}, fmt.Errorf("MAT %d: truncated section MF3/MT%d: %w", m.MAT, mt, ErrBadTape)
	}
	values, err := readFields(recs[dataStart:], 2*int(np))
	if err != nil {
		return XS{}, fmt.Errorf("MAT %d section MF3/MT%d: %v: %w", m.MAT, mt, err, ErrBadTape)
	}
	xs := XS{
		Energies: make([]float64, int(np)),
		Values:   make([]float64, int(np)),
	}
	for i := 0; i < int(np); i++ {
		xs.Energies[i] = values[2*i]
		xs.Values[i] = values[2*i+1]
	}
	return xs, nil
}

// readFields reads n consecutive numeric fields from the given records,
// six per record.
func readFields(recs []record, n int) ([]float64, error) {
	out := make([]float64, 0, n)
	for _, rec := range recs {
		for _, f := range rec.fields {
			if len(out) == n {
				return out, nil
			}
			v, err := parseField(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", rec.line, err)
			}
			out = append(out, v)
		}
	}
	if len(out) < n {
		return nil, fmt.Errorf("expected %d fields, found %d", n, len(out))
	}
	return out, nil
}
