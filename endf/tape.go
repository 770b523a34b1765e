// Package endf reads ENDF-6 formatted nuclear-data evaluation tapes.
//
// The reader is deliberately shallow: it splits a tape into materials and
// (MF, MT) sections, and parses only the records evalchain snapshots need,
// the MF1/MT451 header and MF3 cross-section tables.  Everything else is
// carried as raw records and never interpreted.
package endf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrBadTape wraps all parse failures, so callers can classify input
// errors without matching message text.
var ErrBadTape = errors.New("not a valid ENDF tape")

// An ENDF-6 record is one 80-column line: six 11-character fields, then
// the 4-character MAT, 2-character MF and 3-character MT identifiers.
// The trailing 5-column line number is ignored.
type record struct {
	fields [6]string
	mat    int
	mf     int
	mt     int
	line   int
}

type sectionID struct {
	mf int
	mt int
}

// Tape is one evaluation tape: a tape-identification line followed by one
// or more materials.
type Tape struct {
	ID        string
	Materials []Material
}

// Material holds the raw records of one material, grouped by section.
type Material struct {
	MAT      int
	sections map[sectionID][]record
	order    []sectionID
}

func parseRecord(line string, lineno int) (record, error) {
	if len(line) < 80 {
		line += strings.Repeat(" ", 80-len(line))
	}
	r := record{line: lineno}
	for i := range r.fields {
		r.fields[i] = line[i*11 : (i+1)*11]
	}
	var err error
	r.mat, err = parseControlInt(line[66:70])
	if err != nil {
		return record{}, fmt.Errorf("line %d: MAT %q: %v: %w", lineno, line[66:70], err, ErrBadTape)
	}
	r.mf, err = parseControlInt(line[70:72])
	if err != nil {
		return record{}, fmt.Errorf("line %d: MF %q: %v: %w", lineno, line[70:72], err, ErrBadTape)
	}
	r.mt, err = parseControlInt(line[72:75])
	if err != nil {
		return record{}, fmt.Errorf("line %d: MT %q: %v: %w", lineno, line[72:75], err, ErrBadTape)
	}
	return r, nil
}

func parseControlInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ReadTapeFile reads an evaluation tape from the named file.
func ReadTapeFile(path string) (*Tape, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tape: %w", err)
	}
	defer f.Close()
	t, err := ReadTape(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadTape reads an evaluation tape: a TPID line, then material records
// delimited by SEND (MT=0), FEND (MF=0), MEND (MAT=0) and TEND (MAT=-1)
// markers.
func ReadTape(r io.Reader) (*Tape, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read TPID: %w", err)
		}
		return nil, fmt.Errorf("empty tape: %w", ErrBadTape)
	}
	tpid := scanner.Text()
	if len(tpid) > 66 {
		tpid = tpid[:66]
	}
	tape := &Tape{ID: strings.TrimRight(tpid, " ")}

	var current *Material
	lineno := 1
	for scanner.Scan() {
		lineno++
		rec, err := parseRecord(scanner.Text(), lineno)
		if err != nil {
			return nil, err
		}
		if rec.mat == -1 {
			// TEND
			current = nil
			break
		}
		if rec.mat == 0 {
			// MEND
			current = nil
			continue
		}
		if rec.mf == 0 || rec.mt == 0 {
			// FEND and SEND delimiters carry no data
			continue
		}
		if current == nil || current.MAT != rec.mat {
			tape.Materials = append(tape.Materials, Material{
				MAT:      rec.mat,
				sections: map[sectionID][]record{},
			})
			current = &tape.Materials[len(tape.Materials)-1]
		}
		id := sectionID{rec.mf, rec.mt}
		if _, seen := current.sections[id]; !seen {
			current.order = append(current.order, id)
		}
		current.sections[id] = append(current.sections[id], rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tape: %w", err)
	}
	if len(tape.Materials) == 0 {
		return nil, fmt.Errorf("tape has no materials: %w", ErrBadTape)
	}
	return tape, nil
}

// HasSection reports whether the material contains section (mf, mt).
func (m *Material) HasSection(mf, mt int) bool {
	_, ok := m.sections[sectionID{mf, mt}]
	return ok
}

// Sections lists the material's (MF, MT) sections in tape order.
func (m *Material) Sections() [][2]int {
	out := make([][2]int, len(m.order))
	for i, id := range m.order {
		out[i] = [2]int{id.mf, id.mt}
	}
	return out
}
