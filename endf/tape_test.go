package endf

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tapeLine(f1, f2, f3, f4, f5, f6 string, mat, mf, mt int) string {
	return fmt.Sprintf("%11s%11s%11s%11s%11s%11s%4d%2d%3d%5d", f1, f2, f3, f4, f5, f6, mat, mf, mt, 0)
}

func u235Tape() string {
	const mat = 9228
	lines := []string{
		"U-235 test tape",
		// MF1/MT451: HEAD then the record carrying LISO
		tapeLine("92235.", "233.0248", "1", "0", "0", "5", mat, 1, 451),
		tapeLine("0.0", "0.0", "0", "0", "0", "6", mat, 1, 451),
		tapeLine("", "", "", "", "", "", mat, 1, 0),
		tapeLine("", "", "", "", "", "", mat, 0, 0),
		// MF3/MT1: HEAD, TAB1 control (NR=1, NP=3), interpolation, points
		tapeLine("92235.", "233.0248", "0", "0", "0", "0", mat, 3, 1),
		tapeLine("0.0", "0.0", "0", "0", "1", "3", mat, 3, 1),
		tapeLine("3", "2", "", "", "", "", mat, 3, 1),
		tapeLine("1.0-5", "90.0", "1.0", "10.0", "2.0+7", "5.0", mat, 3, 1),
		tapeLine("", "", "", "", "", "", mat, 3, 0),
		tapeLine("", "", "", "", "", "", mat, 0, 0),
		tapeLine("", "", "", "", "", "", 0, 0, 0),
		tapeLine("", "", "", "", "", "", -1, 0, 0),
	}
	return strings.Join(lines, "\n") + "\n"
}

func TestReadTape(t *testing.T) {
	t.Parallel()
	tape, err := ReadTape(strings.NewReader(u235Tape()))
	require.NoError(t, err)
	assert.Equal(t, "U-235 test tape", tape.ID)
	require.Len(t, tape.Materials, 1)

	m := &tape.Materials[0]
	assert.Equal(t, 9228, m.MAT)
	assert.True(t, m.HasSection(1, 451))
	assert.True(t, m.HasSection(3, 1))
	assert.False(t, m.HasSection(3, 2))
	assert.Equal(t, [][2]int{{1, 451}, {3, 1}}, m.Sections())
}

func TestHeader(t *testing.T) {
	t.Parallel()
	tape, err := ReadTape(strings.NewReader(u235Tape()))
	require.NoError(t, err)
	h, err := tape.Materials[0].Header()
	require.NoError(t, err)
	assert.Equal(t, 92235.0, h.ZA)
	assert.Equal(t, 233.0248, h.AWR)
	assert.Equal(t, 0, h.LISO)

	zai, err := tape.Materials[0].ZAI()
	require.NoError(t, err)
	assert.Equal(t, int64(922350), zai)
}

func TestCrossSection(t *testing.T) {
	t.Parallel()
	tape, err := ReadTape(strings.NewReader(u235Tape()))
	require.NoError(t, err)
	xs, err := tape.Materials[0].CrossSection(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1e-5, 1.0, 2e7}, xs.Energies)
	assert.Equal(t, []float64{90.0, 10.0, 5.0}, xs.Values)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()
	tape, err := ReadTape(strings.NewReader(u235Tape()))
	require.NoError(t, err)
	data, err := tape.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"zai": int64(922350),
		"mf3": map[string]interface{}{
			"mt1": map[string]interface{}{
				"energies": []float64{1e-5, 1.0, 2e7},
				"xs":       []float64{90.0, 10.0, 5.0},
			},
		},
	}, data)
}

func TestSnapshotWithoutTotalCrossSection(t *testing.T) {
	t.Parallel()
	const mat = 9228
	lines := []string{
		"header only",
		tapeLine("92235.", "233.0248", "1", "0", "0", "5", mat, 1, 451),
		tapeLine("0.0", "0.0", "0", "2", "0", "6", mat, 1, 451),
		tapeLine("", "", "", "", "", "", mat, 1, 0),
		tapeLine("", "", "", "", "", "", mat, 0, 0),
		tapeLine("", "", "", "", "", "", 0, 0, 0),
		tapeLine("", "", "", "", "", "", -1, 0, 0),
	}
	tape, err := ReadTape(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	data, err := tape.Snapshot()
	require.NoError(t, err)
	// LISO=2 shifts the identifier
	assert.Equal(t, int64(922352), data["zai"])
	mt1 := data["mf3"].(map[string]interface{})["mt1"].(map[string]interface{})
	assert.Empty(t, mt1["energies"])
	assert.Empty(t, mt1["xs"])
}

func TestSnapshotRejectsMultipleMaterials(t *testing.T) {
	t.Parallel()
	lines := []string{
		"two materials",
		tapeLine("92235.", "233.0248", "1", "0", "0", "5", 9228, 1, 451),
		tapeLine("0.0", "0.0", "0", "0", "0", "6", 9228, 1, 451),
		tapeLine("", "", "", "", "", "", 9228, 1, 0),
		tapeLine("", "", "", "", "", "", 9228, 0, 0),
		tapeLine("", "", "", "", "", "", 0, 0, 0),
		tapeLine("92238.", "236.0058", "1", "0", "0", "5", 9237, 1, 451),
		tapeLine("0.0", "0.0", "0", "0", "0", "6", 9237, 1, 451),
		tapeLine("", "", "", "", "", "", 9237, 1, 0),
		tapeLine("", "", "", "", "", "", 9237, 0, 0),
		tapeLine("", "", "", "", "", "", 0, 0, 0),
		tapeLine("", "", "", "", "", "", -1, 0, 0),
	}
	tape, err := ReadTape(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	require.Len(t, tape.Materials, 2)
	_, err = tape.Snapshot()
	assert.ErrorIs(t, err, ErrBadTape)
}

func TestReadTapeErrors(t *testing.T) {
	t.Parallel()
	_, err := ReadTape(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrBadTape)

	_, err = ReadTape(strings.NewReader("TPID only\n" + tapeLine("", "", "", "", "", "", -1, 0, 0)))
	assert.ErrorIs(t, err, ErrBadTape)

	garbage := "TPID\n" + strings.Repeat(" ", 66) + "abcd 1451    0"
	_, err = ReadTape(strings.NewReader(garbage))
	assert.ErrorIs(t, err, ErrBadTape)
}

func TestHeaderMissingSection(t *testing.T) {
	t.Parallel()
	lines := []string{
		"no MT451",
		tapeLine("92235.", "233.0248", "0", "0", "0", "0", 9228, 3, 1),
		tapeLine("", "", "", "", "", "", -1, 0, 0),
	}
	tape, err := ReadTape(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	_, err = tape.Materials[0].Header()
	assert.True(t, errors.Is(err, ErrBadTape))
}

func TestParseField(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want float64
	}{
		{" 1.234567+6", 1.234567e6},
		{" 2.200000-1", 0.22},
		{"-3.5-2", -0.035},
		{"", 0},
		{"          5", 5},
		{"     1.0E+3", 1000},
		{"-5", -5},
		{"1.5e-3", 0.0015},
	}
	for _, test := range tests {
		got, err := parseField(test.in)
		require.NoError(t, err, "field %q", test.in)
		assert.InDelta(t, test.want, got, 1e-12, "field %q", test.in)
	}

	_, err := parseField("bogus")
	assert.Error(t, err)
}
