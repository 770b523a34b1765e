package evalchain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultGopterParameters = gopter.DefaultTestParameters()

func mustSnapshot(t *testing.T, v interface{}) Snapshot {
	t.Helper()
	s, err := NewSnapshot(v)
	require.NoError(t, err)
	return s
}

func TestDiffApplyRoundTrip(t *testing.T) {
	t.Parallel()
	old := mustSnapshot(t, map[string]interface{}{
		"zai": 922350,
		"mf3": map[string]interface{}{
			"mt1": map[string]interface{}{
				"energies": []float64{1e-5, 2e7},
				"xs":       []float64{92.7, 5.8},
			},
		},
	})
	revised := mustSnapshot(t, map[string]interface{}{
		"zai": 922380,
		"mf3": map[string]interface{}{
			"mt1": map[string]interface{}{
				"energies": []float64{1e-5, 1.0, 2e7},
				"xs":       []float64{11.6, 9.3, 4.8},
			},
		},
	})
	patch, err := Diff(old, revised)
	require.NoError(t, err)
	assert.False(t, patch.IsEmpty())
	applied, err := patch.Apply(old)
	require.NoError(t, err)
	assert.True(t, applied.Equal(revised))
}

func TestEmptyDiffIsIdempotent(t *testing.T) {
	t.Parallel()
	s := mustSnapshot(t, map[string]interface{}{"zai": 922350})
	patch, err := Diff(s, s)
	require.NoError(t, err)
	assert.True(t, patch.IsEmpty())
	applied, err := patch.Apply(s)
	require.NoError(t, err)
	assert.True(t, applied.Equal(s))
}

func TestDiffFromEmptySnapshot(t *testing.T) {
	t.Parallel()
	s := mustSnapshot(t, map[string]interface{}{"zai": 922350})
	patch, err := Diff(EmptySnapshot(), s)
	require.NoError(t, err)
	applied, err := patch.Apply(EmptySnapshot())
	require.NoError(t, err)
	assert.True(t, applied.Equal(s))
}

func TestFullSnapshotPatchReplaysFromEmpty(t *testing.T) {
	t.Parallel()
	s := mustSnapshot(t, map[string]interface{}{
		"zai": 922350,
		"mf3": map[string]interface{}{"mt1": map[string]interface{}{"energies": []float64{}, "xs": []float64{}}},
	})
	applied, err := fullSnapshotPatch(s).Apply(EmptySnapshot())
	require.NoError(t, err)
	assert.True(t, applied.Equal(s))
}

func TestParsePatchRejectsGarbage(t *testing.T) {
	t.Parallel()
	_, err := ParsePatch([]byte(`{"not":"a patch"}`))
	assert.Error(t, err)
}

func genDoc() gopter.Gen {
	return gen.MapOf(gen.Identifier(), gen.Float64Range(-1e9, 1e9))
}

func TestDiffApplyProperty(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	properties.Property("apply(diff(a,b), a) == b", prop.ForAll(
		func(a, b map[string]float64) bool {
			sa, err := NewSnapshot(a)
			if err != nil {
				return false
			}
			sb, err := NewSnapshot(b)
			if err != nil {
				return false
			}
			patch, err := Diff(sa, sb)
			if err != nil {
				return false
			}
			applied, err := patch.Apply(sa)
			if err != nil {
				return false
			}
			return applied.Equal(sb)
		},
		genDoc(), genDoc()))
	properties.Property("diff(a,a) is empty", prop.ForAll(
		func(a map[string]float64) bool {
			sa, err := NewSnapshot(a)
			if err != nil {
				return false
			}
			patch, err := Diff(sa, sa)
			if err != nil {
				return false
			}
			return patch.IsEmpty()
		},
		genDoc()))
	properties.TestingRun(t)
}
