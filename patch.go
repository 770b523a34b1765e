package evalchain

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/wI2L/jsondiff"
)

// Patch is an RFC 6902 operation list transforming one Snapshot into
// another.  Patches are treated as opaque: evalchain relies on the external
// contract apply(diff(old, new), old) == new but does not inspect operations.
type Patch struct {
	ops json.RawMessage
}

var emptyOps = json.RawMessage("[]")

// Diff computes a patch p such that p.Apply(old) equals new.
func Diff(old, new Snapshot) (Patch, error) {
	ops, err := jsondiff.CompareJSON(old.Bytes(), new.Bytes())
	if err != nil {
		return Patch{}, fmt.Errorf("diff snapshots: %w", err)
	}
	if len(ops) == 0 {
		return Patch{emptyOps}, nil
	}
	b, err := json.Marshal(ops)
	if err != nil {
		return Patch{}, fmt.Errorf("marshal patch: %w", err)
	}
	return Patch{b}, nil
}

// fullSnapshotPatch expresses a whole snapshot as a single root-path
// operation, used for the first block so every block replays through the
// same apply path.
func fullSnapshotPatch(s Snapshot) Patch {
	op := fmt.Sprintf(`[{"op":"add","path":"","value":%s}]`, s.Bytes())
	return Patch{json.RawMessage(op)}
}

// ParsePatch validates raw JSON as an RFC 6902 operation list.
func ParsePatch(raw []byte) (Patch, error) {
	if _, err := jsonpatch.DecodePatch(raw); err != nil {
		return Patch{}, fmt.Errorf("decode patch: %w", err)
	}
	return Patch{append(json.RawMessage(nil), raw...)}, nil
}

// Apply transforms old into the snapshot this patch was diffed against.
func (p Patch) Apply(old Snapshot) (Snapshot, error) {
	decoded, err := jsonpatch.DecodePatch(p.Bytes())
	if err != nil {
		return Snapshot{}, fmt.Errorf("decode patch: %w", err)
	}
	out, err := decoded.Apply(old.Bytes())
	if err != nil {
		return Snapshot{}, fmt.Errorf("apply patch: %w", err)
	}
	s, err := newSnapshotFromJSON(out)
	if err != nil {
		return Snapshot{}, fmt.Errorf("apply patch: %w", err)
	}
	return s, nil
}

// Bytes returns the serialized operation list. Callers must not modify it.
func (p Patch) Bytes() []byte {
	if p.ops == nil {
		return emptyOps
	}
	return p.ops
}

// IsEmpty reports whether the patch contains no operations.
func (p Patch) IsEmpty() bool {
	var ops []json.RawMessage
	if err := json.Unmarshal(p.Bytes(), &ops); err != nil {
		return false
	}
	return len(ops) == 0
}

// compact returns the patch with insignificant whitespace removed, for use
// in hash preimages: persisted chains may be indented, and hashing must not
// depend on how the surrounding document was formatted.
func (p Patch) compact() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, p.Bytes()); err != nil {
		return nil, fmt.Errorf("compact patch: %w", err)
	}
	return buf.Bytes(), nil
}
