package evalchain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Snapshot is the canonical serialized form of one evaluation file at one
// point in time.  Snapshots are immutable; operations that would change one
// produce a new Snapshot.  The zero Snapshot is not valid; use EmptySnapshot
// for the sentinel that reconstruction starts from.
type Snapshot struct {
	raw json.RawMessage
}

var emptyDoc = json.RawMessage("{}")

// EmptySnapshot returns the sentinel snapshot an empty chain reconstructs to.
func EmptySnapshot() Snapshot {
	return Snapshot{emptyDoc}
}

// NewSnapshot canonicalizes the given structure (nested maps, slices and
// primitives, or anything else encoding/json can handle) into a Snapshot.
func NewSnapshot(v interface{}) (Snapshot, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	return newSnapshotFromJSON(b)
}

// newSnapshotFromJSON canonicalizes raw JSON: keys sorted, no insignificant
// whitespace, so byte equality is structural equality.
func newSnapshotFromJSON(b []byte) (Snapshot, error) {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return Snapshot{}, fmt.Errorf("canonicalize snapshot: %w", err)
	}
	c, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, fmt.Errorf("canonicalize snapshot: %w", err)
	}
	return Snapshot{c}, nil
}

// Bytes returns the canonical JSON form. Callers must not modify it.
func (s Snapshot) Bytes() []byte {
	if s.raw == nil {
		return emptyDoc
	}
	return s.raw
}

// Value unmarshals the snapshot into out.
func (s Snapshot) Value(out interface{}) error {
	return json.Unmarshal(s.Bytes(), out)
}

// Equal reports whether two snapshots have the same canonical form.
func (s Snapshot) Equal(other Snapshot) bool {
	return bytes.Equal(s.Bytes(), other.Bytes())
}

// IsEmpty reports whether the snapshot is the empty sentinel.
func (s Snapshot) IsEmpty() bool {
	return bytes.Equal(s.Bytes(), emptyDoc)
}

func (s Snapshot) String() string {
	return string(s.Bytes())
}
