package evalchain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by Persist implementations when the
// named content does not exist.
var ErrNotFound = errors.New("not found")

// Persist is the interface for loading and storing serialized chain
// documents.  Unlike content-addressed stores, the same name is rewritten
// on every append, so Store must overwrite.
type Persist interface {
	// Store makes the given bytes accessible by the given name,
	// replacing any previous content.
	Store(context.Context, string, []byte) error
	// Load retrieves the previously-stored bytes by the given name.
	Load(context.Context, string) ([]byte, error)
}

// StoreConfig controls how chains are serialized and deserialized.
type StoreConfig struct {
	// Marshal function, defaults to indented JSON.
	Marshal func(interface{}) ([]byte, error)

	// Unmarshal function, defaults to JSON.
	Unmarshal func([]byte, interface{}) error
}

var (
	defaultUnmarshal = json.Unmarshal
	defaultMarshal   = func(v interface{}) ([]byte, error) {
		return json.MarshalIndent(v, "", "    ")
	}
)

// LoadChain reads the chain document with the given name.  A name that
// doesn't exist yet loads as the empty chain, so the first run against a
// fresh store needs no special casing.
func LoadChain(ctx context.Context, persist Persist, name string, config *StoreConfig) (Chain, error) {
	unmarshal := defaultUnmarshal
	if config != nil && config.Unmarshal != nil {
		unmarshal = config.Unmarshal
	}
	b, err := persist.Load(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return Chain{}, nil
	}
	if err != nil {
		return Chain{}, fmt.Errorf("persist load %s: %w", name, err)
	}
	var blocks []Block
	if err := unmarshal(b, &blocks); err != nil {
		return Chain{}, fmt.Errorf("unmarshal chain %s: %w", name, err)
	}
	return Chain{blocks}, nil
}

// SaveChain writes the whole chain document under the given name.
func SaveChain(ctx context.Context, persist Persist, name string, chain Chain, config *StoreConfig) error {
	marshal := defaultMarshal
	if config != nil && config.Marshal != nil {
		marshal = config.Marshal
	}
	b, err := marshal(chain.blocks)
	if err != nil {
		return fmt.Errorf("marshal chain: %w", err)
	}
	if err := persist.Store(ctx, name, b); err != nil {
		return fmt.Errorf("persist store %s: %w", name, err)
	}
	return nil
}
