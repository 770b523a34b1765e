package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evalchain/evalchain"
)

// Persist implements the evalchain.Persist interface for storing and
// loading chain documents from files.
type Persist struct {
	basepath string
}

// Load loads the bytes persisted in the named file.
func (p Persist) Load(ctx context.Context, name string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(p.basepath, name))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", name, evalchain.ErrNotFound)
	}
	return b, err
}

// Store replaces the named file with the given bytes.  The write goes
// through a temporary file and rename so an interrupted run leaves the
// previous chain document intact rather than a truncated one.
func (p Persist) Store(ctx context.Context, name string, bytes []byte) error {
	tmp, err := os.CreateTemp(p.basepath, name+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bytes); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(p.basepath, name))
}

// NewPersistForPath returns a Persist that loads and stores chain
// documents as files in the directory at the given path.
//
//	p := NewPersistForPath("/var/db/evalchain")
//	b, err := p.Load(ctx, "blockchain.json")
func NewPersistForPath(path string) Persist {
	return Persist{path}
}
