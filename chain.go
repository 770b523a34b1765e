package evalchain

import (
	"errors"
	"fmt"
	"time"
)

// ErrChainIntegrity indicates a chain whose blocks no longer hash or link
// together: a recomputed content hash differs from the stored one, a
// previous-hash pointer doesn't match the preceding block, a digest fails
// its difficulty bound, or a stored patch can no longer be applied.
var ErrChainIntegrity = errors.New("chain integrity violated")

// Chain is an ordered, append-only sequence of blocks.  Chain is a value
// type: Append returns a new Chain and never mutates the receiver, so
// chains can be constructed and compared directly.  The zero Chain is the
// empty chain.
type Chain struct {
	blocks []Block
}

// NewChain returns an empty chain.
func NewChain() Chain {
	return Chain{}
}

// Len returns the number of blocks.
func (c Chain) Len() int {
	return len(c.blocks)
}

// Blocks returns a copy of the chain's blocks.
func (c Chain) Blocks() []Block {
	return append([]Block(nil), c.blocks...)
}

// Block returns the block at the given index.
func (c Chain) Block(i int) (Block, error) {
	if i < 0 || i >= len(c.blocks) {
		return Block{}, fmt.Errorf("block %d not in chain of length %d", i, len(c.blocks))
	}
	return c.blocks[i], nil
}

// Append extends the chain with a block recording the transition from the
// latest reconstructed snapshot to the given one.  The first block holds
// the full snapshot with a "" previous-hash sentinel; every later block
// holds only the diff from the block immediately before it.
func (c Chain) Append(snapshot Snapshot, difficulty uint) (Chain, error) {
	var patch Patch
	var previousHash string
	if len(c.blocks) == 0 {
		patch = fullSnapshotPatch(snapshot)
	} else {
		latest, err := c.Rebuild(nil)
		if err != nil {
			return Chain{}, fmt.Errorf("rebuild latest snapshot: %w", err)
		}
		patch, err = Diff(latest, snapshot)
		if err != nil {
			return Chain{}, err
		}
		previousHash = c.blocks[len(c.blocks)-1].Hash
	}
	block := Block{
		Index:        uint64(len(c.blocks)),
		Timestamp:    time.Now().UTC(),
		PreviousHash: previousHash,
		Patch:        patch.Bytes(),
		Difficulty:   difficulty,
	}
	if err := block.work(); err != nil {
		return Chain{}, fmt.Errorf("work block %d: %w", block.Index, err)
	}
	blocks := make([]Block, len(c.blocks)+1)
	copy(blocks, c.blocks)
	blocks[len(c.blocks)] = block
	return Chain{blocks}, nil
}

// Rebuild replays every stored patch in order and returns the latest
// snapshot.  An empty chain rebuilds to the empty snapshot.  Rebuild only
// replays; it does not check hashes or linkage, so a chain read from an
// untrusted store should be Verify'd first.  The cache, if non-nil, holds
// rebuilt snapshots keyed by block hash and may be shared across chains.
func (c Chain) Rebuild(cache SnapshotCache) (Snapshot, error) {
	return c.SnapshotAt(len(c.blocks)-1, cache)
}

// SnapshotAt reconstructs the snapshot as of block i.  SnapshotAt(-1)
// returns the empty snapshot.
func (c Chain) SnapshotAt(i int, cache SnapshotCache) (Snapshot, error) {
	if i < -1 || i >= len(c.blocks) {
		return Snapshot{}, fmt.Errorf("block %d not in chain of length %d", i, len(c.blocks))
	}
	snapshot := EmptySnapshot()
	start := 0
	if cache != nil {
		// resume from the nearest cached ancestor
		for j := i; j >= 0; j-- {
			if v, ok := cache.Get(c.blocks[j].Hash); ok {
				snapshot = v.(Snapshot)
				start = j + 1
				break
			}
		}
	}
	for j := start; j <= i; j++ {
		block := c.blocks[j]
		next, err := Patch{block.Patch}.Apply(snapshot)
		if err != nil {
			return Snapshot{}, fmt.Errorf("replay block %d: %v: %w", j, err, ErrChainIntegrity)
		}
		snapshot = next
		if cache != nil {
			cache.Add(block.Hash, snapshot)
		}
	}
	return snapshot, nil
}

// Verify checks every block's content hash, proof-of-work bound, index,
// and previous-hash linkage, returning an error wrapping ErrChainIntegrity
// at the first divergence.
func (c Chain) Verify() error {
	previousHash := ""
	for i := range c.blocks {
		block := &c.blocks[i]
		if block.Index != uint64(i) {
			return fmt.Errorf("block %d: stored index %d: %w", i, block.Index, ErrChainIntegrity)
		}
		if block.PreviousHash != previousHash {
			return fmt.Errorf("block %d: previous-hash pointer does not match block %d: %w", i, i-1, ErrChainIntegrity)
		}
		if err := block.verify(); err != nil {
			return err
		}
		previousHash = block.Hash
	}
	return nil
}
