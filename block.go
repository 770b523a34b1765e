package evalchain

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/bits"
	"math/rand"
	"strconv"
	"time"

	"github.com/minio/blake2b-simd"
)

// DefaultDifficulty is the proof-of-work bound for appended blocks: the
// block digest must have at least this many leading zero bits.  For nuclear
// data a work value doesn't buy much, but it keeps blocks expensive enough
// to deter casual rewriting of a shared chain file.
const DefaultDifficulty = 8

// Block is one immutable record in the chain.  All fields are fixed once
// the block has been appended; appending later blocks never touches earlier
// ones.
type Block struct {
	// Index is the block's ordinal position in the chain.
	Index uint64 `json:"index"`
	// Timestamp records when the block was created, in UTC.
	Timestamp time.Time `json:"timestamp"`
	// PreviousHash is the Hash of the preceding block, or "" for block 0.
	PreviousHash string `json:"previous_hash"`
	// Hash is the blake2b-256 digest of the block's own content,
	// base64url-encoded.
	Hash string `json:"block_hash"`
	// Patch transforms the previous block's reconstructed snapshot into
	// this block's.  Block 0 carries the full first snapshot as a single
	// root-path operation.
	Patch json.RawMessage `json:"patch"`
	// WorkValue is the nonce satisfying the difficulty bound.
	WorkValue uint64 `json:"workvalue"`
	// Difficulty is the minimum number of leading zero bits in the digest.
	Difficulty uint `json:"difficulty"`
}

// preimage serializes the hashed portion of the block with the given work
// value.  The patch is compacted first so the preimage is stable across
// persistence, which may re-indent raw JSON.
func (b *Block) preimage(workValue uint64) ([]byte, error) {
	patch, err := Patch{b.Patch}.compact()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(patch)+len(b.PreviousHash)+64)
	buf = strconv.AppendUint(buf, b.Index, 10)
	buf = b.Timestamp.UTC().AppendFormat(buf, time.RFC3339Nano)
	buf = append(buf, patch...)
	buf = append(buf, b.PreviousHash...)
	buf = strconv.AppendUint(buf, workValue, 10)
	return buf, nil
}

// digest hashes the block content with the given work value, returning the
// raw digest and its encoded form.
func (b *Block) digest(workValue uint64) ([32]byte, string, error) {
	pre, err := b.preimage(workValue)
	if err != nil {
		return [32]byte{}, "", fmt.Errorf("block %d preimage: %w", b.Index, err)
	}
	d := blake2b.Sum256(pre)
	return d, base64.RawURLEncoding.EncodeToString(d[:]), nil
}

// work searches for a work value whose digest satisfies the block's
// difficulty, starting from a random nonce, and fills in WorkValue and Hash.
func (b *Block) work() error {
	nonce := rand.Uint64()
	for {
		d, encoded, err := b.digest(nonce)
		if err != nil {
			return err
		}
		if leadingZeroBits(d[:]) >= b.Difficulty {
			b.WorkValue = nonce
			b.Hash = encoded
			return nil
		}
		nonce++
	}
}

// verify recomputes the digest from the stored work value and checks it
// against both the stored hash and the difficulty bound.
func (b *Block) verify() error {
	d, encoded, err := b.digest(b.WorkValue)
	if err != nil {
		return err
	}
	if encoded != b.Hash {
		return fmt.Errorf("block %d: content hash mismatch: %w", b.Index, ErrChainIntegrity)
	}
	if leadingZeroBits(d[:]) < b.Difficulty {
		return fmt.Errorf("block %d: digest does not meet difficulty %d: %w", b.Index, b.Difficulty, ErrChainIntegrity)
	}
	return nil
}

func leadingZeroBits(digest []byte) uint {
	var n uint
	for _, octet := range digest {
		if octet != 0 {
			return n + uint(bits.LeadingZeros8(octet))
		}
		n += 8
	}
	return n
}
