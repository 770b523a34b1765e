/*
Package evalchain records successive revisions of a nuclear-data
evaluation file as an append-only chain of immutable blocks.  Each
block carries a structural (RFC 6902 JSON) patch from the previous
revision, a content hash of its own serialized form, and a hash
pointer to the block before it.  Chains can be persisted anywhere,
like a filesystem, KV store, or blob store.

Uses

- Tamper-evident history of an evaluation file across library releases

- Compact storage of many revisions, since only the first block holds
a full snapshot and every later block holds a diff

- Replaying the patch sequence reconstructs any intermediate revision
exactly

How it works

A Snapshot is the canonical JSON form of one parsed evaluation file.
Appending a Snapshot to a Chain diffs it against the latest rebuilt
revision, finds a work value satisfying the block's difficulty, and
hashes the result.  The first block holds the full snapshot expressed
as a single root-path patch so reconstruction always has a concrete
starting point.  Blocks are never modified after they are appended.

Chain is a value type: Append returns a new Chain and never mutates
the receiver's blocks, so versions can be constructed and compared
directly in tests.

Verification

Verify recomputes every block's hash, checks its proof-of-work bound,
and checks that each block's previous-hash pointer matches the block
before it, returning ErrChainIntegrity on the first divergence.
Rebuild itself only replays patches; a chain read from an untrusted
store should be Verify'd first.
*/
package evalchain
