package evalchain

import lru "github.com/hashicorp/golang-lru"

// SnapshotCache caches rebuilt snapshots keyed by block hash, so repeated
// rebuilds of a growing chain don't replay the whole patch sequence every
// time.  Entries are immutable, so one cache can be shared by any number
// of chains.
type SnapshotCache interface {
	// Add records the snapshot as of the block with the given hash.
	Add(key, value interface{})
	// Get retrieves the snapshot as of the block with the given hash, if cached.
	Get(key interface{}) (value interface{}, ok bool)
}

// NewSnapshotCache creates a new LRU-based snapshot cache of the given size.
func NewSnapshotCache(size int) SnapshotCache {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return cache
}
