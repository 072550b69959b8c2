package cache

import "hash/fnv"

const (
	// ShardCount is the number of shards in a Sharded cache.
	// Must be a power of 2 for fast modulo via bitwise AND.
	ShardCount = 16

	// DefaultCapacity is the default per-shard capacity.
	DefaultCapacity = 256

	shardMask = ShardCount - 1
)

// Hasher computes the hash used to pick a shard for a key.
type Hasher[K any] func(K) uint64

// StringHasher hashes a string key with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Sharded is an LRU cache split into independently locked shards to reduce
// contention between goroutines shaping different runs.
type Sharded[K comparable, V any] struct {
	shards   [ShardCount]*Cache[K, V]
	hasher   Hasher[K]
	capacity int
}

// NewSharded creates a sharded cache with capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *Sharded[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Sharded[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = New[K, V](capacity)
	}
	return c
}

func (c *Sharded[K, V]) shard(key K) *Cache[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	return c.shard(key).Get(key)
}

// Set stores value under key.
func (c *Sharded[K, V]) Set(key K, value V) {
	c.shard(key).Set(key, value)
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// Only the key's shard is locked while create runs.
func (c *Sharded[K, V]) GetOrCreate(key K, create func() V) V {
	return c.shard(key).GetOrCreate(key, create)
}

// Delete removes key and reports whether it was present.
func (c *Sharded[K, V]) Delete(key K) bool {
	return c.shard(key).Delete(key)
}

// Clear drops every entry in every shard.
func (c *Sharded[K, V]) Clear() {
	for _, s := range c.shards {
		s.Clear()
	}
}

// Len returns the number of entries across all shards.
func (c *Sharded[K, V]) Len() int {
	n := 0
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// Stats aggregates the statistics of all shards.
func (c *Sharded[K, V]) Stats() Stats {
	total := Stats{Capacity: c.capacity, TotalCapacity: c.capacity * ShardCount}
	for _, s := range c.shards {
		st := s.Stats()
		total.Len += st.Len
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Evictions += st.Evictions
	}
	total.computeHitRate()
	return total
}
