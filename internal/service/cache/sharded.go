package cache

import "time"

// Sharded spreads uint64-keyed entries across power-of-two TTL shards
// to reduce lock contention. Keys are expected to be well-mixed hashes.
type Sharded[V any] struct {
	shards    []*TTL[uint64, V]
	numShards int
	shardMask uint64
}

// NewSharded creates a sharded cache. numShards is rounded up to a power of two
// and defaults to 16.
func NewSharded[V any](name string, capacity int, ttl time.Duration, numShards int) *Sharded[V] {
	if numShards <= 0 {
		numShards = 16
	}
	n := 1
	for n < numShards {
		n *= 2
	}
	numShards = n

	perShard := capacity / numShards
	if perShard < 1 {
		perShard = 1
	}

	shards := make([]*TTL[uint64, V], numShards)
	for i := range shards {
		shards[i] = NewTTL[uint64, V](name, perShard, ttl)
	}

	return &Sharded[V]{
		shards:    shards,
		numShards: numShards,
		shardMask: uint64(numShards - 1),
	}
}

func (s *Sharded[V]) shard(key uint64) *TTL[uint64, V] {
	return s.shards[key&s.shardMask]
}

// Get retrieves a value from the owning shard.
func (s *Sharded[V]) Get(key uint64) (V, bool) {
	return s.shard(key).Get(key)
}

// Set stores a value in the owning shard.
func (s *Sharded[V]) Set(key uint64, value V) {
	s.shard(key).Set(key, value)
}

// Invalidate removes a key from the owning shard.
func (s *Sharded[V]) Invalidate(key uint64) {
	s.shard(key).Invalidate(key)
}

// Clear empties every shard.
func (s *Sharded[V]) Clear() {
	for _, sh := range s.shards {
		sh.Clear()
	}
}

// Stop shuts down every shard.
func (s *Sharded[V]) Stop() {
	for _, sh := range s.shards {
		sh.Stop()
	}
}

// Metrics aggregates shard metrics.
func (s *Sharded[V]) Metrics() Metrics {
	var total Metrics
	for _, sh := range s.shards {
		m := sh.Metrics()
		total.Hits += m.Hits
		total.Misses += m.Misses
		total.Evictions += m.Evictions
		total.Size += m.Size
		total.Capacity += m.Capacity
	}
	return total
}
