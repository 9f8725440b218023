// Package cache provides in-process TTL/LRU caches for derived bundle views,
// upstream catalog snapshots and replayed idempotent responses.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// Cache defines the interface for cache operations.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Invalidate(key K)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// WithMetrics extends Cache with metrics reporting.
type WithMetrics[K comparable, V any] interface {
	Cache[K, V]
	Metrics() Metrics
}

var (
	cachedTime     atomic.Value
	cachedTimeOnce sync.Once
)

// now returns a clock value refreshed every 100ms.
// It is only used for setting and sweeping expirations, never for Get.
func now() time.Time {
	cachedTimeOnce.Do(func() {
		cachedTime.Store(time.Now())
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			for t := range ticker.C {
				cachedTime.Store(t)
			}
		}()
	})
	if t, ok := cachedTime.Load().(time.Time); ok {
		return t
	}
	return time.Now()
}
