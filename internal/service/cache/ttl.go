package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/bundle-service/internal/metrics"
)

// TTL is a thread-safe LRU cache whose entries also expire after a fixed TTL.
type TTL[K comparable, V any] struct {
	name      string
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[K]*entry[K, V]
	head      *entry[K, V]
	tail      *entry[K, V]
	stopCh    chan struct{}
	stopOnce  sync.Once
	hits      int64
	misses    int64
	evictions int64
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *entry[K, V]
	next      *entry[K, V]
}

// NewTTL creates a TTL cache. name labels its Prometheus series.
// A background goroutine sweeps expired entries until Stop is called.
func NewTTL[K comparable, V any](name string, capacity int, ttl time.Duration) *TTL[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	c := &TTL[K, V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*entry[K, V], capacity),
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Stop shuts down the sweeper. It is safe to call more than once.
func (c *TTL[K, V]) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics returns current cache performance metrics.
func (c *TTL[K, V]) Metrics() Metrics {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()

	return Metrics{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      size,
		Capacity:  c.capacity,
	}
}

// Get returns the value for key when present and not expired.
func (c *TTL[K, V]) Get(key K) (V, bool) {
	var zero V

	c.mu.Lock()
	e, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "miss")
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		c.removeEntry(e)
		c.mu.Unlock()
		atomic.AddInt64(&c.misses, 1)
		metrics.RecordCacheOperation(c.name, "get", "expired")
		return zero, false
	}

	c.moveToFront(e)
	value := e.value
	c.mu.Unlock()

	atomic.AddInt64(&c.hits, 1)
	metrics.RecordCacheOperation(c.name, "get", "hit")
	return value, true
}

// Set adds or replaces a value. At capacity the least recently used entry is evicted.
func (c *TTL[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.items[key] = e
	c.addToFront(e)

	if len(c.items) > c.capacity {
		c.removeEntry(c.tail)
		atomic.AddInt64(&c.evictions, 1)
		metrics.RecordCacheOperation(c.name, "evict", "capacity")
	}
	metrics.RecordCacheOperation(c.name, "set", "success")
}

// Invalidate removes a specific key from the cache.
func (c *TTL[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.RecordCacheOperation(c.name, "invalidate", "success")
	}
}

// Clear removes all entries and resets the counters.
func (c *TTL[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V], c.capacity)
	c.head = nil
	c.tail = nil

	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)

	metrics.RecordCacheOperation(c.name, "clear", "success")
}

// startCleanup sweeps once a minute while the cache is more than 80% full.
func (c *TTL[K, V]) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			full := len(c.items) > c.capacity*80/100
			c.mu.Unlock()
			if full {
				c.cleanup()
			}
		case <-c.stopCh:
			return
		}
	}
}

func (c *TTL[K, V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	current := now()
	for _, e := range c.items {
		if current.After(e.expiresAt) {
			c.removeEntry(e)
		}
	}
}

func (c *TTL[K, V]) removeEntry(e *entry[K, V]) {
	delete(c.items, e.key)
	c.unlink(e)
}

func (c *TTL[K, V]) moveToFront(e *entry[K, V]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.addToFront(e)
}

func (c *TTL[K, V]) addToFront(e *entry[K, V]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *TTL[K, V]) unlink(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}
