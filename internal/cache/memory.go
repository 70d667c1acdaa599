package cache

import (
	"container/list"
	"sync"
	"time"
)

// memEntry holds a cached value with expiration and LRU tracking.
type memEntry[V any] struct {
	key       any
	value     V
	expiresAt time.Time
	elem      *list.Element // position in LRU list
}

// Memory is a thread-safe, TTL-aware LRU cache. Entries expire after
// their TTL and the oldest entries are evicted once capacity is reached.
type Memory[K comparable, V any] struct {
	mu sync.Mutex

	defaultTTL time.Duration
	maxEntries int

	lru  *list.List           // front = oldest, back = newest
	data map[K]*memEntry[V]
}

// NewMemory creates a memory cache holding at most maxEntries values,
// each valid for defaultTTL unless Set overrides it.
func NewMemory[K comparable, V any](maxEntries int, defaultTTL time.Duration) *Memory[K, V] {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &Memory[K, V]{
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		lru:        list.New(),
		data:       map[K]*memEntry[V]{},
	}
}

// Get retrieves a value. Expired entries are removed and count as misses.
func (c *Memory[K, V]) Get(key K) (V, bool) {
	var zero V
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.data[key]
	if e == nil {
		return zero, false
	}
	if !e.expiresAt.After(now) {
		c.lru.Remove(e.elem)
		delete(c.data, key)
		return zero, false
	}
	c.lru.MoveToBack(e.elem)
	return e.value, true
}

// Set stores a value with the cache's default TTL.
func (c *Memory[K, V]) Set(key K, val V) {
	c.SetTTL(key, val, c.defaultTTL)
}

// SetTTL stores a value with an explicit TTL. Non-positive TTLs are not
// stored.
func (c *Memory[K, V]) SetTTL(key K, val V, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	expires := time.Now().Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.data[key]; ok {
		e.value = val
		e.expiresAt = expires
		c.lru.MoveToBack(e.elem)
		return
	}

	for len(c.data) >= c.maxEntries {
		oldest := c.lru.Front()
		if oldest == nil {
			break
		}
		old := oldest.Value.(*memEntry[V])
		c.lru.Remove(oldest)
		delete(c.data, old.key.(K))
	}

	e := &memEntry[V]{key: key, value: val, expiresAt: expires}
	e.elem = c.lru.PushBack(e)
	c.data[key] = e
}

// Len reports the number of live entries (including not-yet-collected
// expired ones).
func (c *Memory[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}
