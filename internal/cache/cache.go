package cache

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe LRU cache with a fixed capacity. When an insert
// exceeds the capacity the least recently used entry is removed and passed
// to the eviction callback.
//
// Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	pending  map[K]*pending[V]
	capacity int
	onEvict  func(K, V)

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most capacity entries. A capacity of 0
// or less means unlimited. onEvict may be nil.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: capacity,
		onEvict:  onEvict,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	var value V
	node, ok := c.entries[key]
	if ok {
		c.order.moveToFront(node)
		value = node.value
	}
	c.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		return value, false
	}
	c.hits.Add(1)
	return value, true
}

// Set stores value under key, replacing any previous value. A replaced
// value is passed to the eviction callback.
func (c *Cache[K, V]) Set(key K, value V) {
	var evicted []*lruNode[K, V]

	c.mu.Lock()
	if node, ok := c.entries[key]; ok {
		old := *node
		node.value = value
		c.order.moveToFront(node)
		evicted = append(evicted, &old)
	} else {
		node := &lruNode[K, V]{key: key, value: value}
		c.entries[key] = node
		c.order.pushFront(node)
		evicted = c.trim()
	}
	c.mu.Unlock()

	c.evict(evicted)
}

// GetOrCreate returns the cached value for key or stores the result of
// create. create runs without the cache lock held, so lookups of other keys
// proceed during a slow create; concurrent callers for the same key wait
// for the one in-flight create and share its result. A create error is
// returned to every waiter and nothing is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	if node, ok := c.entries[key]; ok {
		c.order.moveToFront(node)
		value := node.value
		c.mu.Unlock()
		c.hits.Add(1)
		return value, nil
	}
	if p, ok := c.pending[key]; ok {
		c.mu.Unlock()
		<-p.done
		if p.err == nil {
			c.hits.Add(1)
		}
		return p.value, p.err
	}
	c.misses.Add(1)
	p := &pending[V]{done: make(chan struct{})}
	if c.pending == nil {
		c.pending = make(map[K]*pending[V])
	}
	c.pending[key] = p
	c.mu.Unlock()

	var evicted []*lruNode[K, V]
	defer func() {
		if !p.created {
			p.err = errCreatePanicked
		}
		c.mu.Lock()
		delete(c.pending, key)
		if node, ok := c.entries[key]; ok && p.err == nil {
			// Set during create; the created value wins.
			old := *node
			node.value = p.value
			c.order.moveToFront(node)
			evicted = append(evicted, &old)
		} else if p.err == nil {
			node := &lruNode[K, V]{key: key, value: p.value}
			c.entries[key] = node
			c.order.pushFront(node)
			evicted = c.trim()
		}
		c.mu.Unlock()
		close(p.done)
		c.evict(evicted)
	}()

	p.value, p.err = create()
	p.created = true
	return p.value, p.err
}

// errCreatePanicked is returned to waiters whose shared create panicked.
var errCreatePanicked = errors.New("cache: create panicked")

// pending is a create call in flight. done is closed once value and err
// are final.
type pending[V any] struct {
	done    chan struct{}
	value   V
	err     error
	created bool
}

// Delete removes key without calling the eviction callback.
// Returns true if the entry was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.unlink(node)
	delete(c.entries, key)
	return true
}

// Clear removes every entry, passing each to the eviction callback.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var evicted []*lruNode[K, V]
	for node := c.order.removeOldest(); node != nil; node = c.order.removeOldest() {
		evicted = append(evicted, node)
	}
	c.entries = make(map[K]*lruNode[K, V])
	c.mu.Unlock()

	c.evict(evicted)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	s := Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// trim removes least recently used entries past capacity.
// Caller must hold c.mu.
func (c *Cache[K, V]) trim() []*lruNode[K, V] {
	if c.capacity <= 0 {
		return nil
	}
	var out []*lruNode[K, V]
	for c.order.len > c.capacity {
		node := c.order.removeOldest()
		delete(c.entries, node.key)
		out = append(out, node)
	}
	return out
}

// evict runs the callback outside the lock.
func (c *Cache[K, V]) evict(nodes []*lruNode[K, V]) {
	c.evictions.Add(uint64(len(nodes)))
	if c.onEvict == nil {
		return
	}
	for _, n := range nodes {
		c.onEvict(n.key, n.value)
	}
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	// HitRate is Hits / (Hits + Misses), 0 when there were no lookups.
	HitRate float64
}
