package cache

import (
	"github.com/lookaside-cache/lookaside/policy"
	"github.com/lookaside-cache/lookaside/policy/lfu"
	"github.com/lookaside-cache/lookaside/policy/lru"
)

// entry is the unit stored in the hash index (§3 "CacheEntry"). The
// policy-handle is written by the policy on insertion and read back by
// the policy on access/removal; Cache itself never dereferences it.
type entry[K comparable, V any] struct {
	value  V
	handle policy.Handle
}

// Cache is a fixed-capacity, in-memory look-aside key/value cache with a
// pluggable eviction policy. It offers no internal synchronization: all
// operations must be externally serialized by the host (§5). See the
// package doc for usage.
type Cache[K comparable, V any] struct {
	index    map[K]*entry[K, V]
	capacity int
	pol      policy.Policy[K]
	metrics  Metrics
}

// New constructs a Cache per opt. It panics if Capacity is negative;
// Capacity == 0 is accepted and produces a cache that never admits a new
// key (§9 Open Question). A nil Metrics is replaced with NoopMetrics.
func New[K comparable, V any](opt Options[K, V]) *Cache[K, V] {
	if opt.Capacity < 0 {
		panic("cache: Capacity must be >= 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	var pol policy.Policy[K]
	switch opt.Policy {
	case LRU:
		pol = lru.New[K]()
	default:
		pol = lfu.New[K]()
	}

	return &Cache[K, V]{
		index:    make(map[K]*entry[K, V], opt.Capacity),
		capacity: opt.Capacity,
		pol:      pol,
		metrics:  opt.Metrics,
	}
}

// NewDefault builds a Cache with DefaultCapacity entries and the LFU
// policy — the documented zero-configuration default (§6).
func NewDefault[K comparable, V any]() *Cache[K, V] {
	return New[K, V](Options[K, V]{Capacity: DefaultCapacity})
}

// Lookup returns the value stored for key and true, or the zero value and
// false if key is absent. On a hit it records an access with the policy
// and ticks EventHit; on a miss it ticks EventMiss.
func (c *Cache[K, V]) Lookup(key K) (V, bool) {
	e, ok := c.probe(key, true)
	if !ok {
		var zero V
		return zero, false
	}
	c.pol.MarkAccess(key, e.handle)
	return e.value, true
}

// Insert admits key/value only if key is not already present. If the
// index is at capacity, it evicts victims (in a loop, per §4.1's capacity
// rule) until there is room, ticking EventEviction for each. Insert is
// idempotent: inserting an already-present key is a silent no-op and does
// not touch its value, its recency, or its LFU frequency.
func (c *Cache[K, V]) Insert(key K, value V) {
	if _, ok := c.probe(key, false); ok {
		return
	}
	c.insertNew(key, value)
}

// Update inserts key/value if key is absent (identical to Insert), or
// replaces the stored value in place and records an access if key is
// already present. Update is the only operation that mutates an existing
// entry's value.
func (c *Cache[K, V]) Update(key K, value V) {
	e, ok := c.probe(key, false)
	if !ok {
		c.insertNew(key, value)
		return
	}
	e.value = value
	c.pol.MarkAccess(key, e.handle)
}

// Remove deletes key if present. It is a silent no-op on an unknown key.
// Unlike capacity-driven evictions, an explicit Remove does not tick
// EventEviction — it is a host-directed deletion, not a policy decision.
func (c *Cache[K, V]) Remove(key K) {
	e, ok := c.index[key]
	if !ok {
		return
	}
	c.pol.EvictAt(e.handle)
	delete(c.index, key)
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int { return len(c.index) }

// probe looks up key without recording an access, ticking EventHit on
// presence and, if countMiss is true, EventMiss on absence. It backs
// Insert/Update's idempotent presence check (which must not itself count
// as a miss when the key turns out to be absent) as well as Lookup.
func (c *Cache[K, V]) probe(key K, countMiss bool) (*entry[K, V], bool) {
	e, ok := c.index[key]
	if ok {
		c.metrics.RecordTick(EventHit)
		return e, true
	}
	if countMiss {
		c.metrics.RecordTick(EventMiss)
	}
	return nil, false
}

// insertNew admits a key known not to be present yet: evict down to
// capacity, then install the entry — or leave the cache untouched if
// capacity is 0 or eviction could not make room.
func (c *Cache[K, V]) insertNew(key K, value V) {
	for len(c.index) >= c.capacity {
		victim, ok := c.pol.Evict()
		if !ok {
			break
		}
		delete(c.index, victim)
		c.metrics.RecordTick(EventEviction)
	}
	if len(c.index) >= c.capacity {
		return
	}
	h := c.pol.MarkInsertion(key)
	c.index[key] = &entry[K, V]{value: value, handle: h}
}
