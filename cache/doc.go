// Package cache implements a fixed-capacity, in-memory look-aside
// key/value cache with a pluggable eviction policy (LFU or LRU).
//
// Design
//
//   - Concurrency: none. The cache offers no internal synchronization;
//     the host must externally serialize all operations. Concurrent
//     callers observing overlapping Lookup/Insert/Update/Remove are a
//     contract violation with undefined behaviour — there is no shard, no
//     mutex, and no atomic counter anywhere in this package.
//
//   - Storage: a single map[K]*entry for O(1) expected lookups, paired
//     with an eviction policy (package policy, implementations in
//     policy/lfu and policy/lru) that maintains the O(1) ordering
//     metadata needed to pick a victim. Each entry carries an opaque
//     policy-handle back into that ordering structure so access and
//     targeted removal never re-hash or re-scan.
//
//   - Policies: LFU (constant-time Shah/Mitra/Matani frequency buckets)
//     is the documented default; LRU (recency list) is selected via
//     Options.Policy. Both live behind the policy.Policy[K] interface and
//     are swapped at construction time — see policy/lfu and policy/lru.
//
//   - Capacity: counted in entries, never bytes or a caller-supplied
//     cost. Insert evicts in a loop until there is room, never a
//     single-shot check, so a policy could in principle reclaim more than
//     one entry per admission.
//
//   - Metrics: Options.Metrics receives RecordTick(Hit|Miss|Eviction). By
//     default NoopMetrics discards every tick; metrics/prom exports a
//     Prometheus adapter.
//
// Basic usage
//
//	c := cache.NewDefault[string, []byte]() // capacity 1024, LFU
//	c.Insert("a", []byte("1"))
//	if v, ok := c.Lookup("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Choosing LRU explicitly
//
//	c := cache.New[string, string](cache.Options[string, string]{
//	    Capacity: 1_000,
//	    Policy:   cache.LRU,
//	})
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "lookaside", "demo", nil)
//	c := cache.New[string, []byte](cache.Options[string, []byte]{
//	    Capacity: 10_000,
//	    Metrics:  m,
//	})
//
// Thread-safety & complexity
//
// Cache methods are NOT safe for concurrent use. Every operation is
// expected O(1): one map access plus a constant number of pointer fixes
// in the active policy's intrusive list(s).
package cache
