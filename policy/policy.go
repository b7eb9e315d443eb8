// Package policy defines the ordering-substrate contract shared by the
// two eviction policies (policy/lfu, policy/lru) and the handle vocabulary
// the cache façade uses to talk to whichever one is active.
//
// A Policy never sees values, only keys and the opaque handles it hands
// back to the façade — the façade never dereferences a handle itself
// (see the cache package's invariants).
package policy

import "github.com/lookaside-cache/lookaside/internal/arena"

// Handle is the opaque back-pointer an entry carries into a policy's
// ordering structure ("policy-handle" in the cache spec). It is written
// by MarkInsertion and consumed by MarkAccess/EvictAt.
type Handle = arena.Handle

// NoHandle is the sentinel for "this entry was never bound to a policy
// node" — EvictAt on it must report absence, not panic.
const NoHandle = arena.NoHandle

// Policy is the O(1) ordering substrate a cache façade composes with its
// hash index. Implementations (lfu.New, lru.New) are not safe for
// concurrent use; the façade above them owns serialization (or, per this
// module's spec, declines to provide any).
type Policy[K comparable] interface {
	// MarkInsertion records a brand-new key and returns the handle the
	// façade must store on the entry.
	MarkInsertion(key K) Handle

	// MarkAccess records a read or in-place update of key, identified by
	// its handle. Implementations may treat a handle/key mismatch as a
	// fatal invariant violation (see InvariantError).
	MarkAccess(key K, h Handle)

	// Evict selects and removes the current victim, returning its key.
	// ok is false only when the policy holds no keys.
	Evict() (key K, ok bool)

	// EvictAt removes the specific entry addressed by h, regardless of
	// whether it would otherwise be the chosen victim. ok is false when h
	// is NoHandle.
	EvictAt(h Handle) (key K, ok bool)

	// Len reports the number of keys currently tracked by the policy.
	Len() int
}

// Kind selects one of the two eviction policies at construction time.
// The zero value is LFU.
type Kind int

const (
	LFU Kind = iota
	LRU
)

// String renders the policy kind for logs and CLI flags.
func (k Kind) String() string {
	switch k {
	case LFU:
		return "lfu"
	case LRU:
		return "lru"
	default:
		return "unknown"
	}
}

// InvariantError signals that an internal invariant of the ordering
// substrate was violated — a programming error (in this module, a
// mismatched key on LRU MarkAccess), never a best-effort miss. Invalid
// arena handles panic with a plain message from internal/arena instead.
// Cache
// operations that can fail in the ordinary course of use return
// (zero, false); this type is reserved for conditions that indicate the
// cache or a caller broke the contract in §3/§7 of the spec.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string { return "lookaside: " + e.Msg }
