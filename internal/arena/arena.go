// Package arena provides a slab allocator for intrusive list nodes.
//
// Both eviction policies (policy/lfu, policy/lru) need per-key ordering
// nodes that outlive individual calls and are cross-linked by opaque
// handles rather than raw pointers — the entry's policy-handle (§3 of the
// cache spec) must survive being copied and compared without aliasing
// Go's garbage collector in cycles. An Arena holds nodes in a growable
// slice and recycles freed slots through a free-list, so handle reuse is
// the same "singly-linked free-list of reclaimed KeyNodes" the source
// algorithms already rely on, without giving callers a raw pointer to
// hold past a Free.
package arena

// Handle is an opaque, bounds-checked reference into an Arena. The zero
// value, NoHandle, never denotes a live node.
type Handle int32

// NoHandle is the reserved "unbound" handle value.
const NoHandle Handle = 0

// Arena is a growable slab of T with O(1) allocation and release.
// It is not safe for concurrent use — callers serialize access the same
// way the cache above it does (see cache package, §5).
type Arena[T any] struct {
	slots []T
	free  []Handle
	live  int
}

// Alloc reserves a slot, copies v into it, and returns its handle.
// Freed slots are reused LIFO before the slab grows.
func (a *Arena[T]) Alloc(v T) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[h-1] = v
		return h
	}
	a.slots = append(a.slots, v)
	return Handle(len(a.slots))
}

// At returns a pointer to the node addressed by h. It panics on a zero
// or out-of-range handle — such a handle can only reach here via a
// policy bug, never through ordinary cache misuse (§7).
func (a *Arena[T]) At(h Handle) *T {
	if h == NoHandle || int(h) > len(a.slots) {
		panic("arena: invalid handle")
	}
	return &a.slots[h-1]
}

// Free releases h back to the arena. The handle must not be dereferenced
// again afterwards; the slot may be recycled by a future Alloc.
func (a *Arena[T]) Free(h Handle) {
	a.At(h) // validates h before releasing it
	a.free = append(a.free, h)
	a.live--
}

// Live reports the number of currently allocated (non-freed) nodes.
// Used by allocation-accounting tests to verify no-leak behaviour.
func (a *Arena[T]) Live() int { return a.live }
