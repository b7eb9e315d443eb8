// Package lru implements the recency-ordered eviction policy: a single
// doubly-linked list with the most-recently-used key at the head and the
// least-recently-used key at the tail.
package lru

import (
	"github.com/lookaside-cache/lookaside/internal/arena"
	"github.com/lookaside-cache/lookaside/policy"
)

type keyNode[K comparable] struct {
	key  K
	prev arena.Handle
	next arena.Handle
}

// Policy is a per-key LRU ordering structure. The zero value is not
// usable; construct with New.
type Policy[K comparable] struct {
	keys arena.Arena[keyNode[K]]
	head arena.Handle // MRU
	tail arena.Handle // LRU (eviction victim)
}

// New constructs an empty LRU policy for key type K.
func New[K comparable]() *Policy[K] {
	return &Policy[K]{}
}

var _ policy.Policy[string] = (*Policy[string])(nil)

// MarkInsertion allocates a KeyNode for key and places it at MRU.
func (p *Policy[K]) MarkInsertion(key K) policy.Handle {
	h := p.keys.Alloc(keyNode[K]{key: key})
	p.insertFront(h)
	return h
}

// MarkAccess promotes the node addressed by h to MRU. If it is already
// at the head, it is a no-op (invariant 8 already holds). A handle whose
// stored key disagrees with the argument key is a fatal invariant
// violation (§7 "LRU handle mismatch") — it means the entry map and the
// policy's node set have drifted apart.
func (p *Policy[K]) MarkAccess(key K, h policy.Handle) {
	kn := p.keys.At(h)
	if kn.key != key {
		panic(&policy.InvariantError{Msg: "lru: MarkAccess handle/key mismatch"})
	}
	if h == p.head {
		return
	}
	p.unlink(h)
	p.insertFront(h)
}

// Evict removes and returns the least-recently-used key (the tail).
func (p *Policy[K]) Evict() (key K, ok bool) {
	if p.tail == policy.NoHandle {
		var zero K
		return zero, false
	}
	return p.evictNode(p.tail)
}

// EvictAt removes the specific entry addressed by h, wherever it sits in
// the recency order.
func (p *Policy[K]) EvictAt(h policy.Handle) (key K, ok bool) {
	if h == policy.NoHandle {
		var zero K
		return zero, false
	}
	return p.evictNode(h)
}

// Len reports the number of keys currently tracked.
func (p *Policy[K]) Len() int { return p.keys.Live() }

func (p *Policy[K]) evictNode(h policy.Handle) (key K, ok bool) {
	kn := p.keys.At(h)
	key = kn.key
	p.unlink(h)
	p.keys.Free(h)
	return key, true
}

// insertFront splices h in at the head of the list, displacing the
// previous head's prev link (the bug the source's iterations sometimes
// forget, per §9's design note).
func (p *Policy[K]) insertFront(h policy.Handle) {
	kn := p.keys.At(h)
	kn.prev = policy.NoHandle
	kn.next = p.head
	if p.head != policy.NoHandle {
		p.keys.At(p.head).prev = h
	}
	p.head = h
	if p.tail == policy.NoHandle {
		p.tail = h
	}
}

// unlink splices h out of the list, fixing up both neighbours (or the
// head/tail pointers when h sits at either end).
func (p *Policy[K]) unlink(h policy.Handle) {
	kn := p.keys.At(h)
	if kn.prev != policy.NoHandle {
		p.keys.At(kn.prev).next = kn.next
	} else {
		p.head = kn.next
	}
	if kn.next != policy.NoHandle {
		p.keys.At(kn.next).prev = kn.prev
	} else {
		p.tail = kn.prev
	}
	kn.prev, kn.next = policy.NoHandle, policy.NoHandle
}
