// Package lfu implements the constant-time LFU eviction policy of
// Shah/Mitra/Matani: a doubly-linked list of frequency buckets, sorted
// ascending by frequency, each owning a doubly-linked list of the keys
// currently observed at that frequency.
package lfu

import (
	"github.com/lookaside-cache/lookaside/internal/arena"
	"github.com/lookaside-cache/lookaside/policy"
)

type keyNode[K comparable] struct {
	key  K
	prev arena.Handle // sibling within the owning bucket's key list
	next arena.Handle
	freq arena.Handle // owning frequencyNode
}

type frequencyNode struct {
	frequency uint64
	prev      arena.Handle // neighbours in the ascending frequency list
	next      arena.Handle
	keys      arena.Handle // head of this bucket's key list (newest)
	tail      arena.Handle // tail of this bucket's key list (oldest)
}

// Policy is a per-key LFU ordering structure. The zero value is not
// usable; construct with New.
type Policy[K comparable] struct {
	keys  arena.Arena[keyNode[K]]
	freqs arena.Arena[frequencyNode]
	head  arena.Handle // minimum-frequency bucket, NoHandle if empty
}

// New constructs an empty LFU policy for key type K.
func New[K comparable]() *Policy[K] {
	return &Policy[K]{}
}

var _ policy.Policy[string] = (*Policy[string])(nil)

// MarkInsertion allocates a KeyNode for key at frequency 1, creating a
// frequency-1 bucket at the head of the list if one does not already
// exist there (invariant 4: the frequency list has no duplicate
// frequencies).
func (p *Policy[K]) MarkInsertion(key K) policy.Handle {
	fh := p.head
	if fh == policy.NoHandle || p.freqs.At(fh).frequency != 1 {
		fh = p.newFrequencyAtHead(1)
	}
	kh := p.keys.Alloc(keyNode[K]{freq: fh})
	kn := p.keys.At(kh)
	kn.key = key
	p.prependKey(fh, kh)
	return kh
}

// MarkAccess promotes the key bound to h into the next frequency bucket,
// creating that bucket if it does not already follow the current one
// (property 10: MarkAccess strictly increments the bucket index).
// It then frees the source bucket if it has become empty (invariant 5).
func (p *Policy[K]) MarkAccess(_ K, h policy.Handle) {
	kn := p.keys.At(h)
	fh := kn.freq
	f := p.freqs.At(fh)

	var targetFh policy.Handle
	if f.next == policy.NoHandle || p.freqs.At(f.next).frequency != f.frequency+1 {
		// newFrequencyAfter may grow the frequency slab and invalidate f;
		// everything below re-fetches fh fresh via p.freqs.At, never f.
		targetFh = p.newFrequencyAfter(fh, f.frequency+1)
	} else {
		targetFh = f.next
	}

	p.removeKeyFromBucket(fh, h)
	p.prependKey(targetFh, h)
	kn.freq = targetFh

	if p.freqs.At(fh).keys == policy.NoHandle {
		p.freeFrequency(fh)
	}
}

// Evict removes the oldest-inserted key at the minimum frequency — the
// tail of the head bucket's key list (invariant 6, property 9) — and
// frees its bucket if it is now empty.
func (p *Policy[K]) Evict() (key K, ok bool) {
	if p.head == policy.NoHandle {
		var zero K
		return zero, false
	}
	fh := p.head
	kh := p.freqs.At(fh).tail
	kn := p.keys.At(kh)
	key = kn.key

	p.removeKeyFromBucket(fh, kh)
	p.keys.Free(kh)
	if p.freqs.At(fh).keys == policy.NoHandle {
		p.freeFrequency(fh)
	}
	return key, true
}

// EvictAt removes the entry addressed by h regardless of its bucket,
// splicing it out of its own bucket's key list (never the head bucket's,
// unless h happens to live there) and freeing that bucket if it empties.
func (p *Policy[K]) EvictAt(h policy.Handle) (key K, ok bool) {
	if h == policy.NoHandle {
		var zero K
		return zero, false
	}
	kn := p.keys.At(h)
	key = kn.key
	fh := kn.freq

	p.removeKeyFromBucket(fh, h)
	p.keys.Free(h)
	if p.freqs.At(fh).keys == policy.NoHandle {
		p.freeFrequency(fh)
	}
	return key, true
}

// Len reports the number of keys currently tracked.
func (p *Policy[K]) Len() int { return p.keys.Live() }

// FrequencyOf reports the current access frequency for the key addressed
// by h. It is a read-only diagnostic used by tests, not part of the
// portable eviction-substrate contract.
func (p *Policy[K]) FrequencyOf(h policy.Handle) (uint64, bool) {
	if h == policy.NoHandle {
		return 0, false
	}
	kn := p.keys.At(h)
	return p.freqs.At(kn.freq).frequency, true
}

// ---- internal list maintenance ----

// prependKey inserts kh at the head of fh's key list.
func (p *Policy[K]) prependKey(fh, kh policy.Handle) {
	f := p.freqs.At(fh)
	kn := p.keys.At(kh)
	kn.freq = fh
	kn.prev = policy.NoHandle
	kn.next = f.keys
	if f.keys != policy.NoHandle {
		p.keys.At(f.keys).prev = kh
	} else {
		f.tail = kh
	}
	f.keys = kh
}

// removeKeyFromBucket splices kh out of fh's key list.
func (p *Policy[K]) removeKeyFromBucket(fh, kh policy.Handle) {
	kn := p.keys.At(kh)
	f := p.freqs.At(fh)

	if kn.prev != policy.NoHandle {
		p.keys.At(kn.prev).next = kn.next
	} else {
		f.keys = kn.next
	}
	if kn.next != policy.NoHandle {
		p.keys.At(kn.next).prev = kn.prev
	} else {
		f.tail = kn.prev
	}
	kn.prev, kn.next = policy.NoHandle, policy.NoHandle
}

// newFrequencyAtHead allocates a frequency bucket and splices it in as
// the new head of the frequency list.
func (p *Policy[K]) newFrequencyAtHead(frequency uint64) policy.Handle {
	old := p.head
	fh := p.freqs.Alloc(frequencyNode{frequency: frequency, keys: policy.NoHandle})
	f := p.freqs.At(fh)
	f.prev = policy.NoHandle
	f.next = old
	if old != policy.NoHandle {
		p.freqs.At(old).prev = fh
	}
	p.head = fh
	return fh
}

// newFrequencyAfter allocates a frequency bucket and splices it in
// immediately after fh. Alloc may grow the freqs arena's backing slice,
// invalidating any *frequencyNode obtained before the call, so fh's node
// is re-fetched with a fresh At(fh) after Alloc rather than reused
// across it.
func (p *Policy[K]) newFrequencyAfter(fh policy.Handle, frequency uint64) policy.Handle {
	oldNext := p.freqs.At(fh).next
	newH := p.freqs.Alloc(frequencyNode{frequency: frequency, keys: policy.NoHandle})
	nf := p.freqs.At(newH)
	nf.prev = fh
	nf.next = oldNext
	if oldNext != policy.NoHandle {
		p.freqs.At(oldNext).prev = newH
	}
	p.freqs.At(fh).next = newH
	return newH
}

// freeFrequency unlinks and frees an empty bucket, fixing up the head
// pointer if it was the minimum-frequency bucket (the transient
// EmptyOnRemoval state of §4.2 must not survive past this call).
func (p *Policy[K]) freeFrequency(fh policy.Handle) {
	f := p.freqs.At(fh)
	if f.prev != policy.NoHandle {
		p.freqs.At(f.prev).next = f.next
	} else {
		p.head = f.next
	}
	if f.next != policy.NoHandle {
		p.freqs.At(f.next).prev = f.prev
	}
	p.freqs.Free(fh)
}
