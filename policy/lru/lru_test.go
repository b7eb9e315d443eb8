package lru

import (
	"testing"

	"github.com/lookaside-cache/lookaside/policy"
)

// A freshly inserted key is MRU and thus survives an immediate Evict of
// anything else, and is itself the victim once nothing else is resident.
func TestLRU_MarkInsertion_PlacesAtHead(t *testing.T) {
	t.Parallel()

	p := New[string]()
	p.MarkInsertion("a")
	p.MarkInsertion("b") // b is now MRU, a is LRU (tail)

	key, ok := p.Evict()
	if !ok || key != "a" {
		t.Fatalf("Evict() = %q, %v; want a, true", key, ok)
	}
}

// Property 11: Evict returns the key whose last touch is earliest.
func TestLRU_MarkAccess_PromotesToMRU(t *testing.T) {
	t.Parallel()

	p := New[string]()
	hA := p.MarkInsertion("a")
	p.MarkInsertion("b")
	p.MarkInsertion("c") // order: c (MRU), b, a (LRU)

	p.MarkAccess("a", hA) // order: a (MRU), c, b (LRU)

	key, ok := p.Evict()
	if !ok || key != "b" {
		t.Fatalf("Evict() = %q, %v; want b, true", key, ok)
	}
}

// MarkAccess on the current head is a documented no-op.
func TestLRU_MarkAccess_AlreadyAtHead(t *testing.T) {
	t.Parallel()

	p := New[string]()
	p.MarkInsertion("a")
	hB := p.MarkInsertion("b") // b is MRU

	p.MarkAccess("b", hB) // no-op: already at head

	key, ok := p.Evict()
	if !ok || key != "a" {
		t.Fatalf("Evict() = %q, %v; want a, true", key, ok)
	}
}

// §7 "LRU handle mismatch": a handle whose stored key disagrees with the
// MarkAccess argument is a fatal invariant violation, not a soft miss.
func TestLRU_MarkAccess_HandleKeyMismatchPanics(t *testing.T) {
	t.Parallel()

	p := New[string]()
	hA := p.MarkInsertion("a")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on handle/key mismatch")
		}
		if _, ok := r.(*policy.InvariantError); !ok {
			t.Fatalf("expected *policy.InvariantError, got %T", r)
		}
	}()
	p.MarkAccess("not-a", hA)
}

func TestLRU_EvictAt_RemovesRegardlessOfPosition(t *testing.T) {
	t.Parallel()

	p := New[string]()
	p.MarkInsertion("a")
	hB := p.MarkInsertion("b")
	p.MarkInsertion("c") // order: c (MRU), b, a (LRU)

	key, ok := p.EvictAt(hB)
	if !ok || key != "b" {
		t.Fatalf("EvictAt(hB) = %q, %v; want b, true", key, ok)
	}

	// a is still the LRU victim; b must not reappear.
	key, ok = p.Evict()
	if !ok || key != "a" {
		t.Fatalf("Evict() = %q, %v; want a, true", key, ok)
	}
}

func TestLRU_Evict_EmptyPolicyReportsAbsent(t *testing.T) {
	t.Parallel()

	p := New[string]()
	if _, ok := p.Evict(); ok {
		t.Fatal("Evict() on an empty policy must report ok=false")
	}
}

func TestLRU_EvictAt_NoHandleReportsAbsent(t *testing.T) {
	t.Parallel()

	p := New[string]()
	if _, ok := p.EvictAt(policy.NoHandle); ok {
		t.Fatal("EvictAt(NoHandle) must report ok=false")
	}
}

func TestLRU_Len_TracksResidentKeys(t *testing.T) {
	t.Parallel()

	p := New[string]()
	p.MarkInsertion("a")
	p.MarkInsertion("b")
	p.Evict()

	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}
}

// Property 7 (no leaks): after a mixed sequence of insertions,
// promotions, evictions, and targeted removals, the keys reachable by
// walking the list from p.head equal both Len() and the keys arena's
// Live() count — no node left dangling off the list, none double-freed.
func TestLRU_ArenaAccounting_NoLeaksAcrossMixedSequence(t *testing.T) {
	t.Parallel()

	p := New[string]()
	handles := make(map[string]policy.Handle)

	for i := 0; i < 10; i++ {
		k := string(rune('a' + i))
		handles[k] = p.MarkInsertion(k)
	}
	for _, k := range []string{"c", "g", "a", "c"} {
		p.MarkAccess(k, handles[k])
	}
	p.Evict()
	p.Evict()
	p.EvictAt(handles["g"])
	for i := 10; i < 13; i++ {
		k := string(rune('a' + i))
		handles[k] = p.MarkInsertion(k)
	}

	var reachable int
	for h := p.head; h != policy.NoHandle; h = p.keys.At(h).next {
		reachable++
	}
	if reachable != p.Len() {
		t.Fatalf("reachable keys = %d, Len() = %d; a key is orphaned or double-linked", reachable, p.Len())
	}
	if reachable != p.keys.Live() {
		t.Fatalf("reachable keys = %d, keys arena Live() = %d", reachable, p.keys.Live())
	}
}
