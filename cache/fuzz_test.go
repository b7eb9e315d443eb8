//go:build go1.18

package cache

import "testing"

// Fuzz basic Insert/Lookup/Remove semantics under arbitrary string
// inputs, for both policies. Guards against panics and checks the
// round-trip and idempotent-insert properties (§8, properties 3 and 4).
func FuzzCache_InsertLookupRemove(f *testing.F) {
	f.Add("", "", false)
	f.Add("a", "1", false)
	f.Add("b", "2", true)
	f.Add("αβγ", "δ", true)
	f.Add("emoji🙂", "🙂🙂", false)

	f.Fuzz(func(t *testing.T, k, v string, useLRU bool) {
		const limit = 1 << 10
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		kind := LFU
		if useLRU {
			kind = LRU
		}
		c := New[string, string](Options[string, string]{Capacity: 16, Policy: kind})

		c.Insert(k, v)
		got, ok := c.Lookup(k)
		if !ok || got != v {
			t.Fatalf("after Insert/Lookup: want %q, got %q ok=%v", v, got, ok)
		}

		// Idempotent insert: must not overwrite.
		c.Insert(k, "other")
		if got2, ok := c.Lookup(k); !ok || got2 != v {
			t.Fatalf("after duplicate Insert: want %q, got %q ok=%v", v, got2, ok)
		}

		c.Remove(k)
		if _, ok := c.Lookup(k); ok {
			t.Fatalf("key must be absent after Remove")
		}

		// Insert after Remove must succeed again.
		c.Insert(k, v)
		if got3, ok := c.Lookup(k); !ok || got3 != v {
			t.Fatalf("after Insert following Remove: want %q, got %q ok=%v", v, got3, ok)
		}

		if c.Len() != c.pol.Len() {
			t.Fatalf("index/policy size mismatch: Len()=%d pol.Len()=%d", c.Len(), c.pol.Len())
		}
	})
}
