package cache

import "github.com/lookaside-cache/lookaside/policy"

// PolicyKind selects one of the two eviction policies. The zero value,
// LFU, is the documented build-time default (§6 of the spec).
type PolicyKind = policy.Kind

const (
	LFU = policy.LFU
	LRU = policy.LRU
)

// DefaultCapacity is the capacity NewDefault builds with. New does not
// apply it implicitly: Options.Capacity's zero value is a legal,
// deliberately zero-sized cache (§9 Open Question resolution), not an
// "unset" sentinel, so callers who want the default ask for it by name.
const DefaultCapacity = 1024

// Options configures a Cache at construction time. The zero value selects
// LFU with a zero-entry cache (Insert becomes a permanent no-op); callers
// almost always want to set Capacity explicitly.
type Options[K comparable, V any] struct {
	// Capacity bounds the number of resident entries. Must be >= 0; New
	// panics on a negative value. Zero is legal (§9 Open Question).
	Capacity int

	// Policy selects LFU or LRU. Zero value is LFU.
	Policy PolicyKind

	// Metrics receives Hit/Miss/Eviction ticks. Nil is legal and
	// equivalent to NoopMetrics (the external stats sink is optional,
	// per §6 "a null sink is legal and suppresses accounting").
	Metrics Metrics
}
