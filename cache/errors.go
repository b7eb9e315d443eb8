package cache

import "github.com/lookaside-cache/lookaside/policy"

// InvariantError is returned (via panic) when an internal invariant of
// the eviction substrate is violated — never for an ordinary miss. See
// §7's error taxonomy: the only fatal condition is an LRU MarkAccess
// whose handle disagrees with the key it was called with, which signals
// that the hash index and the policy's key set have drifted apart
// (invariant 1).
type InvariantError = policy.InvariantError
