package store

import "hash/fnv"

// KeyHash computes the 64-bit fingerprint callers must pass alongside a
// key to every facade operation (spec.md §6.1: "the store requires only
// that lookups and stored entries used the same function"). Grounded on
// the teacher's own fnv-based hashKey.
func KeyHash(key []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(key)
	return h.Sum64()
}
