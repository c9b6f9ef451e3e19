// Package index implements the primary index of spec.md §4.2: a chained,
// power-of-two-bucketed hash index keyed by a precomputed key fingerprint
// plus full-key equality. It owns every live entry.
package index

import (
	"bytes"

	"github.com/corekv/corekv/internal/entry"
)

// DefaultInitialBuckets is the contract-level initial bucket count
// (spec.md §6): 2^20, a power of two.
const DefaultInitialBuckets = 1 << 20

// LoadFactor is the contract-level rehash threshold (spec.md §6).
const LoadFactor = 0.75

// Primary is the chained hash index. The zero value is not usable; use
// New.
type Primary struct {
	buckets []*entry.Entry
	mask    uint64
	size    int
	initCap int
	loadFac float64
}

// New returns a Primary index with the given initial bucket count (rounded
// up to a power of two; DefaultInitialBuckets if <= 0) and load factor
// (LoadFactor if <= 0).
func New(initialBuckets int, loadFactor float64) *Primary {
	if initialBuckets <= 0 {
		initialBuckets = DefaultInitialBuckets
	}
	if loadFactor <= 0 {
		loadFactor = LoadFactor
	}
	n := nextPowerOfTwo(initialBuckets)
	return &Primary{
		buckets: make([]*entry.Entry, n),
		mask:    uint64(n - 1),
		initCap: n,
		loadFac: loadFactor,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}

// Size returns the number of entries currently indexed.
func (p *Primary) Size() int { return p.size }

// BucketCount returns the current bucket count.
func (p *Primary) BucketCount() int { return len(p.buckets) }

func (p *Primary) bucketIndex(hash uint64) uint64 { return hash & p.mask }

// Lookup returns the entry matching (key, hash) by fingerprint equality
// then full byte equality, or nil.
func (p *Primary) Lookup(key []byte, hash uint64) *entry.Entry {
	for e := p.buckets[p.bucketIndex(hash)]; e != nil; e = e.Next {
		if e.KeyHash() == hash && bytes.Equal(e.Key(), key) {
			return e
		}
	}
	return nil
}

// Insert links a fresh entry into its bucket. It does not check for
// duplicates; the caller (the store facade) is responsible for locating
// and removing any prior entry with the same key first. It does not
// rehash; the caller invokes MaybeRehash afterwards.
func (p *Primary) Insert(e *entry.Entry) {
	idx := p.bucketIndex(e.KeyHash())
	e.Next = p.buckets[idx]
	p.buckets[idx] = e
	p.size++
}

// Erase unlinks and returns the entry matching (key, hash), or nil if
// absent.
func (p *Primary) Erase(key []byte, hash uint64) *entry.Entry {
	idx := p.bucketIndex(hash)
	var prev *entry.Entry
	for e := p.buckets[idx]; e != nil; e = e.Next {
		if e.KeyHash() == hash && bytes.Equal(e.Key(), key) {
			if prev == nil {
				p.buckets[idx] = e.Next
			} else {
				prev.Next = e.Next
			}
			e.Next = nil
			p.size--
			return e
		}
		prev = e
	}
	return nil
}

// MaybeRehash doubles the bucket count and redistributes every entry if
// size has crossed loadFactor * bucketCount. It is a single synchronous
// rebucketing, never amortized, and never shrinks. Growth is best-effort:
// spec.md §7 requires rehash failures to leave the store usable at the old
// capacity, so callers that want to simulate allocation failure should not
// call MaybeRehash rather than have it fail loudly — there is no allocator
// indirection to fail through in a garbage-collected runtime.
func (p *Primary) MaybeRehash() {
	threshold := p.loadFac * float64(len(p.buckets))
	if float64(p.size) < threshold {
		return
	}
	newN := len(p.buckets) * 2
	newBuckets := make([]*entry.Entry, newN)
	newMask := uint64(newN - 1)
	for _, head := range p.buckets {
		for e := head; e != nil; {
			next := e.Next
			idx := e.KeyHash() & newMask
			e.Next = newBuckets[idx]
			newBuckets[idx] = e
			e = next
		}
	}
	p.buckets = newBuckets
	p.mask = newMask
}

// Reset empties the index without shrinking bucket storage.
func (p *Primary) Reset() {
	for i := range p.buckets {
		p.buckets[i] = nil
	}
	p.size = 0
}
