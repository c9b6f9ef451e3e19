// Package expiry implements the expiration index of spec.md §4.3: a set of
// timer buckets over entries with finite deadlines. Membership is tracked
// through entry.Entry's expiryMember flag (its "expiry_link"), so an entry
// can never be double-inserted; the ordered structure itself is a
// tidwall/btree keyed by (deadline, key hash), the same dependency the
// cometkv pack member orders its memtable with.
package expiry

import (
	"github.com/alphadose/zenq/v2"
	"github.com/tidwall/btree"

	"github.com/corekv/corekv/internal/entry"
)

type item struct {
	deadline int64
	hash     uint64
	e        *entry.Entry
}

func less(a, b item) bool {
	if a.deadline != b.deadline {
		return a.deadline < b.deadline
	}
	return a.hash < b.hash
}

// Index is the expiration index. The zero value is not usable; use New.
type Index struct {
	tree *btree.BTreeG[item]
}

// New returns an empty Index.
func New() *Index {
	return &Index{tree: btree.NewBTreeG(less)}
}

// Size returns the number of entries with a finite deadline currently
// tracked.
func (x *Index) Size() int { return x.tree.Len() }

func (x *Index) minDeadline() (int64, bool) {
	it, ok := x.tree.Min()
	if !ok {
		return 0, false
	}
	return it.deadline, true
}

// Insert adds e, keyed by its current Expiry(), to the index. Re-inserting
// an entry already a member is a no-op with respect to membership, per
// spec.md §4.3. Returns whether this insertion lowered the earliest
// pending deadline — the caller must re-arm the timer exactly when true.
func (x *Index) Insert(e *entry.Entry) bool {
	if e.ExpiryMember() {
		return false
	}
	prevMin, hadMin := x.minDeadline()
	x.tree.Set(item{deadline: e.Expiry(), hash: e.KeyHash(), e: e})
	e.SetExpiryMember(true)
	newMin, _ := x.minDeadline()
	return !hadMin || newMin < prevMin
}

// Remove drops e from the index if it is a member. No-op otherwise.
func (x *Index) Remove(e *entry.Entry) {
	if !e.ExpiryMember() {
		return
	}
	x.tree.Delete(item{deadline: e.Expiry(), hash: e.KeyHash()})
	e.SetExpiryMember(false)
}

// Rekey updates e's position after its deadline changed while oldDeadline
// was still current in the index (the backing btree has no in-place
// re-keying operation, so this is a remove-then-insert per the
// recommendation in spec.md §4.3). Returns whether the earliest pending
// deadline changed.
func (x *Index) Rekey(e *entry.Entry, oldDeadline int64) bool {
	prevMin, hadMin := x.minDeadline()
	x.tree.Delete(item{deadline: oldDeadline, hash: e.KeyHash()})
	e.SetExpiryMember(false)
	x.Insert(e)
	newMin, _ := x.minDeadline()
	return !hadMin || newMin != prevMin
}

// NextTimeout returns the earliest pending deadline, or false if the
// index is empty (disarmed).
func (x *Index) NextTimeout() (int64, bool) { return x.minDeadline() }

// Expire drains every entry whose deadline is <= now, removing them from
// the index, and returns them as a batch. The drain runs through a
// zenq.ZenQ lock-free queue used purely as a FIFO buffer for the "local
// batch" spec.md §4.4 calls for — grounded on the same queue's use as a
// plain buffer in the cometkv pack member's benchmarks
// (pkg/b_memtable/segment_ring/segment_ring_test.go).
func (x *Index) Expire(now int64) []*entry.Entry {
	var due []item
	x.tree.Scan(func(it item) bool {
		if it.deadline > now {
			return false
		}
		due = append(due, it)
		return true
	})
	if len(due) == 0 {
		return nil
	}

	q := zenq.New[*entry.Entry](uint32(len(due)))
	for _, it := range due {
		x.tree.Delete(it)
		it.e.SetExpiryMember(false)
		q.Write(it.e)
	}
	out := make([]*entry.Entry, 0, len(due))
	for range due {
		e, _ := q.Read()
		out = append(out, e)
	}
	return out
}
