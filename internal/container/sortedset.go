package container

import (
	"github.com/tidwall/btree"
)

// ZItem is one (member, score) pair of a SortedSet, in rank order.
type ZItem struct {
	Member string
	Score  float64
}

func lessZItem(a, b ZItem) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Member < b.Member
}

// SortedSet is a set of members ordered by an associated float64 score,
// backed by a tidwall/btree.BTreeG the same way cometkv orders its
// ephemeral memtable (pkg/memtable/hwt_btree) — a companion map gives O(1)
// score lookups without walking the tree.
type SortedSet struct {
	tree   *btree.BTreeG[ZItem]
	scores map[string]float64
}

// NewSortedSet returns an empty SortedSet.
func NewSortedSet() *SortedSet {
	return &SortedSet{
		tree:   btree.NewBTreeG(lessZItem),
		scores: make(map[string]float64),
	}
}

// Len returns the number of members.
func (s *SortedSet) Len() int {
	return len(s.scores)
}

// Add inserts or re-scores member, reporting whether it is new.
func (s *SortedSet) Add(member string, score float64) bool {
	if old, existed := s.scores[member]; existed {
		if old == score {
			return false
		}
		s.tree.Delete(ZItem{Member: member, Score: old})
		s.tree.Set(ZItem{Member: member, Score: score})
		s.scores[member] = score
		return false
	}
	s.tree.Set(ZItem{Member: member, Score: score})
	s.scores[member] = score
	return true
}

// Score returns member's score, if present.
func (s *SortedSet) Score(member string) (float64, bool) {
	sc, ok := s.scores[member]
	return sc, ok
}

// Remove deletes member, reporting whether it was present.
func (s *SortedSet) Remove(member string) bool {
	sc, ok := s.scores[member]
	if !ok {
		return false
	}
	delete(s.scores, member)
	s.tree.Delete(ZItem{Member: member, Score: sc})
	return true
}

// Range returns the inclusive [start, stop] rank range in ascending score
// order, supporting negative indices counted from the end.
func (s *SortedSet) Range(start, stop int) []ZItem {
	n := s.tree.Len()
	if n == 0 {
		return []ZItem{}
	}
	if start < 0 {
		start = n + start
	}
	if stop < 0 {
		stop = n + stop
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return []ZItem{}
	}
	out := make([]ZItem, 0, stop-start+1)
	idx := 0
	s.tree.Scan(func(item ZItem) bool {
		if idx > stop {
			return false
		}
		if idx >= start {
			out = append(out, item)
		}
		idx++
		return true
	})
	return out
}

// RangeByScore returns members whose score lies within [min, max].
func (s *SortedSet) RangeByScore(min, max float64) []ZItem {
	out := []ZItem{}
	s.tree.Ascend(ZItem{Score: min}, func(item ZItem) bool {
		if item.Score > max {
			return false
		}
		if item.Score >= min {
			out = append(out, item)
		}
		return true
	})
	return out
}
