// Package container implements the value containers the store's Entry
// payloads are built from: List, Dict (used for both hash and set kinds),
// SortedSet and Blob. These are the "external collaborators" of spec.md
// §2.1 — the store only requires construct-empty, size, and the mutation
// primitives a command layer would exercise; it never enumerates their
// contents itself.
package container

import (
	"container/list"

	"golang.org/x/exp/slices"
)

// List is an ordered sequence of byte-string elements, backed by the
// standard library's doubly linked container/list so push/pop at either
// end is O(1).
type List struct {
	l *list.List
}

// NewList returns an empty List.
func NewList() *List {
	return &List{l: list.New()}
}

// Len returns the number of elements.
func (l *List) Len() int {
	return l.l.Len()
}

// PushFront prepends values, left to right, so the last value ends up
// closest to the front (matching Redis LPUSH semantics).
func (l *List) PushFront(values ...[]byte) int {
	for _, v := range values {
		l.l.PushFront(v)
	}
	return l.l.Len()
}

// PushBack appends values in order.
func (l *List) PushBack(values ...[]byte) int {
	for _, v := range values {
		l.l.PushBack(v)
	}
	return l.l.Len()
}

// PopFront removes and returns up to count elements from the front.
func (l *List) PopFront(count int) [][]byte {
	out := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		e := l.l.Front()
		if e == nil {
			break
		}
		out = append(out, e.Value.([]byte))
		l.l.Remove(e)
	}
	return out
}

// PopBack removes and returns up to count elements from the back, nearest
// first.
func (l *List) PopBack(count int) [][]byte {
	out := make([][]byte, 0, count)
	for i := 0; i < count; i++ {
		e := l.l.Back()
		if e == nil {
			break
		}
		out = append(out, e.Value.([]byte))
		l.l.Remove(e)
	}
	return out
}

// Slice materializes the list into a flat slice, front to back.
func (l *List) Slice() [][]byte {
	out := make([][]byte, 0, l.l.Len())
	for e := l.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.([]byte))
	}
	return out
}

// Range returns the inclusive [start, end] sub-range, supporting negative
// indices counted from the end, clamped to the list's bounds.
func (l *List) Range(start, end int) [][]byte {
	all := l.Slice()
	n := len(all)
	if n == 0 {
		return [][]byte{}
	}
	if start < 0 {
		start = n + start
	}
	if end < 0 {
		end = n + end
	}
	if start < 0 {
		start = 0
	}
	if end >= n {
		end = n - 1
	}
	if start > end || start >= n {
		return [][]byte{}
	}
	return slices.Clone(all[start : end+1])
}
