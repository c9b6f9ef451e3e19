// Package entry implements the tagged value record of spec.md §4.1: a
// single keyed record owning a key, a discriminant, exactly one payload
// variant matching that discriminant, an expiration deadline and the two
// linkage slots used by the primary and expiration indices.
package entry

import (
	"fmt"

	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/container"
)

// Kind is the discriminant selecting which payload variant of an Entry is
// active. It is set at construction and never changes for the entry's
// lifetime.
type Kind uint8

const (
	KindFloat Kind = iota
	KindInt64
	KindBytes
	KindList
	KindHash
	KindSet
	KindSortedSet
	KindHLL
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt64:
		return "integer"
	case KindBytes:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	case KindSet:
		return "set"
	case KindSortedSet:
		return "zset"
	case KindHLL:
		return "hll"
	default:
		return "unknown"
	}
}

// WrongKindError is returned when a payload accessor is called against an
// Entry whose discriminant does not match.
type WrongKindError struct {
	Have Kind
	Want Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("entry: wrong kind: have %s, want %s", e.Have, e.Want)
}

// Entry is a single keyed record owned by the store. The zero value is not
// usable; construct one via the New* constructors.
type Entry struct {
	key     []byte
	keyHash uint64
	kind    Kind

	i64   int64
	f64   float64
	bytes []byte
	list  *container.List
	dict  *container.Dict
	sset  *container.SortedSet

	expiry int64 // clock.Never if the entry never expires

	// Next chains entries within one primary-index bucket. It is owned
	// exclusively by package index; nothing else may read or write it.
	Next *Entry

	// expiryMember mirrors this entry's membership in the expiration
	// index. It is owned exclusively by package expiry.
	expiryMember bool
}

func newBase(key []byte, hash uint64, kind Kind) *Entry {
	owned := make([]byte, len(key))
	copy(owned, key)
	return &Entry{key: owned, keyHash: hash, kind: kind, expiry: clock.Never}
}

// NewFloat constructs a Float entry with initial value v.
func NewFloat(key []byte, hash uint64, v float64) *Entry {
	e := newBase(key, hash, KindFloat)
	e.f64 = v
	return e
}

// NewInt64 constructs an Int64 entry with initial value v.
func NewInt64(key []byte, hash uint64, v int64) *Entry {
	e := newBase(key, hash, KindInt64)
	e.i64 = v
	return e
}

// NewBytes constructs a Bytes entry by copying data.
func NewBytes(key []byte, hash uint64, data []byte) *Entry {
	e := newBase(key, hash, KindBytes)
	e.bytes = container.NewBlob(data).Bytes()
	return e
}

// NewBytesOfLen constructs a Bytes entry with a zero-filled buffer of the
// given length.
func NewBytesOfLen(key []byte, hash uint64, n int) *Entry {
	e := newBase(key, hash, KindBytes)
	e.bytes = container.NewZeroBlob(n).Bytes()
	return e
}

// NewList constructs an empty List entry.
func NewList(key []byte, hash uint64) *Entry {
	e := newBase(key, hash, KindList)
	e.list = container.NewList()
	return e
}

// NewHash constructs an empty Hash entry.
func NewHash(key []byte, hash uint64) *Entry {
	e := newBase(key, hash, KindHash)
	e.dict = container.NewDict()
	return e
}

// NewSet constructs an empty Set entry.
func NewSet(key []byte, hash uint64) *Entry {
	e := newBase(key, hash, KindSet)
	e.dict = container.NewDict()
	return e
}

// NewSortedSet constructs an empty SortedSet entry.
func NewSortedSet(key []byte, hash uint64) *Entry {
	e := newBase(key, hash, KindSortedSet)
	e.sset = container.NewSortedSet()
	return e
}

// NewHLL constructs an HLL entry with a fresh, zero-filled register array
// of HLLBytesSize bytes.
func NewHLL(key []byte, hash uint64) *Entry {
	e := newBase(key, hash, KindHLL)
	e.bytes = make([]byte, container.HLLBytesSize)
	return e
}

// Key returns the entry's owned key bytes. Callers must not mutate the
// returned slice.
func (e *Entry) Key() []byte { return e.key }

// KeyHash returns the entry's precomputed fingerprint.
func (e *Entry) KeyHash() uint64 { return e.keyHash }

// Kind returns the entry's discriminant.
func (e *Entry) Kind() Kind { return e.kind }

// Expiry returns the entry's deadline, or clock.Never.
func (e *Entry) Expiry() int64 { return e.expiry }

// SetExpiry sets the entry's deadline directly. Used by the store facade
// and by the expiry package; it never changes Kind or KeyHash.
func (e *Entry) SetExpiry(deadline int64) { e.expiry = deadline }

// ExpiryMember reports whether the expiry package currently tracks this
// entry in the expiration index.
func (e *Entry) ExpiryMember() bool { return e.expiryMember }

// SetExpiryMember is called exclusively by package expiry to record
// index membership.
func (e *Entry) SetExpiryMember(v bool) { e.expiryMember = v }

// ValueInt64 returns the Int64 payload.
func (e *Entry) ValueInt64() (int64, error) {
	if e.kind != KindInt64 {
		return 0, &WrongKindError{Have: e.kind, Want: KindInt64}
	}
	return e.i64, nil
}

// IncrInt64 adds delta to the Int64 payload in place, wrapping on
// overflow, and returns the new value.
func (e *Entry) IncrInt64(delta int64) (int64, error) {
	if e.kind != KindInt64 {
		return 0, &WrongKindError{Have: e.kind, Want: KindInt64}
	}
	e.i64 += delta
	return e.i64, nil
}

// ValueFloat returns the Float payload.
func (e *Entry) ValueFloat() (float64, error) {
	if e.kind != KindFloat {
		return 0, &WrongKindError{Have: e.kind, Want: KindFloat}
	}
	return e.f64, nil
}

// IncrFloat adds delta to the Float payload in place (IEEE-754 semantics)
// and returns the new value.
func (e *Entry) IncrFloat(delta float64) (float64, error) {
	if e.kind != KindFloat {
		return 0, &WrongKindError{Have: e.kind, Want: KindFloat}
	}
	e.f64 += delta
	return e.f64, nil
}

// ValueBytes returns the live Bytes or HLL payload.
func (e *Entry) ValueBytes() ([]byte, error) {
	if e.kind != KindBytes && e.kind != KindHLL {
		return nil, &WrongKindError{Have: e.kind, Want: KindBytes}
	}
	return e.bytes, nil
}

// SetBytes overwrites the Bytes payload with a copy of data.
func (e *Entry) SetBytes(data []byte) error {
	if e.kind != KindBytes {
		return &WrongKindError{Have: e.kind, Want: KindBytes}
	}
	e.bytes = container.NewBlob(data).Bytes()
	return nil
}

// ValueList returns the List payload.
func (e *Entry) ValueList() (*container.List, error) {
	if e.kind != KindList {
		return nil, &WrongKindError{Have: e.kind, Want: KindList}
	}
	return e.list, nil
}

// ValueHash returns the Hash payload.
func (e *Entry) ValueHash() (*container.Dict, error) {
	if e.kind != KindHash {
		return nil, &WrongKindError{Have: e.kind, Want: KindHash}
	}
	return e.dict, nil
}

// ValueSet returns the Set payload.
func (e *Entry) ValueSet() (*container.Dict, error) {
	if e.kind != KindSet {
		return nil, &WrongKindError{Have: e.kind, Want: KindSet}
	}
	return e.dict, nil
}

// ValueSortedSet returns the SortedSet payload.
func (e *Entry) ValueSortedSet() (*container.SortedSet, error) {
	if e.kind != KindSortedSet {
		return nil, &WrongKindError{Have: e.kind, Want: KindSortedSet}
	}
	return e.sset, nil
}

// ValueHLL returns the HLL payload as a container.HLL view over the
// entry's owned register bytes.
func (e *Entry) ValueHLL() (*container.HLL, error) {
	if e.kind != KindHLL {
		return nil, &WrongKindError{Have: e.kind, Want: KindHLL}
	}
	return container.FromBytes(e.bytes), nil
}

// TypeName returns the human-readable kind name, used by the command
// layer's TYPE-equivalent endpoint and by log lines.
func (e *Entry) TypeName() string { return e.kind.String() }

// View is a read-only handle over a live entry, handed to Store.View
// callbacks. It exposes every accessor but none of the mutators, so a
// callback cannot change key_hash, kind or expiry, or replace the payload
// — resolving the open question around the original's unrestricted
// with_entry_run handle by construction rather than by convention. The
// byte buffers and containers its accessors return are the entry's live
// ones, so their contents are not protected from modification.
type View struct{ e *Entry }

// NewView wraps e for read-only use. Called only by package store.
func NewView(e *Entry) *View { return &View{e: e} }

func (v *View) Key() []byte       { return v.e.Key() }
func (v *View) KeyHash() uint64   { return v.e.KeyHash() }
func (v *View) Kind() Kind        { return v.e.Kind() }
func (v *View) TypeName() string  { return v.e.TypeName() }
func (v *View) Expiry() int64     { return v.e.Expiry() }

func (v *View) ValueInt64() (int64, error)                    { return v.e.ValueInt64() }
func (v *View) ValueFloat() (float64, error)                  { return v.e.ValueFloat() }
func (v *View) ValueBytes() ([]byte, error)                   { return v.e.ValueBytes() }
func (v *View) ValueList() (*container.List, error)           { return v.e.ValueList() }
func (v *View) ValueHash() (*container.Dict, error)           { return v.e.ValueHash() }
func (v *View) ValueSet() (*container.Dict, error)            { return v.e.ValueSet() }
func (v *View) ValueSortedSet() (*container.SortedSet, error) { return v.e.ValueSortedSet() }
func (v *View) ValueHLL() (*container.HLL, error)             { return v.e.ValueHLL() }

// Mutator is a restricted mutable handle over a live entry, handed to
// Store.Update callbacks. It permits payload and expiry mutation but not
// reassignment of key_hash or kind.
type Mutator struct{ e *Entry }

// NewMutator wraps e for payload/expiry mutation. Called only by package
// store, which is responsible for re-keying the expiration index if the
// callback changes Expiry.
func NewMutator(e *Entry) *Mutator { return &Mutator{e: e} }

func (m *Mutator) Key() []byte      { return m.e.Key() }
func (m *Mutator) Kind() Kind       { return m.e.Kind() }
func (m *Mutator) TypeName() string { return m.e.TypeName() }
func (m *Mutator) Expiry() int64    { return m.e.Expiry() }

// ValueInt64/ValueFloat/etc. mirror View's read accessors; SetExpiry and
// the Incr*/Set* methods are this handle's mutation surface.
func (m *Mutator) ValueInt64() (int64, error)                    { return m.e.ValueInt64() }
func (m *Mutator) ValueFloat() (float64, error)                  { return m.e.ValueFloat() }
func (m *Mutator) ValueBytes() ([]byte, error)                   { return m.e.ValueBytes() }
func (m *Mutator) ValueList() (*container.List, error)           { return m.e.ValueList() }
func (m *Mutator) ValueHash() (*container.Dict, error)           { return m.e.ValueHash() }
func (m *Mutator) ValueSet() (*container.Dict, error)            { return m.e.ValueSet() }
func (m *Mutator) ValueSortedSet() (*container.SortedSet, error) { return m.e.ValueSortedSet() }
func (m *Mutator) ValueHLL() (*container.HLL, error)             { return m.e.ValueHLL() }

func (m *Mutator) IncrInt64(delta int64) (int64, error)     { return m.e.IncrInt64(delta) }
func (m *Mutator) IncrFloat(delta float64) (float64, error) { return m.e.IncrFloat(delta) }
func (m *Mutator) SetBytes(data []byte) error                { return m.e.SetBytes(data) }

// SetExpiry sets the entry's deadline directly. The caller (package store)
// detects the change by comparing against the prior deadline and re-keys
// the expiration index accordingly; Mutator itself does not touch the
// index.
func (m *Mutator) SetExpiry(deadline int64) { m.e.SetExpiry(deadline) }
