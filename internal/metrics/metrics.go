// Package metrics provides the store facade's metrics collaborator, in the
// same two-tier shape the teacher codebase uses: a small Interface the
// store calls unconditionally, a Noop implementation for tests/benchmarks
// that don't care, a Simple atomic-counter implementation for assertions,
// and a Prom implementation (prom.go) for production.
package metrics

import "sync/atomic"

// Interface is the metrics update surface the store facade drives.
type Interface interface {
	IncInsertNew()
	IncReplace()
	IncRejectedByPredicate()
	IncGetHit()
	IncGetMiss()
	AddExpired(n int)
	IncRehash()
	SetExpiringSize(n int)
	SetSize(n int)
	ObserveOpsPerSecond(v float64)
}

// Noop implements Interface with no-ops.
type Noop struct{}

func (Noop) IncInsertNew()               {}
func (Noop) IncReplace()                 {}
func (Noop) IncRejectedByPredicate()     {}
func (Noop) IncGetHit()                  {}
func (Noop) IncGetMiss()                 {}
func (Noop) AddExpired(_ int)            {}
func (Noop) IncRehash()                  {}
func (Noop) SetExpiringSize(_ int)       {}
func (Noop) SetSize(_ int)               {}
func (Noop) ObserveOpsPerSecond(_ float64) {}

// Simple is an atomic-counter Interface implementation, suitable for
// assertions in tests.
type Simple struct {
	InsertNew           atomic.Uint64
	Replace             atomic.Uint64
	RejectedByPredicate atomic.Uint64
	GetHit              atomic.Uint64
	GetMiss              atomic.Uint64
	Expired              atomic.Uint64
	Rehash               atomic.Uint64
	ExpiringSize         atomic.Int64
	Size                 atomic.Int64
}

// NewSimple returns a fresh Simple.
func NewSimple() *Simple { return &Simple{} }

func (m *Simple) IncInsertNew()           { m.InsertNew.Add(1) }
func (m *Simple) IncReplace()             { m.Replace.Add(1) }
func (m *Simple) IncRejectedByPredicate() { m.RejectedByPredicate.Add(1) }
func (m *Simple) IncGetHit()              { m.GetHit.Add(1) }
func (m *Simple) IncGetMiss()             { m.GetMiss.Add(1) }
func (m *Simple) AddExpired(n int) {
	if n > 0 {
		m.Expired.Add(uint64(n))
	}
}
func (m *Simple) IncRehash()                { m.Rehash.Add(1) }
func (m *Simple) SetExpiringSize(n int)     { m.ExpiringSize.Store(int64(n)) }
func (m *Simple) SetSize(n int)             { m.Size.Store(int64(n)) }
func (m *Simple) ObserveOpsPerSecond(_ float64) {}
