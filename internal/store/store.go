// Package store implements the store facade of spec.md §4.5: the single
// entry point exposing lookup, conditional insert, replace, erase,
// expire and flush over the primary and expiration indices, and owning
// the rehash and expiry-sweep policies.
//
// spec.md §5 requires every facade call to complete atomically relative
// to every other facade call and relative to the timer-driven sweep,
// with no internal locks. The teacher codebase gets this by sharding a
// map behind per-shard mutexes; that shape is the wrong fit here, since
// spec.md explicitly rules out internal locks and requires a single
// logical execution context. This package gets the same guarantee the
// idiomatic Go way: a single goroutine (run) owns every mutable field,
// and every exported method submits a closure over a buffered request
// channel that run drains one at a time. The timing wheel's fire
// callback (which runs on its own goroutine — see internal/xtimer)
// submits its sweep request through that same channel, so it can never
// interleave with an in-flight facade call either.
package store

import (
	"sync"

	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/expiry"
	"github.com/corekv/corekv/internal/index"
	"github.com/corekv/corekv/internal/metrics"
	"github.com/corekv/corekv/internal/xtimer"
)

// Releaser is invoked once per entry the sweep evicts, after the entry
// has already been unlinked from both indices. It exists so command-layer
// bookkeeping (e.g. keyspace notifications) can run synchronously with
// eviction without this package depending on that subsystem (spec.md
// §4.4's rationale for the callback).
type Releaser func(key []byte, typeName string)

// Store is the single-shard keyed value store core. The zero value is not
// usable; construct one with New.
type Store struct {
	reqCh   chan func()
	closeCh chan struct{}
	closeWg sync.WaitGroup
	once    sync.Once

	primary *index.Primary
	expiry  *expiry.Index
	timer   *xtimer.Timer
	clock   clock.Clock
	cfg     Config

	opsRate *metrics.OpsRate

	releaser Releaser
}

// New constructs a Store and starts its command loop and timer.
func New(opts ...Option) *Store {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	s := &Store{
		reqCh:   make(chan func(), 256),
		closeCh: make(chan struct{}),
		primary: index.New(cfg.InitialBuckets, cfg.LoadFactor),
		expiry:  expiry.New(),
		clock:   cfg.Clock,
		cfg:     cfg,
	}
	s.timer = xtimer.New(s.clock, cfg.TimerTick, cfg.TimerWheelSize, s.onTimerFire)
	s.opsRate = metrics.NewOpsRate(cfg.OpsRateWindow, cfg.OpsRateTick, cfg.Metrics.ObserveOpsPerSecond)

	s.closeWg.Add(1)
	go s.run()
	return s
}

// SetExpiredEntryReleaser registers the callback sweep invokes per
// expired entry. Until one is registered, Sweep returns
// ErrMissingReleaser (spec.md §7's MissingReleaser) and a timer-driven
// sweep evicts nothing — see admin.go's Sweep and sweepLocked.
func (s *Store) SetExpiredEntryReleaser(r Releaser) {
	s.do(func() { s.releaser = r })
}

// Close stops the timer and the command loop. Blocks until drained.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.closeCh)
	})
	s.closeWg.Wait()
	s.timer.Stop()
	s.opsRate.Stop()
}

func (s *Store) run() {
	defer s.closeWg.Done()
	for {
		select {
		case f := <-s.reqCh:
			f()
		case <-s.closeCh:
			s.drain()
			return
		}
	}
}

// drain executes any requests already queued before shutdown, so a
// concurrent caller's do() never blocks forever racing Close.
func (s *Store) drain() {
	for {
		select {
		case f := <-s.reqCh:
			f()
		default:
			return
		}
	}
}

// do submits f to the command loop and blocks until it has run. Every
// completed op ticks the ops/sec gauge's sample counter.
func (s *Store) do(f func()) {
	done := make(chan struct{})
	select {
	case s.reqCh <- func() { f(); s.opsRate.Tick(); close(done) }:
	case <-s.closeCh:
		return
	}
	<-done
}

// doR is do for a closure that produces a value.
func doR[R any](s *Store, f func() R) R {
	var out R
	s.do(func() { out = f() })
	return out
}

// onTimerFire runs on the timing wheel's own goroutine (internal/xtimer's
// contract); it only ever posts a request, never touches store state
// directly, preserving single-threaded semantics for everything past this
// point.
func (s *Store) onTimerFire() {
	select {
	case s.reqCh <- s.sweepLocked:
	case <-s.closeCh:
	}
}
