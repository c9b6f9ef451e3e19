// Package xtimer implements the single re-armable timer collaborator of
// spec.md §6.5 (arm/rearm/a single callback registration) on top of
// github.com/RussellLuo/timingwheel, the same timing wheel the cometkv
// pack member uses for its own TTL expiry
// (pkg/memtable/hwt_btree/hwt_btree.go).
package xtimer

import (
	"sync"
	"time"

	"github.com/RussellLuo/timingwheel"

	"github.com/corekv/corekv/internal/clock"
)

// Timer schedules a single callback at the next pending deadline,
// replacing any previously scheduled fire each time it is re-armed.
type Timer struct {
	tw    *timingwheel.TimingWheel
	clock clock.Clock
	cb    func()

	mu      sync.Mutex
	pending *timingwheel.Timer
}

// New starts a timing wheel with the given tick resolution and number of
// slots, and returns a Timer that invokes cb on fire. cb runs on the
// timing wheel's own goroutine; callers that need single-threaded
// semantics must re-serialize it themselves (the store facade does this
// by routing the callback back through its command loop).
func New(clk clock.Clock, tick time.Duration, wheelSize int64, cb func()) *Timer {
	t := &Timer{
		tw:    timingwheel.NewTimingWheel(tick, wheelSize),
		clock: clk,
		cb:    cb,
	}
	t.tw.Start()
	return t
}

// Arm schedules the callback for deadlineMillis. Disarms (cancels any
// pending fire) if deadlineMillis is clock.Never.
func (t *Timer) Arm(deadlineMillis int64) {
	t.Rearm(deadlineMillis)
}

// Rearm cancels any pending fire and schedules a new one for
// deadlineMillis, or disarms if deadlineMillis is clock.Never.
func (t *Timer) Rearm(deadlineMillis int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	if deadlineMillis == clock.Never {
		return
	}
	d := time.Duration(deadlineMillis-t.clock.NowMillis()) * time.Millisecond
	if d < 0 {
		d = 0
	}
	t.pending = t.tw.AfterFunc(d, t.cb)
}

// Stop disarms the timer and shuts down the underlying timing wheel.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
	t.tw.Stop()
}
