package store

import "github.com/corekv/corekv/internal/expiry"

// FlushAll empties both indices and releases every entry, per spec.md
// §4.5. Disarms the timer.
func (s *Store) FlushAll() {
	s.do(func() {
		s.primary.Reset()
		s.expiry = expiry.New()
		s.rearm()
		s.cfg.Metrics.SetSize(0)
		s.cfg.Metrics.SetExpiringSize(0)
	})
}

// Size returns the number of live entries.
func (s *Store) Size() int { return doR(s, func() int { return s.primary.Size() }) }

// Empty reports whether the store holds no entries.
func (s *Store) Empty() bool { return s.Size() == 0 }

// ExpiringSize returns the number of entries with a finite deadline.
func (s *Store) ExpiringSize() int { return doR(s, func() int { return s.expiry.Size() }) }

// Sweep drains and releases every entry whose deadline has elapsed,
// re-arming the timer afterward. It is the same operation the timer's
// fire callback triggers automatically; exported so tests and an
// administrative command can trigger it deterministically. Returns
// ErrMissingReleaser if no releaser has been registered, per spec.md §7.
func (s *Store) Sweep() error {
	var err error
	s.do(func() {
		if s.releaser == nil {
			err = ErrMissingReleaser
			return
		}
		s.sweepInternal()
	})
	return err
}

// sweepLocked is the timer's fire callback, already running inside the
// command loop (see onTimerFire). An automatic fire with no registered
// releaser is silently skipped rather than failing — there is no caller
// to report ErrMissingReleaser to. sweepInternal does not run, so the
// timer is not re-armed; it stays idle until a later Sweep or a change to
// the expiration index re-arms it.
func (s *Store) sweepLocked() {
	if s.releaser == nil {
		if s.cfg.Logger != nil {
			s.cfg.Logger.Error("store.sweep.missing_releaser")
		}
		return
	}
	s.sweepInternal()
}

func (s *Store) sweepInternal() {
	due := s.expiry.Expire(s.clock.NowMillis())
	for _, e := range due {
		s.primary.Erase(e.Key(), e.KeyHash())
		s.releaser(e.Key(), e.TypeName())
	}
	s.cfg.Metrics.AddExpired(len(due))
	s.cfg.Metrics.SetSize(s.primary.Size())
	s.cfg.Metrics.SetExpiringSize(s.expiry.Size())
	s.rearm()
}
