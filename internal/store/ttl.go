package store

import (
	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/entry"
)

// Expire sets key's deadline to ttlMs from now, reporting whether an
// entry existed to apply it to. ttlMs <= 0 is equivalent to Persist, per
// spec.md §4.5, and then returns Persist's result: false when the entry
// had no deadline to clear.
func (s *Store) Expire(key []byte, hash uint64, ttlMs int64) bool {
	return doR(s, func() bool {
		e := s.primary.Lookup(key, hash)
		if e == nil {
			return false
		}
		if ttlMs <= 0 {
			return s.clearExpiry(e)
		}
		prev := e.Expiry()
		e.SetExpiry(clock.DeadlineAfter(s.clock, ttlMs))
		s.applyExpiryChange(e, prev)
		return true
	})
}

// Persist clears key's deadline, reporting whether it changed anything.
func (s *Store) Persist(key []byte, hash uint64) bool {
	return doR(s, func() bool {
		e := s.primary.Lookup(key, hash)
		if e == nil {
			return false
		}
		return s.clearExpiry(e)
	})
}

// NeverExpire is an alias for Persist, kept alongside it because the
// original collaborator this core was distilled from exposes both
// spellings (SPEC_FULL.md "Supplemented features").
func (s *Store) NeverExpire(key []byte, hash uint64) bool {
	return s.Persist(key, hash)
}

// TTL returns the remaining milliseconds until key's deadline, or -1 if
// key is present but never expires, or ok=false if key is absent.
func (s *Store) TTL(key []byte, hash uint64) (ms int64, ok bool) {
	type result struct {
		ms int64
		ok bool
	}
	r := doR(s, func() result {
		e := s.primary.Lookup(key, hash)
		if e == nil {
			return result{}
		}
		if e.Expiry() == clock.Never {
			return result{ms: -1, ok: true}
		}
		remaining := e.Expiry() - s.clock.NowMillis()
		if remaining < 0 {
			remaining = 0
		}
		return result{ms: remaining, ok: true}
	})
	return r.ms, r.ok
}

func (s *Store) clearExpiry(e *entry.Entry) bool {
	if e.Expiry() == clock.Never {
		return false
	}
	if e.ExpiryMember() {
		s.expiry.Remove(e)
		s.rearm()
	}
	e.SetExpiry(clock.Never)
	s.cfg.Metrics.SetExpiringSize(s.expiry.Size())
	return true
}
