package store

import (
	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/entry"
)

// Exists reports whether key is present, per spec.md §4.5's exists(k).
func (s *Store) Exists(key []byte, hash uint64) bool {
	return doR(s, func() bool { return s.primary.Lookup(key, hash) != nil })
}

// View invokes f with a read-only handle on the entry matching (key,
// hash), or nil if absent, and returns whatever f returns. It implements
// spec.md §4.5's get(k, f); methods cannot carry their own type
// parameters in Go, so View is a free function over *Store rather than a
// method.
func View[R any](s *Store, key []byte, hash uint64, f func(*entry.View) R) R {
	return doR(s, func() R {
		e := s.primary.Lookup(key, hash)
		if e == nil {
			s.cfg.Metrics.IncGetMiss()
			return f(nil)
		}
		s.cfg.Metrics.IncGetHit()
		return f(entry.NewView(e))
	})
}

// Update invokes f with a payload/expiry-mutable handle on the entry
// matching (key, hash), or nil if absent, re-keying the expiration index
// if f changed the entry's deadline, and returns whatever f returns.
func Update[R any](s *Store, key []byte, hash uint64, f func(*entry.Mutator) R) R {
	return doR(s, func() R {
		e := s.primary.Lookup(key, hash)
		if e == nil {
			return f(nil)
		}
		prevExpiry := e.Expiry()
		r := f(entry.NewMutator(e))
		if e.Expiry() != prevExpiry {
			s.applyExpiryChange(e, prevExpiry)
		}
		return r
	})
}

// Erase removes the entry matching (key, hash) from both indices,
// reporting whether it was present.
func (s *Store) Erase(key []byte, hash uint64) bool {
	return doR(s, func() bool {
		e := s.primary.Erase(key, hash)
		if e == nil {
			return false
		}
		if e.ExpiryMember() {
			s.expiry.Remove(e)
			s.rearm()
		}
		s.cfg.Metrics.SetSize(s.primary.Size())
		s.cfg.Metrics.SetExpiringSize(s.expiry.Size())
		return true
	})
}

// Replace unconditionally links e, first removing any prior entry with
// the same key from both indices. Returns true if the key was absent
// beforehand. e's Expiry must already be set by the caller (clock.Never
// if it should never expire); Replace does not alter it.
func (s *Store) Replace(e *entry.Entry) bool {
	return doR(s, func() bool {
		prior := s.primary.Erase(e.Key(), e.KeyHash())
		if prior != nil && prior.ExpiryMember() {
			s.expiry.Remove(prior)
		}
		s.linkNew(e)
		if prior == nil {
			s.cfg.Metrics.IncInsertNew()
		} else {
			s.cfg.Metrics.IncReplace()
		}
		return prior == nil
	})
}

// InsertIf implements spec.md §4.5's insert_if conditional-insert state
// machine. ttlMs <= 0 means the new entry never expires.
func (s *Store) InsertIf(e *entry.Entry, ttlMs int64, nx, xx bool) (bool, error) {
	if nx && xx {
		return false, ErrInvalidPredicate
	}
	applied := doR(s, func() bool {
		prior := s.primary.Lookup(e.Key(), e.KeyHash())
		present := prior != nil
		if nx && present {
			s.cfg.Metrics.IncRejectedByPredicate()
			return false
		}
		if xx && !present {
			s.cfg.Metrics.IncRejectedByPredicate()
			return false
		}
		if present {
			s.primary.Erase(prior.Key(), prior.KeyHash())
			if prior.ExpiryMember() {
				s.expiry.Remove(prior)
			}
		}
		e.SetExpiry(clock.DeadlineAfter(s.clock, ttlMs))
		s.linkNew(e)
		if present {
			s.cfg.Metrics.IncReplace()
		} else {
			s.cfg.Metrics.IncInsertNew()
		}
		return true
	})
	return applied, nil
}

// linkNew links a fresh entry into the primary index, adds it to the
// expiration index if it carries a finite deadline, and runs the
// post-insertion rehash check — spec.md §4.5: "After a successful
// insertion, the facade triggers maybe_rehash()."
func (s *Store) linkNew(e *entry.Entry) {
	s.primary.Insert(e)
	if e.Expiry() != clock.Never {
		if s.expiry.Insert(e) {
			s.rearm()
		}
	}
	before := s.primary.BucketCount()
	s.primary.MaybeRehash()
	if s.primary.BucketCount() != before {
		s.cfg.Metrics.IncRehash()
	}
	s.cfg.Metrics.SetSize(s.primary.Size())
	s.cfg.Metrics.SetExpiringSize(s.expiry.Size())
}

// applyExpiryChange reconciles the expiration index after a callback
// (Update, Expire, Persist) changed e's deadline from prevExpiry to its
// current value, re-arming the timer whenever the change could affect
// the next fire time.
func (s *Store) applyExpiryChange(e *entry.Entry, prevExpiry int64) {
	switch {
	case prevExpiry == clock.Never && e.Expiry() == clock.Never:
		return
	case prevExpiry == clock.Never:
		if s.expiry.Insert(e) {
			s.rearm()
		}
	case e.Expiry() == clock.Never:
		// Remove locates the item by e's current deadline, so restore the
		// indexed one for the lookup.
		e.SetExpiry(prevExpiry)
		s.expiry.Remove(e)
		e.SetExpiry(clock.Never)
		s.rearm()
	default:
		s.expiry.Rekey(e, prevExpiry)
		s.rearm()
	}
	s.cfg.Metrics.SetExpiringSize(s.expiry.Size())
}

// rearm points the timer at the expiration index's current earliest
// deadline, disarming it if the index is empty.
func (s *Store) rearm() {
	if nt, ok := s.expiry.NextTimeout(); ok {
		s.timer.Rearm(nt)
	} else {
		s.timer.Rearm(clock.Never)
	}
}
