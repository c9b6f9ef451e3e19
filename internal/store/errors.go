package store

import "errors"

// ErrInvalidPredicate is returned by InsertIf when both nx and xx are
// true — a contradictory request, rejected before any mutation.
var ErrInvalidPredicate = errors.New("store: nx and xx are mutually exclusive")

// ErrMissingReleaser is returned by Sweep if no expired-entry releaser has
// been registered via SetExpiredEntryReleaser. It is a fatal setup bug,
// per spec.md §7.
var ErrMissingReleaser = errors.New("store: sweep invoked without a registered expired-entry releaser")

// ErrAllocationFailure corresponds to spec.md §7's AllocationFailure: the
// allocation collaborator refusing entry or bucket storage. The Go runtime
// has no allocator-failure return path (it panics on true exhaustion), so
// this sentinel is never produced by this implementation; it is kept so
// callers written against the original error taxonomy still compile
// against a recognizable name.
var ErrAllocationFailure = errors.New("store: allocation failure")
