package expiry

import (
	"testing"

	"github.com/corekv/corekv/internal/entry"
)

func mk(key string, hash uint64, deadline int64) *entry.Entry {
	e := entry.NewBytes([]byte(key), hash, []byte("v"))
	e.SetExpiry(deadline)
	return e
}

func TestInsertLowersNextTimeout(t *testing.T) {
	x := New()
	a := mk("a", 1, 100)
	if lowered := x.Insert(a); !lowered {
		t.Fatalf("first insert should lower next timeout")
	}
	b := mk("b", 2, 200)
	if lowered := x.Insert(b); lowered {
		t.Fatalf("later deadline should not lower next timeout")
	}
	c := mk("c", 3, 50)
	if lowered := x.Insert(c); !lowered {
		t.Fatalf("earlier deadline should lower next timeout")
	}
	nt, ok := x.NextTimeout()
	if !ok || nt != 50 {
		t.Fatalf("want next timeout 50, got %d ok=%v", nt, ok)
	}
}

func TestReinsertIsNoop(t *testing.T) {
	x := New()
	a := mk("a", 1, 100)
	x.Insert(a)
	if lowered := x.Insert(a); lowered {
		t.Fatalf("re-inserting an existing member must not report a lowered deadline")
	}
	if x.Size() != 1 {
		t.Fatalf("want size 1, got %d", x.Size())
	}
}

func TestExpireDrainsDueEntries(t *testing.T) {
	x := New()
	a := mk("a", 1, 100)
	b := mk("b", 2, 200)
	x.Insert(a)
	x.Insert(b)

	due := x.Expire(150)
	if len(due) != 1 || due[0] != a {
		t.Fatalf("expected only a to be due, got %v", due)
	}
	if x.Size() != 1 {
		t.Fatalf("want size 1 after partial expiry, got %d", x.Size())
	}
	if a.ExpiryMember() {
		t.Fatalf("expired entry should no longer be a member")
	}

	due2 := x.Expire(250)
	if len(due2) != 1 || due2[0] != b {
		t.Fatalf("expected b to be due on second sweep")
	}
	if x.Size() != 0 {
		t.Fatalf("want size 0, got %d", x.Size())
	}
}

func TestRemoveNonMemberIsNoop(t *testing.T) {
	x := New()
	a := mk("a", 1, 100)
	x.Remove(a) // never inserted
	if x.Size() != 0 {
		t.Fatalf("want size 0, got %d", x.Size())
	}
}
