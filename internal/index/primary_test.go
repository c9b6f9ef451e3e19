package index

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/corekv/corekv/internal/entry"
)

func hashKey(k string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k))
	return h.Sum64()
}

func TestInsertLookupErase(t *testing.T) {
	p := New(8, 0.75)
	e := entry.NewBytes([]byte("foo"), hashKey("foo"), []byte("bar"))
	p.Insert(e)
	p.MaybeRehash()

	got := p.Lookup([]byte("foo"), hashKey("foo"))
	if got == nil {
		t.Fatalf("expected to find foo")
	}
	v, _ := got.ValueBytes()
	if string(v) != "bar" {
		t.Fatalf("unexpected value %q", v)
	}

	removed := p.Erase([]byte("foo"), hashKey("foo"))
	if removed == nil {
		t.Fatalf("expected erase to find foo")
	}
	if p.Lookup([]byte("foo"), hashKey("foo")) != nil {
		t.Fatalf("expected foo gone after erase")
	}
	if p.Size() != 0 {
		t.Fatalf("expected size 0, got %d", p.Size())
	}
}

func TestRehashPreservesAllKeys(t *testing.T) {
	p := New(8, 0.75)
	const n = 200
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("key-%d", i)
		p.Insert(entry.NewInt64([]byte(k), hashKey(k), int64(i)))
		p.MaybeRehash()
	}
	if p.Size() != n {
		t.Fatalf("want size %d, got %d", n, p.Size())
	}
	for i := 0; i < n; i++ {
		k := fmt.Sprintf("key-%d", i)
		e := p.Lookup([]byte(k), hashKey(k))
		if e == nil {
			t.Fatalf("missing key %s after rehash", k)
		}
		v, _ := e.ValueInt64()
		if v != int64(i) {
			t.Fatalf("key %s: want %d got %d", k, i, v)
		}
	}
	if p.BucketCount() <= 8 {
		t.Fatalf("expected bucket growth, still at %d", p.BucketCount())
	}
}

func TestFingerprintCollisionRequiresByteEquality(t *testing.T) {
	p := New(8, 0.75)
	const fakeHash = uint64(42)
	p.Insert(entry.NewBytes([]byte("a"), fakeHash, []byte("1")))
	p.Insert(entry.NewBytes([]byte("b"), fakeHash, []byte("2")))

	a := p.Lookup([]byte("a"), fakeHash)
	b := p.Lookup([]byte("b"), fakeHash)
	if a == nil || b == nil {
		t.Fatalf("expected both entries to be findable despite shared hash")
	}
	av, _ := a.ValueBytes()
	bv, _ := b.ValueBytes()
	if string(av) != "1" || string(bv) != "2" {
		t.Fatalf("got wrong values back: a=%q b=%q", av, bv)
	}
}
