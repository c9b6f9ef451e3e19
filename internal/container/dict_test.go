package container

import (
	"reflect"
	"testing"
)

func TestDictSetGetDelete(t *testing.T) {
	d := NewDict()
	if existed := d.Set("f1", []byte("v1")); existed {
		t.Fatalf("first set of f1 should report not existed")
	}
	if existed := d.Set("f1", []byte("v1b")); !existed {
		t.Fatalf("re-set of f1 should report existed")
	}
	v, ok := d.Get("f1")
	if !ok || string(v) != "v1b" {
		t.Fatalf("want v1b, got %q ok=%v", v, ok)
	}
	if !d.Has("f1") {
		t.Fatalf("expected f1 present")
	}
	if d.Has("missing") {
		t.Fatalf("did not expect missing to be present")
	}

	if removed := d.Delete("f1"); !removed {
		t.Fatalf("expected f1 to be removed")
	}
	if removed := d.Delete("f1"); removed {
		t.Fatalf("second delete of f1 should report not present")
	}
	if d.Len() != 0 {
		t.Fatalf("want len 0, got %d", d.Len())
	}
}

func TestDictKeysAndValuesAreSortedTogether(t *testing.T) {
	d := NewDict()
	d.Set("b", []byte("2"))
	d.Set("a", []byte("1"))
	d.Set("c", []byte("3"))

	if got := d.Keys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("want sorted keys, got %v", got)
	}
	want := [][]byte{[]byte("1"), []byte("2"), []byte("3")}
	if got := d.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("want values in key order, got %q", got)
	}
	if d.Len() != 3 {
		t.Fatalf("want len 3, got %d", d.Len())
	}
}
