package container

import (
	"reflect"
	"testing"
)

func TestSortedSetAddScoreRemove(t *testing.T) {
	s := NewSortedSet()
	if added := s.Add("alice", 10); !added {
		t.Fatalf("first add of alice should report new")
	}
	if added := s.Add("bob", 20); !added {
		t.Fatalf("first add of bob should report new")
	}
	if added := s.Add("alice", 30); added {
		t.Fatalf("re-score of alice should report not new")
	}

	sc, ok := s.Score("alice")
	if !ok || sc != 30 {
		t.Fatalf("want score 30, got %v ok=%v", sc, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("want len 2, got %d", s.Len())
	}

	if removed := s.Remove("bob"); !removed {
		t.Fatalf("expected bob to be removed")
	}
	if removed := s.Remove("bob"); removed {
		t.Fatalf("second remove of bob should report not present")
	}
	if s.Len() != 1 {
		t.Fatalf("want len 1, got %d", s.Len())
	}
}

func TestSortedSetRange(t *testing.T) {
	s := NewSortedSet()
	s.Add("a", 1)
	s.Add("b", 2)
	s.Add("c", 3)
	s.Add("d", 4)

	want := []ZItem{{Member: "b", Score: 2}, {Member: "c", Score: 3}}
	if got := s.Range(1, 2); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected range: %+v", got)
	}
	wantTail := []ZItem{{Member: "c", Score: 3}, {Member: "d", Score: 4}}
	if got := s.Range(-2, -1); !reflect.DeepEqual(got, wantTail) {
		t.Fatalf("unexpected negative range: %+v", got)
	}
	if got := s.Range(10, 20); len(got) != 0 {
		t.Fatalf("out-of-bounds range should be empty, got %+v", got)
	}
}

func TestSortedSetRangeByScore(t *testing.T) {
	s := NewSortedSet()
	s.Add("a", 1)
	s.Add("b", 2)
	s.Add("c", 3)
	s.Add("d", 4)

	want := []ZItem{{Member: "b", Score: 2}, {Member: "c", Score: 3}}
	if got := s.RangeByScore(2, 3); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected score range: %+v", got)
	}
	if got := s.RangeByScore(10, 20); len(got) != 0 {
		t.Fatalf("empty score range expected, got %+v", got)
	}
}
