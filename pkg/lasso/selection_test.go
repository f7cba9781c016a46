package lasso

import "testing"

func TestSelectionIdempotentAdd(t *testing.T) {
	s := NewSelection()

	if !s.Add(5) {
		t.Error("first add should report new")
	}
	if s.Add(5) {
		t.Error("second add should report already present")
	}
	if s.Len() != 1 {
		t.Errorf("re-adding must not grow the selection, len %d", s.Len())
	}
}

func TestSelectionOrderPreserved(t *testing.T) {
	s := NewSelection()
	for _, idx := range []int{3, 1, 4, 1, 5} {
		s.Add(idx)
	}

	got := s.Indices()
	want := []int{3, 1, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection()
	s.Add(1)
	s.Add(2)
	s.Clear()

	if s.Len() != 0 || s.Has(1) {
		t.Error("clear should empty the selection")
	}

	if !s.Add(1) {
		t.Error("add after clear should report new")
	}
}

func TestBoundaryValidity(t *testing.T) {
	if NewBoundary(nil).Valid() {
		t.Error("empty boundary should be invalid")
	}

	two := NewBoundary(points2(0, 0, 1, 1))
	if two.Valid() {
		t.Error("two-point boundary should be invalid")
	}

	three := NewBoundary(points2(0, 0, 1, 0, 0, 1))
	if !three.Valid() {
		t.Error("three-point boundary should be valid")
	}
}
