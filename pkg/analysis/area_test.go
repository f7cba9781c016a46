package analysis

import (
	"math"
	"testing"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// quadStrip is a 4x1 strip of unit quads, 8 triangles of area 0.5 each
func quadStrip(t *testing.T) *mesh.Mesh {
	t.Helper()
	var positions []float64
	for x := 0; x <= 4; x++ {
		positions = append(positions, float64(x), 0, 0)
		positions = append(positions, float64(x), 1, 0)
	}
	var indices []uint32
	for x := 0; x < 4; x++ {
		v := uint32(x * 2)
		indices = append(indices, v, v+2, v+3)
		indices = append(indices, v, v+3, v+1)
	}
	m, err := mesh.New("strip", positions, indices, geometry.IdentityMatrix())
	if err != nil {
		t.Fatalf("mesh.New failed: %v", err)
	}
	return m
}

func TestSelectionAreaWholeStrip(t *testing.T) {
	m := quadStrip(t)

	all := make([]int, m.TriangleCount())
	for i := range all {
		all[i] = i
	}

	result, err := SelectionArea(m, all)
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}
	if math.Abs(result.Area-4.0) > 1e-10 {
		t.Errorf("strip area should be 4.0, got %v", result.Area)
	}
	if result.TriangleCount != 8 {
		t.Errorf("triangle count should be 8, got %d", result.TriangleCount)
	}
}

func TestSelectionAreaPermutationInvariant(t *testing.T) {
	m := quadStrip(t)

	forward, err := SelectionArea(m, []int{0, 1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}
	shuffled, err := SelectionArea(m, []int{5, 0, 7, 2, 4, 1, 6, 3})
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}

	if math.Abs(forward.Area-shuffled.Area) > 1e-9 {
		t.Errorf("area should not depend on selection order: %v vs %v", forward.Area, shuffled.Area)
	}
}

func TestSelectionAreaAdditive(t *testing.T) {
	m := quadStrip(t)

	left, err := SelectionArea(m, []int{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}
	right, err := SelectionArea(m, []int{4, 5, 6, 7})
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}
	whole, err := SelectionArea(m, []int{0, 1, 2, 3, 4, 5, 6, 7})
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}

	if math.Abs(left.Area+right.Area-whole.Area) > 1e-9 {
		t.Errorf("disjoint halves should sum to the whole: %v + %v != %v", left.Area, right.Area, whole.Area)
	}
}

func TestSelectionAreaEmpty(t *testing.T) {
	m := quadStrip(t)

	result, err := SelectionArea(m, nil)
	if err != nil {
		t.Fatalf("SelectionArea failed: %v", err)
	}
	if result.Area != 0 || result.TriangleCount != 0 {
		t.Errorf("empty selection should be zero, got %+v", result)
	}
}

func TestSelectionAreaOutOfRange(t *testing.T) {
	m := quadStrip(t)

	if _, err := SelectionArea(m, []int{0, 99}); err == nil {
		t.Error("out-of-range index should fail")
	}
	if _, err := SelectionArea(m, []int{-1}); err == nil {
		t.Error("negative index should fail")
	}
}

func TestAnalyzeStrip(t *testing.T) {
	m := quadStrip(t)
	stats := Analyze(m)

	if math.Abs(stats.SurfaceArea-4.0) > 1e-10 {
		t.Errorf("surface area should be 4.0, got %v", stats.SurfaceArea)
	}
	// 4 quads: 16 perimeter+interior grid edges plus 4 diagonals,
	// shared edges counted once
	if stats.EdgeCount != 17 {
		t.Errorf("expected 17 unique edges, got %d", stats.EdgeCount)
	}
	if math.Abs(stats.MinEdgeLength-1.0) > 1e-10 {
		t.Errorf("min edge length should be 1.0, got %v", stats.MinEdgeLength)
	}
	if math.Abs(stats.MaxEdgeLength-math.Sqrt2) > 1e-10 {
		t.Errorf("max edge length should be sqrt(2), got %v", stats.MaxEdgeLength)
	}
	if stats.Dimensions.X != 4 || stats.Dimensions.Y != 1 {
		t.Errorf("dimensions should be 4x1, got %v", stats.Dimensions)
	}
}

func TestFindNearestVertex(t *testing.T) {
	m := quadStrip(t)

	index, distance := FindNearestVertex(m, geometry.NewVector3(4.1, 1.1, 0))
	if index == -1 {
		t.Fatal("expected a nearest vertex")
	}
	want := m.Vertex(index)
	if want.X != 4 || want.Y != 1 {
		t.Errorf("nearest vertex to (4.1, 1.1) should be the corner (4,1), got %v", want)
	}
	if math.Abs(distance-math.Hypot(0.1, 0.1)) > 1e-10 {
		t.Errorf("unexpected distance %v", distance)
	}
}
