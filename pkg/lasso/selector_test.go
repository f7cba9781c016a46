package lasso

import (
	"math"
	"testing"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/spatial"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

// points2 builds a Vector2 slice from flat x,y pairs
func points2(coords ...float64) []geometry.Vector2 {
	points := make([]geometry.Vector2, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		points = append(points, geometry.NewVector2(coords[i], coords[i+1]))
	}
	return points
}

// flatSquare is a unit square in the XY plane split into two triangles,
// both facing +z
func flatSquare(t *testing.T) *mesh.Mesh {
	t.Helper()
	positions := []float64{
		0, 0, 0,
		1, 0, 0,
		1, 1, 0,
		0, 1, 0,
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}
	m, err := mesh.New("square", positions, indices, geometry.IdentityMatrix())
	if err != nil {
		t.Fatalf("mesh.New failed: %v", err)
	}
	return m
}

// occludedPair stacks two triangles along z so the larger near one
// hides the far one from a camera on the +z side
func occludedPair(t *testing.T) *mesh.Mesh {
	t.Helper()
	positions := []float64{
		// far triangle at z=0
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		// near triangle at z=1, covering the far one
		-0.5, -0.5, 1,
		2, -0.5, 1,
		-0.5, 2, 1,
	}
	m, err := mesh.New("occluded", positions, nil, geometry.IdentityMatrix())
	if err != nil {
		t.Fatalf("mesh.New failed: %v", err)
	}
	return m
}

func newTestSelector(m *mesh.Mesh, width, height float64) (*Selector, *viewer.View) {
	view := viewer.NewView(viewer.NewCamera(m.Bounds()), width, height)
	index := spatial.Build(m, 0)
	return NewSelector(view, index, DefaultConfig()), view
}

func TestSelectEnclosedStroke(t *testing.T) {
	m := flatSquare(t)
	selector, _ := newTestSelector(m, 800, 600)

	// A stroke enclosing the whole projected square
	boundary := NewBoundary(points2(0.05, 0.05, 0.95, 0.05, 0.95, 0.95, 0.05, 0.95))
	session := NewSelection()

	added := selector.Select(boundary, ModeCentroid, session)
	if len(added) != 2 {
		t.Fatalf("enclosing stroke should select both triangles, got %v", added)
	}

	area := 0.0
	for _, tri := range session.Indices() {
		area += m.Triangle(tri).Area()
	}
	if math.Abs(area-1.0) > 1e-10 {
		t.Errorf("selected area should be 1.0, got %v", area)
	}
}

func TestSelectRepeatStrokeAddsNothing(t *testing.T) {
	m := flatSquare(t)
	selector, _ := newTestSelector(m, 800, 600)

	boundary := NewBoundary(points2(0.05, 0.05, 0.95, 0.05, 0.95, 0.95, 0.05, 0.95))
	session := NewSelection()

	selector.Select(boundary, ModeCentroid, session)
	before := session.Len()

	added := selector.Select(boundary, ModeCentroid, session)
	if len(added) != 0 {
		t.Errorf("repeating a stroke should add nothing, got %v", added)
	}
	if session.Len() != before {
		t.Errorf("session grew from %d to %d on a repeated stroke", before, session.Len())
	}
}

func TestSelectStrokeOutsideModel(t *testing.T) {
	m := flatSquare(t)
	selector, _ := newTestSelector(m, 800, 600)

	// Projected square stays within roughly the middle of the screen,
	// so a stroke hugging a corner misses it
	boundary := NewBoundary(points2(0.0, 0.0, 0.1, 0.0, 0.1, 0.1, 0.0, 0.1))
	session := NewSelection()

	if added := selector.Select(boundary, ModeCentroid, session); len(added) != 0 {
		t.Errorf("stroke away from the model should select nothing, got %v", added)
	}
}

func TestSelectDegenerateStroke(t *testing.T) {
	m := flatSquare(t)
	selector, _ := newTestSelector(m, 800, 600)
	session := NewSelection()

	if added := selector.Select(NewBoundary(points2(0.5, 0.5, 0.6, 0.6)), ModeCentroid, session); added != nil {
		t.Errorf("two-point stroke should select nothing, got %v", added)
	}
	if added := selector.Select(nil, ModeCentroid, session); added != nil {
		t.Errorf("nil boundary should select nothing, got %v", added)
	}
	if session.Len() != 0 {
		t.Errorf("degenerate strokes must leave the session empty, len %d", session.Len())
	}
}

func TestSelectOccludedTriangle(t *testing.T) {
	m := occludedPair(t)
	selector, _ := newTestSelector(m, 800, 800)

	boundary := NewBoundary(points2(0.05, 0.05, 0.95, 0.05, 0.95, 0.95, 0.05, 0.95))

	// Without visibility gating both triangles project inside the
	// stroke and get selected
	plain := NewSelection()
	added := selector.Select(boundary, ModeCentroid, plain)
	if len(added) != 2 {
		t.Fatalf("centroid mode should select both triangles, got %v", added)
	}

	// With visibility gating the hidden far triangle is rejected even
	// though its projection lies inside the stroke
	gated := NewSelection()
	added = selector.Select(boundary, ModeCentroidVisible, gated)
	if len(added) != 1 {
		t.Fatalf("centroid-visible mode should select one triangle, got %v", added)
	}
	if added[0] != 1 {
		t.Errorf("the near triangle (1) should survive, got %d", added[0])
	}
	if gated.Has(0) {
		t.Error("the occluded far triangle must not be selected")
	}
}

func TestSelectIntersectionMode(t *testing.T) {
	m := flatSquare(t)
	selector, view := newTestSelector(m, 800, 800)

	// A tiny stroke strictly inside the projection of the lower
	// triangle: no vertex inside, no edge crossing, only the
	// boundary-inside-triangle rule applies
	p, _ := view.ProjectNormalized(geometry.NewVector3(0.6, 0.3, 0))
	boundary := NewBoundary(points2(
		p.X-0.01, p.Y-0.01,
		p.X+0.01, p.Y-0.01,
		p.X+0.01, p.Y+0.01,
		p.X-0.01, p.Y+0.01,
	))

	session := NewSelection()
	added := selector.Select(boundary, ModeIntersection, session)
	if len(added) != 1 || added[0] != 0 {
		t.Fatalf("stroke inside triangle 0 should select only it, got %v", added)
	}

	// The same tiny stroke selects nothing in centroid mode: neither
	// centroid projects into it
	centroid := NewSelection()
	if got := selector.Select(boundary, ModeCentroid, centroid); len(got) != 0 {
		t.Errorf("centroid mode should not match the tiny stroke, got %v", got)
	}
}

func TestSelectAllOnOverlap(t *testing.T) {
	m := flatSquare(t)
	selector, view := newTestSelector(m, 800, 800)

	// Any overlap, however small, selects the whole model
	p, _ := view.ProjectNormalized(geometry.NewVector3(0.6, 0.3, 0))
	boundary := NewBoundary(points2(
		p.X-0.01, p.Y-0.01,
		p.X+0.01, p.Y-0.01,
		p.X+0.01, p.Y+0.01,
		p.X-0.01, p.Y+0.01,
	))

	session := NewSelection()
	added := selector.SelectAll(boundary, ModeCentroid, session)
	if len(added) != m.TriangleCount() {
		t.Errorf("whole-model selection should cover all %d triangles, got %v", m.TriangleCount(), added)
	}
}

func TestSelectAllNoOverlap(t *testing.T) {
	m := flatSquare(t)
	selector, _ := newTestSelector(m, 800, 800)

	boundary := NewBoundary(points2(0.0, 0.0, 0.05, 0.0, 0.05, 0.05, 0.0, 0.05))
	session := NewSelection()

	if added := selector.SelectAll(boundary, ModeCentroid, session); len(added) != 0 {
		t.Errorf("whole-model selection needs overlap, got %v", added)
	}
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"centroid", "centroid-visible", "intersection"} {
		mode, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", name, err)
		}
		if mode.String() != name {
			t.Errorf("mode %q round-tripped to %q", name, mode.String())
		}
	}
	if _, err := ParseMode("nearest"); err == nil {
		t.Error("unknown mode name should fail")
	}
}
