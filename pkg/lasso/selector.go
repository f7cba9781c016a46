package lasso

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/spatial"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

// Mode selects the policy deciding when a triangle belongs to the
// lasso region.
type Mode int

const (
	// ModeCentroid selects a triangle when its centroid projects
	// inside the boundary.
	ModeCentroid Mode = iota
	// ModeCentroidVisible is ModeCentroid additionally gated by the
	// occlusion filter.
	ModeCentroidVisible
	// ModeIntersection selects a triangle when any vertex lies
	// inside the boundary, any edge crosses it, or any boundary
	// point lies inside the triangle.
	ModeIntersection
)

// ParseMode converts a mode name to a Mode
func ParseMode(name string) (Mode, error) {
	switch name {
	case "centroid":
		return ModeCentroid, nil
	case "centroid-visible":
		return ModeCentroidVisible, nil
	case "intersection":
		return ModeIntersection, nil
	}
	return 0, fmt.Errorf("unknown selection mode %q", name)
}

func (m Mode) String() string {
	switch m {
	case ModeCentroid:
		return "centroid"
	case ModeCentroidVisible:
		return "centroid-visible"
	case ModeIntersection:
		return "intersection"
	}
	return "unknown"
}

// node classification against the boundary
type nodeClass int

const (
	classOutside nodeClass = iota
	classInside
	classCrossing
)

// Selector classifies mesh triangles against a boundary by walking
// the spatial index top-down, pruning subtrees that project outside
// the region and batch-accepting subtrees that project fully inside.
type Selector struct {
	view       *viewer.View
	index      *spatial.Index
	visibility *Visibility

	// per-depth scratch for the boundary edge prefilter, reused
	// across strokes
	edgeStacks [][]int
}

// NewSelector creates a selector over a view and a mesh's spatial
// index
func NewSelector(view *viewer.View, index *spatial.Index, cfg Config) *Selector {
	return &Selector{
		view:       view,
		index:      index,
		visibility: NewVisibility(view, index, cfg),
	}
}

// Select classifies the mesh against the boundary and returns the
// triangle indices newly added to the session selection. Triangles
// already in the session are skipped.
func (s *Selector) Select(boundary *Boundary, mode Mode, session *Selection) []int {
	if boundary == nil || !boundary.Valid() {
		return nil
	}
	root := s.index.Root()
	if root == nil {
		return nil
	}

	var added []int
	s.walk(root, boundary, nil, 0, mode, session, &added)
	return added
}

// SelectAll implements whole-model selection: as soon as any overlap
// between the model and the boundary is detected, every triangle is
// accepted without per-node classification.
func (s *Selector) SelectAll(boundary *Boundary, mode Mode, session *Selection) []int {
	if boundary == nil || !boundary.Valid() {
		return nil
	}
	root := s.index.Root()
	if root == nil {
		return nil
	}

	class, _ := s.classify(root, boundary, nil, 0)
	if class == classOutside {
		return nil
	}

	var added []int
	root.Collect(func(triangle int) {
		s.accept(triangle, mode, session, &added)
	})
	return added
}

func (s *Selector) walk(node *spatial.Node, boundary *Boundary, candidates []int, depth int, mode Mode, session *Selection, added *[]int) {
	class, filtered := s.classify(node, boundary, candidates, depth)

	switch class {
	case classOutside:
		return

	case classInside:
		// Batch acceptance: every contained triangle is inside the
		// region, so the screen-space tests are skipped. Visibility
		// gating still runs per triangle where the mode demands it.
		node.Collect(func(triangle int) {
			s.accept(triangle, mode, session, added)
		})

	case classCrossing:
		if node.IsLeaf() {
			for _, triangle := range node.Triangles {
				if session.Has(triangle) {
					continue
				}
				if s.triangleMatches(triangle, boundary, filtered, mode) {
					session.Add(triangle)
					*added = append(*added, triangle)
				}
			}
			return
		}
		s.walk(node.Left, boundary, filtered, depth+1, mode, session, added)
		s.walk(node.Right, boundary, filtered, depth+1, mode, session, added)
	}
}

// classify projects the node's box corners to screen space, hulls
// them and tests the hull against the boundary. It returns the
// classification and the boundary edges that can still intersect this
// node, for reuse at deeper levels.
func (s *Selector) classify(node *spatial.Node, boundary *Boundary, candidates []int, depth int) (nodeClass, []int) {
	corners := node.Bounds.Corners()
	projected := make([]geometry.Vector2, 0, 8)
	rect := newScreenRect()
	for _, corner := range corners {
		p, _ := s.view.ProjectNormalized(corner)
		projected = append(projected, p)
		rect.extend(p)
	}

	filtered := boundary.filterEdges(rect, candidates, s.scratch(depth))
	s.edgeStacks[depth] = filtered

	hull := geometry.ConvexHull(projected)

	inside := 0
	for _, p := range hull {
		if boundary.Contains(p) {
			inside++
		}
	}

	crossing := false
	if len(filtered) > 0 {
		for i := 0; i < len(hull) && !crossing; i++ {
			h1 := hull[i]
			h2 := hull[(i+1)%len(hull)]
			for _, e := range filtered {
				b1, b2 := boundary.Edge(e)
				if geometry.SegmentsIntersect(h1, h2, b1, b2) {
					crossing = true
					break
				}
			}
		}
	}

	if inside == len(hull) && len(hull) > 0 && !crossing {
		return classInside, filtered
	}
	if inside > 0 || crossing {
		return classCrossing, filtered
	}

	// A boundary vertex inside the hull means the region dips into
	// this node even though no hull corner is inside the region
	if len(hull) >= 3 {
		for _, p := range boundary.Points() {
			if rect.contains(p) && geometry.PointInPolygon(p, hull) {
				return classCrossing, filtered
			}
		}
	}

	return classOutside, filtered
}

// accept adds a triangle to the session, applying the mode's
// visibility gate
func (s *Selector) accept(triangle int, mode Mode, session *Selection, added *[]int) {
	if session.Has(triangle) {
		return
	}
	switch mode {
	case ModeCentroidVisible:
		if !s.visibility.TriangleVisible(triangle) {
			return
		}
	case ModeIntersection:
		if !s.visibility.PointVisible(s.index.Mesh().Triangle(triangle).Center()) {
			return
		}
	}
	session.Add(triangle)
	*added = append(*added, triangle)
}

// triangleMatches runs the per-triangle tests for leaf triangles of
// boundary-crossing nodes
func (s *Selector) triangleMatches(triangle int, boundary *Boundary, edges []int, mode Mode) bool {
	tri := s.index.Mesh().Triangle(triangle)

	switch mode {
	case ModeCentroid, ModeCentroidVisible:
		centroid, _ := s.view.ProjectNormalized(tri.Center())
		if !boundary.Contains(centroid) {
			return false
		}
		if mode == ModeCentroidVisible && !s.visibility.TriangleVisible(triangle) {
			return false
		}
		return true

	case ModeIntersection:
		vertices := tri.Vertices()
		projected := make([]geometry.Vector2, 3)
		for i, v := range vertices {
			projected[i], _ = s.view.ProjectNormalized(v)
		}

		// Any vertex inside the boundary
		for i, p := range projected {
			if boundary.Contains(p) && s.visibility.PointVisible(vertices[i]) {
				return true
			}
		}

		// Any triangle edge crossing a boundary edge
		midpoints := tri.EdgeMidpoints()
		for i := 0; i < 3; i++ {
			t1 := projected[i]
			t2 := projected[(i+1)%3]
			for _, e := range edges {
				b1, b2 := boundary.Edge(e)
				if geometry.SegmentsIntersect(t1, t2, b1, b2) {
					if s.visibility.PointVisible(midpoints[i]) {
						return true
					}
					break
				}
			}
		}

		// Any boundary point inside the projected triangle
		for _, p := range boundary.Points() {
			if geometry.PointInPolygon(p, projected) {
				return s.visibility.PointVisible(tri.Center())
			}
		}
		return false
	}
	return false
}

func (s *Selector) scratch(depth int) []int {
	for len(s.edgeStacks) <= depth {
		s.edgeStacks = append(s.edgeStacks, nil)
	}
	return s.edgeStacks[depth]
}
