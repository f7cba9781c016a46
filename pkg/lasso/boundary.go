// Package lasso classifies mesh triangles against a freehand screen
// region, pruning through the spatial index and gating results by
// visibility from the current camera.
package lasso

import "github.com/philipparndt/gomesh/pkg/geometry"

// Boundary is a freehand selection outline in normalized screen
// coordinates. The polygon is implicitly closed from the last point
// back to the first. Fewer than three points classify nothing.
type Boundary struct {
	points []geometry.Vector2
	bounds screenRect
}

// NewBoundary creates a boundary from stroke points
func NewBoundary(points []geometry.Vector2) *Boundary {
	b := &Boundary{points: append([]geometry.Vector2(nil), points...)}
	b.bounds = newScreenRect()
	for _, p := range points {
		b.bounds.extend(p)
	}
	return b
}

// Valid reports whether the boundary has enough points to classify
func (b *Boundary) Valid() bool {
	return len(b.points) >= 3
}

// Points returns the boundary points
func (b *Boundary) Points() []geometry.Vector2 {
	return b.points
}

// EdgeCount returns the number of boundary edges, including the
// closing edge
func (b *Boundary) EdgeCount() int {
	return len(b.points)
}

// Edge returns the endpoints of boundary edge i
func (b *Boundary) Edge(i int) (geometry.Vector2, geometry.Vector2) {
	return b.points[i], b.points[(i+1)%len(b.points)]
}

// Contains reports whether a normalized screen point lies inside the
// boundary polygon
func (b *Boundary) Contains(p geometry.Vector2) bool {
	if !b.bounds.contains(p) {
		return false
	}
	return geometry.PointInPolygon(p, b.points)
}

// filterEdges narrows a candidate edge set to edges whose extent
// overlaps the given screen rectangle. Passing nil candidates means
// all edges are candidates.
func (b *Boundary) filterEdges(rect screenRect, candidates []int, out []int) []int {
	out = out[:0]
	consider := func(i int) {
		p1, p2 := b.Edge(i)
		var er screenRect
		er = newScreenRect()
		er.extend(p1)
		er.extend(p2)
		if rect.overlaps(er) {
			out = append(out, i)
		}
	}
	if candidates == nil {
		for i := 0; i < b.EdgeCount(); i++ {
			consider(i)
		}
	} else {
		for _, i := range candidates {
			consider(i)
		}
	}
	return out
}

// screenRect is an axis-aligned rectangle in normalized screen space
type screenRect struct {
	min, max geometry.Vector2
}

func newScreenRect() screenRect {
	return screenRect{
		min: geometry.NewVector2(1e30, 1e30),
		max: geometry.NewVector2(-1e30, -1e30),
	}
}

func (r *screenRect) extend(p geometry.Vector2) {
	if p.X < r.min.X {
		r.min.X = p.X
	}
	if p.Y < r.min.Y {
		r.min.Y = p.Y
	}
	if p.X > r.max.X {
		r.max.X = p.X
	}
	if p.Y > r.max.Y {
		r.max.Y = p.Y
	}
}

func (r screenRect) contains(p geometry.Vector2) bool {
	return p.X >= r.min.X && p.X <= r.max.X && p.Y >= r.min.Y && p.Y <= r.max.Y
}

func (r screenRect) overlaps(other screenRect) bool {
	return r.min.X <= other.max.X && r.max.X >= other.min.X &&
		r.min.Y <= other.max.Y && r.max.Y >= other.min.Y
}
