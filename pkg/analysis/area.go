// Package analysis computes measurements over meshes and triangle
// selections.
package analysis

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// AreaResult holds the area of one selection snapshot. It is valid
// only for the exact set of triangle indices it was computed from.
type AreaResult struct {
	Area          float64
	TriangleCount int
}

// SelectionArea sums the area of the given triangles in index order,
// each as half the cross product magnitude of two edges. This is the
// reference evaluation; the background path in the engine must produce
// bit-identical results, so both call through here.
func SelectionArea(m *mesh.Mesh, triangles []int) (AreaResult, error) {
	total := 0.0
	for _, t := range triangles {
		if t < 0 || t >= m.TriangleCount() {
			return AreaResult{}, fmt.Errorf("triangle index %d out of range (count %d)", t, m.TriangleCount())
		}
		total += m.Triangle(t).Area()
	}
	return AreaResult{Area: total, TriangleCount: len(triangles)}, nil
}
