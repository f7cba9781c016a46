package stl

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Model represents a parsed STL model: a triangle soup without shared
// vertices
type Model struct {
	Name      string
	Triangles []geometry.Triangle
}

// NewModel creates a new STL model
func NewModel(name string) *Model {
	return &Model{
		Name:      name,
		Triangles: make([]geometry.Triangle, 0),
	}
}

// AddTriangle adds a triangle to the model
func (m *Model) AddTriangle(triangle geometry.Triangle) {
	m.Triangles = append(m.Triangles, triangle)
}

// TriangleCount returns the number of triangles in the model
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// BoundingBox calculates the bounding box of the entire model
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, triangle := range m.Triangles {
		bbox.Extend(triangle.V1)
		bbox.Extend(triangle.V2)
		bbox.Extend(triangle.V3)
	}
	return bbox
}

// ToMesh welds the triangle soup into an indexed mesh. Vertices with
// exactly equal coordinates are merged, which is what connects
// adjacent triangles in the edge graph. The mesh ID doubles as the
// cache key for the spatial index.
func (m *Model) ToMesh(id string) (*mesh.Mesh, error) {
	if m.TriangleCount() == 0 {
		return nil, fmt.Errorf("model %q has no triangles", m.Name)
	}

	lookup := make(map[geometry.Vector3]uint32)
	var positions []float64
	indices := make([]uint32, 0, m.TriangleCount()*3)

	weld := func(v geometry.Vector3) uint32 {
		if idx, ok := lookup[v]; ok {
			return idx
		}
		idx := uint32(len(positions) / 3)
		lookup[v] = idx
		positions = append(positions, v.X, v.Y, v.Z)
		return idx
	}

	for _, triangle := range m.Triangles {
		indices = append(indices, weld(triangle.V1), weld(triangle.V2), weld(triangle.V3))
	}

	return mesh.New(id, positions, indices, geometry.IdentityMatrix())
}
