// Package mesh defines the flat-buffer mesh representation consumed by
// the measurement engine: a position buffer, an optional triangle index
// buffer and a world transform.
package mesh

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// Mesh is an indexed triangle surface. Positions holds packed x,y,z
// coordinates; Indices holds three vertex indices per triangle. A nil
// Indices buffer means every three consecutive vertices form a triangle.
// Transform maps mesh-local coordinates to world space.
type Mesh struct {
	ID        string
	Positions []float64
	Indices   []uint32
	Transform geometry.Matrix4
}

// New creates a mesh from raw buffers, validating their shape
func New(id string, positions []float64, indices []uint32, transform geometry.Matrix4) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, fmt.Errorf("mesh %q: empty position buffer", id)
	}
	if len(positions)%3 != 0 {
		return nil, fmt.Errorf("mesh %q: position buffer length %d is not a multiple of 3", id, len(positions))
	}
	if indices != nil {
		if len(indices)%3 != 0 {
			return nil, fmt.Errorf("mesh %q: index buffer length %d is not a multiple of 3", id, len(indices))
		}
		vertexCount := uint32(len(positions) / 3)
		for _, idx := range indices {
			if idx >= vertexCount {
				return nil, fmt.Errorf("mesh %q: index %d out of range (vertex count %d)", id, idx, vertexCount)
			}
		}
	} else if (len(positions)/3)%3 != 0 {
		return nil, fmt.Errorf("mesh %q: non-indexed vertex count %d is not a multiple of 3", id, len(positions)/3)
	}

	return &Mesh{
		ID:        id,
		Positions: positions,
		Indices:   indices,
		Transform: transform,
	}, nil
}

// VertexCount returns the number of vertices in the position buffer
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// Vertex returns the world-transformed position of vertex i
func (m *Mesh) Vertex(i int) geometry.Vector3 {
	p := geometry.Vector3{
		X: m.Positions[i*3],
		Y: m.Positions[i*3+1],
		Z: m.Positions[i*3+2],
	}
	return m.Transform.TransformPoint(p)
}

// TriangleIndices returns the three vertex indices of triangle i
func (m *Mesh) TriangleIndices(i int) [3]int {
	if m.Indices != nil {
		return [3]int{int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])}
	}
	return [3]int{i * 3, i*3 + 1, i*3 + 2}
}

// Triangle returns triangle i in world space
func (m *Mesh) Triangle(i int) geometry.Triangle {
	idx := m.TriangleIndices(i)
	return geometry.NewTriangle(m.Vertex(idx[0]), m.Vertex(idx[1]), m.Vertex(idx[2]))
}

// Bounds returns the world-space bounding box of all vertices
func (m *Mesh) Bounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for i := 0; i < m.VertexCount(); i++ {
		bbox.Extend(m.Vertex(i))
	}
	return bbox
}
