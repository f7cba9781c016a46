package analysis

import (
	"fmt"
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// MeshStats contains summary measurements of a mesh
type MeshStats struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// Analyze computes summary statistics for a mesh. Shared edges are
// counted once.
func Analyze(m *mesh.Mesh) *MeshStats {
	stats := &MeshStats{
		BoundingBox:   m.Bounds(),
		TriangleCount: m.TriangleCount(),
		VertexCount:   m.VertexCount(),
		MinEdgeLength: math.MaxFloat64,
	}
	stats.Dimensions = stats.BoundingBox.Size()

	seen := make(map[[2]int]struct{})
	totalLength := 0.0

	for i := 0; i < m.TriangleCount(); i++ {
		tri := m.Triangle(i)
		stats.SurfaceArea += tri.Area()

		idx := m.TriangleIndices(i)
		pairs := [3][2]int{
			{idx[0], idx[1]},
			{idx[1], idx[2]},
			{idx[2], idx[0]},
		}
		for _, pair := range pairs {
			key := pair
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			length := m.Vertex(pair[0]).Distance(m.Vertex(pair[1]))
			totalLength += length
			if length < stats.MinEdgeLength {
				stats.MinEdgeLength = length
			}
			if length > stats.MaxEdgeLength {
				stats.MaxEdgeLength = length
			}
		}
	}

	stats.EdgeCount = len(seen)
	if stats.EdgeCount > 0 {
		stats.AvgEdgeLength = totalLength / float64(stats.EdgeCount)
	} else {
		stats.MinEdgeLength = 0
	}
	return stats
}

// FindNearestVertex returns the index of the mesh vertex nearest to a
// point, with its distance. An empty mesh returns -1.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64

	for i := 0; i < m.VertexCount(); i++ {
		distance := point.Distance(m.Vertex(i))
		if distance < minDistance {
			minDistance = distance
			nearest = i
		}
	}
	return nearest, minDistance
}

// FormatVector formats a 3D vector for display
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
