// Package meshgraph builds a weighted edge graph from a triangle mesh
// and solves shortest paths over it. Path lengths over the edge graph
// approximate geodesic distance on the surface.
package meshgraph

import (
	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// Edge is one directed half of an undirected weighted edge
type Edge struct {
	Neighbor int
	Weight   float64
}

// Graph is an immutable weighted adjacency graph over mesh vertices.
// Adjacency is symmetric: an undirected edge appears in the lists of
// both endpoints with the same weight.
type Graph struct {
	Vertices  []geometry.Vector3
	Adjacency map[int][]Edge
}

// ProgressFunc receives periodic build progress. Percent runs 0..100.
type ProgressFunc func(stage string, percent, current, total int)

// progressInterval is the triangle count between progress callbacks
const progressInterval = 2048

// Build converts a mesh into its edge graph. Each triangle contributes
// its three undirected edges, weighted by the Euclidean distance
// between the world-transformed endpoints. An edge shared by several
// triangles is stored once.
func Build(m *mesh.Mesh, progress ProgressFunc) *Graph {
	vertexCount := m.VertexCount()
	g := &Graph{
		Vertices:  make([]geometry.Vector3, vertexCount),
		Adjacency: make(map[int][]Edge, vertexCount),
	}

	for i := 0; i < vertexCount; i++ {
		g.Vertices[i] = m.Vertex(i)
	}

	seen := make(map[[2]int]struct{})
	triangleCount := m.TriangleCount()

	for i := 0; i < triangleCount; i++ {
		idx := m.TriangleIndices(i)
		g.addEdge(idx[0], idx[1], seen)
		g.addEdge(idx[1], idx[2], seen)
		g.addEdge(idx[2], idx[0], seen)

		if progress != nil && (i+1)%progressInterval == 0 {
			progress("edges", (i+1)*100/triangleCount, i+1, triangleCount)
		}
	}

	if progress != nil {
		progress("edges", 100, triangleCount, triangleCount)
	}
	return g
}

// addEdge inserts the undirected edge u-v once, into both adjacency
// lists
func (g *Graph) addEdge(u, v int, seen map[[2]int]struct{}) {
	if u == v {
		return
	}
	key := [2]int{u, v}
	if u > v {
		key = [2]int{v, u}
	}
	if _, ok := seen[key]; ok {
		return
	}
	seen[key] = struct{}{}

	weight := g.Vertices[u].Distance(g.Vertices[v])
	g.Adjacency[u] = append(g.Adjacency[u], Edge{Neighbor: v, Weight: weight})
	g.Adjacency[v] = append(g.Adjacency[v], Edge{Neighbor: u, Weight: weight})
}

// VertexCount returns the number of vertices in the graph
func (g *Graph) VertexCount() int {
	return len(g.Vertices)
}

// EdgeCount returns the number of undirected edges
func (g *Graph) EdgeCount() int {
	total := 0
	for _, edges := range g.Adjacency {
		total += len(edges)
	}
	return total / 2
}
