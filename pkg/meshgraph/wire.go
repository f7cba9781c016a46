package meshgraph

import (
	"fmt"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// The wire form flattens the adjacency map into a list of pairs so a
// graph survives serialization across an execution-context boundary,
// where native maps with integer keys do not round-trip.

// WireEdge is one adjacency entry in serialized form
type WireEdge struct {
	Neighbor int     `json:"neighbor"`
	Weight   float64 `json:"weight"`
}

// WireAdjacency pairs a vertex index with its edge list
type WireAdjacency struct {
	Vertex int        `json:"vertex"`
	Edges  []WireEdge `json:"edges"`
}

// WireGraph is the serialized graph payload
type WireGraph struct {
	Vertices  [][3]float64    `json:"vertices"`
	Adjacency []WireAdjacency `json:"adjacency"`
}

// Encode converts a graph to its wire form
func Encode(g *Graph) *WireGraph {
	w := &WireGraph{
		Vertices:  make([][3]float64, len(g.Vertices)),
		Adjacency: make([]WireAdjacency, 0, len(g.Adjacency)),
	}
	for i, v := range g.Vertices {
		w.Vertices[i] = [3]float64{v.X, v.Y, v.Z}
	}
	for vertex := 0; vertex < len(g.Vertices); vertex++ {
		edges, ok := g.Adjacency[vertex]
		if !ok {
			continue
		}
		wireEdges := make([]WireEdge, len(edges))
		for i, e := range edges {
			wireEdges[i] = WireEdge{Neighbor: e.Neighbor, Weight: e.Weight}
		}
		w.Adjacency = append(w.Adjacency, WireAdjacency{Vertex: vertex, Edges: wireEdges})
	}
	return w
}

// Decode rebuilds a graph from its wire form, validating indices
func Decode(w *WireGraph) (*Graph, error) {
	g := &Graph{
		Vertices:  make([]geometry.Vector3, len(w.Vertices)),
		Adjacency: make(map[int][]Edge, len(w.Adjacency)),
	}
	for i, v := range w.Vertices {
		g.Vertices[i] = geometry.NewVector3(v[0], v[1], v[2])
	}
	for _, entry := range w.Adjacency {
		if entry.Vertex < 0 || entry.Vertex >= len(g.Vertices) {
			return nil, fmt.Errorf("adjacency vertex %d out of range", entry.Vertex)
		}
		edges := make([]Edge, len(entry.Edges))
		for i, e := range entry.Edges {
			if e.Neighbor < 0 || e.Neighbor >= len(g.Vertices) {
				return nil, fmt.Errorf("edge neighbor %d out of range", e.Neighbor)
			}
			edges[i] = Edge{Neighbor: e.Neighbor, Weight: e.Weight}
		}
		g.Adjacency[entry.Vertex] = edges
	}
	return g, nil
}
