package meshgraph

import (
	"math"

	"github.com/philipparndt/gomesh/pkg/geometry"
)

// ShortestPath runs Dijkstra's algorithm between two vertex indices
// and returns the path as world-space points. It returns nil when an
// index is out of range or the vertices are not connected; equal
// indices short-circuit to a single-point path. Ties between equal
// distances are resolved by heap order only.
func ShortestPath(g *Graph, start, end int) []geometry.Vector3 {
	n := g.VertexCount()
	if start < 0 || start >= n || end < 0 || end >= n {
		return nil
	}
	if start == end {
		return []geometry.Vector3{g.Vertices[start]}
	}

	distances := make([]float64, n)
	predecessors := make([]int, n)
	settled := make([]bool, n)
	for i := range distances {
		distances[i] = math.Inf(1)
		predecessors[i] = -1
	}
	distances[start] = 0

	heap := newVertexHeap(n)
	heap.Insert(start, 0)

	for heap.Len() > 0 {
		vertex, dist := heap.ExtractMin()
		if settled[vertex] {
			continue
		}
		settled[vertex] = true

		// The first pop of the end vertex fixes its distance
		if vertex == end {
			break
		}

		for _, edge := range g.Adjacency[vertex] {
			if settled[edge.Neighbor] {
				continue
			}
			candidate := dist + edge.Weight
			if candidate < distances[edge.Neighbor] {
				distances[edge.Neighbor] = candidate
				predecessors[edge.Neighbor] = vertex
				if heap.Contains(edge.Neighbor) {
					heap.DecreaseKey(edge.Neighbor, candidate)
				} else {
					heap.Insert(edge.Neighbor, candidate)
				}
			}
		}
	}

	if predecessors[end] == -1 {
		return nil
	}

	// Back-walk the predecessor chain, then reverse
	var path []geometry.Vector3
	for v := end; v != -1; v = predecessors[v] {
		path = append(path, g.Vertices[v])
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathLength returns the total length of a polyline path
func PathLength(path []geometry.Vector3) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += path[i-1].Distance(path[i])
	}
	return total
}
