// Package spatial provides a bounding volume hierarchy over mesh
// triangles for ray queries and pruned region traversal.
package spatial

import (
	"math"
	"sort"

	"github.com/philipparndt/gomesh/pkg/geometry"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

// DefaultLeafSize is the triangle count threshold below which a node
// becomes a leaf.
const DefaultLeafSize = 4

// Node is a node in the hierarchy. Internal nodes have two children;
// leaf nodes carry triangle indices into the source mesh.
type Node struct {
	Bounds    geometry.BoundingBox
	Left      *Node
	Right     *Node
	Triangles []int // leaf only
}

// IsLeaf reports whether the node carries triangles directly
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Collect visits every triangle index in the subtree
func (n *Node) Collect(visit func(triangle int)) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		for _, t := range n.Triangles {
			visit(t)
		}
		return
	}
	n.Left.Collect(visit)
	n.Right.Collect(visit)
}

// Index is a bounding volume hierarchy built over one mesh
type Index struct {
	root     *Node
	source   *mesh.Mesh
	leafSize int
}

// Hit describes the nearest triangle hit by a ray query
type Hit struct {
	Triangle int
	Distance float64
	Point    geometry.Vector3
}

// Build constructs the hierarchy by recursive median split along the
// longest axis of each node's bounding box
func Build(m *mesh.Mesh, leafSize int) *Index {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}
	idx := &Index{source: m, leafSize: leafSize}

	count := m.TriangleCount()
	if count == 0 {
		return idx
	}

	triangles := make([]int, count)
	centroids := make([]geometry.Vector3, count)
	for i := 0; i < count; i++ {
		triangles[i] = i
		centroids[i] = m.Triangle(i).Center()
	}

	idx.root = idx.buildNode(triangles, centroids)
	return idx
}

func (idx *Index) buildNode(triangles []int, centroids []geometry.Vector3) *Node {
	node := &Node{Bounds: geometry.NewBoundingBox()}
	for _, t := range triangles {
		node.Bounds.Union(idx.source.Triangle(t).Bounds())
	}

	if len(triangles) <= idx.leafSize {
		node.Triangles = triangles
		return node
	}

	// Split along the longest axis at the centroid median
	extent := node.Bounds.Size()
	axis := 0
	if extent.Y > extent.X && extent.Y > extent.Z {
		axis = 1
	} else if extent.Z > extent.X && extent.Z > extent.Y {
		axis = 2
	}

	sort.Slice(triangles, func(i, j int) bool {
		ci := centroids[triangles[i]]
		cj := centroids[triangles[j]]
		switch axis {
		case 0:
			return ci.X < cj.X
		case 1:
			return ci.Y < cj.Y
		default:
			return ci.Z < cj.Z
		}
	})

	mid := len(triangles) / 2
	node.Left = idx.buildNode(triangles[:mid], centroids)
	node.Right = idx.buildNode(triangles[mid:], centroids)
	return node
}

// Root returns the root node, nil for an empty mesh
func (idx *Index) Root() *Node {
	return idx.root
}

// Mesh returns the mesh the index was built over
func (idx *Index) Mesh() *mesh.Mesh {
	return idx.source
}

// NearestHit finds the closest triangle intersected by the ray,
// pruning subtrees whose box entry distance already exceeds the best
// hit found so far
func (idx *Index) NearestHit(ray geometry.Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1), Triangle: -1}
	idx.nearestHit(idx.root, ray, &best)
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = ray.At(best.Distance)
	return best, true
}

func (idx *Index) nearestHit(node *Node, ray geometry.Ray, best *Hit) {
	if node == nil {
		return
	}
	entry, hit := node.Bounds.IntersectRay(ray.Origin, ray.Direction)
	if !hit || entry > best.Distance {
		return
	}

	if node.IsLeaf() {
		for _, t := range node.Triangles {
			if dist, ok := ray.IntersectTriangle(idx.source.Triangle(t)); ok && dist < best.Distance {
				best.Distance = dist
				best.Triangle = t
			}
		}
		return
	}

	idx.nearestHit(node.Left, ray, best)
	idx.nearestHit(node.Right, ray, best)
}
