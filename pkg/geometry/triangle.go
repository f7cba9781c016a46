package geometry

// Triangle represents a triangular facet in 3D space
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Normal computes the unit normal vector for the triangle
func (t Triangle) Normal() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2).Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	cross := edge1.Cross(edge2)
	return cross.Length() / 2.0
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}

// Vertices returns the three corners in order
func (t Triangle) Vertices() [3]Vector3 {
	return [3]Vector3{t.V1, t.V2, t.V3}
}

// EdgeMidpoints returns the midpoint of each edge
func (t Triangle) EdgeMidpoints() [3]Vector3 {
	return [3]Vector3{
		t.V1.Add(t.V2).Mul(0.5),
		t.V2.Add(t.V3).Mul(0.5),
		t.V3.Add(t.V1).Mul(0.5),
	}
}

// SamplePoints returns representative points for occlusion and region tests:
// the centroid followed by the three edge midpoints
func (t Triangle) SamplePoints() [4]Vector3 {
	mids := t.EdgeMidpoints()
	return [4]Vector3{t.Center(), mids[0], mids[1], mids[2]}
}

// Bounds returns the axis-aligned bounding box of the triangle
func (t Triangle) Bounds() BoundingBox {
	bbox := NewBoundingBox()
	bbox.Extend(t.V1)
	bbox.Extend(t.V2)
	bbox.Extend(t.V3)
	return bbox
}
