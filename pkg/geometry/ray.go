package geometry

import "math"

// Ray represents a half-line with an origin and unit direction
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

// NewRay creates a ray, normalizing the direction
func NewRay(origin, direction Vector3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray
func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectTriangle performs the Moller-Trumbore intersection test.
// It returns the hit distance along the ray and whether the ray hits
// the triangle at a non-negative distance. Back faces are not culled.
func (r Ray) IntersectTriangle(t Triangle) (float64, bool) {
	const epsilon = 1e-12

	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)

	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false // ray parallel to triangle plane
	}

	invDet := 1.0 / det
	s := r.Origin.Sub(t.V1)
	u := s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := edge2.Dot(q) * invDet
	if dist < epsilon {
		return 0, false
	}
	return dist, true
}
