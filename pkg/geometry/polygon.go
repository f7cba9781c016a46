package geometry

import "sort"

// ConvexHull computes the convex hull of a set of 2D points using the
// monotone chain algorithm. The result is in counter-clockwise order
// without the closing point repeated. Inputs with fewer than three
// points are returned as-is.
func ConvexHull(points []Vector2) []Vector2 {
	if len(points) < 3 {
		return append([]Vector2(nil), points...)
	}

	sorted := append([]Vector2(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	// Build lower then upper chain
	var hull []Vector2
	for _, p := range sorted {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// turn returns positive for a left turn, negative for a right turn and
// zero for collinear points
func turn(a, b, c Vector2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// PointInPolygon reports whether a point lies inside a closed polygon
// using the ray crossing rule. The polygon is implicitly closed from
// the last point back to the first.
func PointInPolygon(point Vector2, polygon []Vector2) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi := polygon[i]
		pj := polygon[j]
		if (pi.Y > point.Y) != (pj.Y > point.Y) {
			crossX := (pj.X-pi.X)*(point.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if point.X < crossX {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// SegmentsIntersect reports whether the closed segments a1-a2 and b1-b2
// intersect, including touching endpoints and collinear overlap.
func SegmentsIntersect(a1, a2, b1, b2 Vector2) bool {
	d1 := turn(b1, b2, a1)
	d2 := turn(b1, b2, a2)
	d3 := turn(a1, a2, b1)
	d4 := turn(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

// onSegment reports whether point p, known to be collinear with segment
// s1-s2, lies within the segment's extent
func onSegment(s1, s2, p Vector2) bool {
	return min(s1.X, s2.X) <= p.X && p.X <= max(s1.X, s2.X) &&
		min(s1.Y, s2.Y) <= p.Y && p.Y <= max(s1.Y, s2.Y)
}
