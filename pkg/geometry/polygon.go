package geometry

import "math"

// PointInPolygon tests if a point is inside a polygon using ray casting.
// Polygons with fewer than 3 vertices contain nothing.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]

		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}

	return inside
}

// PolygonArea returns the unsigned area of a simple polygon via the
// shoelace formula. Degenerate polygons have zero area.
func PolygonArea(polygon []Point) float64 {
	if len(polygon) < 3 {
		return 0
	}
	var sum float64
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += polygon[i].X*polygon[j].Y - polygon[j].X*polygon[i].Y
	}
	return math.Abs(sum) / 2
}

// SegmentsIntersect reports whether segments p1-p2 and p3-p4 intersect,
// using the standard orientation test with collinear special cases.
func SegmentsIntersect(p1, p2, p3, p4 Point) bool {
	d1 := orientation(p3, p4, p1)
	d2 := orientation(p3, p4, p2)
	d3 := orientation(p1, p2, p3)
	d4 := orientation(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases: an endpoint lies on the other segment.
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// SegmentIntersectsPolygon reports whether segment a-b crosses any edge of
// the polygon or has an endpoint strictly inside it.
func SegmentIntersectsPolygon(a, b Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if SegmentsIntersect(a, b, polygon[i], polygon[j]) {
			return true
		}
	}
	return PointInPolygon(a, polygon) || PointInPolygon(b, polygon)
}

// PointSegmentDistance returns the distance from p to the segment a-b.
// A zero-length segment degenerates to point distance.
func PointSegmentDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))

	closest := Point{X: a.X + t*dx, Y: a.Y + t*dy}
	return p.Distance(closest)
}

// SegmentSegmentDistance returns the minimum distance between segments
// a1-a2 and b1-b2. Intersecting segments have distance zero.
func SegmentSegmentDistance(a1, a2, b1, b2 Point) float64 {
	if SegmentsIntersect(a1, a2, b1, b2) {
		return 0
	}
	d := PointSegmentDistance(a1, b1, b2)
	if v := PointSegmentDistance(a2, b1, b2); v < d {
		d = v
	}
	if v := PointSegmentDistance(b1, a1, a2); v < d {
		d = v
	}
	if v := PointSegmentDistance(b2, a1, a2); v < d {
		d = v
	}
	return d
}

// PolylineLength returns the total length of a polyline.
func PolylineLength(points []Point) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// SimplifyCollinear removes interior polyline points that are collinear
// with their neighbors. Endpoints are always preserved.
func SimplifyCollinear(points []Point) []Point {
	if len(points) <= 2 {
		return points
	}
	out := []Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		if math.Abs(orientation(out[len(out)-1], points[i], points[i+1])) > 1e-9 {
			out = append(out, points[i])
		}
	}
	out = append(out, points[len(points)-1])
	return out
}

// TurnAngle returns the interior turn angle in radians at vertex b of the
// path a-b-c, in [0, pi]. Zero-length segments yield zero (no turn).
func TurnAngle(a, b, c Point) float64 {
	v1 := b.Sub(a)
	v2 := c.Sub(b)
	l1 := v1.Norm()
	l2 := v2.Norm()
	if l1 == 0 || l2 == 0 {
		return 0
	}
	dot := (v1.X*v2.X + v1.Y*v2.Y) / (l1 * l2)
	dot = math.Max(-1, math.Min(1, dot))
	return math.Acos(dot)
}

// onSegment reports whether a point known to be collinear with segment
// a-b lies within its bounding box.
func onSegment(a, b, p Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// orientation computes the cross product of vectors ab and ac.
// Positive means c is left of ab, negative right, zero collinear.
func orientation(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}
