package router

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

// filletTurnThreshold is the minimum direction change, in radians, before
// a corner is worth rounding.
const filletTurnThreshold = 20 * math.Pi / 180

// FilletPolyline rounds every sharp interior corner of a polyline with a
// circular arc of the given radius, subdividing each arc so smoothness
// scales with the turn angle. The first and last points of the result are
// always exactly the input endpoints. A non-positive radius returns the
// input unchanged.
func FilletPolyline(points []geometry.Point, radius float64) []geometry.Point {
	if radius <= 0 || len(points) < 3 {
		return points
	}

	out := []geometry.Point{points[0]}

	for i := 1; i < len(points)-1; i++ {
		a, b, c := points[i-1], points[i], points[i+1]

		turn := geometry.TurnAngle(a, b, c)
		if turn < filletTurnThreshold {
			out = append(out, b)
			continue
		}

		arc := filletCorner(a, b, c, radius, turn)
		if arc == nil {
			out = append(out, b)
			continue
		}
		out = append(out, arc...)
	}

	out = append(out, points[len(points)-1])
	return out
}

// filletCorner replaces vertex b with arc points. Returns nil when the
// corner is degenerate (zero-length legs or a near-straight angle).
func filletCorner(a, b, c geometry.Point, radius, turn float64) []geometry.Point {
	v1 := a.Sub(b)
	v2 := c.Sub(b)
	l1 := v1.Norm()
	l2 := v2.Norm()
	if l1 == 0 || l2 == 0 {
		return nil
	}
	u1 := v1.Scale(1 / l1)
	u2 := v2.Scale(1 / l2)

	// Interior angle at b; tangent offset along each leg.
	interior := math.Pi - turn
	if interior < 1e-6 {
		return nil
	}
	tangent := radius / math.Tan(interior/2)

	// Shrink the radius when the legs are too short for the full fillet.
	maxTangent := math.Min(l1, l2) / 2
	r := radius
	if tangent > maxTangent {
		r = radius * maxTangent / tangent
		tangent = maxTangent
	}

	entry := b.Add(u1.Scale(tangent))
	exit := b.Add(u2.Scale(tangent))

	// Arc center sits along the angle bisector.
	bisector := u1.Add(u2)
	bl := bisector.Norm()
	if bl == 0 {
		return nil
	}
	center := b.Add(bisector.Scale((r / math.Sin(interior/2)) / bl))

	startAngle := math.Atan2(entry.Y-center.Y, entry.X-center.X)
	endAngle := math.Atan2(exit.Y-center.Y, exit.X-center.X)

	sweep := endAngle - startAngle
	for sweep > math.Pi {
		sweep -= 2 * math.Pi
	}
	for sweep < -math.Pi {
		sweep += 2 * math.Pi
	}

	// Segment count scales with the turn angle, 15 degrees per segment.
	segments := int(math.Ceil(math.Abs(sweep) / (15 * math.Pi / 180)))
	if segments < 2 {
		segments = 2
	}

	arc := make([]geometry.Point, 0, segments+1)
	for s := 0; s <= segments; s++ {
		angle := startAngle + sweep*float64(s)/float64(segments)
		arc = append(arc, geometry.Point{
			X: center.X + r*math.Cos(angle),
			Y: center.Y + r*math.Sin(angle),
		})
	}
	return arc
}
