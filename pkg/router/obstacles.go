package router

import (
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// obstacleSet is the geometry a route must avoid: component outlines (or
// padded bounding boxes when a footprint has no outline) and the bounding
// envelopes of already-placed routes. Rotated footprints are covered by
// the bounding box of their rotated outline, which is conservative.
type obstacleSet struct {
	polygons  [][]geometry.Point
	envelopes []geometry.Rect
	board     *pcb.Board
}

// newObstacleSet collects obstacles for routing one connection: every
// component except the two endpoint components, plus every existing route.
func newObstacleSet(board *pcb.Board, components []pcb.Component, exclude map[string]bool, routes []pcb.Route, clearance float64) *obstacleSet {
	set := &obstacleSet{board: board}

	for i := range components {
		comp := &components[i]
		if exclude[comp.ID] {
			continue
		}
		if outline := comp.WorldOutline(); outline != nil {
			set.polygons = append(set.polygons, outline)
			continue
		}
		set.envelopes = append(set.envelopes, comp.BoundingRect().Expand(clearance))
	}

	for i := range routes {
		set.addRoute(&routes[i], clearance)
	}

	return set
}

// addRoute adds a finished route's bounding envelope.
func (s *obstacleSet) addRoute(route *pcb.Route, clearance float64) {
	if len(route.Polyline) == 0 {
		return
	}
	s.envelopes = append(s.envelopes,
		geometry.BoundingBox(route.Polyline).Expand(route.Width/2+clearance))
}

// blocked reports whether a grid point may not be occupied: outside the
// board boundary or inside any obstacle.
func (s *obstacleSet) blocked(p geometry.Point) bool {
	if !s.onBoard(p) {
		return true
	}
	for _, poly := range s.polygons {
		if geometry.PointInPolygon(p, poly) {
			return true
		}
	}
	for _, env := range s.envelopes {
		if env.Contains(p) {
			return true
		}
	}
	return false
}

// onBoard tests board containment. The ray-cast test is exclusive on
// polygon edges and pads often sit right on the margin, so points on the
// boundary itself also count as on-board.
func (s *obstacleSet) onBoard(p geometry.Point) bool {
	if s.board.Contains(p) {
		return true
	}
	boundary := s.board.Boundary
	n := len(boundary)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if geometry.PointSegmentDistance(p, boundary[i], boundary[j]) < 1e-6 {
			return true
		}
	}
	return false
}

// segmentBlocked reports whether a straight segment crosses any obstacle
// polygon or envelope.
func (s *obstacleSet) segmentBlocked(a, b geometry.Point) bool {
	for _, poly := range s.polygons {
		if geometry.SegmentIntersectsPolygon(a, b, poly) {
			return true
		}
	}
	for _, env := range s.envelopes {
		if geometry.SegmentIntersectsPolygon(a, b, env.Corners()) {
			return true
		}
	}
	return false
}
