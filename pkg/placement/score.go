package placement

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Fitness weights for the composite arrangement score.
const (
	weightRouteLength = 0.40
	weightCrossings   = 0.30
	weightUtilization = 0.15
	weightSymmetry    = 0.15

	// targetUtilization is the board fill ratio the score rewards most.
	targetUtilization = 0.30
)

// EstimateMetrics computes placement metrics from straight-line pad-to-pad
// distances. Routing happens after placement is finalized, so route length
// and crossings here are estimates cheap enough for the annealing loop,
// not the routed polylines.
func EstimateMetrics(components []pcb.Component, connections []pcb.Connection, board *pcb.Board) pcb.ArrangementMetrics {
	var metrics pcb.ArrangementMetrics

	arr := pcb.Arrangement{Components: components}

	// Straight-line segments standing in for routes.
	type segment struct{ a, b geometry.Point }
	var segments []segment
	for _, conn := range connections {
		from, _, err := arr.ResolvePad(conn.From)
		if err != nil {
			continue
		}
		to, _, err := arr.ResolvePad(conn.To)
		if err != nil {
			continue
		}
		segments = append(segments, segment{from, to})
		metrics.TotalRouteLength += from.Distance(to)
	}

	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			if sharesEndpoint(segments[i].a, segments[i].b, segments[j].a, segments[j].b) {
				continue
			}
			if geometry.SegmentsIntersect(segments[i].a, segments[i].b, segments[j].a, segments[j].b) {
				metrics.RouteCrossings++
			}
		}
	}

	if boardArea := board.Area(); boardArea > 0 {
		var used float64
		for i := range components {
			b := components[i].BoundingRect()
			used += b.Width * b.Height
		}
		metrics.BoardUtilization = math.Min(1, used/boardArea)
	}

	metrics.SymmetryScore = symmetryScore(components, board)
	return metrics
}

// symmetryScore measures how balanced the component centers are about the
// board's vertical center line: 1 is perfectly balanced, 0 heavily lopsided.
func symmetryScore(components []pcb.Component, board *pcb.Board) float64 {
	if len(components) == 0 {
		return 1
	}
	bounds := board.Bounds()
	if bounds.Width == 0 {
		return 1
	}

	centerX := bounds.Center().X
	offsets := make([]float64, len(components))
	for i := range components {
		offsets[i] = components[i].Position.X - centerX
	}

	// Mean offset captures lopsidedness; half the board width is the
	// worst case.
	imbalance := math.Abs(stat.Mean(offsets, nil)) / (bounds.Width / 2)
	return clamp01(1 - imbalance)
}

// Score blends the metrics into a single fitness value clamped to
// [0, 100].
func Score(metrics pcb.ArrangementMetrics, connectionCount int, board *pcb.Board) float64 {
	diag := boardDiagonal(board)

	routeScore := 100.0
	if connectionCount > 0 && diag > 0 {
		avg := metrics.TotalRouteLength / float64(connectionCount)
		routeScore = 100 * clamp01(1-avg/diag)
	}

	crossingScore := 100.0
	if connectionCount > 0 {
		crossingScore = 100 * clamp01(1-float64(metrics.RouteCrossings)/float64(connectionCount))
	}

	utilizationScore := 100 * clamp01(1-math.Abs(metrics.BoardUtilization-targetUtilization)/(1-targetUtilization))
	symmetry := 100 * clamp01(metrics.SymmetryScore)

	score := weightRouteLength*routeScore +
		weightCrossings*crossingScore +
		weightUtilization*utilizationScore +
		weightSymmetry*symmetry

	return math.Max(0, math.Min(100, score))
}

func boardDiagonal(board *pcb.Board) float64 {
	b := board.Bounds()
	return math.Sqrt(b.Width*b.Width + b.Height*b.Height)
}

func sharesEndpoint(a1, a2, b1, b2 geometry.Point) bool {
	const eps = 1e-9
	same := func(p, q geometry.Point) bool {
		return math.Abs(p.X-q.X) < eps && math.Abs(p.Y-q.Y) < eps
	}
	return same(a1, b1) || same(a1, b2) || same(a2, b1) || same(a2, b2)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
