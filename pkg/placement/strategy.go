// Package placement generates candidate component layouts for a board and
// refines them with simulated annealing. Several deterministic strategies
// each produce an initial layout; the optimizer perturbs positions under a
// hard no-overlap invariant and keeps the best-scoring state.
package placement

import (
	"math"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

const (
	// SnapPitch is the placement grid, one tenth-inch.
	SnapPitch = 2.54

	// ComponentSpacing pads every component bounding box during
	// collision tests.
	ComponentSpacing = 1.5

	// BoardMargin keeps component bounds away from the board edge.
	BoardMargin = 5.0

	strategySpacing = 4.0
)

// Strategy is a deterministic initial-layout heuristic.
type Strategy struct {
	Name        string
	Description string
	Place       func(components []pcb.Component, board *pcb.Board) []pcb.Component
}

// Strategies returns the built-in layout strategies in rank-stable order.
func Strategies() []Strategy {
	return []Strategy{
		{"grid", "Row-packed grid layout", placeGrid},
		{"compact", "Bottom-left fill, largest parts first", placeCompact},
		{"symmetric", "Pairs mirrored about the vertical center line", placeSymmetric},
		{"signal-flow", "Input, processing, and output columns", placeSignalFlow},
		{"radial", "Components on a circle facing outward", placeRadial},
	}
}

// snap rounds a coordinate to the placement grid.
func snap(v float64) float64 {
	return math.Round(v/SnapPitch) * SnapPitch
}

// clampInto moves a component center so its bounds stay inside the area.
func clampInto(c *pcb.Component, area geometry.Rect) {
	bounds := c.BoundingRect()
	if dx := area.X - bounds.X; dx > 0 {
		c.Position.X += dx
	}
	if dx := (bounds.X + bounds.Width) - (area.X + area.Width); dx > 0 {
		c.Position.X -= dx
	}
	if dy := area.Y - bounds.Y; dy > 0 {
		c.Position.Y += dy
	}
	if dy := (bounds.Y + bounds.Height) - (area.Y + area.Height); dy > 0 {
		c.Position.Y -= dy
	}
}

// overlapsAny reports whether component i's padded bounds intersect any
// other component's padded bounds.
func overlapsAny(components []pcb.Component, i int) bool {
	box := components[i].BoundingRect().Expand(ComponentSpacing)
	for j := range components {
		if j == i {
			continue
		}
		if box.Intersects(components[j].BoundingRect().Expand(ComponentSpacing)) {
			return true
		}
	}
	return false
}

// separate nudges overlapping components apart on the snap grid so no
// strategy hands the optimizer an invalid layout. Greedy and bounded; a
// layout that cannot be separated is left for the optimizer to repair.
func separate(components []pcb.Component, area geometry.Rect) {
	for i := range components {
		for attempt := 0; attempt < 200 && overlapsAny(components, i); attempt++ {
			components[i].Position.X += SnapPitch
			bounds := components[i].BoundingRect()
			if bounds.X+bounds.Width > area.X+area.Width {
				components[i].Position.X = snap(area.X + bounds.Width/2)
				components[i].Position.Y += SnapPitch
			}
			clampInto(&components[i], area)
		}
	}
}

// placeGrid packs components left to right, top to bottom with fixed
// spacing, wrapping when the running X exceeds the usable width.
func placeGrid(components []pcb.Component, board *pcb.Board) []pcb.Component {
	placed := pcb.CloneComponents(components)
	area := board.UsableArea(BoardMargin)

	x := area.X
	y := area.Y
	rowHeight := 0.0

	for i := range placed {
		size := placed[i].BoundingRect()
		if x+size.Width > area.X+area.Width && x > area.X {
			x = area.X
			y += rowHeight + strategySpacing
			rowHeight = 0
		}

		placed[i].Position = geometry.Point{
			X: snap(x + size.Width/2),
			Y: snap(y + size.Height/2),
		}
		clampInto(&placed[i], area)

		x += size.Width + strategySpacing
		if size.Height > rowHeight {
			rowHeight = size.Height
		}
	}

	separate(placed, area)
	return placed
}

// placeCompact sorts by descending footprint area and drops each part at
// the first collision-free spot found scanning a coarse grid bottom-up.
func placeCompact(components []pcb.Component, board *pcb.Board) []pcb.Component {
	placed := pcb.CloneComponents(components)
	area := board.UsableArea(BoardMargin)

	order := make([]int, len(placed))
	for i := range order {
		order[i] = i
	}
	areaOf := func(i int) float64 {
		b := placed[i].BoundingRect()
		return b.Width * b.Height
	}
	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if areaOf(order[j]) > areaOf(order[i]) {
				order[i], order[j] = order[j], order[i]
			}
		}
	}

	var done []int
	for _, idx := range order {
		size := placed[idx].BoundingRect()
		found := false

	scan:
		for y := area.Y + size.Height/2; y <= area.Y+area.Height; y += SnapPitch {
			for x := area.X + size.Width/2; x <= area.X+area.Width; x += SnapPitch {
				placed[idx].Position = geometry.Point{X: snap(x), Y: snap(y)}
				clampInto(&placed[idx], area)

				collides := false
				box := placed[idx].BoundingRect().Expand(ComponentSpacing)
				for _, d := range done {
					if box.Intersects(placed[d].BoundingRect().Expand(ComponentSpacing)) {
						collides = true
						break
					}
				}
				if !collides {
					found = true
					break scan
				}
			}
		}

		if !found {
			// No free cell on the coarse grid; park at the center and
			// let the optimizer repair it.
			placed[idx].Position = snapPoint(area.Center())
			clampInto(&placed[idx], area)
		}
		done = append(done, idx)
	}

	return placed
}

// placeSymmetric places consecutive pairs mirrored about the board's
// vertical center line; an odd remainder is centered.
func placeSymmetric(components []pcb.Component, board *pcb.Board) []pcb.Component {
	placed := pcb.CloneComponents(components)
	area := board.UsableArea(BoardMargin)
	centerX := area.Center().X

	y := area.Y
	for i := 0; i+1 < len(placed); i += 2 {
		left := placed[i].BoundingRect()
		right := placed[i+1].BoundingRect()
		rowHeight := math.Max(left.Height, right.Height)
		offset := strategySpacing + math.Max(left.Width, right.Width)/2

		placed[i].Position = geometry.Point{
			X: snap(centerX - offset),
			Y: snap(y + rowHeight/2),
		}
		placed[i+1].Position = geometry.Point{
			X: snap(centerX + offset),
			Y: snap(y + rowHeight/2),
		}
		clampInto(&placed[i], area)
		clampInto(&placed[i+1], area)

		y += rowHeight + strategySpacing
	}

	if len(placed)%2 == 1 {
		last := len(placed) - 1
		size := placed[last].BoundingRect()
		placed[last].Position = geometry.Point{
			X: snap(centerX),
			Y: snap(y + size.Height/2),
		}
		clampInto(&placed[last], area)
	}

	separate(placed, area)
	return placed
}

// placeSignalFlow buckets components into input, processing, and output
// stages and lays out three columns left to right.
func placeSignalFlow(components []pcb.Component, board *pcb.Board) []pcb.Component {
	placed := pcb.CloneComponents(components)
	area := board.UsableArea(BoardMargin)

	columnX := []float64{
		area.X + area.Width/6,
		area.X + area.Width/2,
		area.X + 5*area.Width/6,
	}
	columnY := []float64{area.Y, area.Y, area.Y}

	for i := range placed {
		col := int(netlist.ClassifyFlow(placed[i].Type))
		size := placed[i].BoundingRect()

		placed[i].Position = geometry.Point{
			X: snap(columnX[col]),
			Y: snap(columnY[col] + size.Height/2),
		}
		clampInto(&placed[i], area)

		columnY[col] += size.Height + strategySpacing
	}

	separate(placed, area)
	return placed
}

// placeRadial spaces components evenly on a circle around the board
// center, each rotated to face outward.
func placeRadial(components []pcb.Component, board *pcb.Board) []pcb.Component {
	placed := pcb.CloneComponents(components)
	area := board.UsableArea(BoardMargin)
	center := area.Center()

	maxRadius := math.Min(area.Width, area.Height)/2 - strategySpacing
	for i := range placed {
		size := placed[i].BoundingRect()
		if r := math.Max(size.Width, size.Height) / 2; maxRadius > math.Min(area.Width, area.Height)/2-r {
			maxRadius = math.Min(area.Width, area.Height)/2 - r
		}
	}
	radius := math.Min(maxRadius, float64(len(placed))*8.0)
	if radius < SnapPitch {
		radius = SnapPitch
	}

	n := len(placed)
	for i := range placed {
		angle := 2 * math.Pi * float64(i) / float64(n)
		placed[i].Position = geometry.Point{
			X: snap(center.X + radius*math.Cos(angle)),
			Y: snap(center.Y + radius*math.Sin(angle)),
		}
		placed[i].Rotation = math.Mod(angle*180/math.Pi, 360)
		clampInto(&placed[i], area)
	}

	separate(placed, area)
	return placed
}

func snapPoint(p geometry.Point) geometry.Point {
	return geometry.Point{X: snap(p.X), Y: snap(p.Y)}
}
