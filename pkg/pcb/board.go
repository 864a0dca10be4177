// Package pcb defines the core data model exchanged between the placement,
// routing, and design-rule-check stages: boards, placed components, nets,
// routes, vias, and candidate arrangements.
package pcb

import "github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"

// BoardShape tags the outline family of a board.
type BoardShape string

const (
	ShapeRectangle BoardShape = "rectangle"
	ShapeCircle    BoardShape = "circle"
	ShapeCustom    BoardShape = "custom"
)

// MountFeature is a circular cut-out in the board (mounting hole,
// standoff clearance).
type MountFeature struct {
	Position geometry.Point `json:"position"`
	Diameter float64        `json:"diameter"`
}

// Board describes the physical substrate. The boundary polygon is closed
// implicitly (last vertex connects back to the first). The layout engine
// treats boards as read-only.
type Board struct {
	Shape     BoardShape       `json:"shape"`
	Boundary  []geometry.Point `json:"boundary"`
	Thickness float64          `json:"thickness"`
	Features  []MountFeature   `json:"features,omitempty"`
}

// NewRectangularBoard creates a rectangular board with the origin at the
// bottom-left corner.
func NewRectangularBoard(width, height, thickness float64) *Board {
	return &Board{
		Shape: ShapeRectangle,
		Boundary: []geometry.Point{
			{X: 0, Y: 0},
			{X: width, Y: 0},
			{X: width, Y: height},
			{X: 0, Y: height},
		},
		Thickness: thickness,
	}
}

// Bounds returns the axis-aligned bounding box of the boundary polygon.
func (b *Board) Bounds() geometry.Rect {
	return geometry.BoundingBox(b.Boundary)
}

// Contains reports whether a point lies inside the board boundary.
func (b *Board) Contains(p geometry.Point) bool {
	return geometry.PointInPolygon(p, b.Boundary)
}

// UsableArea returns the board bounds shrunk by a margin on every side.
// The margin keeps components and routes away from the board edge.
func (b *Board) UsableArea(margin float64) geometry.Rect {
	bounds := b.Bounds()
	return geometry.Rect{
		X:      bounds.X + margin,
		Y:      bounds.Y + margin,
		Width:  bounds.Width - 2*margin,
		Height: bounds.Height - 2*margin,
	}
}

// Area returns the board surface area.
func (b *Board) Area() float64 {
	return geometry.PolygonArea(b.Boundary)
}
