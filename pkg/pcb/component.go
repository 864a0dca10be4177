package pcb

import (
	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

// AssemblyComponent is a user request for one or more instances of a
// component type.
type AssemblyComponent struct {
	Type     string `json:"type" yaml:"type"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Role     string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Component is one placed instance of a footprint. Pads and holes are the
// footprint template geometry in the instance's local frame; rotation and
// position are applied on demand by the World* accessors. Components are
// replaced wholesale when a new arrangement is generated, never mutated
// in place.
type Component struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Position geometry.Point   `json:"position"`
	Rotation float64          `json:"rotation"` // degrees
	Pads     []catalog.Pad    `json:"pads"`
	Holes    []catalog.Hole   `json:"holes,omitempty"`
	Outline  []geometry.Point `json:"outline,omitempty"`
}

// NewComponent instantiates a footprint from the catalog with a fresh
// stable identifier. Returns false if the type is unknown.
func NewComponent(componentType string) (Component, bool) {
	fp, ok := catalog.GetFootprint(componentType)
	if !ok {
		return Component{}, false
	}
	return Component{
		ID:      uuid.NewString(),
		Type:    componentType,
		Pads:    fp.Pads,
		Holes:   fp.Holes,
		Outline: fp.Outline,
	}, true
}

// WorldPad returns pad i transformed into board coordinates: rotation
// about the component origin, then translation.
func (c *Component) WorldPad(i int) geometry.Point {
	return c.toWorld(c.Pads[i].Offset)
}

// WorldPads returns every pad position in board coordinates.
func (c *Component) WorldPads() []geometry.Point {
	out := make([]geometry.Point, len(c.Pads))
	for i := range c.Pads {
		out[i] = c.WorldPad(i)
	}
	return out
}

// WorldHoles returns every hole position in board coordinates.
func (c *Component) WorldHoles() []geometry.Point {
	out := make([]geometry.Point, len(c.Holes))
	for i, h := range c.Holes {
		out[i] = c.toWorld(h.Offset)
	}
	return out
}

// WorldOutline returns the outline polygon in board coordinates, or nil
// if the footprint has none.
func (c *Component) WorldOutline() []geometry.Point {
	if len(c.Outline) == 0 {
		return nil
	}
	out := make([]geometry.Point, len(c.Outline))
	for i, p := range c.Outline {
		out[i] = c.toWorld(p)
	}
	return out
}

// BoundingRect returns the world-space axis-aligned bounding box of the
// component. Rotated footprints are covered by the box of their rotated
// outline, which is conservative for collision tests.
func (c *Component) BoundingRect() geometry.Rect {
	if outline := c.WorldOutline(); outline != nil {
		return geometry.BoundingBox(outline)
	}
	pads := c.WorldPads()
	if len(pads) == 0 {
		return geometry.Rect{X: c.Position.X, Y: c.Position.Y}
	}
	maxR := 0.0
	for _, pad := range c.Pads {
		if r := pad.Radius(); r > maxR {
			maxR = r
		}
	}
	return geometry.BoundingBox(pads).Expand(maxR)
}

// FootprintRadius estimates the component's extent from its pad spread:
// the largest pad distance from the component origin plus that pad's
// radius. Used by the gross-overlap design rule.
func (c *Component) FootprintRadius() float64 {
	max := 0.0
	for _, pad := range c.Pads {
		if d := pad.Offset.Norm() + pad.Radius(); d > max {
			max = d
		}
	}
	if max == 0 {
		max = 2.0
	}
	return max
}

// Clone returns a deep copy of the component.
func (c *Component) Clone() Component {
	out := *c
	out.Pads = append([]catalog.Pad(nil), c.Pads...)
	out.Holes = append([]catalog.Hole(nil), c.Holes...)
	out.Outline = append([]geometry.Point(nil), c.Outline...)
	return out
}

func (c *Component) toWorld(local geometry.Point) geometry.Point {
	p := local.RotateAround(geometry.Point{}, c.Rotation)
	return p.Add(c.Position)
}

// CloneComponents deep-copies a component slice.
func CloneComponents(components []Component) []Component {
	out := make([]Component, len(components))
	for i := range components {
		out[i] = components[i].Clone()
	}
	return out
}

// ExpandAssembly flattens quantity requests into catalog-backed component
// instances. Unknown types are reported rather than skipped.
func ExpandAssembly(requests []AssemblyComponent) ([]Component, []string) {
	var components []Component
	var unknown []string
	for _, req := range requests {
		qty := req.Quantity
		if qty <= 0 {
			qty = 1
		}
		for i := 0; i < qty; i++ {
			comp, ok := NewComponent(req.Type)
			if !ok {
				unknown = append(unknown, req.Type)
				break
			}
			components = append(components, comp)
		}
	}
	return components, unknown
}
