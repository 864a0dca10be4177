// Package catalog provides the static footprint and pinout library used by
// the layout engine. Footprints describe physical pad/hole geometry for a
// component type; pinouts describe the electrical role of each pin. The two
// are independent tables keyed by the same type identifier and may disagree
// on pin count; callers must bounds-check pad indices against the footprint
// they actually use.
package catalog

import "github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"

// Pad is a solder/contact location on a footprint, offset from the
// footprint origin. Round pads set Diameter; rectangular pads set
// Width/Height and leave Diameter zero.
type Pad struct {
	Offset   geometry.Point `json:"offset"`
	Diameter float64        `json:"diameter,omitempty"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
}

// Radius returns the effective pad radius for clearance checks.
func (p Pad) Radius() float64 {
	if p.Diameter > 0 {
		return p.Diameter / 2
	}
	if p.Width > p.Height {
		return p.Width / 2
	}
	return p.Height / 2
}

// Hole is a drilled hole on a footprint (mounting or through-hole lead).
type Hole struct {
	Offset   geometry.Point `json:"offset"`
	Diameter float64        `json:"diameter"`
}

// Footprint is the immutable physical template for a component type.
// Outline, when present, is a closed polygon in footprint-local
// coordinates used as the router's obstacle shape.
type Footprint struct {
	Type    string           `json:"type"`
	Pads    []Pad            `json:"pads"`
	Holes   []Hole           `json:"holes,omitempty"`
	Outline []geometry.Point `json:"outline,omitempty"`
}

// BoundingRect returns the axis-aligned bounds of the footprint in local
// coordinates, covering the outline if present, otherwise the pad spread
// expanded by each pad's radius.
func (f Footprint) BoundingRect() geometry.Rect {
	if len(f.Outline) >= 3 {
		return geometry.BoundingBox(f.Outline)
	}
	if len(f.Pads) == 0 {
		return geometry.Rect{}
	}
	pts := make([]geometry.Point, 0, len(f.Pads))
	maxR := 0.0
	for _, pad := range f.Pads {
		pts = append(pts, pad.Offset)
		if r := pad.Radius(); r > maxR {
			maxR = r
		}
	}
	return geometry.BoundingBox(pts).Expand(maxR)
}

// GetFootprint returns the footprint template for a component type.
// Lookups are pure: repeated calls return structurally identical copies
// and callers may mutate the result freely.
func GetFootprint(componentType string) (Footprint, bool) {
	fp, ok := footprints[componentType]
	if !ok {
		return Footprint{}, false
	}
	return cloneFootprint(fp), true
}

// FootprintTypes returns the sorted list of known footprint type
// identifiers.
func FootprintTypes() []string {
	return sortedKeys(footprints)
}

func cloneFootprint(fp Footprint) Footprint {
	out := Footprint{Type: fp.Type}
	out.Pads = append([]Pad(nil), fp.Pads...)
	out.Holes = append([]Hole(nil), fp.Holes...)
	out.Outline = append([]geometry.Point(nil), fp.Outline...)
	return out
}
