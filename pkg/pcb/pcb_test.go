package pcb

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

func TestNewRectangularBoard(t *testing.T) {
	board := NewRectangularBoard(100, 60, 3)

	if board.Shape != ShapeRectangle {
		t.Errorf("expected rectangle shape, got %s", board.Shape)
	}
	if a := board.Area(); a != 6000 {
		t.Errorf("expected area 6000, got %v", a)
	}

	bounds := board.Bounds()
	if bounds.Width != 100 || bounds.Height != 60 {
		t.Errorf("unexpected bounds %+v", bounds)
	}

	if !board.Contains(geometry.Point{X: 50, Y: 30}) {
		t.Errorf("center should be on the board")
	}
	if board.Contains(geometry.Point{X: 150, Y: 30}) {
		t.Errorf("point past the right edge should be off the board")
	}
}

func TestUsableArea(t *testing.T) {
	board := NewRectangularBoard(100, 60, 3)
	area := board.UsableArea(5)

	if area.X != 5 || area.Y != 5 || area.Width != 90 || area.Height != 50 {
		t.Errorf("unexpected usable area %+v", area)
	}
}

func TestNewComponent(t *testing.T) {
	c, ok := NewComponent("resistor")
	if !ok {
		t.Fatalf("resistor should instantiate")
	}
	if c.ID == "" {
		t.Errorf("component should get an identifier")
	}
	if len(c.Pads) == 0 {
		t.Errorf("resistor should have pads")
	}

	other, _ := NewComponent("resistor")
	if other.ID == c.ID {
		t.Errorf("instances must get distinct identifiers")
	}

	if _, ok := NewComponent("warp-coil"); ok {
		t.Errorf("unknown type should not instantiate")
	}
}

func TestWorldPadTransform(t *testing.T) {
	c, _ := NewComponent("resistor")
	c.Position = geometry.Point{X: 50, Y: 30}

	// Unrotated: world pad is offset plus position.
	want := c.Pads[0].Offset.Add(c.Position)
	if got := c.WorldPad(0); got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	// Rotating 180 degrees mirrors the offset about the origin.
	c.Rotation = 180
	got := c.WorldPad(0)
	mirrored := c.Position.Sub(c.Pads[0].Offset)
	if math.Abs(got.X-mirrored.X) > 1e-9 || math.Abs(got.Y-mirrored.Y) > 1e-9 {
		t.Errorf("rotated pad at %v, want %v", got, mirrored)
	}
}

func TestBoundingRectMovesWithComponent(t *testing.T) {
	c, _ := NewComponent("dip8")
	before := c.BoundingRect()

	c.Position = geometry.Point{X: 20, Y: 10}
	after := c.BoundingRect()

	if math.Abs((after.X-before.X)-20) > 1e-9 || math.Abs((after.Y-before.Y)-10) > 1e-9 {
		t.Errorf("bounds did not follow the position: %+v -> %+v", before, after)
	}
}

func TestComponentClone(t *testing.T) {
	c, _ := NewComponent("led")
	c.Position = geometry.Point{X: 5, Y: 5}

	clone := c.Clone()
	clone.Pads[0].Offset.X += 100
	clone.Position.X = 99

	if c.Pads[0].Offset.X == clone.Pads[0].Offset.X {
		t.Errorf("clone shares pad storage with the original")
	}
	if c.Position.X == 99 {
		t.Errorf("clone shares position with the original")
	}
}

func TestExpandAssembly(t *testing.T) {
	components, unknown := ExpandAssembly([]AssemblyComponent{
		{Type: "led", Quantity: 3},
		{Type: "resistor"}, // zero quantity means one
		{Type: "hyperdrive", Quantity: 2},
	})

	if len(components) != 4 {
		t.Errorf("expected 4 components, got %d", len(components))
	}
	if len(unknown) != 1 || unknown[0] != "hyperdrive" {
		t.Errorf("expected hyperdrive reported unknown, got %v", unknown)
	}

	seen := make(map[string]bool)
	for _, c := range components {
		if seen[c.ID] {
			t.Errorf("duplicate component identifier %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestResolvePad(t *testing.T) {
	c, _ := NewComponent("resistor")
	c.Position = geometry.Point{X: 10, Y: 10}
	arr := Arrangement{Components: []Component{c}}

	pos, radius, err := arr.ResolvePad(PadRef{ComponentID: c.ID, PadIndex: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos != c.WorldPad(0) {
		t.Errorf("resolved position %v, want %v", pos, c.WorldPad(0))
	}
	if radius <= 0 {
		t.Errorf("expected positive pad radius, got %v", radius)
	}

	if _, _, err := arr.ResolvePad(PadRef{ComponentID: "nope", PadIndex: 0}); err == nil {
		t.Errorf("unknown component should error")
	}
	if _, _, err := arr.ResolvePad(PadRef{ComponentID: c.ID, PadIndex: 99}); err == nil {
		t.Errorf("out-of-range pad should error")
	}
}

// Pad references must survive re-ordering of the component slice.
func TestResolvePadAfterReorder(t *testing.T) {
	a, _ := NewComponent("led")
	b, _ := NewComponent("resistor")
	ref := PadRef{ComponentID: b.ID, PadIndex: 1}

	arr := Arrangement{Components: []Component{a, b}}
	p1, _, err := arr.ResolvePad(ref)
	if err != nil {
		t.Fatalf("resolve before reorder: %v", err)
	}

	swapped := Arrangement{Components: []Component{b, a}}
	p2, _, err := swapped.ResolvePad(ref)
	if err != nil {
		t.Fatalf("resolve after reorder: %v", err)
	}
	if p1 != p2 {
		t.Errorf("pad moved on reorder: %v vs %v", p1, p2)
	}
}

func TestArrangementClone(t *testing.T) {
	c, _ := NewComponent("led")
	arr := &Arrangement{
		ID:         "a1",
		Components: []Component{c},
		Routes: []Route{{
			Net:      "SIG1",
			Polyline: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}},
		}},
	}

	clone := arr.Clone()
	clone.Components[0].Position.X = 42
	clone.Routes[0].Polyline[0].X = 42

	if arr.Components[0].Position.X == 42 {
		t.Errorf("clone shares component storage")
	}
	if arr.Routes[0].Polyline[0].X == 42 {
		t.Errorf("clone shares route polylines")
	}
}

func TestRouteLength(t *testing.T) {
	r := Route{Polyline: []geometry.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}}}
	if l := r.Length(); l != 7 {
		t.Errorf("expected length 7, got %v", l)
	}
}
