package drc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

func emptyProject() *pcb.Project {
	return &pcb.Project{Board: pcb.NewRectangularBoard(100, 60, 3)}
}

func TestCheckEmptyProject(t *testing.T) {
	violations := Check(emptyProject(), DefaultRuleSet())
	if len(violations) != 0 {
		t.Errorf("empty board should pass cleanly, got %v", violations)
	}
}

// Two parallel 5 mm routes with centerlines 3 mm apart break the 5 mm
// spacing rule exactly once.
func TestCheckSpacing(t *testing.T) {
	project := emptyProject()
	project.Routes = []pcb.Route{
		{Net: "A", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}},
		{Net: "B", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 23}, {X: 90, Y: 23}}},
	}

	violations := Check(project, DefaultRuleSet())

	var spacing []Violation
	for _, v := range violations {
		if v.Type == ViolationSpacing {
			spacing = append(spacing, v)
		}
	}
	if len(spacing) != 1 {
		t.Fatalf("expected exactly 1 spacing violation, got %d: %v", len(spacing), spacing)
	}
	if spacing[0].Severity != SeverityError {
		t.Errorf("spacing violations are errors, got %s", spacing[0].Severity)
	}
}

func TestCheckSpacingSameNet(t *testing.T) {
	project := emptyProject()
	project.Routes = []pcb.Route{
		{Net: "GND", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}},
		{Net: "GND", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 21}, {X: 90, Y: 21}}},
	}

	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationSpacing || v.Type == ViolationWall {
			t.Errorf("same-net routes may touch, got %+v", v)
		}
	}
}

func TestCheckWall(t *testing.T) {
	project := emptyProject()
	// Centerlines 6 mm apart, widths 5 mm: wall is 1 mm, minimum 1.2 mm.
	// Spacing (6 mm) itself is fine.
	project.Routes = []pcb.Route{
		{Net: "A", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 20}, {X: 90, Y: 20}}},
		{Net: "B", Width: 5, Polyline: []geometry.Point{{X: 10, Y: 26}, {X: 90, Y: 26}}},
	}

	var wall, spacing int
	for _, v := range Check(project, DefaultRuleSet()) {
		switch v.Type {
		case ViolationWall:
			wall++
		case ViolationSpacing:
			spacing++
		}
	}
	if wall != 1 {
		t.Errorf("expected 1 wall violation, got %d", wall)
	}
	if spacing != 0 {
		t.Errorf("6 mm centerline spacing should satisfy the spacing rule")
	}
}

func TestCheckBendRadius(t *testing.T) {
	project := emptyProject()
	// A sharp hairpin demands far more bend radius than the rules allow.
	project.Routes = []pcb.Route{{
		Net:   "A",
		Width: 5,
		Polyline: []geometry.Point{
			{X: 10, Y: 30}, {X: 50, Y: 30}, {X: 12, Y: 32},
		},
	}}

	var found *Violation
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationBendRadius {
			found = &v
			break
		}
	}
	if found == nil {
		t.Fatalf("expected a bend-radius violation")
	}
	if found.Severity != SeverityWarning {
		t.Errorf("bend-radius violations are heuristic warnings, got %s", found.Severity)
	}
}

func TestCheckBendRadiusGentleCorner(t *testing.T) {
	project := emptyProject()
	// A shallow dogleg is well inside tape tolerance.
	project.Routes = []pcb.Route{{
		Net:   "A",
		Width: 5,
		Polyline: []geometry.Point{
			{X: 10, Y: 30}, {X: 50, Y: 30}, {X: 90, Y: 35},
		},
	}}

	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationBendRadius {
			t.Errorf("gentle corner flagged: %+v", v)
		}
	}
}

func TestCheckOverhang(t *testing.T) {
	project := emptyProject()
	project.Routes = []pcb.Route{{
		Net:   "A",
		Width: 5,
		Polyline: []geometry.Point{
			{X: 50, Y: 30}, {X: 120, Y: 30}, {X: 130, Y: 30},
		},
	}}

	var overhangs int
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationOverhang {
			overhangs++
		}
	}
	// One violation per route, not one per off-board point.
	if overhangs != 1 {
		t.Errorf("expected 1 overhang violation, got %d", overhangs)
	}
}

func TestCheckPadClearance(t *testing.T) {
	led, _ := pcb.NewComponent("led")
	led.Position = geometry.Point{X: 50, Y: 30}

	project := emptyProject()
	project.Components = []pcb.Component{led}
	// A foreign route passing right through the pad row.
	project.Routes = []pcb.Route{{
		Net:      "A",
		Width:    5,
		Polyline: []geometry.Point{{X: 10, Y: 30}, {X: 90, Y: 30}},
	}}

	var found bool
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationPadClearance {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a pad-clearance violation")
	}
}

func TestCheckPadClearanceExemptsOwnRoute(t *testing.T) {
	led, _ := pcb.NewComponent("led")
	led.Position = geometry.Point{X: 50, Y: 30}

	project := emptyProject()
	project.Components = []pcb.Component{led}
	// The route terminates on pad 0: it serves the pad.
	project.Routes = []pcb.Route{{
		Net:      "A",
		Width:    5,
		Polyline: []geometry.Point{led.WorldPad(0), {X: 10, Y: 30}},
	}}

	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationPadClearance {
			// Pad 1 sits 2.54 mm from pad 0; the route ends before it,
			// so only pad 0 is exempt. Accept violations for pad 1 but
			// never for the terminal pad itself.
			if v.Position == led.WorldPad(0) {
				t.Errorf("terminal pad flagged against its own route: %+v", v)
			}
		}
	}
}

func TestCheckHoleCollision(t *testing.T) {
	project := emptyProject()
	project.Board.Features = []pcb.MountFeature{
		{Position: geometry.Point{X: 10, Y: 10}, Diameter: 3},
		{Position: geometry.Point{X: 11, Y: 10}, Diameter: 3},
	}

	var found bool
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationHoleCollision {
			found = true
		}
	}
	if !found {
		t.Errorf("overlapping mount holes should be flagged")
	}
}

func TestCheckViaConnectivity(t *testing.T) {
	project := emptyProject()
	project.Routes = []pcb.Route{{
		Net:      "A",
		Width:    5,
		Polyline: []geometry.Point{{X: 10, Y: 30}, {X: 90, Y: 30}},
	}}
	project.Vias = []pcb.Via{
		{Position: geometry.Point{X: 50, Y: 30}, Diameter: 2, Drill: 1, Net: "A"},
		{Position: geometry.Point{X: 50, Y: 50}, Diameter: 2, Drill: 1},
	}

	var unconnected int
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationUnconnectedVia {
			unconnected++
			if v.Position != (geometry.Point{X: 50, Y: 50}) {
				t.Errorf("wrong via flagged: %+v", v)
			}
		}
	}
	if unconnected != 1 {
		t.Errorf("expected 1 unconnected via, got %d", unconnected)
	}
}

func TestCheckPowerPath(t *testing.T) {
	controller, _ := pcb.NewComponent("microcontroller")
	controller.Position = geometry.Point{X: 50, Y: 30}

	project := emptyProject()
	project.Components = []pcb.Component{controller}

	var found bool
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationPowerPath {
			found = true
		}
	}
	if !found {
		t.Errorf("powered component without a source should warn")
	}
}

func TestCheckComponentOverlap(t *testing.T) {
	a, _ := pcb.NewComponent("resistor")
	b, _ := pcb.NewComponent("resistor")
	a.Position = geometry.Point{X: 50, Y: 30}
	b.Position = geometry.Point{X: 52, Y: 30}

	project := emptyProject()
	project.Components = []pcb.Component{a, b}

	var found bool
	for _, v := range Check(project, DefaultRuleSet()) {
		if v.Type == ViolationComponentOverlap {
			found = true
		}
	}
	if !found {
		t.Errorf("components 2 mm apart should be flagged")
	}
}

func TestRuleSetValidate(t *testing.T) {
	rules := RuleSet{MinSpacing: -1}
	rules.Validate()

	def := DefaultRuleSet()
	if rules != def {
		t.Errorf("zeroed rules should default, got %+v", rules)
	}
}

func TestLoadRuleSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := "minSpacing: 8\nminWall: 2.0\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, err := LoadRuleSet(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if rules.MinSpacing != 8 {
		t.Errorf("expected minSpacing 8, got %v", rules.MinSpacing)
	}
	if rules.MinWall != 2.0 {
		t.Errorf("expected minWall 2.0, got %v", rules.MinWall)
	}
	// Unspecified values keep their defaults.
	if rules.MinBendRadius != DefaultRuleSet().MinBendRadius {
		t.Errorf("unspecified fields should keep defaults")
	}
}

func TestLoadRuleSetMissingFile(t *testing.T) {
	if _, err := LoadRuleSet("/nonexistent/rules.yaml"); err == nil {
		t.Errorf("missing file should error")
	}
}
