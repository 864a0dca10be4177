package router

import (
	"math"
	"testing"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

func neverBlocked(geometry.Point) bool { return false }

func TestFindGridPathStraight(t *testing.T) {
	start := geometry.Point{X: 0, Y: 0}
	goal := geometry.Point{X: 20, Y: 0}

	path, ok := findGridPath(start, goal, 2.5, neverBlocked, 10000)
	if !ok {
		t.Fatalf("unobstructed path not found")
	}

	// An unobstructed straight run collapses to its two endpoints.
	if len(path) != 2 {
		t.Fatalf("expected 2 points, got %d: %v", len(path), path)
	}
	if path[0] != start || path[1] != goal {
		t.Errorf("endpoints not preserved: %v", path)
	}
	if l := geometry.PolylineLength(path); l != 20 {
		t.Errorf("expected length 20, got %v", l)
	}
}

func TestFindGridPathDetour(t *testing.T) {
	start := geometry.Point{X: 0, Y: 0}
	goal := geometry.Point{X: 20, Y: 0}

	// A vertical wall at x=10 spanning y in [-10, 10].
	wall := func(p geometry.Point) bool {
		return math.Abs(p.X-10) < 1.0 && p.Y >= -10 && p.Y <= 10
	}

	path, ok := findGridPath(start, goal, 2.5, wall, 10000)
	if !ok {
		t.Fatalf("path around the wall not found")
	}
	if path[0] != start || path[len(path)-1] != goal {
		t.Errorf("endpoints not preserved: %v", path)
	}
	if l := geometry.PolylineLength(path); l <= 20 {
		t.Errorf("detour should be longer than the direct run, got %v", l)
	}
	for _, p := range path[1 : len(path)-1] {
		if wall(p) {
			t.Errorf("path waypoint %v is inside the wall", p)
		}
	}
}

func TestFindGridPathExpansionCap(t *testing.T) {
	start := geometry.Point{X: 0, Y: 0}
	goal := geometry.Point{X: 100, Y: 100}

	if _, ok := findGridPath(start, goal, 2.5, neverBlocked, 3); ok {
		t.Errorf("search should give up at the expansion cap")
	}
}

func TestFindGridPathBlockedGoal(t *testing.T) {
	start := geometry.Point{X: 0, Y: 0}
	goal := geometry.Point{X: 10, Y: 0}

	blockedGoal := func(p geometry.Point) bool { return p.X >= 9 }
	if _, ok := findGridPath(start, goal, 2.5, blockedGoal, 10000); ok {
		t.Errorf("unreachable goal should fail")
	}
}

func TestFilletPreservesEndpoints(t *testing.T) {
	corner := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	for _, radius := range []float64{0, 0.5, 2, 5, 50} {
		out := FilletPolyline(corner, radius)
		if out[0] != corner[0] {
			t.Errorf("radius %v moved the start to %v", radius, out[0])
		}
		if out[len(out)-1] != corner[len(corner)-1] {
			t.Errorf("radius %v moved the end to %v", radius, out[len(out)-1])
		}
	}
}

func TestFilletRoundsCorner(t *testing.T) {
	corner := []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}

	out := FilletPolyline(corner, 2)
	if len(out) <= len(corner) {
		t.Fatalf("expected arc points, got %v", out)
	}

	// The arc must cut the corner: no output point sits on the vertex.
	for _, p := range out {
		if p == corner[1] {
			t.Errorf("corner vertex survived the fillet")
		}
	}

	// The rounded path is shorter than the sharp one.
	if geometry.PolylineLength(out) >= geometry.PolylineLength(corner) {
		t.Errorf("fillet should shorten the path")
	}
}

func TestFilletLeavesStraightRunsAlone(t *testing.T) {
	line := []geometry.Point{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	out := FilletPolyline(line, 2)
	if len(out) != 3 {
		t.Errorf("straight polyline should pass through unchanged, got %v", out)
	}
}

func TestRoutesIntersect(t *testing.T) {
	a := pcb.Route{Polyline: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}}
	b := pcb.Route{Polyline: []geometry.Point{{X: 0, Y: 10}, {X: 10, Y: 0}}}
	c := pcb.Route{Polyline: []geometry.Point{{X: 20, Y: 20}, {X: 30, Y: 20}}}

	if !RoutesIntersect(&a, &b) {
		t.Errorf("crossing routes should intersect")
	}
	if RoutesIntersect(&a, &c) {
		t.Errorf("distant routes should not intersect")
	}
}

func testArrangement(t *testing.T) (*pcb.Arrangement, []pcb.Connection, *pcb.Board) {
	t.Helper()

	r1, ok := pcb.NewComponent("resistor")
	if !ok {
		t.Fatalf("resistor missing from catalog")
	}
	r2, _ := pcb.NewComponent("resistor")
	r1.Position = geometry.Point{X: 25, Y: 20}
	r2.Position = geometry.Point{X: 75, Y: 40}

	arr := &pcb.Arrangement{Components: []pcb.Component{r1, r2}}
	connections := []pcb.Connection{{
		ID:      "conn-1",
		From:    pcb.PadRef{ComponentID: r1.ID, PadIndex: 1},
		To:      pcb.PadRef{ComponentID: r2.ID, PadIndex: 0},
		NetName: "SIG1",
	}}
	return arr, connections, pcb.NewRectangularBoard(100, 60, 3)
}

func TestRouteStaysOnBoard(t *testing.T) {
	arr, connections, board := testArrangement(t)

	r := New(DefaultConfig(), nil)
	result := r.Route(arr, connections, board)

	if len(result.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d (skipped %v)", len(result.Routes), result.Skipped)
	}

	route := result.Routes[0]
	if route.Net != "SIG1" {
		t.Errorf("expected net SIG1, got %q", route.Net)
	}
	if len(route.Polyline) < 2 {
		t.Fatalf("route needs at least 2 points")
	}

	from, _, _ := arr.ResolvePad(connections[0].From)
	to, _, _ := arr.ResolvePad(connections[0].To)
	if route.Polyline[0] != from {
		t.Errorf("route starts at %v, pad is at %v", route.Polyline[0], from)
	}
	if route.Polyline[len(route.Polyline)-1] != to {
		t.Errorf("route ends at %v, pad is at %v", route.Polyline[len(route.Polyline)-1], to)
	}

	for _, p := range route.Polyline {
		if p.X < 0 || p.X > 100 || p.Y < 0 || p.Y > 60 {
			t.Errorf("route point %v leaves the board", p)
		}
	}
}

func TestRouteSkipsBadReferences(t *testing.T) {
	arr, connections, board := testArrangement(t)
	connections = append(connections, pcb.Connection{
		ID:      "conn-bad",
		From:    pcb.PadRef{ComponentID: "ghost", PadIndex: 0},
		To:      connections[0].To,
		NetName: "BROKEN",
	})

	r := New(DefaultConfig(), nil)
	result := r.Route(arr, connections, board)

	if len(result.Routes) != 1 {
		t.Errorf("expected 1 routed connection, got %d", len(result.Routes))
	}
	if len(result.Skipped) != 1 {
		t.Fatalf("expected 1 skipped connection, got %d", len(result.Skipped))
	}
	if result.Skipped[0].Connection.ID != "conn-bad" {
		t.Errorf("wrong connection skipped: %+v", result.Skipped[0])
	}
	if result.Skipped[0].Reason == "" {
		t.Errorf("skip needs a reason")
	}
}

func TestRouteOrdersPowerFirst(t *testing.T) {
	arr, _, board := testArrangement(t)
	r1 := arr.Components[0]
	r2 := arr.Components[1]

	connections := []pcb.Connection{
		{
			ID:      "sig",
			From:    pcb.PadRef{ComponentID: r1.ID, PadIndex: 0},
			To:      pcb.PadRef{ComponentID: r2.ID, PadIndex: 0},
			NetName: "SIG1",
		},
		{
			ID:      "pwr",
			From:    pcb.PadRef{ComponentID: r1.ID, PadIndex: 1},
			To:      pcb.PadRef{ComponentID: r2.ID, PadIndex: 1},
			NetName: "VCC",
			IsPower: true,
		},
	}

	r := New(DefaultConfig(), nil)
	result := r.Route(arr, connections, board)

	if len(result.Connections) != 2 {
		t.Fatalf("expected 2 routed connections, got %d", len(result.Connections))
	}
	if result.Connections[0].ID != "pwr" {
		t.Errorf("power net should route first, got %s", result.Connections[0].ID)
	}
}

func TestResolveConflictsMismatchedInput(t *testing.T) {
	arr, connections, board := testArrangement(t)
	routes := []pcb.Route{
		{Net: "A", Polyline: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		{Net: "B", Polyline: []geometry.Point{{X: 0, Y: 10}, {X: 10, Y: 0}}},
	}

	// Length mismatch means the pass cannot map routes to connections
	// and must leave everything untouched.
	r := New(DefaultConfig(), nil)
	out := r.ResolveConflicts(arr, board, routes, connections)
	if len(out) != 2 || len(out[0].Polyline) != 2 || len(out[1].Polyline) != 2 {
		t.Errorf("mismatched input should pass through unchanged")
	}
}

func TestResolveConflictsSameNetTouching(t *testing.T) {
	arr, _, board := testArrangement(t)
	r1 := arr.Components[0]
	r2 := arr.Components[1]

	connections := []pcb.Connection{
		{From: pcb.PadRef{ComponentID: r1.ID, PadIndex: 0}, To: pcb.PadRef{ComponentID: r2.ID, PadIndex: 0}, NetName: "GND"},
		{From: pcb.PadRef{ComponentID: r1.ID, PadIndex: 1}, To: pcb.PadRef{ComponentID: r2.ID, PadIndex: 1}, NetName: "GND"},
	}
	routes := []pcb.Route{
		{Net: "GND", Polyline: []geometry.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		{Net: "GND", Polyline: []geometry.Point{{X: 0, Y: 10}, {X: 10, Y: 0}}},
	}

	r := New(DefaultConfig(), nil)
	out := r.ResolveConflicts(arr, board, routes, connections)

	// Same-net routes may touch; neither should be re-routed.
	if out[0].Polyline[0] != (geometry.Point{X: 0, Y: 0}) ||
		out[1].Polyline[0] != (geometry.Point{X: 0, Y: 10}) {
		t.Errorf("same-net routes should not be re-routed")
	}
}

func TestResolveConflictsReroutesShorter(t *testing.T) {
	board := pcb.NewRectangularBoard(100, 60, 3)

	// A horizontal net between r1 and r2 crossed by a shorter vertical
	// net between r3 and r4.
	r1, _ := pcb.NewComponent("resistor")
	r2, _ := pcb.NewComponent("resistor")
	r3, _ := pcb.NewComponent("resistor")
	r4, _ := pcb.NewComponent("resistor")
	r1.Position = geometry.Point{X: 20, Y: 30}
	r2.Position = geometry.Point{X: 80, Y: 30}
	r3.Position = geometry.Point{X: 50, Y: 12}
	r3.Rotation = 90
	r4.Position = geometry.Point{X: 50, Y: 48}
	r4.Rotation = 90

	arr := &pcb.Arrangement{Components: []pcb.Component{r1, r2, r3, r4}}

	connections := []pcb.Connection{
		{
			From:    pcb.PadRef{ComponentID: r1.ID, PadIndex: 1},
			To:      pcb.PadRef{ComponentID: r2.ID, PadIndex: 0},
			NetName: "A",
		},
		{
			From:    pcb.PadRef{ComponentID: r3.ID, PadIndex: 1},
			To:      pcb.PadRef{ComponentID: r4.ID, PadIndex: 0},
			NetName: "B",
		},
	}

	aFrom, _, _ := arr.ResolvePad(connections[0].From)
	aTo, _, _ := arr.ResolvePad(connections[0].To)
	bFrom, _, _ := arr.ResolvePad(connections[1].From)
	bTo, _, _ := arr.ResolvePad(connections[1].To)

	routes := []pcb.Route{
		{Net: "A", Width: 3, Polyline: []geometry.Point{aFrom, aTo}},
		{Net: "B", Width: 3, Polyline: []geometry.Point{bFrom, bTo}},
	}
	original := routes[0]

	if !RoutesIntersect(&routes[0], &routes[1]) {
		t.Fatalf("test setup: routes should start in conflict")
	}

	r := New(DefaultConfig(), nil)
	out := r.ResolveConflicts(arr, board, routes, connections)

	// The longer horizontal route keeps its polyline; the shorter one is
	// re-routed clear of it.
	if len(out[0].Polyline) != 2 || out[0].Polyline[0] != original.Polyline[0] {
		t.Errorf("longer route should be untouched: %v", out[0].Polyline)
	}
	if RoutesIntersect(&out[1], &original) {
		t.Errorf("re-routed path still crosses the original: %v", out[1].Polyline)
	}
	if out[1].Polyline[0] != bFrom || out[1].Polyline[len(out[1].Polyline)-1] != bTo {
		t.Errorf("re-route moved the endpoints: %v", out[1].Polyline)
	}
}

// The pass is single-shot: when no conflict-free re-route exists, the
// direct-line fallback is accepted and the residual conflict is left for
// the rule checker, never iterated on.
func TestResolveConflictsLeavesResidualConflict(t *testing.T) {
	board := pcb.NewRectangularBoard(100, 60, 3)

	r3, _ := pcb.NewComponent("resistor")
	r4, _ := pcb.NewComponent("resistor")
	r3.Position = geometry.Point{X: 50, Y: 12}
	r3.Rotation = 90
	r4.Position = geometry.Point{X: 50, Y: 48}
	r4.Rotation = 90

	arr := &pcb.Arrangement{Components: []pcb.Component{r3, r4}}

	connections := []pcb.Connection{
		{
			From:    pcb.PadRef{ComponentID: "ghost-a", PadIndex: 0},
			To:      pcb.PadRef{ComponentID: "ghost-b", PadIndex: 0},
			NetName: "A",
		},
		{
			From:    pcb.PadRef{ComponentID: r3.ID, PadIndex: 1},
			To:      pcb.PadRef{ComponentID: r4.ID, PadIndex: 0},
			NetName: "B",
		},
	}

	bFrom, _, _ := arr.ResolvePad(connections[1].From)
	bTo, _, _ := arr.ResolvePad(connections[1].To)

	// The barrier spans the whole board, so every path between the
	// vertical net's pads must cross it.
	barrier := pcb.Route{Net: "A", Width: 3, Polyline: []geometry.Point{
		{X: 0, Y: 30}, {X: 100, Y: 30},
	}}
	routes := []pcb.Route{
		barrier,
		{Net: "B", Width: 3, Polyline: []geometry.Point{bFrom, bTo}},
	}

	r := New(DefaultConfig(), nil)
	out := r.ResolveConflicts(arr, board, routes, connections)

	if !RoutesIntersect(&out[0], &out[1]) {
		t.Errorf("unresolvable conflict should survive the single pass")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{GridPitch: -1, MaxExpansions: 0, RouteWidth: 0, RouteDepth: -2}
	cfg.Validate()

	def := DefaultConfig()
	if cfg.GridPitch != def.GridPitch {
		t.Errorf("grid pitch not defaulted: %v", cfg.GridPitch)
	}
	if cfg.MaxExpansions != def.MaxExpansions {
		t.Errorf("expansion cap not defaulted: %v", cfg.MaxExpansions)
	}
	if cfg.RouteWidth != def.RouteWidth || cfg.RouteDepth != def.RouteDepth {
		t.Errorf("channel geometry not defaulted: %+v", cfg)
	}
	if cfg.Profile != pcb.ProfileU || cfg.Layer != pcb.LayerTop {
		t.Errorf("profile/layer not defaulted: %+v", cfg)
	}
}

func TestManhattanFallbackShapes(t *testing.T) {
	obstacles := &obstacleSet{board: pcb.NewRectangularBoard(100, 60, 3)}
	from := geometry.Point{X: 10, Y: 10}
	to := geometry.Point{X: 40, Y: 30}

	path := manhattanRoute(from, to, obstacles)
	if path[0] != from || path[len(path)-1] != to {
		t.Errorf("fallback endpoints not preserved: %v", path)
	}
	// Axis-aligned segments only.
	for i := 1; i < len(path); i++ {
		dx := path[i].X - path[i-1].X
		dy := path[i].Y - path[i-1].Y
		if dx != 0 && dy != 0 {
			t.Errorf("fallback segment %v -> %v is not axis-aligned", path[i-1], path[i])
		}
	}
}
