package drc

import (
	"fmt"
	"math"
	"strings"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Check runs every design rule over a project snapshot and concatenates
// the results. Checks are independent and order-insensitive; none
// short-circuits another.
func Check(project *pcb.Project, rules RuleSet) []Violation {
	rules.Validate()

	var violations []Violation
	violations = append(violations, checkSpacing(project, rules)...)
	violations = append(violations, checkWall(project, rules)...)
	violations = append(violations, checkBendRadius(project, rules)...)
	violations = append(violations, checkPadClearance(project, rules)...)
	violations = append(violations, checkOverhang(project)...)
	violations = append(violations, checkHoleCollision(project)...)
	violations = append(violations, checkViaConnectivity(project)...)
	violations = append(violations, checkUnconnectedPads(project)...)
	violations = append(violations, checkPowerPath(project)...)
	violations = append(violations, checkComponentOverlap(project)...)
	return violations
}

// routePairDistance returns the minimum distance between two route
// centerlines and a representative point near the closest approach.
func routePairDistance(a, b *pcb.Route) (float64, geometry.Point) {
	min := math.Inf(1)
	var at geometry.Point
	for i := 1; i < len(a.Polyline); i++ {
		for j := 1; j < len(b.Polyline); j++ {
			d := geometry.SegmentSegmentDistance(
				a.Polyline[i-1], a.Polyline[i],
				b.Polyline[j-1], b.Polyline[j])
			if d < min {
				min = d
				at = midpoint(a.Polyline[i-1], a.Polyline[i])
			}
		}
	}
	return min, at
}

// checkSpacing flags route pairs whose centerline distance is below the
// minimum spacing. One violation per pair. Routes on the same net may
// touch.
func checkSpacing(project *pcb.Project, rules RuleSet) []Violation {
	var out []Violation
	routes := project.Routes
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if sameNet(&routes[i], &routes[j]) {
				continue
			}
			d, at := routePairDistance(&routes[i], &routes[j])
			if d < rules.MinSpacing {
				out = append(out, Violation{
					Type: ViolationSpacing,
					Message: fmt.Sprintf("routes %s and %s are %.2f mm apart, minimum spacing is %.2f mm",
						routes[i].Net, routes[j].Net, d, rules.MinSpacing),
					Position: at,
					Severity: SeverityError,
				})
			}
		}
	}
	return out
}

// checkWall flags route pairs whose channel walls leave less material
// than the minimum wall thickness: centerline distance minus both half
// widths.
func checkWall(project *pcb.Project, rules RuleSet) []Violation {
	var out []Violation
	routes := project.Routes
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if sameNet(&routes[i], &routes[j]) {
				continue
			}
			d, at := routePairDistance(&routes[i], &routes[j])
			wall := d - routes[i].Width/2 - routes[j].Width/2
			if wall < rules.MinWall {
				out = append(out, Violation{
					Type: ViolationWall,
					Message: fmt.Sprintf("wall between routes %s and %s is %.2f mm, minimum is %.2f mm",
						routes[i].Net, routes[j].Net, wall, rules.MinWall),
					Position: at,
					Severity: SeverityError,
				})
			}
		}
	}
	return out
}

// checkBendRadius estimates the bend radius each polyline corner demands
// from its turn angle. The formula is an empirical tape-handling
// heuristic, not a physically derived minimum, so violations are
// warnings.
func checkBendRadius(project *pcb.Project, rules RuleSet) []Violation {
	var out []Violation
	const sharpTurn = math.Pi / 4 // gentler corners are fine for tape
	for _, route := range project.Routes {
		for i := 1; i < len(route.Polyline)-1; i++ {
			turn := geometry.TurnAngle(route.Polyline[i-1], route.Polyline[i], route.Polyline[i+1])
			if turn < sharpTurn {
				continue
			}
			interior := math.Pi - turn
			required := route.Width * (1 + math.Pi/(interior+0.1))
			if required > rules.MinBendRadius {
				out = append(out, Violation{
					Type: ViolationBendRadius,
					Message: fmt.Sprintf("route %s turns %.0f degrees, needs about %.1f mm bend radius",
						route.Net, turn*180/math.Pi, required),
					Position: route.Polyline[i],
					Severity: SeverityWarning,
				})
			}
		}
	}
	return out
}

// checkPadClearance flags pads that a foreign route passes too close to.
// A route is foreign to a pad unless it terminates on it.
func checkPadClearance(project *pcb.Project, rules RuleSet) []Violation {
	var out []Violation
	for ci := range project.Components {
		comp := &project.Components[ci]
		for pi := range comp.Pads {
			pos := comp.WorldPad(pi)
			radius := comp.Pads[pi].Radius()
			required := rules.MinPadClearance + radius

			for ri := range project.Routes {
				route := &project.Routes[ri]
				if terminatesAt(route, pos) {
					continue
				}
				d := distanceToRoute(pos, route)
				if d < required {
					out = append(out, Violation{
						Type: ViolationPadClearance,
						Message: fmt.Sprintf("%s pad %d is %.2f mm from route %s, needs %.2f mm",
							comp.Type, pi, d, route.Net, required),
						Position: pos,
						Severity: SeverityError,
					})
				}
			}
		}
	}
	return out
}

// checkOverhang flags route points outside the board boundary.
func checkOverhang(project *pcb.Project) []Violation {
	var out []Violation
	for _, route := range project.Routes {
		for _, p := range route.Polyline {
			if !project.Board.Contains(p) && !onBoundary(project.Board, p) {
				out = append(out, Violation{
					Type:     ViolationOverhang,
					Message:  fmt.Sprintf("route %s leaves the board at (%.1f, %.1f)", route.Net, p.X, p.Y),
					Position: p,
					Severity: SeverityError,
				})
				break // one violation per route is enough
			}
		}
	}
	return out
}

// checkHoleCollision flags holes (component holes, via drills, and board
// mount features) that overlap each other.
func checkHoleCollision(project *pcb.Project) []Violation {
	type hole struct {
		pos    geometry.Point
		radius float64
		label  string
	}

	var holes []hole
	for ci := range project.Components {
		comp := &project.Components[ci]
		positions := comp.WorldHoles()
		for hi, pos := range positions {
			holes = append(holes, hole{pos, comp.Holes[hi].Diameter / 2, comp.Type})
		}
	}
	for _, via := range project.Vias {
		holes = append(holes, hole{via.Position, via.Drill / 2, "via"})
	}
	if project.Board != nil {
		for _, f := range project.Board.Features {
			holes = append(holes, hole{f.Position, f.Diameter / 2, "mount feature"})
		}
	}

	var out []Violation
	for i := 0; i < len(holes); i++ {
		for j := i + 1; j < len(holes); j++ {
			d := holes[i].pos.Distance(holes[j].pos)
			if d < holes[i].radius+holes[j].radius {
				out = append(out, Violation{
					Type: ViolationHoleCollision,
					Message: fmt.Sprintf("%s hole and %s hole overlap (%.2f mm apart)",
						holes[i].label, holes[j].label, d),
					Position: midpoint(holes[i].pos, holes[j].pos),
					Severity: SeverityError,
				})
			}
		}
	}
	return out
}

// checkViaConnectivity warns about vias no route passes near: a via must
// sit within half a route's width of at least one route.
func checkViaConnectivity(project *pcb.Project) []Violation {
	var out []Violation
	for _, via := range project.Vias {
		connected := false
		for ri := range project.Routes {
			if distanceToRoute(via.Position, &project.Routes[ri]) <= project.Routes[ri].Width/2 {
				connected = true
				break
			}
		}
		if !connected {
			out = append(out, Violation{
				Type:     ViolationUnconnectedVia,
				Message:  fmt.Sprintf("unconnected via at (%.1f, %.1f)", via.Position.X, via.Position.Y),
				Position: via.Position,
				Severity: SeverityWarning,
			})
		}
	}
	return out
}

// checkUnconnectedPads warns about pads no route reaches. Not every pad
// needs a route (mechanical pads, magnets), so this is informational.
func checkUnconnectedPads(project *pcb.Project) []Violation {
	var out []Violation
	for ci := range project.Components {
		comp := &project.Components[ci]
		if strings.Contains(comp.Type, "magnet") {
			continue
		}
		for pi := range comp.Pads {
			pos := comp.WorldPad(pi)
			reach := comp.Pads[pi].Radius() + 1.0
			connected := false
			for ri := range project.Routes {
				if distanceToRoute(pos, &project.Routes[ri]) <= reach+project.Routes[ri].Width/2 {
					connected = true
					break
				}
			}
			if !connected {
				out = append(out, Violation{
					Type:     ViolationUnconnectedPad,
					Message:  fmt.Sprintf("%s pad %d has no route", comp.Type, pi),
					Position: pos,
					Severity: SeverityWarning,
				})
			}
		}
	}
	return out
}

// checkPowerPath sanity-checks the supply: ICs without any power source
// on the board, and power sources none of whose pads a route touches.
func checkPowerPath(project *pcb.Project) []Violation {
	var out []Violation

	var ics, sources []*pcb.Component
	for ci := range project.Components {
		comp := &project.Components[ci]
		t := strings.ToLower(comp.Type)
		switch {
		case strings.Contains(t, "battery") || strings.Contains(t, "terminal"):
			sources = append(sources, comp)
		case strings.Contains(t, "dip") || strings.Contains(t, "controller") || strings.Contains(t, "ic"):
			ics = append(ics, comp)
		}
	}

	if len(ics) > 0 && len(sources) == 0 {
		out = append(out, Violation{
			Type:     ViolationPowerPath,
			Message:  fmt.Sprintf("%d powered component(s) but no power source on the board", len(ics)),
			Position: ics[0].Position,
			Severity: SeverityWarning,
		})
	}

	for _, source := range sources {
		fed := false
		for pi := range source.Pads {
			pos := source.WorldPad(pi)
			for ri := range project.Routes {
				if distanceToRoute(pos, &project.Routes[ri]) <= 3.0 {
					fed = true
					break
				}
			}
			if fed {
				break
			}
		}
		if !fed {
			out = append(out, Violation{
				Type:     ViolationPowerPath,
				Message:  fmt.Sprintf("power source %s has no route on any pad", source.Type),
				Position: source.Position,
				Severity: SeverityWarning,
			})
		}
	}

	return out
}

// checkComponentOverlap flags components placed closer than their
// estimated footprint sizes allow, with 2 mm clearance.
func checkComponentOverlap(project *pcb.Project) []Violation {
	const clearance = 2.0
	var out []Violation
	comps := project.Components
	for i := 0; i < len(comps); i++ {
		for j := i + 1; j < len(comps); j++ {
			d := comps[i].Position.Distance(comps[j].Position)
			required := comps[i].FootprintRadius() + comps[j].FootprintRadius() + clearance
			if d < required {
				out = append(out, Violation{
					Type: ViolationComponentOverlap,
					Message: fmt.Sprintf("%s and %s are %.1f mm apart, need %.1f mm",
						comps[i].Type, comps[j].Type, d, required),
					Position: midpoint(comps[i].Position, comps[j].Position),
					Severity: SeverityError,
				})
			}
		}
	}
	return out
}

func sameNet(a, b *pcb.Route) bool {
	return a.Net != "" && a.Net == b.Net
}

// terminatesAt reports whether a route endpoint coincides with a pad
// position; such a route serves the pad rather than encroaching on it.
func terminatesAt(route *pcb.Route, pad geometry.Point) bool {
	const eps = 1e-6
	if len(route.Polyline) == 0 {
		return false
	}
	first := route.Polyline[0]
	last := route.Polyline[len(route.Polyline)-1]
	return first.Distance(pad) < eps || last.Distance(pad) < eps
}

// distanceToRoute returns the distance from a point to the nearest
// segment of a route's polyline.
func distanceToRoute(p geometry.Point, route *pcb.Route) float64 {
	if len(route.Polyline) == 1 {
		return p.Distance(route.Polyline[0])
	}
	min := math.Inf(1)
	for i := 1; i < len(route.Polyline); i++ {
		if d := geometry.PointSegmentDistance(p, route.Polyline[i-1], route.Polyline[i]); d < min {
			min = d
		}
	}
	return min
}

func midpoint(a, b geometry.Point) geometry.Point {
	return geometry.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func onBoundary(board *pcb.Board, p geometry.Point) bool {
	n := len(board.Boundary)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if geometry.PointSegmentDistance(p, board.Boundary[i], board.Boundary[j]) < 1e-6 {
			return true
		}
	}
	return false
}
