// Package router computes physical wire paths for a fixed placement. Each
// connection is routed by obstacle-aware A* over a routing grid, falling
// back to Manhattan L/Z shapes and finally a direct line, so every
// connection always yields a route; the design-rule checker is the
// authoritative judge of the failures that fallback routes may carry.
package router

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Config tunes the router.
type Config struct {
	GridPitch     float64     `yaml:"gridPitch"`     // routing grid, mm
	MaxExpansions int         `yaml:"maxExpansions"` // A* node-expansion cap
	RouteWidth    float64     `yaml:"routeWidth"`    // channel width, mm
	RouteDepth    float64     `yaml:"routeDepth"`    // channel depth, mm
	Profile       pcb.Profile `yaml:"profile"`
	Layer         pcb.Layer   `yaml:"layer"`
	BendRadius    float64     `yaml:"bendRadius"` // corner fillet radius, mm
	Clearance     float64     `yaml:"clearance"`  // obstacle padding, mm
}

// DefaultConfig returns the standard routing parameters.
func DefaultConfig() Config {
	return Config{
		GridPitch:     2.5,
		MaxExpansions: 10000,
		RouteWidth:    3.0,
		RouteDepth:    2.0,
		Profile:       pcb.ProfileU,
		Layer:         pcb.LayerTop,
		BendRadius:    2.0,
		Clearance:     0.5,
	}
}

// Validate clamps nonsensical settings to usable values.
func (c *Config) Validate() {
	if c.GridPitch <= 0 {
		c.GridPitch = 2.5
	}
	if c.MaxExpansions <= 0 {
		c.MaxExpansions = 10000
	}
	if c.RouteWidth <= 0 {
		c.RouteWidth = 3.0
	}
	if c.RouteDepth <= 0 {
		c.RouteDepth = 2.0
	}
	if c.Profile == "" {
		c.Profile = pcb.ProfileU
	}
	if c.Layer == "" {
		c.Layer = pcb.LayerTop
	}
	if c.BendRadius < 0 {
		c.BendRadius = 0
	}
	if c.Clearance < 0 {
		c.Clearance = 0
	}
}

// SkippedConnection is a connection the router could not route at all,
// with the reason. Bad pad references land here instead of being silently
// dropped.
type SkippedConnection struct {
	Connection pcb.Connection `json:"connection"`
	Reason     string         `json:"reason"`
}

// Result pairs the produced routes with the connections they realize,
// index-aligned, plus the skipped-connection diagnostics.
type Result struct {
	Routes      []pcb.Route         `json:"routes"`
	Connections []pcb.Connection    `json:"connections"`
	Skipped     []SkippedConnection `json:"skipped,omitempty"`
	Fallbacks   int                 `json:"fallbacks"`
}

// Router computes routes for an arrangement.
type Router struct {
	cfg Config
	log *zap.Logger
}

// New creates a router. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Router {
	cfg.Validate()
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{cfg: cfg, log: log}
}

// Route computes one route per connection against a fixed placement.
// Power and ground connections are routed first, then the remainder in
// ascending Manhattan-distance order; each finished route becomes an
// obstacle for the next. A final single conflict-resolution pass re-routes
// the shorter of any two colliding routes.
func (r *Router) Route(arr *pcb.Arrangement, connections []pcb.Connection, board *pcb.Board) Result {
	ordered := r.orderConnections(arr, connections)

	var result Result
	for _, conn := range ordered {
		polyline, fallback, err := r.routeOne(arr, board, conn, result.Routes)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedConnection{
				Connection: conn,
				Reason:     err.Error(),
			})
			continue
		}
		if fallback {
			result.Fallbacks++
		}

		result.Routes = append(result.Routes, r.makeRoute(conn, polyline))
		result.Connections = append(result.Connections, conn)
	}

	result.Routes = r.ResolveConflicts(arr, board, result.Routes, result.Connections)

	r.log.Debug("routing finished",
		zap.Int("routed", len(result.Routes)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("fallbacks", result.Fallbacks))

	return result
}

// orderConnections sorts power/ground nets first, remaining connections
// by ascending Manhattan distance. Connections with unresolvable pads
// keep their relative order and fail later with a diagnostic.
func (r *Router) orderConnections(arr *pcb.Arrangement, connections []pcb.Connection) []pcb.Connection {
	ordered := append([]pcb.Connection(nil), connections...)

	distance := func(c pcb.Connection) float64 {
		from, _, err1 := arr.ResolvePad(c.From)
		to, _, err2 := arr.ResolvePad(c.To)
		if err1 != nil || err2 != nil {
			return math.Inf(1)
		}
		return from.ManhattanDistance(to)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		pi := ordered[i].IsPower || ordered[i].IsGround
		pj := ordered[j].IsPower || ordered[j].IsGround
		if pi != pj {
			return pi
		}
		return distance(ordered[i]) < distance(ordered[j])
	})

	return ordered
}

// routeOne routes a single connection against the current obstacle state:
// A* first, then Manhattan L/Z shapes, then a direct line. The direct
// line may cross obstacles; that is the documented last-resort behavior.
func (r *Router) routeOne(arr *pcb.Arrangement, board *pcb.Board, conn pcb.Connection, existing []pcb.Route) ([]geometry.Point, bool, error) {
	from, _, err := arr.ResolvePad(conn.From)
	if err != nil {
		return nil, false, err
	}
	to, _, err := arr.ResolvePad(conn.To)
	if err != nil {
		return nil, false, err
	}

	exclude := map[string]bool{
		conn.From.ComponentID: true,
		conn.To.ComponentID:   true,
	}
	obstacles := newObstacleSet(board, arr.Components, exclude, existing, r.cfg.Clearance)

	if path, ok := findGridPath(from, to, r.cfg.GridPitch, obstacles.blocked, r.cfg.MaxExpansions); ok {
		return FilletPolyline(path, r.cfg.BendRadius), false, nil
	}

	path := manhattanRoute(from, to, obstacles)
	return FilletPolyline(path, r.cfg.BendRadius), true, nil
}

func (r *Router) makeRoute(conn pcb.Connection, polyline []geometry.Point) pcb.Route {
	return pcb.Route{
		Net:      conn.NetName,
		Layer:    r.cfg.Layer,
		Polyline: polyline,
		Width:    r.cfg.RouteWidth,
		Profile:  r.cfg.Profile,
		Depth:    r.cfg.RouteDepth,
	}
}

// manhattanRoute builds an axis-aligned fallback path, preferring an L or
// Z shape that misses every obstacle and accepting a direct line as last
// resort even when it crosses one.
func manhattanRoute(from, to geometry.Point, obstacles *obstacleSet) []geometry.Point {
	candidates := [][]geometry.Point{
		{from, {X: to.X, Y: from.Y}, to},
		{from, {X: from.X, Y: to.Y}, to},
		{from, {X: (from.X + to.X) / 2, Y: from.Y}, {X: (from.X + to.X) / 2, Y: to.Y}, to},
		{from, {X: from.X, Y: (from.Y + to.Y) / 2}, {X: to.X, Y: (from.Y + to.Y) / 2}, to},
	}

	for _, candidate := range candidates {
		unobstructed := true
		for i := 1; i < len(candidate); i++ {
			if obstacles.segmentBlocked(candidate[i-1], candidate[i]) {
				unobstructed = false
				break
			}
		}
		if unobstructed {
			return geometry.SimplifyCollinear(candidate)
		}
	}

	return []geometry.Point{from, to}
}

// RoutesIntersect reports whether any segment of route a crosses any
// segment of route b.
func RoutesIntersect(a, b *pcb.Route) bool {
	for i := 1; i < len(a.Polyline); i++ {
		for j := 1; j < len(b.Polyline); j++ {
			if geometry.SegmentsIntersect(a.Polyline[i-1], a.Polyline[i], b.Polyline[j-1], b.Polyline[j]) {
				return true
			}
		}
	}
	return false
}

// ResolveConflicts performs one pass over all route pairs: for each pair
// whose polylines intersect, the geometrically shorter route is re-routed
// around an obstacle set containing all other finished routes. The pass
// is single-shot, not iterated to a fixpoint, so a conflict introduced by
// a re-route is reported by the rule checker rather than fixed here.
// Routes on the same net are allowed to touch.
func (r *Router) ResolveConflicts(arr *pcb.Arrangement, board *pcb.Board, routes []pcb.Route, connections []pcb.Connection) []pcb.Route {
	if len(routes) != len(connections) {
		return routes
	}

	type pair struct{ a, b int }
	var conflicts []pair
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			if routes[i].Net != "" && routes[i].Net == routes[j].Net {
				continue
			}
			if RoutesIntersect(&routes[i], &routes[j]) {
				conflicts = append(conflicts, pair{i, j})
			}
		}
	}

	for _, c := range conflicts {
		shorter := c.a
		if routes[c.b].Length() < routes[c.a].Length() {
			shorter = c.b
		}

		conn := connections[shorter]
		others := make([]pcb.Route, 0, len(routes)-1)
		for i := range routes {
			if i != shorter {
				others = append(others, routes[i])
			}
		}

		polyline, _, err := r.routeOne(arr, board, conn, others)
		if err != nil {
			continue
		}
		routes[shorter] = r.makeRoute(conn, polyline)
	}

	if len(conflicts) > 0 {
		r.log.Debug("conflict resolution pass", zap.Int("conflicts", len(conflicts)))
	}

	return routes
}
