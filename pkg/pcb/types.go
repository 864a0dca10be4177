package pcb

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

// Layer names one of the two routing layers.
type Layer string

const (
	LayerTop    Layer = "top"
	LayerBottom Layer = "bottom"
)

// Profile is the cross-sectional shape of a routed channel.
type Profile string

const (
	ProfileU    Profile = "U"
	ProfileV    Profile = "V"
	ProfileFlat Profile = "flat"
)

// PadRef identifies one pad of one component by the component's stable ID.
// Component IDs survive re-ordering of the arrangement's component slice,
// so a PadRef stays valid across arrangements containing the same parts.
type PadRef struct {
	ComponentID string `json:"componentId"`
	PadIndex    int    `json:"padIndex"`
}

// Connection is a required electrical link between two pads.
type Connection struct {
	ID           string `json:"id"`
	From         PadRef `json:"from"`
	To           PadRef `json:"to"`
	NetName      string `json:"netName"`
	IsPower      bool   `json:"isPower"`
	IsGround     bool   `json:"isGround"`
	AutoDetected bool   `json:"autoDetected"`
}

// Route is the physical wire path realizing one connection: a polyline in
// board coordinates plus channel geometry. Routes are immutable once
// produced; re-routing replaces the whole value.
type Route struct {
	Net      string           `json:"net"`
	Layer    Layer            `json:"layer"`
	Polyline []geometry.Point `json:"polyline"`
	Width    float64          `json:"width"`
	Profile  Profile          `json:"profile"`
	Depth    float64          `json:"depth"`
}

// Length returns the total polyline length of the route.
func (r Route) Length() float64 {
	return geometry.PolylineLength(r.Polyline)
}

// Via is a through-board connection point linking the two routing layers.
type Via struct {
	Position geometry.Point `json:"position"`
	Diameter float64        `json:"diameter"`
	Drill    float64        `json:"drill"`
	Net      string         `json:"net,omitempty"`
}

// ArrangementMetrics are the raw quantities behind an arrangement's score.
type ArrangementMetrics struct {
	TotalRouteLength float64 `json:"totalRouteLength"`
	RouteCrossings   int     `json:"routeCrossings"`
	BoardUtilization float64 `json:"boardUtilization"` // 0..1
	SymmetryScore    float64 `json:"symmetryScore"`    // 0..1
}

// Arrangement is one candidate layout: placed components, optionally
// routes, and a fitness score in [0, 100]. It is the unit exchanged
// between the placement, routing, and rule-check stages.
type Arrangement struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Components  []Component        `json:"components"`
	Routes      []Route            `json:"routes,omitempty"`
	Score       float64            `json:"score"`
	Metrics     ArrangementMetrics `json:"metrics"`

	index map[string]int // lazy component-ID index
}

// ComponentByID returns a pointer into the arrangement's component slice,
// building the ID index on first use.
func (a *Arrangement) ComponentByID(id string) (*Component, bool) {
	if a.index == nil || len(a.index) != len(a.Components) {
		a.index = make(map[string]int, len(a.Components))
		for i := range a.Components {
			a.index[a.Components[i].ID] = i
		}
	}
	i, ok := a.index[id]
	if !ok {
		return nil, false
	}
	return &a.Components[i], true
}

// ResolvePad returns the world position and pad radius for a pad
// reference, or an error when the reference does not match the
// arrangement.
func (a *Arrangement) ResolvePad(ref PadRef) (geometry.Point, float64, error) {
	comp, ok := a.ComponentByID(ref.ComponentID)
	if !ok {
		return geometry.Point{}, 0, fmt.Errorf("pcb: unknown component %q", ref.ComponentID)
	}
	if ref.PadIndex < 0 || ref.PadIndex >= len(comp.Pads) {
		return geometry.Point{}, 0, fmt.Errorf("pcb: pad index %d out of range for %s (%d pads)",
			ref.PadIndex, comp.Type, len(comp.Pads))
	}
	return comp.WorldPad(ref.PadIndex), comp.Pads[ref.PadIndex].Radius(), nil
}

// Clone deep-copies the arrangement, dropping the lazy index.
func (a *Arrangement) Clone() *Arrangement {
	out := &Arrangement{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Components:  CloneComponents(a.Components),
		Score:       a.Score,
		Metrics:     a.Metrics,
	}
	out.Routes = make([]Route, len(a.Routes))
	for i, r := range a.Routes {
		r.Polyline = append([]geometry.Point(nil), r.Polyline...)
		out.Routes[i] = r
	}
	return out
}

// Project is the finished-design snapshot consumed by the rule checker.
type Project struct {
	Board      *Board      `json:"board"`
	Components []Component `json:"components"`
	Routes     []Route     `json:"routes"`
	Vias       []Via       `json:"vias,omitempty"`
}
