package netlist

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/catalog"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Diagnostic records a pin that inference had to skip, rather than
// dropping it silently. The pipeline surfaces these alongside the
// proposed connections.
type Diagnostic struct {
	ComponentID   string `json:"componentId"`
	ComponentType string `json:"componentType"`
	PinIndex      int    `json:"pinIndex"`
	Reason        string `json:"reason"`
}

// InferConnections proposes point-to-point connections for a set of
// placed components:
//
//  1. All recognized power (vcc) pins are bussed together on net VCC.
//  2. All recognized ground pins are bussed together on net GND.
//  3. Each sensor/control output is linked to the next free analog
//     input on a controller, in component order.
//
// Components without a catalog pinout contribute nothing; pins whose
// index has no matching footprint pad are skipped with a diagnostic
// (footprint and pinout tables are independent and may disagree).
func InferConnections(components []pcb.Component) ([]pcb.Connection, []Diagnostic) {
	var (
		powerPads  []pcb.PadRef
		groundPads []pcb.PadRef
		outputs    []pcb.PadRef
		inputs     []pcb.PadRef
		diags      []Diagnostic
	)

	for _, comp := range components {
		pinout, ok := catalog.GetPinout(comp.Type)
		if !ok {
			diags = append(diags, Diagnostic{
				ComponentID:   comp.ID,
				ComponentType: comp.Type,
				PinIndex:      -1,
				Reason:        "no pinout in catalog",
			})
			continue
		}

		isController := strings.Contains(comp.Type, "controller")

		for _, pin := range pinout.Pins {
			if pin.Index < 0 || pin.Index >= len(comp.Pads) {
				diags = append(diags, Diagnostic{
					ComponentID:   comp.ID,
					ComponentType: comp.Type,
					PinIndex:      pin.Index,
					Reason:        fmt.Sprintf("pin index outside footprint (%d pads)", len(comp.Pads)),
				})
				continue
			}

			ref := pcb.PadRef{ComponentID: comp.ID, PadIndex: pin.Index}
			switch {
			case pin.Role.IsPower():
				powerPads = append(powerPads, ref)
			case pin.Role.IsGround():
				groundPads = append(groundPads, ref)
			case pin.Role == catalog.RoleOutput && !isController:
				outputs = append(outputs, ref)
			case pin.Role == catalog.RoleInput && isController:
				inputs = append(inputs, ref)
			}
		}
	}

	var connections []pcb.Connection

	// Bus nets are daisy chains: each pad connects to the next, which
	// keeps point-to-point route lengths short.
	connections = append(connections, busConnections(powerPads, "VCC", true, false)...)
	connections = append(connections, busConnections(groundPads, "GND", false, true)...)

	// Sensor outputs claim controller inputs first come, first served.
	n := len(outputs)
	if len(inputs) < n {
		n = len(inputs)
	}
	for i := 0; i < n; i++ {
		connections = append(connections, pcb.Connection{
			ID:           uuid.NewString(),
			From:         outputs[i],
			To:           inputs[i],
			NetName:      fmt.Sprintf("SIG%d", i+1),
			AutoDetected: true,
		})
	}
	for i := n; i < len(outputs); i++ {
		diags = append(diags, Diagnostic{
			ComponentID: outputs[i].ComponentID,
			PinIndex:    outputs[i].PadIndex,
			Reason:      "no free controller input for sensor output",
		})
	}

	return connections, diags
}

// busConnections daisy-chains a pad list into pairwise connections on a
// shared net name.
func busConnections(pads []pcb.PadRef, net string, power, ground bool) []pcb.Connection {
	var out []pcb.Connection
	for i := 1; i < len(pads); i++ {
		out = append(out, pcb.Connection{
			ID:           uuid.NewString(),
			From:         pads[i-1],
			To:           pads[i],
			NetName:      net,
			IsPower:      power,
			IsGround:     ground,
			AutoDetected: true,
		})
	}
	return out
}

// BuildNetlist groups a connection list into electrical nets.
func BuildNetlist(components []pcb.Component, connections []pcb.Connection) *Netlist {
	var pads []pcb.PadRef
	for _, comp := range components {
		for i := range comp.Pads {
			pads = append(pads, pcb.PadRef{ComponentID: comp.ID, PadIndex: i})
		}
	}

	nl := NewNetlist(pads)
	for _, conn := range connections {
		nl.Connect(conn.From, conn.To, conn.NetName)
	}
	nl.Finalize()
	return nl
}

// FlowClass buckets a component into the signal-flow stage it most
// likely belongs to. Used by the signal-flow placement strategy.
type FlowClass int

const (
	FlowInput FlowClass = iota
	FlowProcessing
	FlowOutput
)

// ClassifyFlow assigns a flow class by keyword heuristic on the component
// type. Sources and sensors are inputs, indicators and actuators are
// outputs, everything else is processing.
func ClassifyFlow(componentType string) FlowClass {
	t := strings.ToLower(componentType)
	switch {
	case strings.Contains(t, "battery"),
		strings.Contains(t, "sensor"),
		strings.Contains(t, "thermistor"),
		strings.Contains(t, "photo"),
		strings.Contains(t, "button"),
		strings.Contains(t, "switch"),
		strings.Contains(t, "potentiometer"),
		strings.Contains(t, "terminal"):
		return FlowInput
	case strings.Contains(t, "led"),
		strings.Contains(t, "buzzer"),
		strings.Contains(t, "speaker"),
		strings.Contains(t, "display"),
		strings.Contains(t, "motor"):
		return FlowOutput
	default:
		return FlowProcessing
	}
}
