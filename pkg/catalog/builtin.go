package catalog

import (
	"fmt"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

// Built-in part library. Dimensions are millimeters on the standard
// 2.54 mm pitch where applicable.

var footprints = map[string]Footprint{
	"resistor": {
		Type: "resistor",
		Pads: []Pad{
			{Offset: geometry.Point{X: -5.08, Y: 0}, Diameter: 2.0},
			{Offset: geometry.Point{X: 5.08, Y: 0}, Diameter: 2.0},
		},
		Outline: rectOutline(12.0, 4.0),
	},
	"capacitor": {
		Type: "capacitor",
		Pads: []Pad{
			{Offset: geometry.Point{X: -2.54, Y: 0}, Diameter: 2.0},
			{Offset: geometry.Point{X: 2.54, Y: 0}, Diameter: 2.0},
		},
		Outline: rectOutline(7.0, 5.0),
	},
	"led": {
		Type: "led",
		Pads: []Pad{
			{Offset: geometry.Point{X: -1.27, Y: 0}, Diameter: 1.8},
			{Offset: geometry.Point{X: 1.27, Y: 0}, Diameter: 1.8},
		},
		Outline: rectOutline(5.5, 5.5),
	},
	"diode": {
		Type: "diode",
		Pads: []Pad{
			{Offset: geometry.Point{X: -3.81, Y: 0}, Diameter: 2.0},
			{Offset: geometry.Point{X: 3.81, Y: 0}, Diameter: 2.0},
		},
		Outline: rectOutline(9.5, 3.5),
	},
	"pushbutton": {
		Type: "pushbutton",
		Pads: []Pad{
			{Offset: geometry.Point{X: -3.25, Y: -2.25}, Diameter: 2.0},
			{Offset: geometry.Point{X: 3.25, Y: -2.25}, Diameter: 2.0},
			{Offset: geometry.Point{X: -3.25, Y: 2.25}, Diameter: 2.0},
			{Offset: geometry.Point{X: 3.25, Y: 2.25}, Diameter: 2.0},
		},
		Outline: rectOutline(8.0, 6.5),
	},
	"potentiometer": {
		Type: "potentiometer",
		Pads: []Pad{
			{Offset: geometry.Point{X: -2.54, Y: 2.5}, Diameter: 2.0},
			{Offset: geometry.Point{X: 0, Y: 2.5}, Diameter: 2.0},
			{Offset: geometry.Point{X: 2.54, Y: 2.5}, Diameter: 2.0},
		},
		Holes: []Hole{
			{Offset: geometry.Point{X: 0, Y: -1.5}, Diameter: 7.0},
		},
		Outline: rectOutline(10.0, 11.0),
	},
	"dip8": dipFootprint("dip8", 8),
	"dip14": dipFootprint("dip14", 14),
	"dip16": dipFootprint("dip16", 16),
	"microcontroller": {
		Type:    "microcontroller",
		Pads:    dipPads(30, 15.24),
		Outline: rectOutline(45.0, 18.0),
	},
	"thermistor": {
		Type: "thermistor",
		Pads: []Pad{
			{Offset: geometry.Point{X: -1.27, Y: 0}, Diameter: 1.8},
			{Offset: geometry.Point{X: 1.27, Y: 0}, Diameter: 1.8},
		},
		Outline: rectOutline(5.0, 4.0),
	},
	"photoresistor": {
		Type: "photoresistor",
		Pads: []Pad{
			{Offset: geometry.Point{X: -2.54, Y: 0}, Diameter: 1.8},
			{Offset: geometry.Point{X: 2.54, Y: 0}, Diameter: 1.8},
		},
		Outline: rectOutline(7.0, 6.0),
	},
	"buzzer": {
		Type: "buzzer",
		Pads: []Pad{
			{Offset: geometry.Point{X: -3.81, Y: 0}, Diameter: 2.0},
			{Offset: geometry.Point{X: 3.81, Y: 0}, Diameter: 2.0},
		},
		Outline: rectOutline(12.0, 12.0),
	},
	"battery": {
		Type: "battery",
		Pads: []Pad{
			{Offset: geometry.Point{X: -10.0, Y: 0}, Width: 4.0, Height: 4.0},
			{Offset: geometry.Point{X: 10.0, Y: 0}, Width: 4.0, Height: 4.0},
		},
		Holes: []Hole{
			{Offset: geometry.Point{X: -13.0, Y: 9.0}, Diameter: 3.0},
			{Offset: geometry.Point{X: 13.0, Y: 9.0}, Diameter: 3.0},
		},
		Outline: rectOutline(30.0, 22.0),
	},
	"terminal": {
		Type: "terminal",
		Pads: []Pad{
			{Offset: geometry.Point{X: -2.54, Y: 0}, Diameter: 2.4},
			{Offset: geometry.Point{X: 2.54, Y: 0}, Diameter: 2.4},
		},
		Outline: rectOutline(10.0, 8.0),
	},
	"magnet": {
		Type: "magnet",
		Pads: []Pad{
			{Offset: geometry.Point{X: 0, Y: 0}, Diameter: 6.0},
		},
		Outline: rectOutline(8.0, 8.0),
	},
}

var pinouts = map[string]Pinout{
	"resistor": {
		Type: "resistor",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "1"},
			{Index: 1, Role: RoleSignal, Name: "2"},
		},
	},
	"capacitor": {
		Type: "capacitor",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "+"},
			{Index: 1, Role: RoleGND, Name: "-"},
		},
	},
	"led": {
		Type: "led",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "anode"},
			{Index: 1, Role: RoleGND, Name: "cathode"},
		},
	},
	"diode": {
		Type: "diode",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "anode"},
			{Index: 1, Role: RoleSignal, Name: "cathode"},
		},
	},
	"pushbutton": {
		Type: "pushbutton",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "1a"},
			{Index: 1, Role: RoleSignal, Name: "1b"},
			{Index: 2, Role: RoleSignal, Name: "2a"},
			{Index: 3, Role: RoleSignal, Name: "2b"},
		},
	},
	"potentiometer": {
		Type: "potentiometer",
		Pins: []Pin{
			{Index: 0, Role: RoleVCC, Name: "ccw", Voltage: 5},
			{Index: 1, Role: RoleOutput, Name: "wiper"},
			{Index: 2, Role: RoleGND, Name: "cw"},
		},
	},
	"dip8": {
		Type: "dip8",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "1"},
			{Index: 1, Role: RoleInput, Name: "2"},
			{Index: 2, Role: RoleInput, Name: "3"},
			{Index: 3, Role: RoleGND, Name: "4"},
			{Index: 4, Role: RoleSignal, Name: "5"},
			{Index: 5, Role: RoleOutput, Name: "6"},
			{Index: 6, Role: RoleSignal, Name: "7"},
			{Index: 7, Role: RoleVCC, Name: "8", Voltage: 5},
		},
	},
	"dip14": {
		Type: "dip14",
		Pins: append(
			numberedPins(13, RoleSignal, map[int]Pin{
				6: {Index: 6, Role: RoleGND, Name: "7"},
			}),
			Pin{Index: 13, Role: RoleVCC, Name: "14", Voltage: 5},
		),
	},
	"dip16": {
		Type: "dip16",
		Pins: append(
			numberedPins(15, RoleSignal, map[int]Pin{
				7: {Index: 7, Role: RoleGND, Name: "8"},
			}),
			Pin{Index: 15, Role: RoleVCC, Name: "16", Voltage: 5},
		),
	},
	"microcontroller": {
		Type: "microcontroller",
		Pins: controllerPins(),
	},
	"thermistor": {
		Type: "thermistor",
		Pins: []Pin{
			{Index: 0, Role: RoleVCC, Name: "supply", Voltage: 5},
			{Index: 1, Role: RoleOutput, Name: "sense"},
		},
	},
	"photoresistor": {
		Type: "photoresistor",
		Pins: []Pin{
			{Index: 0, Role: RoleVCC, Name: "supply", Voltage: 5},
			{Index: 1, Role: RoleOutput, Name: "sense"},
		},
	},
	"buzzer": {
		Type: "buzzer",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "+"},
			{Index: 1, Role: RoleGND, Name: "-"},
		},
	},
	"battery": {
		Type: "battery",
		Pins: []Pin{
			{Index: 0, Role: RoleVCC, Name: "+", Voltage: 5},
			{Index: 1, Role: RoleGND, Name: "-"},
		},
	},
	"terminal": {
		Type: "terminal",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "1"},
			{Index: 1, Role: RoleSignal, Name: "2"},
		},
	},
	"magnet": {
		Type: "magnet",
		Pins: []Pin{
			{Index: 0, Role: RoleSignal, Name: "contact"},
		},
	},
}

// rectOutline builds a centered rectangular outline polygon.
func rectOutline(width, height float64) []geometry.Point {
	hw, hh := width/2, height/2
	return []geometry.Point{
		{X: -hw, Y: -hh},
		{X: hw, Y: -hh},
		{X: hw, Y: hh},
		{X: -hw, Y: hh},
	}
}

// dipPads lays out through-hole pads for a dual-inline package: pins
// 1..n/2 down one row, n/2+1..n back up the other.
func dipPads(count int, rowSpacing float64) []Pad {
	const pitch = 2.54
	half := count / 2
	pads := make([]Pad, count)
	for i := 0; i < count; i++ {
		var x, y float64
		if i < half {
			x = (float64(i) - float64(half-1)/2) * pitch
			y = -rowSpacing / 2
		} else {
			x = (float64(count-1-i) - float64(half-1)/2) * pitch
			y = rowSpacing / 2
		}
		pads[i] = Pad{Offset: geometry.Point{X: x, Y: y}, Diameter: 1.6}
	}
	return pads
}

func dipFootprint(name string, count int) Footprint {
	width := float64(count/2)*2.54 + 1.5
	return Footprint{
		Type:    name,
		Pads:    dipPads(count, 7.62),
		Outline: rectOutline(width, 9.0),
	}
}

// numberedPins generates n pins named "1".."n" with a default role,
// overridden at specific indices.
func numberedPins(n int, role PinRole, overrides map[int]Pin) []Pin {
	pins := make([]Pin, n)
	for i := 0; i < n; i++ {
		if ov, ok := overrides[i]; ok {
			pins[i] = ov
			continue
		}
		pins[i] = Pin{Index: i, Role: role, Name: fmt.Sprintf("%d", i+1)}
	}
	return pins
}

// controllerPins models a 30-pin development-board controller: digital
// pins on one row, analog inputs and supply pins on the other.
func controllerPins() []Pin {
	pins := make([]Pin, 0, 30)
	for i := 0; i < 13; i++ {
		role := RoleSignal
		switch i {
		case 0, 1:
			role = RoleData // serial rx/tx
		case 12:
			role = RoleClock
		}
		pins = append(pins, Pin{Index: i, Role: role, Name: fmt.Sprintf("D%d", i)})
	}
	pins = append(pins,
		Pin{Index: 13, Role: RoleGND, Name: "GND"},
		Pin{Index: 14, Role: RoleEnable, Name: "RST"},
	)
	for i := 0; i < 8; i++ {
		pins = append(pins, Pin{Index: 15 + i, Role: RoleInput, Name: fmt.Sprintf("A%d", i)})
	}
	pins = append(pins,
		Pin{Index: 23, Role: RoleVCC, Name: "3V3", Voltage: 3.3},
		Pin{Index: 24, Role: RoleVCC, Name: "5V", Voltage: 5},
		Pin{Index: 25, Role: RoleGND, Name: "GND2"},
		Pin{Index: 26, Role: RoleVCC, Name: "VIN", Voltage: 7},
		Pin{Index: 27, Role: RoleNC, Name: "NC1"},
		Pin{Index: 28, Role: RoleNC, Name: "NC2"},
		Pin{Index: 29, Role: RoleGND, Name: "GND3"},
	)
	return pins
}
