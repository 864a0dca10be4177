package catalog

import (
	"encoding/json"
	"sort"
)

// PinRole classifies the electrical function of a pin.
type PinRole int

const (
	RoleVCC PinRole = iota
	RoleGND
	RoleSignal
	RoleData
	RoleClock
	RoleEnable
	RoleInput
	RoleOutput
	RoleNC
)

func (r PinRole) String() string {
	switch r {
	case RoleVCC:
		return "vcc"
	case RoleGND:
		return "gnd"
	case RoleSignal:
		return "signal"
	case RoleData:
		return "data"
	case RoleClock:
		return "clock"
	case RoleEnable:
		return "enable"
	case RoleInput:
		return "input"
	case RoleOutput:
		return "output"
	case RoleNC:
		return "nc"
	default:
		return "unknown"
	}
}

// IsPower returns true for supply pins.
func (r PinRole) IsPower() bool {
	return r == RoleVCC
}

// IsGround returns true for ground pins.
func (r PinRole) IsGround() bool {
	return r == RoleGND
}

// MarshalJSON implements json.Marshaler.
func (r PinRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *PinRole) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "vcc":
		*r = RoleVCC
	case "gnd":
		*r = RoleGND
	case "signal":
		*r = RoleSignal
	case "data":
		*r = RoleData
	case "clock":
		*r = RoleClock
	case "enable":
		*r = RoleEnable
	case "input":
		*r = RoleInput
	case "output":
		*r = RoleOutput
	case "nc":
		*r = RoleNC
	default:
		*r = RoleSignal
	}
	return nil
}

// Pin describes one pin of a pinout: its pad index, role, display name,
// and nominal voltage for supply pins (zero when not applicable).
type Pin struct {
	Index   int     `json:"index"`
	Role    PinRole `json:"role"`
	Name    string  `json:"name"`
	Voltage float64 `json:"voltage,omitempty"`
}

// Pinout is the immutable pin-role template for a component type. It is
// independent of the footprint table: a pinout may list more or fewer pins
// than the footprint has pads.
type Pinout struct {
	Type string `json:"type"`
	Pins []Pin  `json:"pins"`
}

// PinsByRole returns the pins matching a role, in declaration order.
func (p Pinout) PinsByRole(role PinRole) []Pin {
	var out []Pin
	for _, pin := range p.Pins {
		if pin.Role == role {
			out = append(out, pin)
		}
	}
	return out
}

// GetPinout returns the pinout template for a component type. Lookups are
// pure: repeated calls return structurally identical copies.
func GetPinout(componentType string) (Pinout, bool) {
	po, ok := pinouts[componentType]
	if !ok {
		return Pinout{}, false
	}
	out := Pinout{Type: po.Type}
	out.Pins = append([]Pin(nil), po.Pins...)
	return out, true
}

// PinoutTypes returns the sorted list of known pinout type identifiers.
func PinoutTypes() []string {
	return sortedKeys(pinouts)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
