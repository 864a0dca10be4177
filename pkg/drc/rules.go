// Package drc validates a finished layout against manufacturing and
// electrical design rules. Checking is stateless: a project snapshot and
// a rule set go in, an ordered violation list comes out. Violations are
// data, never errors; the pipeline does not abort on them.
package drc

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleSet is the numeric design-rule configuration. All values are
// millimeters.
type RuleSet struct {
	MinSpacing      float64 `yaml:"minSpacing" json:"minSpacing"`           // route-to-route centerline spacing
	MinWall         float64 `yaml:"minWall" json:"minWall"`                 // material left between channel walls
	NozzleWidth     float64 `yaml:"nozzleWidth" json:"nozzleWidth"`         // printer nozzle diameter
	LayerHeight     float64 `yaml:"layerHeight" json:"layerHeight"`         // print layer height
	MinBendRadius   float64 `yaml:"minBendRadius" json:"minBendRadius"`     // tightest tape bend
	MinPadClearance float64 `yaml:"minPadClearance" json:"minPadClearance"` // pad to foreign route
}

// DefaultRuleSet returns rules suited to 5 mm copper tape on an FDM
// printed board.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		MinSpacing:      5.0,
		MinWall:         1.2,
		NozzleWidth:     0.4,
		LayerHeight:     0.2,
		MinBendRadius:   2.0,
		MinPadClearance: 1.0,
	}
}

// Validate replaces non-positive values with defaults.
func (r *RuleSet) Validate() {
	def := DefaultRuleSet()
	if r.MinSpacing <= 0 {
		r.MinSpacing = def.MinSpacing
	}
	if r.MinWall <= 0 {
		r.MinWall = def.MinWall
	}
	if r.NozzleWidth <= 0 {
		r.NozzleWidth = def.NozzleWidth
	}
	if r.LayerHeight <= 0 {
		r.LayerHeight = def.LayerHeight
	}
	if r.MinBendRadius <= 0 {
		r.MinBendRadius = def.MinBendRadius
	}
	if r.MinPadClearance <= 0 {
		r.MinPadClearance = def.MinPadClearance
	}
}

// LoadRuleSet reads a rule set from a YAML file and validates it.
func LoadRuleSet(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("drc: read rules: %w", err)
	}

	rules := DefaultRuleSet()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("drc: parse rules: %w", err)
	}
	rules.Validate()
	return rules, nil
}
