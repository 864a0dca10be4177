package drc

import "github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"

// Severity classifies how serious a violation is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ViolationType identifies which rule was broken.
type ViolationType string

const (
	ViolationSpacing          ViolationType = "spacing"
	ViolationWall             ViolationType = "wall"
	ViolationBendRadius       ViolationType = "bend_radius"
	ViolationPadClearance     ViolationType = "pad_clearance"
	ViolationOverhang         ViolationType = "overhang"
	ViolationHoleCollision    ViolationType = "hole_collision"
	ViolationUnconnectedVia   ViolationType = "unconnected_via"
	ViolationUnconnectedPad   ViolationType = "unconnected_pad"
	ViolationPowerPath        ViolationType = "power_path"
	ViolationComponentOverlap ViolationType = "component_overlap"
)

// Violation is one broken design rule, anchored to a board position.
// Violations are purely informational; nothing in the pipeline consumes
// them automatically.
type Violation struct {
	Type     ViolationType  `json:"type"`
	Message  string         `json:"message"`
	Position geometry.Point `json:"position"`
	Severity Severity       `json:"severity"`
}
