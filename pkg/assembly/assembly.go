package assembly

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Board converts the file's board statement into a board, defaulting to
// 100x60x3 mm when the file declares none.
func (f *File) Board() *pcb.Board {
	stmt := f.BoardStmtOf()
	if stmt == nil {
		return pcb.NewRectangularBoard(100, 60, 3)
	}

	thickness := 3.0
	if stmt.Thickness != nil {
		thickness = *stmt.Thickness
	}
	board := pcb.NewRectangularBoard(stmt.Width, stmt.Height, thickness)

	for _, h := range stmt.Holes {
		board.Features = append(board.Features, pcb.MountFeature{
			Position: geometry.Point{X: h.X, Y: h.Y},
			Diameter: h.Diameter,
		})
	}
	return board
}

// Components converts the file's use statements into component requests.
func (f *File) Components() []pcb.AssemblyComponent {
	var out []pcb.AssemblyComponent
	for _, use := range f.UseStmts() {
		out = append(out, pcb.AssemblyComponent{
			Type:     use.Type,
			Quantity: use.Quantity,
			Role:     use.Role,
		})
	}
	return out
}

// BindConnections resolves the file's explicit connect statements against
// expanded component instances. References to missing instances or pads
// are hard errors at this boundary; they are never silently dropped.
func (f *File) BindConnections(components []pcb.Component) ([]pcb.Connection, error) {
	// Instances of each type, in expansion order.
	byType := make(map[string][]*pcb.Component)
	for i := range components {
		byType[components[i].Type] = append(byType[components[i].Type], &components[i])
	}

	resolve := func(spec PadSpec) (pcb.PadRef, error) {
		instances := byType[spec.Type]
		if spec.Instance < 0 || spec.Instance >= len(instances) {
			return pcb.PadRef{}, fmt.Errorf("assembly: no instance %s[%d] (have %d)",
				spec.Type, spec.Instance, len(instances))
		}
		comp := instances[spec.Instance]
		if spec.Pad < 0 || spec.Pad >= len(comp.Pads) {
			return pcb.PadRef{}, fmt.Errorf("assembly: %s[%d] has no pad %d (%d pads)",
				spec.Type, spec.Instance, spec.Pad, len(comp.Pads))
		}
		return pcb.PadRef{ComponentID: comp.ID, PadIndex: spec.Pad}, nil
	}

	var out []pcb.Connection
	for _, stmt := range f.ConnectStmts() {
		from, err := resolve(stmt.From)
		if err != nil {
			return nil, err
		}
		to, err := resolve(stmt.To)
		if err != nil {
			return nil, err
		}

		net := stmt.Net
		if net == "" {
			net = fmt.Sprintf("%s%d-%s%d", stmt.From.Type, stmt.From.Instance, stmt.To.Type, stmt.To.Instance)
		}

		out = append(out, pcb.Connection{
			ID:       uuid.NewString(),
			From:     from,
			To:       to,
			NetName:  net,
			IsPower:  net == "VCC",
			IsGround: net == "GND",
		})
	}
	return out, nil
}
