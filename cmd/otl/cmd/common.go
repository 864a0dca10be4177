package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/assembly"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// design is everything a pipeline stage needs, loaded from one .otl file.
type design struct {
	Board       *pcb.Board
	Components  []pcb.Component
	Connections []pcb.Connection
	Diagnostics []netlist.Diagnostic
}

// loadDesign parses an assembly file, expands the component requests, and
// combines the file's explicit connections with inferred ones.
func loadDesign(path string, infer bool) (*design, error) {
	parser, err := assembly.NewParser()
	if err != nil {
		return nil, fmt.Errorf("failed to create parser: %w", err)
	}

	file, err := parser.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	components, unknown := pcb.ExpandAssembly(file.Components())
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown component types: %v", unknown)
	}
	if len(components) == 0 {
		return nil, fmt.Errorf("%s requests no components", path)
	}

	connections, err := file.BindConnections(components)
	if err != nil {
		return nil, err
	}

	d := &design{
		Board:       file.Board(),
		Components:  components,
		Connections: connections,
	}

	if infer {
		inferred, diags := netlist.InferConnections(components)
		d.Connections = append(d.Connections, inferred...)
		d.Diagnostics = diags
	}

	return d, nil
}

// writeJSON marshals v to a file, or to stdout when path is empty.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// printDiagnostics reports skipped pins from connection inference.
func printDiagnostics(diags []netlist.Diagnostic) {
	for _, d := range diags {
		fmt.Printf("  note: %s pin %d: %s\n", d.ComponentType, d.PinIndex, d.Reason)
	}
}
