package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/placement"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/router"
)

var (
	routeOutput  string
	routeNoInfer bool
)

var routeCmd = &cobra.Command{
	Use:   "route <assembly.otl>",
	Short: "Place the assembly and route its connections",
	Long: `Place the assembly's components, pick the best-scoring candidate,
and route every connection as a copper-tape channel.

Routing is obstacle-aware A* over a routing grid with Manhattan and
direct-line fallbacks, so every connection yields a route; run
'otl check' afterwards to find the rules any fallback route breaks.

Examples:
  otl route design.otl
  otl route design.otl -o project.json`,
	Args: cobra.ExactArgs(1),
	RunE: runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)

	routeCmd.Flags().StringVarP(&routeOutput, "output", "o", "",
		"write the routed project to a JSON file")
	routeCmd.Flags().BoolVar(&routeNoInfer, "no-infer", false,
		"use only the file's explicit connections")
}

func runRoute(cmd *cobra.Command, args []string) error {
	d, err := loadDesign(args[0], !routeNoInfer)
	if err != nil {
		return err
	}

	project, result, err := placeAndRoute(d)
	if err != nil {
		return err
	}

	fmt.Printf("routed %d/%d connections (%d via fallback)\n",
		len(result.Routes), len(d.Connections), result.Fallbacks)
	for _, s := range result.Skipped {
		fmt.Printf("  skipped %s: %s\n", s.Connection.NetName, s.Reason)
	}

	if err := writeJSON(routeOutput, project); err != nil {
		return err
	}
	if routeOutput != "" {
		fmt.Printf("wrote %s\n", routeOutput)
	}
	return nil
}

// placeAndRoute runs placement, picks the best arrangement, and routes
// it, returning the project snapshot for checking or export.
func placeAndRoute(d *design) (*pcb.Project, *router.Result, error) {
	generator := placement.NewGenerator(placement.DefaultOptimizerConfig(), newRNG(), newLogger())
	arrangements := generator.Generate(d.Components, d.Connections, d.Board)
	if len(arrangements) == 0 {
		return nil, nil, fmt.Errorf("no arrangement produced")
	}
	best := arrangements[0]

	r := router.New(router.DefaultConfig(), newLogger())
	result := r.Route(best, d.Connections, d.Board)
	best.Routes = result.Routes

	project := &pcb.Project{
		Board:      d.Board,
		Components: best.Components,
		Routes:     result.Routes,
	}
	return project, &result, nil
}
