package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/drc"
)

var (
	pipelineOutput  string
	pipelineRules   string
	pipelineNoInfer bool
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline <assembly.otl>",
	Short: "Place, route, and check in one run",
	Long: `Run the full layout pipeline: generate and rank placements, route
the best candidate, and check the result against the rule set.

Examples:
  otl pipeline design.otl -o project.json
  otl pipeline design.otl --rules strict.yaml --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)

	pipelineCmd.Flags().StringVarP(&pipelineOutput, "output", "o", "",
		"write the routed project to a JSON file")
	pipelineCmd.Flags().StringVar(&pipelineRules, "rules", "",
		"rule-set YAML file (default: built-in rules)")
	pipelineCmd.Flags().BoolVar(&pipelineNoInfer, "no-infer", false,
		"use only the file's explicit connections")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	rules := drc.DefaultRuleSet()
	if pipelineRules != "" {
		var err error
		rules, err = drc.LoadRuleSet(pipelineRules)
		if err != nil {
			return err
		}
	}

	d, err := loadDesign(args[0], !pipelineNoInfer)
	if err != nil {
		return err
	}
	if verbose {
		printDiagnostics(d.Diagnostics)
	}

	project, result, err := placeAndRoute(d)
	if err != nil {
		return err
	}
	fmt.Printf("routed %d/%d connections (%d via fallback)\n",
		len(result.Routes), len(d.Connections), result.Fallbacks)

	violations := drc.Check(project, rules)
	reportViolations(violations)

	if pipelineOutput != "" {
		if err := writeJSON(pipelineOutput, project); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pipelineOutput)
	}
	return nil
}
