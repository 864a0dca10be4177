package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/drc"
	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

var (
	checkRules  string
	checkOutput string
)

var checkCmd = &cobra.Command{
	Use:   "check <project.json | assembly.otl>",
	Short: "Run the design-rule checker",
	Long: `Check a routed project against manufacturability rules.

Accepts either a routed project JSON (as written by 'otl route -o') or
an assembly file, in which case placement and routing run first.

Examples:
  otl check project.json
  otl check design.otl --rules strict.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkRules, "rules", "",
		"rule-set YAML file (default: built-in rules)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "",
		"write the violation report to a JSON file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	rules := drc.DefaultRuleSet()
	if checkRules != "" {
		var err error
		rules, err = drc.LoadRuleSet(checkRules)
		if err != nil {
			return err
		}
	}

	project, err := loadProject(args[0])
	if err != nil {
		return err
	}

	violations := drc.Check(project, rules)
	reportViolations(violations)

	if checkOutput != "" {
		if err := writeJSON(checkOutput, violations); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", checkOutput)
	}

	for _, v := range violations {
		if v.Severity == drc.SeverityError {
			return fmt.Errorf("%d rule violations", len(violations))
		}
	}
	return nil
}

// loadProject reads a routed project snapshot, either directly from a
// JSON file or by placing and routing an assembly description.
func loadProject(path string) (*pcb.Project, error) {
	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var project pcb.Project
		if err := json.Unmarshal(data, &project); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		if project.Board == nil {
			return nil, fmt.Errorf("%s has no board", path)
		}
		return &project, nil
	}

	d, err := loadDesign(path, true)
	if err != nil {
		return nil, err
	}
	project, _, err := placeAndRoute(d)
	return project, err
}

func reportViolations(violations []drc.Violation) {
	if len(violations) == 0 {
		fmt.Println("no rule violations")
		return
	}
	fmt.Printf("%d rule violations:\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  %-7s %-18s (%.1f, %.1f)  %s\n",
			v.Severity, v.Type, v.Position.X, v.Position.Y, v.Message)
	}
}
