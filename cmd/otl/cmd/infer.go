package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/netlist"
)

var inferOutput string

var inferCmd = &cobra.Command{
	Use:   "infer <assembly.otl>",
	Short: "Infer connections and export the netlist",
	Long: `Infer power, ground, and signal connections from the assembly's
component roles and print the resulting netlist.

Explicit 'connect' statements in the file are merged with the inferred
connections before nets are grouped.

Examples:
  otl infer design.otl
  otl infer design.otl -o netlist.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInfer,
}

func init() {
	rootCmd.AddCommand(inferCmd)

	inferCmd.Flags().StringVarP(&inferOutput, "output", "o", "",
		"write the netlist to a JSON file")
}

func runInfer(cmd *cobra.Command, args []string) error {
	d, err := loadDesign(args[0], true)
	if err != nil {
		return err
	}

	nl := netlist.BuildNetlist(d.Components, d.Connections)
	fmt.Printf("%d connections in %d nets\n", len(d.Connections), nl.NetCount())
	printDiagnostics(d.Diagnostics)

	data, err := nl.ExportJSON()
	if err != nil {
		return err
	}
	if inferOutput == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(inferOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", inferOutput, err)
	}
	fmt.Printf("wrote %s\n", inferOutput)
	return nil
}
