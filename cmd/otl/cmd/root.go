package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose bool
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "otl",
	Short: "OpenTraceLayout - component placement, routing, and rule checking",
	Long: `OpenTraceLayout (otl) lays out circuit boards from an assembly
description: it places the requested components on the board outline,
routes copper-tape channels between connected pads, and validates the
result against manufacturing design rules.

Examples:
  otl place design.otl                  # Rank candidate placements
  otl route design.otl -o project.json  # Place and route the best candidate
  otl check project.json                # Design-rule check a routed project
  otl pipeline design.otl --seed 42     # Full run, reproducible`,
	Version: "0.3.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed for reproducible layouts")
}

// newRNG builds the injected random source all stochastic stages share.
func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// newLogger returns a development logger at --verbose, otherwise a nop.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
