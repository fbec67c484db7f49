// Package cmd implements the esgctl command tree.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "esgctl",
	Short: "Utilities for the AfricaESG backend",
	Long: `esgctl runs pieces of the AfricaESG backend from the command line,
starting with local invoice extraction for debugging heuristics without a
running server.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
