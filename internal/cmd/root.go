// Package cmd wires the personalens CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for personalens
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personalens",
		Short: "Behavioral persona generation from session logs",
		Long: `Personalens converts raw behavioral event logs into a small set of
interpretable personas plus a month-by-month view of how session
populations drift.

It loads session, action, and user tables, derives a behavioral metric
vector per session, clusters the normalized vectors, names each cluster
from its statistically distinguishing traits, and writes flat JSON
artifacts for dashboard consumption.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewValidateCommand())
	cmd.AddCommand(NewGenerateCommand())

	return cmd
}
