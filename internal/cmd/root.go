package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for seqcheck
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seqcheck",
		Short: "Scan directories for file sequences with missing files",
		Long: `Seqcheck scans directories that contain numbered file sequences
(e.g. image.001.png ... image.010.png) and reports which members
of each sequence are missing.

It is built for media and VFX pipelines that need to validate frame
sequences before rendering or delivery.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
