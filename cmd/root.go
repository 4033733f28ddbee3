package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "followban",
	Short: "Maintain follow and ban relationships between channels",
	Long: `followban keeps a graph of channels connected by follow and ban edges.
Every edge is stored on both channels involved, and every command keeps
the two halves in agreement.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
