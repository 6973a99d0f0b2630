// Package cli holds the codedoc command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the codedoc root command.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "codedoc",
		Short: "Generate developer documentation for a GitHub source file",
		Long: `codedoc fetches a single source file from GitHub, asks an LLM to write
developer documentation for it and returns the result.

Run "codedoc serve" to start the HTTP gateway, "codedoc ui" for the terminal
submission form, or "codedoc generate <url>" for a one-off run.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"HCL config file (default: ./codedoc.hcl when present)")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newGenerateCmd(&configPath))
	rootCmd.AddCommand(newUICmd())

	return rootCmd
}
