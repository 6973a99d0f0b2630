package cli

import (
	"github.com/spf13/cobra"

	"codedoc/internal/infrastructure/gatewayclient"
	"codedoc/internal/ui"
)

func newUICmd() *cobra.Command {
	var gateway string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal submission form",
		Long: `Open an interactive form that submits a GitHub file URL to a running
gateway and shows the generated documentation in an editable pane.

Keys: enter submits, tab switches between the URL and the editor,
ctrl+t toggles the theme, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), gatewayclient.New(gateway, nil))
		},
	}

	cmd.Flags().StringVar(&gateway, "gateway", gatewayclient.DefaultBaseURL, "Base URL of the codedoc gateway")

	return cmd
}
