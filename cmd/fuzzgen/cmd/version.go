package cmd

import (
	"github.com/spf13/cobra"

	"github.com/G-Research/fuzzgen/internal/fuzzgenctl"
)

// Print version info and exit.
func versionCmd(app *fuzzgenctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print client version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			return app.Version()
		},
	}
	return cmd
}
