package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/G-Research/fuzzgen/internal/fuzzgenctl"
	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

const (
	definitionsFlag = "definitions"
	outputFlag      = "output"
	formatFlag      = "format"
)

func generateCmd(app *fuzzgenctl.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Evergreen tasks for the fuzzers in a definitions file",
		Long: `Generate Evergreen tasks for the fuzzers in a definitions file.

Each fuzzer is expanded into num_tasks sub-tasks which are added to its build variant and,
unless add_to_display_task is false, grouped in a display task named after the fuzzer.

Example definitions.yaml:

fuzzers:
  - task_name: jstestfuzz_gen
    variant: enterprise-rhel-80-64-bit
    suite: jstestfuzz
    num_files: 10
    num_tasks: 5
    resmoke_args: --storageEngine=wiredTiger
    config_location: https://example.com/generated_config.tgz
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return initParams(cmd, app)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Generate()
		},
	}

	cmd.Flags().StringP(definitionsFlag, "d", "", "Path to the fuzzer definitions file (yaml or json), or a glob such as fuzzers/**/*.yaml")
	cmd.Flags().StringP(outputFlag, "o", fuzzgenctl.StdoutPath, "Path to write the generated configuration to, - for stdout")
	cmd.Flags().StringP(formatFlag, "f", string(evergreen.FormatJson), "Output format, json or yaml")

	return cmd
}

// initParams fills app.Params from flags, falling back to values from the config file.
func initParams(cmd *cobra.Command, app *fuzzgenctl.App) error {
	for _, name := range []string{definitionsFlag, outputFlag, formatFlag} {
		if err := viper.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return err
		}
	}

	format, err := evergreen.ParseFormat(viper.GetString(formatFlag))
	if err != nil {
		return err
	}
	app.Params.DefinitionsPath = viper.GetString(definitionsFlag)
	app.Params.OutputPath = viper.GetString(outputFlag)
	app.Params.Format = format
	app.Out = cmd.OutOrStdout()
	return nil
}
