package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/G-Research/fuzzgen/internal/common"
	"github.com/G-Research/fuzzgen/internal/common/logging"
	"github.com/G-Research/fuzzgen/internal/fuzzgenctl"
)

const (
	configFlag  = "config"
	verboseFlag = "verbose"
)

// RootCmd is the root Cobra command that gets called from the main func.
// All other sub-commands should be registered here.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuzzgen",
		Short: "fuzzgen generates Evergreen tasks for fuzzer test suites.",
		Long: `fuzzgen generates Evergreen tasks for fuzzer test suites.

Persistent config can be saved in a config file so it doesn't have to be specified every command.

Example structure:
definitions: ./etc/fuzzers.yaml
format: json
output: generated_fuzzers.json

The location of this file can be passed in using the --config argument.
If not provided, $HOME/.fuzzgen.yaml is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			verbose, err := cmd.Flags().GetBool(verboseFlag)
			if err != nil {
				return err
			}
			common.SetVerbose(verbose)
			cfgFile, err := cmd.Flags().GetString(configFlag)
			if err != nil {
				return err
			}
			return common.LoadCommandlineConfig(cfgFile, ".fuzzgen", "fuzzgen")
		},
	}

	cmd.PersistentFlags().String(configFlag, "", "config file (default is $HOME/.fuzzgen.yaml)")
	cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "enable debug logging")

	cmd.AddCommand(
		versionCmd(fuzzgenctl.New()),
		generateCmd(fuzzgenctl.New()),
	)

	return cmd
}

// Execute runs the root command, logging any error it returns.
func Execute() error {
	err := RootCmd().Execute()
	if err != nil {
		logError(err)
	}
	return err
}

func logError(err error) {
	if log.IsLevelEnabled(log.DebugLevel) {
		logging.WithStacktrace(log.NewEntry(log.StandardLogger()), err).Error(err)
		return
	}
	log.Error(err)
}
