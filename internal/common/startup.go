package common

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/G-Research/fuzzgen/internal/common/logging"
)

// ConfigureCommandLineLogging sets up logrus for command-line tools: bare messages on stderr, so that
// stdout is left for the tool's actual output.
func ConfigureCommandLineLogging() {
	commandLineFormatter := new(logging.CommandLineFormatter)
	log.SetFormatter(commandLineFormatter)
	log.SetOutput(os.Stderr)
}

// SetVerbose switches the global logger to debug level.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
}

// LoadCommandlineConfig merges the given config file into viper's global config. If cfgFile is empty,
// $HOME/<defaultName>.yaml is read if it exists. Environment variables named <ENVPREFIX>_<KEY> override
// values from the file.
func LoadCommandlineConfig(cfgFile string, defaultName string, envPrefix string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(defaultName)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if err := viper.MergeInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			// No default config is fine
		default:
			return errors.Wrapf(err, "error reading config file %s", viper.ConfigFileUsed())
		}
	} else {
		log.Debugf("Using config file %s", viper.ConfigFileUsed())
	}
	return nil
}
