package fuzzergen

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/mattn/go-zglob"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/G-Research/fuzzgen/internal/common/config"
	"github.com/G-Research/fuzzgen/internal/common/generrors"
	"github.com/G-Research/fuzzgen/internal/common/slices"
	"github.com/G-Research/fuzzgen/internal/common/taskname"
)

const defaultNpmCommand = "jstestfuzz"

// DefinitionFile is the content of a fuzzer definitions file.
//
// Example definitions.yaml:
//
//	fuzzers:
//	  - task_name: jstestfuzz_gen
//	    variant: enterprise-rhel-80-64-bit
//	    suite: jstestfuzz
//	    num_files: 10
//	    num_tasks: 5
//	    resmoke_args: --storageEngine=wiredTiger
//	    config_location: https://example.com/generated_config.tgz
type DefinitionFile struct {
	Fuzzers []*FuzzerDefinition `mapstructure:"fuzzers"`
}

// FuzzerDefinition is one fuzzer as written in a definitions file.
// resmoke_args and jstestfuzz_vars may also be given as lists, see config.StringOrListHookFunc.
type FuzzerDefinition struct {
	TaskName            string  `mapstructure:"task_name" validate:"required"`
	Variant             string  `mapstructure:"variant" validate:"required"`
	Suite               string  `mapstructure:"suite" validate:"required"`
	NumFiles            int     `mapstructure:"num_files" validate:"gte=0"`
	NumTasks            int     `mapstructure:"num_tasks" validate:"gte=0"`
	ResmokeArgs         string  `mapstructure:"resmoke_args"`
	NpmCommand          string  `mapstructure:"npm_command"`
	JstestfuzzVars      *string `mapstructure:"jstestfuzz_vars"`
	ContinueOnFailure   bool    `mapstructure:"continue_on_failure"`
	ResmokeJobsMax      int     `mapstructure:"resmoke_jobs_max" validate:"gte=0"`
	ShouldShuffle       bool    `mapstructure:"should_shuffle"`
	TimeoutSecs         int     `mapstructure:"timeout_secs" validate:"gte=0"`
	RequireMultiversion *bool   `mapstructure:"require_multiversion"`
	UseLargeDistro      *bool   `mapstructure:"use_large_distro"`
	LargeDistroName     *string `mapstructure:"large_distro_name"`
	ConfigLocation      string  `mapstructure:"config_location" validate:"required"`
	AddToDisplayTask    *bool   `mapstructure:"add_to_display_task"`
}

// ToParams applies defaults and converts the definition into generation parameters.
func (d *FuzzerDefinition) ToParams() *FuzzerGenTaskParams {
	npmCommand := d.NpmCommand
	if npmCommand == "" {
		npmCommand = defaultNpmCommand
	}
	addToDisplayTask := true
	if d.AddToDisplayTask != nil {
		addToDisplayTask = *d.AddToDisplayTask
	}
	return &FuzzerGenTaskParams{
		TaskName:            taskname.RemoveGenSuffix(d.TaskName),
		Variant:             d.Variant,
		Suite:               d.Suite,
		NumFiles:            d.NumFiles,
		NumTasks:            d.NumTasks,
		ResmokeArgs:         d.ResmokeArgs,
		NpmCommand:          npmCommand,
		JstestfuzzVars:      d.JstestfuzzVars,
		ContinueOnFailure:   d.ContinueOnFailure,
		ResmokeJobsMax:      d.ResmokeJobsMax,
		ShouldShuffle:       d.ShouldShuffle,
		TimeoutSecs:         d.TimeoutSecs,
		RequireMultiversion: d.RequireMultiversion,
		UseLargeDistro:      d.UseLargeDistro,
		LargeDistroName:     d.LargeDistroName,
		ConfigLocation:      d.ConfigLocation,
		AddToDisplayTask:    addToDisplayTask,
	}
}

func validateLargeDistro(sl validator.StructLevel) {
	d := sl.Current().Interface().(FuzzerDefinition)
	if d.UseLargeDistro != nil && *d.UseLargeDistro && (d.LargeDistroName == nil || *d.LargeDistroName == "") {
		sl.ReportError(d.LargeDistroName, "large_distro_name", "LargeDistroName", "required", "")
	}
}

// Validate checks every definition and returns all failures together.
func (f *DefinitionFile) Validate() error {
	if len(f.Fuzzers) == 0 {
		return errors.WithStack(&generrors.ErrInvalidArgument{
			Name:    "fuzzers",
			Value:   0,
			Message: "no fuzzers defined",
		})
	}

	validate := config.NewValidator()
	validate.RegisterStructValidation(validateLargeDistro, FuzzerDefinition{})

	var result *multierror.Error
	seen := make(map[string]int)
	for i, d := range f.Fuzzers {
		if d == nil {
			result = multierror.Append(result, &generrors.ErrInvalidArgument{
				Name:    "fuzzers",
				Value:   i,
				Message: "empty fuzzer definition",
			})
			continue
		}
		key := taskname.RemoveGenSuffix(d.TaskName) + "/" + d.Variant
		if j, ok := seen[key]; ok {
			result = multierror.Append(result, &generrors.ErrInvalidArgument{
				Name:    "task_name",
				Value:   d.TaskName,
				Message: fmt.Sprintf("fuzzers[%d] duplicates fuzzers[%d] on variant %s", i, j, d.Variant),
			})
			continue
		}
		seen[key] = i
		if err := validate.Struct(d); err != nil {
			config.LogValidationErrors(err)
			result = multierror.Append(result, errors.Wrapf(err, "fuzzers[%d] (%s)", i, d.TaskName))
		}
	}
	return result.ErrorOrNil()
}

// Params converts every definition into generation parameters.
func (f *DefinitionFile) Params() []*FuzzerGenTaskParams {
	return slices.Map(f.Fuzzers, func(d *FuzzerDefinition) *FuzzerGenTaskParams { return d.ToParams() })
}

// LoadDefinitionFiles reads every YAML or JSON definitions file matching pattern, which may be a
// plain path or a glob using ** to cross directories. The fuzzers of all matched files are
// validated together, so a fuzzer may not be defined twice for a variant across files.
func LoadDefinitionFiles(pattern string) (*DefinitionFile, error) {
	paths, err := zglob.Glob(pattern)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "error matching definitions files %s", pattern)
	}
	if len(paths) == 0 {
		return nil, errors.WithStack(&generrors.ErrNotFound{Type: "definitions file", Value: pattern})
	}
	sort.Strings(paths)

	files := make([]*DefinitionFile, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			file, err := readDefinitionFile(path)
			if err != nil {
				return err
			}
			log.Debugf("loaded %d fuzzer definitions from %s", len(file.Fuzzers), path)
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &DefinitionFile{}
	for _, file := range files {
		result.Fuzzers = append(result.Fuzzers, file.Fuzzers...)
	}
	if err := result.Validate(); err != nil {
		return nil, errors.WithMessagef(err, "invalid definitions %s", pattern)
	}
	return result, nil
}

func readDefinitionFile(path string) (*DefinitionFile, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "error reading definitions file %s", path)
	}

	file := &DefinitionFile{}
	if err := v.Unmarshal(file, config.CustomHooks...); err != nil {
		return nil, errors.Wrapf(err, "error decoding definitions file %s", path)
	}
	return file, nil
}
