// Package fuzzgenctl implements the fuzzgen command-line application.
package fuzzgenctl

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/G-Research/fuzzgen/internal/common/slices"
	"github.com/G-Research/fuzzgen/internal/fuzzergen"
	"github.com/G-Research/fuzzgen/internal/fuzzgenctl/build"
	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

// StdoutPath is the output path that writes the generated configuration to App.Out.
const StdoutPath = "-"

type App struct {
	// Parameters passed to the CLI by the user.
	Params *Params
	// Out is used to write the output. Defaults to standard out,
	// but can be overridden in tests to make assertions on the applications's output.
	Out io.Writer
}

// Params struct holds all user-customizable parameters.
// Using a single struct for all CLI commands ensures that all flags are distinct
// and that they can be provided either dynamically on a command line, or
// statically in a config file that's reused between command runs.
type Params struct {
	// Path of the fuzzer definitions file, or a glob matching several of them.
	DefinitionsPath string
	// Where to write the generated configuration, StdoutPath for App.Out.
	OutputPath string
	// Encoding of the generated configuration.
	Format evergreen.Format
}

// New instantiates an App with default parameters, including standard output.
func New() *App {
	return &App{
		Params: &Params{
			OutputPath: StdoutPath,
			Format:     evergreen.FormatJson,
		},
		Out: os.Stdout,
	}
}

// Version prints build information (e.g., current git commit) to the app output.
func (a *App) Version() error {
	w := tabwriter.NewWriter(a.Out, 1, 1, 1, ' ', 0)
	defer w.Flush()
	fmt.Fprintf(w, "Version:\t%s\n", build.ReleaseVersion)
	fmt.Fprintf(w, "Commit:\t%s\n", build.GitCommit)
	fmt.Fprintf(w, "Go version:\t%s\n", build.GoVersion)
	fmt.Fprintf(w, "Built:\t%s\n", build.BuildTime)
	return nil
}

// Generate expands every fuzzer in the definitions file and writes the resulting Evergreen configuration.
// Nothing is written unless every fuzzer could be generated.
func (a *App) Generate() error {
	if a.Params.DefinitionsPath == "" {
		return errors.New("[fuzzgenctl.Generate] no definitions file provided")
	}
	file, err := fuzzergen.LoadDefinitionFiles(a.Params.DefinitionsPath)
	if err != nil {
		return errors.WithMessage(err, "[fuzzgenctl.Generate] error loading definitions")
	}

	allParams := file.Params()
	paramsByVariant := slices.GroupByFunc(allParams, func(p *fuzzergen.FuzzerGenTaskParams) string { return p.Variant })

	builder := fuzzergen.NewEvgConfigBuilder(fuzzergen.NewFuzzerGenTaskService())
	numTasks := 0
	for _, params := range allParams {
		fuzzerTask, err := builder.GenerateFuzzer(params)
		if err != nil {
			return errors.WithMessagef(err, "[fuzzgenctl.Generate] error generating %s", params.TaskName)
		}
		numTasks += len(fuzzerTask.SubTasks)
	}
	configuration := builder.Build()

	b, err := evergreen.Marshal(configuration, a.Params.Format)
	if err != nil {
		return errors.WithMessage(err, "[fuzzgenctl.Generate] error encoding configuration")
	}
	if err := a.write(b); err != nil {
		return err
	}

	variants := slices.Map(configuration.BuildVariants, func(v *evergreen.Variant) string {
		return fmt.Sprintf("%s (%d fuzzers)", v.Name, len(paramsByVariant[v.Name]))
	})
	log.Infof("Generated %d tasks from %d fuzzers on %s", numTasks, len(allParams), strings.Join(variants, ", "))
	return nil
}

func (a *App) write(b []byte) error {
	if a.Params.OutputPath == StdoutPath || a.Params.OutputPath == "" {
		if _, err := a.Out.Write(b); err != nil {
			return errors.Wrap(err, "[fuzzgenctl.Generate] error writing configuration")
		}
		return nil
	}
	if err := os.WriteFile(a.Params.OutputPath, b, 0o644); err != nil {
		return errors.Wrapf(err, "[fuzzgenctl.Generate] error writing configuration to %s", a.Params.OutputPath)
	}
	return nil
}
