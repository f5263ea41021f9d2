package fuzzergen

import (
	"fmt"

	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

// FuzzerTask is the result of expanding one fuzzer definition.
type FuzzerTask struct {
	// Name of the fuzzer task that was generated.
	TaskName string
	// Sub-tasks composing the fuzzer task, keyed by name. There is no ordering between them.
	SubTasks map[string]*evergreen.Task
}

// SubTaskNames returns the names of all sub-tasks in no particular order.
func (f *FuzzerTask) SubTaskNames() []string {
	names := make([]string, 0, len(f.SubTasks))
	for name := range f.SubTasks {
		names = append(names, name)
	}
	return names
}

// FuzzerGenTaskParams describes how the sub-tasks of one fuzzer should be generated.
// Pointer fields are optional; nil means unset and is resolved where the field is used.
type FuzzerGenTaskParams struct {
	// Name of the task being generated.
	TaskName string
	// Name of the build variant being generated on.
	Variant string
	// Resmoke suite for the generated tests.
	Suite string
	// Number of javascript files the fuzzer should generate.
	NumFiles int
	// Number of sub-tasks to generate.
	NumTasks int
	// Arguments to pass to the resmoke invocation.
	ResmokeArgs string
	// Command used to run the fuzzer.
	NpmCommand string
	// Extra arguments to pass to the fuzzer invocation.
	JstestfuzzVars *string
	// Whether generated tests continue running after hitting an error.
	ContinueOnFailure bool
	// Maximum number of jobs resmoke should run in parallel.
	ResmokeJobsMax int
	// Whether tests run out of order.
	ShouldShuffle bool
	// Timeout before test execution is considered hung.
	TimeoutSecs int
	// Whether multiversion binaries must be downloaded.
	RequireMultiversion *bool
	// Whether the tests run on a large distro.
	UseLargeDistro *bool
	// Name of the large distro, required if UseLargeDistro is set.
	LargeDistroName *string
	// Location of the generated task configuration.
	ConfigLocation string
	// Whether generated tasks are grouped in a display task.
	AddToDisplayTask bool
}

// RequiresMultiversion resolves the optional flag, defaulting to false.
func (p *FuzzerGenTaskParams) RequiresMultiversion() bool {
	return p.RequireMultiversion != nil && *p.RequireMultiversion
}

// UsesLargeDistro resolves the optional flag, defaulting to false.
func (p *FuzzerGenTaskParams) UsesLargeDistro() bool {
	return p.UseLargeDistro != nil && *p.UseLargeDistro
}

// JstestfuzzParams builds the vars passed to the fuzzer invocation.
func (p *FuzzerGenTaskParams) JstestfuzzParams() map[string]any {
	extraVars := ""
	if p.JstestfuzzVars != nil {
		extraVars = *p.JstestfuzzVars
	}
	return map[string]any{
		"jstestfuzz_vars": fmt.Sprintf("--numGeneratedFiles %d %s", p.NumFiles, extraVars),
		"npm_command":     p.NpmCommand,
	}
}

// RunTestsParams builds the vars passed to the generated test execution.
// require_multiversion is passed through unresolved, so an unset flag is emitted as null.
func (p *FuzzerGenTaskParams) RunTestsParams() map[string]any {
	var requireMultiversion any
	if p.RequireMultiversion != nil {
		requireMultiversion = *p.RequireMultiversion
	}
	return map[string]any{
		"continue_on_failure":      p.ContinueOnFailure,
		"resmoke_args":             fmt.Sprintf("--suites=%s %s", p.Suite, p.ResmokeArgs),
		"resmoke_jobs_max":         p.ResmokeJobsMax,
		"should_shuffle":           p.ShouldShuffle,
		"require_multiversion":     requireMultiversion,
		"timeout_secs":             p.TimeoutSecs,
		"task":                     p.TaskName,
		"gen_task_config_location": p.ConfigLocation,
	}
}
