// Package fuzzergen expands fuzzer definitions into Evergreen sub-tasks.
package fuzzergen

import (
	"github.com/G-Research/fuzzgen/internal/common/slices"
	"github.com/G-Research/fuzzgen/internal/common/taskname"
	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

// Functions defined in the Evergreen project configuration that generated sub-tasks call.
const (
	DoSetupFunc              = "do setup"
	ConfigureApiCredsFunc    = "configure evergreen api credentials"
	DoMultiversionSetupFunc  = "do multiversion setup"
	SetupJstestfuzzFunc      = "setup jstestfuzz"
	RunJstestfuzzFunc        = "run jstestfuzz"
	RunGeneratedTestsFunc    = "run generated tests"
	ArchiveDistTestDebugTask = "archive_dist_test_debug"
)

// FuzzerGenTaskService generates fuzzer tasks. It holds no state and is safe for concurrent use.
type FuzzerGenTaskService struct{}

func NewFuzzerGenTaskService() *FuzzerGenTaskService {
	return &FuzzerGenTaskService{}
}

// GenerateTasks builds one sub-task for every index in [0, params.NumTasks).
func (s *FuzzerGenTaskService) GenerateTasks(params *FuzzerGenTaskParams) *FuzzerTask {
	subTasks := make(map[string]*evergreen.Task, params.NumTasks)
	for i := 0; i < params.NumTasks; i++ {
		task := s.BuildFuzzerSubTask(i, params)
		subTasks[task.Name] = task
	}
	return &FuzzerTask{
		TaskName: params.TaskName,
		SubTasks: subTasks,
	}
}

// BuildFuzzerSubTask builds the sub-task at taskIndex.
func (s *FuzzerGenTaskService) BuildFuzzerSubTask(taskIndex int, params *FuzzerGenTaskParams) *evergreen.Task {
	subTaskName := taskname.NameGeneratedTask(params.TaskName, taskIndex, params.NumTasks, params.Variant)
	multiversion := params.RequiresMultiversion()

	commands := []*evergreen.FunctionCall{
		evergreen.NewFunctionCall(DoSetupFunc),
		when(multiversion, evergreen.NewFunctionCall(ConfigureApiCredsFunc)),
		when(multiversion, evergreen.NewFunctionCall(DoMultiversionSetupFunc)),
		evergreen.NewFunctionCall(SetupJstestfuzzFunc),
		evergreen.NewFunctionCallWithVars(RunJstestfuzzFunc, params.JstestfuzzParams()),
		evergreen.NewFunctionCallWithVars(RunGeneratedTestsFunc, params.RunTestsParams()),
	}
	commands = slices.Filter(commands, func(c *evergreen.FunctionCall) bool { return c != nil })

	return evergreen.NewTask(subTaskName, commands, evergreen.TaskDependency{Name: ArchiveDistTestDebugTask})
}

// when returns c if cond holds and nil otherwise.
func when(cond bool, c *evergreen.FunctionCall) *evergreen.FunctionCall {
	if cond {
		return c
	}
	return nil
}
