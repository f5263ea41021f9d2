package fuzzergen

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/G-Research/fuzzgen/internal/common/generrors"
	"github.com/G-Research/fuzzgen/internal/common/slices"
	"github.com/G-Research/fuzzgen/internal/common/taskname"
	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

// EvgConfigBuilder accumulates generated fuzzer tasks into a single Evergreen configuration.
// It is not safe for concurrent use.
type EvgConfigBuilder struct {
	service       *FuzzerGenTaskService
	configuration *evergreen.Configuration
}

func NewEvgConfigBuilder(service *FuzzerGenTaskService) *EvgConfigBuilder {
	return &EvgConfigBuilder{
		service:       service,
		configuration: &evergreen.Configuration{},
	}
}

// GenerateFuzzer generates the sub-tasks for params and adds them to the build variant params.Variant.
// The configuration is left unchanged if any sub-task name has already been generated.
func (b *EvgConfigBuilder) GenerateFuzzer(params *FuzzerGenTaskParams) (*FuzzerTask, error) {
	distros, err := distrosFor(params)
	if err != nil {
		return nil, err
	}

	fuzzerTask := b.service.GenerateTasks(params)
	subTaskNames := fuzzerTask.SubTaskNames()
	for _, name := range subTaskNames {
		if b.configuration.Task(name) != nil {
			return nil, errors.WithStack(&generrors.ErrInvalidArgument{
				Name:    "task_name",
				Value:   name,
				Message: "a task with this name has already been generated",
			})
		}
	}

	b.configuration.AddTasks(fuzzerTask.SubTasks)
	variant := b.configuration.Variant(params.Variant)
	variant.AddTasks(subTaskNames, distros)
	if params.AddToDisplayTask {
		displayTask := variant.DisplayTask(fuzzerTask.TaskName)
		displayTask.ExecutionTasks = append(displayTask.ExecutionTasks, subTaskNames...)
		displayTask.ExecutionTasks = slices.Unique(append(displayTask.ExecutionTasks, taskname.GenTaskName(fuzzerTask.TaskName)))
	}

	log.WithFields(log.Fields{
		"task":    fuzzerTask.TaskName,
		"variant": params.Variant,
		"tasks":   len(subTaskNames),
	}).Debug("generated fuzzer")
	return fuzzerTask, nil
}

// Build returns the accumulated configuration, ordered by name.
func (b *EvgConfigBuilder) Build() *evergreen.Configuration {
	return b.configuration.Sorted()
}

func distrosFor(params *FuzzerGenTaskParams) ([]string, error) {
	if !params.UsesLargeDistro() {
		return nil, nil
	}
	if params.LargeDistroName == nil || *params.LargeDistroName == "" {
		return nil, errors.WithStack(&generrors.ErrInvalidArgument{
			Name:    "large_distro_name",
			Value:   params.TaskName,
			Message: "use_large_distro is set but no large distro is configured for the build variant",
		})
	}
	return []string{*params.LargeDistroName}, nil
}
