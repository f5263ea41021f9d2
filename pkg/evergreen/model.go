// Package evergreen models the subset of Evergreen project configuration produced by task generation:
// tasks built from function calls, build variants and display tasks. The JSON field names follow
// Evergreen's generate.tasks format.
package evergreen

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// FunctionCall invokes a function defined in the project configuration by name.
// Vars is omitted for plain calls.
type FunctionCall struct {
	Func string         `json:"func"`
	Vars map[string]any `json:"vars,omitempty"`
}

func NewFunctionCall(name string) *FunctionCall {
	return &FunctionCall{Func: name}
}

func NewFunctionCallWithVars(name string, vars map[string]any) *FunctionCall {
	return &FunctionCall{Func: name, Vars: vars}
}

// TaskDependency references a task that must complete first.
// An empty Variant means the same build variant as the dependent task.
type TaskDependency struct {
	Name    string `json:"name"`
	Variant string `json:"variant,omitempty"`
}

type Task struct {
	Name      string           `json:"name"`
	Commands  []*FunctionCall  `json:"commands"`
	DependsOn []TaskDependency `json:"depends_on,omitempty"`
}

func NewTask(name string, commands []*FunctionCall, dependencies ...TaskDependency) *Task {
	return &Task{
		Name:      name,
		Commands:  commands,
		DependsOn: dependencies,
	}
}

// FunctionNames returns the names of the functions the task calls, in call order.
func (t *Task) FunctionNames() []string {
	names := make([]string, len(t.Commands))
	for i, c := range t.Commands {
		names[i] = c.Func
	}
	return names
}

// Function returns the first call to the named function, or nil if the task never calls it.
func (t *Task) Function(name string) *FunctionCall {
	for _, c := range t.Commands {
		if c.Func == name {
			return c
		}
	}
	return nil
}

// DisplayTask groups execution tasks under a single entry in the Evergreen UI.
type DisplayTask struct {
	Name           string   `json:"name"`
	ExecutionTasks []string `json:"execution_tasks"`
}

// TaskSpec adds a task to a build variant, optionally pinned to specific distros.
type TaskSpec struct {
	Name    string   `json:"name"`
	Distros []string `json:"distros,omitempty"`
}

type Variant struct {
	Name         string         `json:"name"`
	Tasks        []TaskSpec     `json:"tasks,omitempty"`
	DisplayTasks []*DisplayTask `json:"display_tasks,omitempty"`
}

// AddTasks adds the named tasks to the variant. distros may be nil to run on the variant's default distros.
func (v *Variant) AddTasks(names []string, distros []string) {
	for _, name := range names {
		v.Tasks = append(v.Tasks, TaskSpec{Name: name, Distros: distros})
	}
}

// DisplayTask returns the display task with the given name, creating it if necessary.
func (v *Variant) DisplayTask(name string) *DisplayTask {
	for _, dt := range v.DisplayTasks {
		if dt.Name == name {
			return dt
		}
	}
	dt := &DisplayTask{Name: name}
	v.DisplayTasks = append(v.DisplayTasks, dt)
	return dt
}

// Configuration is the document handed to Evergreen's generate.tasks command.
type Configuration struct {
	Tasks         []*Task    `json:"tasks,omitempty"`
	BuildVariants []*Variant `json:"buildvariants,omitempty"`
}

// Variant returns the build variant with the given name, creating it if necessary.
func (c *Configuration) Variant(name string) *Variant {
	for _, v := range c.BuildVariants {
		if v.Name == name {
			return v
		}
	}
	v := &Variant{Name: name}
	c.BuildVariants = append(c.BuildVariants, v)
	return v
}

// Task returns the task with the given name, or nil if the configuration has no such task.
func (c *Configuration) Task(name string) *Task {
	for _, t := range c.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AddTasks appends tasks in name order, so that the output is independent of map iteration order.
func (c *Configuration) AddTasks(tasks map[string]*Task) {
	names := maps.Keys(tasks)
	slices.Sort(names)
	for _, name := range names {
		c.Tasks = append(c.Tasks, tasks[name])
	}
}

// Sorted returns a shallow copy of the configuration with tasks, variants, variant tasks, display
// tasks and execution tasks ordered by name. Command order within a task is preserved.
func (c *Configuration) Sorted() *Configuration {
	rv := &Configuration{
		Tasks:         slices.Clone(c.Tasks),
		BuildVariants: make([]*Variant, len(c.BuildVariants)),
	}
	slices.SortStableFunc(rv.Tasks, func(a, b *Task) bool { return a.Name < b.Name })
	for i, v := range c.BuildVariants {
		sv := &Variant{
			Name:         v.Name,
			Tasks:        slices.Clone(v.Tasks),
			DisplayTasks: make([]*DisplayTask, len(v.DisplayTasks)),
		}
		slices.SortStableFunc(sv.Tasks, func(a, b TaskSpec) bool { return a.Name < b.Name })
		for j, dt := range v.DisplayTasks {
			executionTasks := slices.Clone(dt.ExecutionTasks)
			slices.Sort(executionTasks)
			sv.DisplayTasks[j] = &DisplayTask{Name: dt.Name, ExecutionTasks: executionTasks}
		}
		slices.SortStableFunc(sv.DisplayTasks, func(a, b *DisplayTask) bool { return a.Name < b.Name })
		rv.BuildVariants[i] = sv
	}
	slices.SortStableFunc(rv.BuildVariants, func(a, b *Variant) bool { return a.Name < b.Name })
	return rv
}
