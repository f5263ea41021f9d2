package fuzzgenctl

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/G-Research/fuzzgen/internal/common/generrors"
	"github.com/G-Research/fuzzgen/pkg/evergreen"
)

func testApp(buf *bytes.Buffer) *App {
	app := New()
	app.Out = buf
	app.Params.DefinitionsPath = filepath.Join("testdata", "definitions.yaml")
	return app
}

func TestVersion(t *testing.T) {
	buf := new(bytes.Buffer)
	app := testApp(buf)

	err := app.Version()
	if err != nil {
		t.Fatalf("expected no error, but got %s", err)
	}

	out := buf.String()
	for _, s := range []string{"Version", "Commit", "Go version", "Built"} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected output to contain %s, but got %s", s, out)
		}
	}
}

func TestGenerate_Stdout(t *testing.T) {
	buf := new(bytes.Buffer)
	app := testApp(buf)

	require.NoError(t, app.Generate())

	var configuration evergreen.Configuration
	require.NoError(t, json.Unmarshal(buf.Bytes(), &configuration))

	names := make([]string, len(configuration.Tasks))
	for i, task := range configuration.Tasks {
		names[i] = task.Name
	}
	assert.Equal(t, []string{"jstestfuzz_0_linux-64", "jstestfuzz_0_rhel80", "jstestfuzz_1_linux-64"}, names)

	require.Len(t, configuration.BuildVariants, 2)
	linux := configuration.BuildVariants[0]
	assert.Equal(t, "linux-64", linux.Name)
	assert.Equal(t, []string{"jstestfuzz_0_linux-64", "jstestfuzz_1_linux-64", "jstestfuzz_gen"}, linux.DisplayTasks[0].ExecutionTasks)
	rhel := configuration.BuildVariants[1]
	assert.Equal(t, []evergreen.TaskSpec{{Name: "jstestfuzz_0_rhel80", Distros: []string{"rhel80-large"}}}, rhel.Tasks)

	multiversionTask := configuration.Tasks[1]
	assert.Equal(t, []string{
		"do setup",
		"configure evergreen api credentials",
		"do multiversion setup",
		"setup jstestfuzz",
		"run jstestfuzz",
		"run generated tests",
	}, multiversionTask.FunctionNames())
}

func TestGenerate_Deterministic(t *testing.T) {
	first := new(bytes.Buffer)
	second := new(bytes.Buffer)

	require.NoError(t, testApp(first).Generate())
	require.NoError(t, testApp(second).Generate())

	assert.Equal(t, first.String(), second.String())
}

func TestGenerate_DefinitionsGlob(t *testing.T) {
	single := new(bytes.Buffer)
	require.NoError(t, testApp(single).Generate())

	split := new(bytes.Buffer)
	app := testApp(split)
	app.Params.DefinitionsPath = filepath.Join("testdata", "split", "*.yaml")
	require.NoError(t, app.Generate())

	assert.Equal(t, single.String(), split.String())
}

func TestGenerate_Summary(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	require.NoError(t, testApp(new(bytes.Buffer)).Generate())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.InfoLevel, entry.Level)
	assert.Equal(t, "Generated 3 tasks from 2 fuzzers on linux-64 (1 fuzzers), rhel80 (1 fuzzers)", entry.Message)
}

func TestGenerate_YamlFile(t *testing.T) {
	buf := new(bytes.Buffer)
	app := testApp(buf)
	app.Params.Format = evergreen.FormatYaml
	app.Params.OutputPath = filepath.Join(t.TempDir(), "generated.yaml")

	require.NoError(t, app.Generate())

	assert.Empty(t, buf.String())
	b, err := os.ReadFile(app.Params.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "buildvariants:")
	assert.Contains(t, string(b), "name: jstestfuzz_0_rhel80")
}

func TestGenerate_Errors(t *testing.T) {
	tests := map[string]struct {
		definitionsPath string
		check           func(error) bool
	}{
		"no definitions":      {"", func(err error) bool { return err != nil }},
		"missing definitions": {filepath.Join("testdata", "missing.yaml"), generrors.IsNotFound},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			app := testApp(buf)
			app.Params.DefinitionsPath = tc.definitionsPath

			err := app.Generate()

			assert.True(t, tc.check(err), "unexpected error %v", err)
			assert.Empty(t, buf.String())
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	buf := new(bytes.Buffer)
	app := testApp(buf)
	app.Params.Format = evergreen.Format("xml")

	err := app.Generate()

	assert.True(t, generrors.IsInvalidArgument(err))
	assert.Empty(t, buf.String())
}
