package logging

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestCommandLineFormatter(t *testing.T) {
	tests := map[string]struct {
		level    log.Level
		expected string
	}{
		"info":  {log.InfoLevel, "generated\n"},
		"debug": {log.DebugLevel, "generated\n"},
		"warn":  {log.WarnLevel, "warning: generated\n"},
		"error": {log.ErrorLevel, "error: generated\n"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			entry := &log.Entry{Level: tc.level, Message: "generated", Data: log.Fields{"ignored": 1}}
			b, err := (&CommandLineFormatter{}).Format(entry)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, string(b))
		})
	}
}

func TestCommandLineFormatter_Stacktrace(t *testing.T) {
	entry := WithStacktrace(log.NewEntry(log.New()), errors.New("boom"))
	entry.Level = log.ErrorLevel
	entry.Message = "boom"

	b, err := (&CommandLineFormatter{}).Format(entry)

	assert.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, "error: boom\n"), out)
	assert.Contains(t, out, "TestCommandLineFormatter_Stacktrace")
}

func TestExtractStack(t *testing.T) {
	assert.Nil(t, ExtractStack(nil))
	assert.Nil(t, ExtractStack(fmt.Errorf("plain")))
	assert.NotNil(t, ExtractStack(errors.New("with stack")))
	assert.NotNil(t, ExtractStack(errors.WithMessage(errors.New("with stack"), "wrapped")))
	assert.NotNil(t, ExtractStack(fmt.Errorf("std wrapped: %w", errors.New("with stack"))))
}

func TestWithStacktrace(t *testing.T) {
	entry := WithStacktrace(log.NewEntry(log.New()), errors.New("boom"))
	assert.Contains(t, entry.Data, log.ErrorKey)
	assert.Contains(t, entry.Data, Stacktrace)

	entry = WithStacktrace(log.NewEntry(log.New()), fmt.Errorf("boom"))
	assert.NotContains(t, entry.Data, Stacktrace)
}
