package logging

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// CommandLineFormatter prints only the message, for human-facing command-line output.
// Errors and warnings are prefixed with their level so they stand out from progress messages.
// A stack trace attached with WithStacktrace is printed below the message; other fields are dropped.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *log.Entry) ([]byte, error) {
	msg := entry.Message
	switch entry.Level {
	case log.PanicLevel, log.FatalLevel, log.ErrorLevel, log.WarnLevel:
		msg = fmt.Sprintf("%s: %s", entry.Level, msg)
	}
	if stack, ok := entry.Data[Stacktrace]; ok {
		msg = fmt.Sprintf("%s%+v", msg, stack)
	}
	return []byte(msg + "\n"), nil
}
