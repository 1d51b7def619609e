package perftest

import (
	"fmt"
	"os"
)

// A Logger receives every line the PerfTest prints. The messages of one call
// form one line.
type Logger interface {
	Log(msgs ...any)
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(msgs ...any)

// Log calls f(msgs...).
func (f LoggerFunc) Log(msgs ...any) { f(msgs...) }

type stdoutLogger struct{}

func (stdoutLogger) Log(msgs ...any) { fmt.Fprintln(os.Stdout, msgs...) }
