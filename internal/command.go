package internal

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/shlex"

	"github.com/shravanasati/perfcmp/perftest"
)

// ErrEmptyCommand is returned when a command line holds no words.
var ErrEmptyCommand = errors.New("empty command")

var WINDOWS = runtime.GOOS == "windows"

// BuildCommand splits command into argv. With useShell the command is
// handed to the platform shell instead.
func BuildCommand(command string, useShell bool) ([]string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return nil, ErrEmptyCommand
	}
	if useShell {
		if WINDOWS {
			return []string{"cmd", "/C", command}, nil
		}
		return []string{"/bin/sh", "-c", command}, nil
	}
	builtCommand, err := shlex.Split(command)
	if err != nil {
		return nil, err
	}
	if len(builtCommand) == 0 {
		return nil, ErrEmptyCommand
	}
	return builtCommand, nil
}

// SplitCommands splits a comma separated list of command lines.
func SplitCommands(commands string) []string {
	return FilterFunc(func(s string) bool { return s != "" },
		MapFunc(strings.TrimSpace, strings.Split(commands, ",")))
}

// CommandError is the panic value of a command candidate that could not be
// started or exited unsuccessfully.
type CommandError struct {
	Command []string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("the command `%s` failed: %v", strings.Join(e.Command, " "), e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// NewCommandFunc returns a candidate that runs argv and yields its trimmed
// stdout. A non-zero exit status panics with a *CommandError unless
// ignoreError is set.
func NewCommandFunc(argv []string, ignoreError bool) perftest.Func {
	return func(any) any {
		var stdout, stderr bytes.Buffer
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if !ignoreError || !errors.As(err, &exitErr) {
				panic(&CommandError{Command: argv, Stderr: stderr.String(), Err: err})
			}
		}
		return strings.TrimSpace(stdout.String())
	}
}
