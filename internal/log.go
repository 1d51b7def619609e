package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/colorstring"
	"golang.org/x/term"
)

// NO_COLOR is a global variable that is used to determine whether or not to enable color output.
var NO_COLOR = os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd()))

// SetNoColor switches colored output off (or back on) for every writer in this package.
func SetNoColor(noColor bool) {
	NO_COLOR = noColor
	color.NoColor = noColor
}

// aliases for the color names used across the cli
var colorAliases = map[string]string{
	"purple": "magenta",
	"error":  "red",
}

// Log prints message to stdout in the given color.
func Log(colorName, message string) {
	fprintLog(os.Stdout, colorName, message)
}

func fprintLog(w io.Writer, colorName, message string) {
	if NO_COLOR {
		fmt.Fprintln(w, message)
		return
	}
	if alias, ok := colorAliases[colorName]; ok {
		colorName = alias
	}
	c := colorstring.Colorize{Colors: colorstring.DefaultColors, Reset: true}
	fmt.Fprintln(w, c.Color("["+colorName+"]"+message))
}

// ConsoleLogger writes engine output to the terminal, highlighting the
// leading title column of result rows.
type ConsoleLogger struct {
	Out   io.Writer
	title *color.Color
}

// NewConsoleLogger returns a logger writing to color.Output.
func NewConsoleLogger() *ConsoleLogger {
	return &ConsoleLogger{Out: color.Output, title: color.New(color.FgCyan, color.Bold)}
}

// Log prints msgs separated by spaces. A first message ending in a colon
// (possibly padded) is treated as a title.
func (l *ConsoleLogger) Log(msgs ...any) {
	if len(msgs) > 1 {
		if first, ok := msgs[0].(string); ok && strings.HasSuffix(strings.TrimRight(first, " "), ":") {
			rest := fmt.Sprintln(msgs[1:]...)
			l.title.Fprint(l.Out, first)
			fmt.Fprint(l.Out, " ", rest)
			return
		}
	}
	fmt.Fprintln(l.Out, msgs...)
}
