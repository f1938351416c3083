// Package cli holds the setup shared by the godeck commands.
package cli

import (
	"fmt"
	"io"

	"github.com/k0kubun/pp"

	"github.com/VantageDataChat/godeck/internal/logging"
	"github.com/VantageDataChat/godeck/internal/logging/gologger"
)

// Exit codes shared by the commands.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Provider returns a go-logger backed provider. Debug lowers the level to
// debug whatever level says.
func Provider(level, format string, debug bool) (logging.LoggerProvider, error) {
	if debug {
		level = "debug"
	}
	provider, err := gologger.NewProvider(gologger.Config{Level: level, Format: format})
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Logger returns a console logger for one module.
func Logger(module string, debug bool) (logging.Logger, error) {
	provider, err := Provider("warn", "console", debug)
	if err != nil {
		return nil, err
	}
	return logging.ModuleLogger(provider, module), nil
}

// Dump pretty-prints v for -debug output.
func Dump(w io.Writer, label string, v any) {
	fmt.Fprintf(w, "%s:\n", label)
	pp.Fprintln(w, v)
}

// Fail prints a command error to w and returns ExitFailure.
func Fail(w io.Writer, command string, err error) int {
	fmt.Fprintf(w, "%s: %v\n", command, err)
	return ExitFailure
}
