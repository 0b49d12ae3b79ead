// Package color provides terminal color output for the CLI.
// It respects the NO_COLOR environment variable (https://no-color.org/).
package color

import (
	"os"
	"sync"
)

const (
	reset  = "\x1b[0m"
	red    = "\x1b[31m"
	green  = "\x1b[32m"
	yellow = "\x1b[33m"
	cyan   = "\x1b[36m"
	dim    = "\x1b[2m"
)

var state struct {
	once    sync.Once
	enabled bool
}

// Init initializes color output based on environment and flags.
func Init(noColorFlag bool) {
	state.once.Do(func() {
		if noColorFlag {
			return
		}
		if _, exists := os.LookupEnv("NO_COLOR"); exists {
			return
		}
		if os.Getenv("TERM") == "dumb" {
			return
		}
		state.enabled = true
	})
}

// Enabled returns true if color output is enabled.
func Enabled() bool {
	Init(false)
	return state.enabled
}

func wrap(code, s string) string {
	if !Enabled() {
		return s
	}
	return code + s + reset
}

// Success colors a success message green.
func Success(s string) string { return wrap(green, s) }

// Error colors an error message red.
func Error(s string) string { return wrap(red, s) }

// Warning colors a warning message yellow.
func Warning(s string) string { return wrap(yellow, s) }

// Highlight colors an emphasized value cyan.
func Highlight(s string) string { return wrap(cyan, s) }

// Faint dims secondary detail such as timestamps.
func Faint(s string) string { return wrap(dim, s) }
