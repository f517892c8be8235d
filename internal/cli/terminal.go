// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY, size and color detection.

package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Fallback size when stdout is not a terminal.
const (
	DefaultTerminalWidth  = 80
	DefaultTerminalHeight = 24

	// MinTerminalWidth is the narrowest width used for rendering
	MinTerminalWidth = 40
)

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdin is a terminal. The backdrop needs it for
// keyboard and mouse input.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// IsStderrTTY reports whether stderr is a terminal. Bench progress is only
// drawn when it is.
func IsStderrTTY() bool { return isTerminal(os.Stderr) }

// GetTerminalSize returns the stdout size in cells, or 80x24.
func GetTerminalSize() (cols, rows int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return DefaultTerminalWidth, DefaultTerminalHeight
	}
	return w, h
}

// GetTerminalWidth returns the stdout width, never below MinTerminalWidth.
func GetTerminalWidth() int {
	w, _ := GetTerminalSize()
	return max(w, MinTerminalWidth)
}

// =============================================================================
// COLOR OUTPUT
// =============================================================================

// ColorsEnabled reports whether command output may use color. NO_COLOR
// disables it, FORCE_COLOR enables it, otherwise stdout must be a TTY.
// The answer is computed once.
var ColorsEnabled = sync.OnceValue(func() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	default:
		return IsStdoutTTY()
	}
})

// GetColorProfile returns Ascii when colors are off and the detected
// profile otherwise.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// TTY REQUIREMENTS
// =============================================================================

// TTYRequiredError is returned when a command needs an interactive terminal.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "stdin is not a terminal; cannot " + e.Operation
	}
	return "stdin is not a terminal"
}

// RequiresTTY returns a TTYRequiredError if stdin is not a terminal.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}
