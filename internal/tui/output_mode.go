package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how results reach the user.
type OutputMode int

const (
	// OutputModePlain writes unstyled text (pipes, CI, NO_COLOR).
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes coloured, non-interactive output.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen browser.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// fallbackWidth is used when the terminal size cannot be read.
const fallbackWidth = 120

// DetectOutputMode picks the richest mode the environment supports. NO_COLOR
// and CI are honoured whether passed explicitly or set in the environment.
func DetectOutputMode(forcePlain, noColor, ci bool) OutputMode {
	return detectOutputMode(forcePlain, noColor, ci, os.Getenv, term.IsTerminal(int(os.Stdout.Fd())))
}

func detectOutputMode(forcePlain, noColor, ci bool, getenv func(string) string, tty bool) OutputMode {
	if forcePlain || !tty {
		return OutputModePlain
	}
	if noColor || getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if ci || getenv("CI") != "" {
		return OutputModeStyled
	}
	if getenv("TERM") == "dumb" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// TerminalWidth returns the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}
