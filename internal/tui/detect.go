package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents the interaction mode for pgiban.
type Mode int

const (
	// ModeNonInteractive is used for CI/CD pipelines, scripts, and piped input.
	ModeNonInteractive Mode = iota
	// ModeInteractive is used when a human is at the terminal.
	ModeInteractive
)

// NonInteractiveEnvVar set to "1" disables every prompt and the TUI.
const NonInteractiveEnvVar = "PGIBAN_NON_INTERACTIVE"

// DetectMode determines whether pgiban may prompt or start the TUI.
//
// Returns ModeNonInteractive if:
//   - PGIBAN_NON_INTERACTIVE=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - stdin or stdout is not a terminal
func DetectMode() Mode {
	return detectMode(os.Getenv, IsTerminal)
}

func detectMode(getenv func(string) string, isTerminal func(*os.File) bool) Mode {
	if getenv(NonInteractiveEnvVar) == "1" || getenv("CI") != "" || getenv("NO_COLOR") != "" {
		return ModeNonInteractive
	}
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// IsInteractive is a convenience function that returns true if running in interactive mode.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
