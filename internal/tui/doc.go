// Package tui holds pgiban's terminal UI: interactive-mode detection, the
// shared lipgloss styles and the interactive IBAN checker.
package tui
