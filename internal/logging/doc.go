// Package logging provides concrete implementations of the pgiban.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr (or any io.Writer)
//   - NullLogger: Discards all messages (useful for testing)
//
// Level prefixes are colored through lipgloss when the destination is a
// terminal that supports it; redirected output stays plain text.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
