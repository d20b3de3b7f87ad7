package pgiban_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/pgiban/pkg/pgiban"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, pgiban.ExitSuccess},
		{"unknown flag", errors.New("unknown flag --foo"), pgiban.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), pgiban.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), pgiban.ExitUsageError},
		{"required flag", errors.New("required flag \"table\" not set"), pgiban.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), pgiban.ExitUsageError},
		{"general error", errors.New("something went wrong"), pgiban.ExitGeneralError},
		{"invalid iban", fmt.Errorf("GB00: %w", pgiban.ErrInvalidIBAN), pgiban.ExitInvalidIBAN},
		{"invalid config", fmt.Errorf("Table is required: %w", pgiban.ErrInvalidConfig), pgiban.ExitConfigError},
		{"bad registry", pgiban.ErrInvalidSpecification, pgiban.ExitConfigError},
		{"unsupported auth", pgiban.ErrUnsupportedAuthMethod, pgiban.ExitConfigError},
		{"approval denied", pgiban.ErrApprovalDenied, pgiban.ExitApprovalDenied},
		{"execution failed", fmt.Errorf("install: %w", pgiban.ErrExecutionFailed), pgiban.ExitExecutionFailed},
		{"connection failed", pgiban.ErrConnectionFailed, pgiban.ExitConnectionError},
		{"connection refused text", errors.New("dial tcp: connection refused"), pgiban.ExitConnectionError},
		{"not installed", pgiban.ErrNotInstalled, pgiban.ExitNotInstalled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pgiban.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
