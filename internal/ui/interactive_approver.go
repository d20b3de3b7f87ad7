package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// InteractiveApprover implements the Approver interface for console-based
// interactive confirmation. It prompts the user to type the schema name
// to confirm the uninstall.
type InteractiveApprover struct {
	verbose bool
	input   io.Reader
	output  io.Writer
}

// NewInteractiveApprover creates a new InteractiveApprover on stdin and stderr.
func NewInteractiveApprover(verbose bool) pgiban.Approver {
	return &InteractiveApprover{
		verbose: verbose,
		input:   os.Stdin,
		output:  os.Stderr,
	}
}

// RequestApproval prompts the user to type the schema name to confirm.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, target string) (bool, error) {
	fmt.Fprintf(a.output, "\n%s You are about to uninstall pgiban from schema '%s'\n",
		tui.WarningStyle.Bold(true).Render("WARNING:"), target)
	fmt.Fprintln(a.output, "This will permanently delete every column typed with the iban domain!")
	fmt.Fprintf(a.output, "\nTo confirm, type the schema name '%s' and press Enter: ", target)

	inputChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		reader := bufio.NewReader(a.input)
		input, err := reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		inputChan <- strings.TrimSpace(input)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-errChan:
		return false, fmt.Errorf("failed to read input: %w", err)
	case input := <-inputChan:
		if input == target {
			fmt.Fprintf(a.output, "%s Confirmed. Proceeding with uninstall...\n", tui.SymbolCheck)
			return true, nil
		}
		fmt.Fprintf(a.output, "%s Input '%s' does not match schema name '%s'. Operation cancelled.\n",
			tui.SymbolCross, input, target)
		return false, nil
	}
}

var _ pgiban.Approver = (*InteractiveApprover)(nil)
