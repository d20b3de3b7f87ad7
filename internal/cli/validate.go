package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

var validateCmd = &cobra.Command{
	Use:   "validate [IBAN...]",
	Short: "Validate IBANs",
	Long: `Validate checks each IBAN against the country registry and the MOD 97-10 checksum.

Inputs are taken from the arguments, or one per line from stdin when no
argument (or a single "-") is given. Lowercase letters are accepted. Spaces
are not: use the electronic format, not the grouped print format.

Output is one line per input:
  DE89370400440532013000	valid
  DE89370400440532013001	invalid: checksum mismatch

Exit code is 0 when every input is valid and 4 otherwise.

Examples:
  pgiban validate DE89370400440532013000 GB82WEST12345698765432
  cut -d, -f3 accounts.csv | pgiban validate --quiet
  pgiban validate --json < ibans.txt
  pgiban validate -i`,
	RunE: runValidate,
}

type validateFlagValues struct {
	quiet       bool
	json        bool
	interactive bool
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&validateFlags.quiet, "quiet", "q", false,
		"Print nothing; report through the exit code only")
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false,
		"Print one JSON object per input")
	validateCmd.Flags().BoolVarP(&validateFlags.interactive, "interactive", "i", false,
		"Open the interactive checker (requires a terminal)")
	validateCmd.MarkFlagsMutuallyExclusive("quiet", "json")
}

// validateResult is the --json line for one input.
type validateResult struct {
	Input  string `json:"input"`
	Valid  bool   `json:"valid"`
	IBAN   string `json:"iban,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	v := validator.Default()

	if validateFlags.interactive {
		if len(args) > 0 {
			return fmt.Errorf("accepts 0 arg(s) with --interactive, received %d", len(args))
		}
		if !tui.IsInteractive() {
			return fmt.Errorf("interactive checker requires a terminal (unset %s, CI and NO_COLOR): %w",
				tui.NonInteractiveEnvVar, pgiban.ErrInvalidConfig)
		}
		return tui.RunChecker(v)
	}

	inputs, err := collectInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	rejected := 0

	for _, input := range inputs {
		result := checkInput(v, input)
		if !result.Valid {
			rejected++
		}

		switch {
		case validateFlags.quiet:
		case validateFlags.json:
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		case result.Valid:
			fmt.Fprintf(out, "%s\tvalid\n", input)
		default:
			fmt.Fprintf(out, "%s\tinvalid: %s\n", input, result.Reason)
		}
	}

	if rejected > 0 {
		return &silentError{err: fmt.Errorf("%d of %d inputs rejected: %w", rejected, len(inputs), pgiban.ErrInvalidIBAN)}
	}
	return nil
}

func checkInput(v *validator.Validator, input string) validateResult {
	err := v.Check(input)
	if err == nil {
		return validateResult{Input: input, Valid: true, IBAN: validator.Normalize(input)}
	}

	var verr *validator.Error
	if errors.As(err, &verr) {
		return validateResult{Input: input, Reason: verr.Explanation()}
	}
	return validateResult{Input: input, Reason: err.Error()}
}

// collectInputs returns args, or the non-empty lines of stdin when args is
// empty or "-". A terminal on stdin with no args is a usage error.
func collectInputs(stdin io.Reader, args []string) ([]string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return args, nil
	}

	if f, ok := stdin.(*os.File); ok && len(args) == 0 && tui.IsTerminal(f) {
		return nil, errors.New("requires at least 1 arg(s) or IBANs on stdin")
	}

	var inputs []string
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return inputs, nil
}
