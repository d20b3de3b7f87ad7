package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

var specsCmd = &cobra.Command{
	Use:   "specs [CODE...]",
	Short: "List the country specifications",
	Long: `Specs lists the registry: country code, IBAN length, BBAN structure, the
regular expression compiled from the structure, and a valid example.

On a terminal the list is rendered as a table; otherwise it is printed as
tab-separated values with a header line.

Examples:
  pgiban specs
  pgiban specs DE gb
  pgiban specs | cut -f1,2`,
	RunE:              runSpecs,
	ValidArgsFunction: completeCountryCodes,
}

func init() {
	rootCmd.AddCommand(specsCmd)
}

var specsHeaders = []string{"CODE", "LENGTH", "STRUCTURE", "PATTERN", "EXAMPLE"}

func runSpecs(cmd *cobra.Command, args []string) error {
	rows, err := specRows(registry.Default(), args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && tui.IsTerminal(f) {
		fmt.Fprintln(out, renderSpecsTable(rows))
		return nil
	}
	writeSpecsTSV(out, rows)
	return nil
}

// specRows returns one row per requested code, or the whole registry when
// codes is empty. Codes are matched case-insensitively.
func specRows(reg *registry.Registry, codes []string) ([][]string, error) {
	if len(codes) == 0 {
		codes = reg.Codes()
	}

	rows := make([][]string, 0, len(codes))
	var unknown []string
	for _, code := range codes {
		entry, ok := reg.Lookup(strings.ToUpper(code))
		if !ok {
			unknown = append(unknown, code)
			continue
		}
		spec := entry.Specification
		rows = append(rows, []string{
			spec.CountryCode,
			strconv.Itoa(spec.Length),
			spec.Structure,
			entry.Matcher.Pattern(),
			spec.Example,
		})
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown country code(s): %s: %w", strings.Join(unknown, ", "), pgiban.ErrInvalidConfig)
	}
	return rows, nil
}

func renderSpecsTable(rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tui.ColorSecondary)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tui.HeaderStyle
			}
			return tui.CellStyle
		}).
		Headers(specsHeaders...).
		Rows(rows...).
		Render()
}

func writeSpecsTSV(w io.Writer, rows [][]string) {
	fmt.Fprintln(w, strings.Join(specsHeaders, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
}
