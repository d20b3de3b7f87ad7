package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/audit"
	"github.com/vvka-141/pgiban/internal/db"
	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report stored values that are not valid IBANs",
	Long: `Audit reads a table column in batches through a server-side cursor and
validates every non-NULL value. pgiban does not need to be installed in the
audited database.

Each rejected value is printed with its key column (or its row number when
--key is not given) and the reason. Exit code is 0 when every value is valid
and 4 otherwise.

Defaults for every flag below can be set in the audit section of pgiban.yaml.

Examples:
  pgiban audit -d ledger --table accounts --column iban --key id
  pgiban audit -d ledger --schema banking --table payees --column iban --limit 100
  pgiban audit -d ledger --table accounts --column iban --json | jq .invalid`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

type auditFlagValues struct {
	conn      connectionFlags
	schema    string
	table     string
	column    string
	key       string
	batchSize int
	limit     int
	json      bool
}

var auditFlags auditFlagValues

func init() {
	rootCmd.AddCommand(auditCmd)

	registerConnectionFlags(auditCmd, &auditFlags.conn)
	auditCmd.Flags().StringVar(&auditFlags.schema, "schema", "",
		"Schema of the audited table (default: public)")
	auditCmd.Flags().StringVar(&auditFlags.table, "table", "", "Table to audit")
	auditCmd.Flags().StringVar(&auditFlags.column, "column", "", "Column holding the IBANs")
	auditCmd.Flags().StringVar(&auditFlags.key, "key", "",
		"Column identifying offending rows in the report (default: row number)")
	auditCmd.Flags().IntVar(&auditFlags.batchSize, "batch-size", 0,
		fmt.Sprintf("Rows fetched per round trip (default %d)", pgiban.DefaultAuditBatchSize))
	auditCmd.Flags().IntVar(&auditFlags.limit, "limit", 0,
		"Maximum number of violations listed; all are still counted (0 = unlimited)")
	auditCmd.Flags().BoolVar(&auditFlags.json, "json", false, "Print the report as JSON")
}

// buildAuditConfig merges flags over the audit section of pgiban.yaml.
func buildAuditConfig(cmd *cobra.Command, s settings) (pgiban.AuditConfig, *pgiban.ConnectionConfig, error) {
	timeout, err := resolveTimeout(cmd, &auditFlags.conn, s)
	if err != nil {
		return pgiban.AuditConfig{}, nil, err
	}

	cfg := pgiban.AuditConfig{
		Schema:    auditFlags.schema,
		Table:     auditFlags.table,
		Column:    auditFlags.column,
		KeyColumn: auditFlags.key,
		BatchSize: auditFlags.batchSize,
		Limit:     auditFlags.limit,
		Timeout:   timeout,
		Verbose:   globalFlags.verbose,
	}
	if s.file != nil {
		fa := s.file.Audit
		cfg.Schema = firstSet(cfg.Schema, fa.Schema)
		cfg.Table = firstSet(cfg.Table, fa.Table)
		cfg.Column = firstSet(cfg.Column, fa.Column)
		cfg.KeyColumn = firstSet(cfg.KeyColumn, fa.Key)
		if !cmd.Flags().Changed("batch-size") {
			cfg.BatchSize = fa.BatchSize
		}
		if !cmd.Flags().Changed("limit") {
			cfg.Limit = fa.Limit
		}
	}

	connConfig, err := resolveConnection(&auditFlags.conn, s)
	if err != nil {
		return pgiban.AuditConfig{}, nil, err
	}
	cfg.ConnectionString = db.BuildConnectionString(connConfig)

	if err := cfg.Validate(); err != nil {
		return pgiban.AuditConfig{}, nil, err
	}
	return cfg, connConfig, nil
}

func firstSet(flag, fromFile string) string {
	if flag != "" {
		return flag
	}
	return fromFile
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, connConfig, err := buildAuditConfig(cmd, loaded)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cfg.Verbose)
	logConnectionVerbose(logger, connConfig)

	ctx, cancel := commandContext(cfg.Timeout, cmd.ErrOrStderr())
	defer cancel()

	conn, release, err := openDatabase(ctx, connConfig, logger)
	if err != nil {
		return err
	}
	defer release()

	report, err := audit.New(validator.Default(), logger).Audit(ctx, conn, cfg)
	if err != nil {
		return err
	}

	if auditFlags.json {
		err = writeAuditJSON(cmd.OutOrStdout(), report)
	} else {
		writeAuditText(cmd.OutOrStdout(), report)
	}
	if err != nil {
		return err
	}

	if !report.Clean() {
		return &silentError{err: fmt.Errorf("%s: %d invalid value(s): %w", report.Target, report.Invalid, pgiban.ErrInvalidIBAN)}
	}
	return nil
}

type auditViolationJSON struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

type auditReportJSON struct {
	RunID      string               `json:"run_id"`
	Target     string               `json:"target"`
	Scanned    int                  `json:"scanned"`
	Nulls      int                  `json:"nulls"`
	Valid      int                  `json:"valid"`
	Invalid    int                  `json:"invalid"`
	Truncated  bool                 `json:"truncated"`
	DurationMS int64                `json:"duration_ms"`
	Violations []auditViolationJSON `json:"violations"`
}

func writeAuditJSON(w io.Writer, r *pgiban.AuditReport) error {
	out := auditReportJSON{
		RunID:      r.RunID.String(),
		Target:     r.Target,
		Scanned:    r.Scanned,
		Nulls:      r.Nulls,
		Valid:      r.Valid(),
		Invalid:    r.Invalid,
		Truncated:  r.Truncated,
		DurationMS: r.Duration.Milliseconds(),
		Violations: make([]auditViolationJSON, 0, len(r.Violations)),
	}
	for _, v := range r.Violations {
		out.Violations = append(out.Violations, auditViolationJSON(v))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeAuditText(w io.Writer, r *pgiban.AuditReport) {
	for _, v := range r.Violations {
		fmt.Fprintf(w, "%s\t%s\t%s\n", v.Key, v.Value, v.Reason)
	}
	if len(r.Violations) > 0 {
		fmt.Fprintln(w)
	}

	status := tui.SuccessStyle.Render(tui.SymbolCheck + " clean")
	if !r.Clean() {
		status = tui.ErrorStyle.Render(fmt.Sprintf("%s %d invalid", tui.SymbolCross, r.Invalid))
	}
	fmt.Fprintf(w, "%s: %s (%d scanned, %d valid, %d null) in %s\n",
		r.Target, status, r.Scanned, r.Valid(), r.Nulls, r.Duration.Round(time.Millisecond))
	if r.Truncated {
		fmt.Fprintf(w, "%s\n", tui.MutedStyle.Render(
			fmt.Sprintf("Only the first %d violations are listed.", len(r.Violations))))
	}
	fmt.Fprintf(w, "%s\n", tui.MutedStyle.Render("Run "+r.RunID.String()))
}
