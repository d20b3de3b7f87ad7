package audit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

const cursorName = "pgiban_audit"

// Auditor implements pgiban.Auditor.
type Auditor struct {
	validator *validator.Validator
	logger    pgiban.Logger
	now       func() time.Time
}

// New returns an Auditor using v. A nil logger discards output.
func New(v *validator.Validator, logger pgiban.Logger) *Auditor {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Auditor{validator: v, logger: logger, now: time.Now}
}

// Audit scans cfg's column. Only scan failures are errors; a report with
// violations is returned with a nil error.
func (a *Auditor) Audit(ctx context.Context, conn pgiban.DBConnection, cfg pgiban.AuditConfig) (*pgiban.AuditReport, error) {
	cfg = withDefaults(cfg)
	if err := validateTarget(cfg); err != nil {
		return nil, err
	}

	report := &pgiban.AuditReport{
		RunID:  uuid.New(),
		Target: Target(cfg),
	}
	started := a.now()
	a.logger.Verbose("Audit %s of %s started (batch size %d)", report.RunID, report.Target, cfg.BatchSize)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin audit transaction: %w", pgiban.ErrExecutionFailed, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, declareCursor(cfg)); err != nil {
		return nil, fmt.Errorf("%w: scan %s: %w", pgiban.ErrExecutionFailed, report.Target, err)
	}

	fetch := fmt.Sprintf("FETCH FORWARD %d FROM %s", cfg.BatchSize, cursorName)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := a.fetchBatch(ctx, tx, fetch, cfg, report)
		if err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", pgiban.ErrExecutionFailed, report.Target, err)
		}
		if n == 0 {
			break
		}
		a.logger.Verbose("Audit %s: %d rows scanned, %d invalid", report.RunID, report.Scanned, report.Invalid)
	}

	report.Duration = a.now().Sub(started)
	report.Truncated = report.Invalid > len(report.Violations)
	return report, nil
}

// fetchBatch reads one FETCH worth of rows into report and returns how many
// rows it read.
func (a *Auditor) fetchBatch(ctx context.Context, tx pgiban.Tx, fetch string, cfg pgiban.AuditConfig, report *pgiban.AuditReport) (int, error) {
	rows, err := tx.Query(ctx, fetch)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		var key, value *string
		if err := rows.Scan(&key, &value); err != nil {
			return n, err
		}
		n++
		report.Scanned++
		a.record(report, cfg, key, value)
	}
	return n, rows.Err()
}

func (a *Auditor) record(report *pgiban.AuditReport, cfg pgiban.AuditConfig, key, value *string) {
	if value == nil {
		report.Nulls++
		return
	}

	err := a.validator.Check(*value)
	if err == nil {
		return
	}
	report.Invalid++
	if cfg.Limit > 0 && len(report.Violations) >= cfg.Limit {
		return
	}

	v := pgiban.Violation{Value: *value, Reason: err.Error()}
	var verr *validator.Error
	if errors.As(err, &verr) {
		v.Reason = verr.Explanation()
	}
	switch {
	case key != nil:
		v.Key = *key
	case cfg.KeyColumn == "":
		v.Key = "#" + strconv.Itoa(report.Scanned)
	default:
		v.Key = "NULL"
	}
	report.Violations = append(report.Violations, v)
}

func withDefaults(cfg pgiban.AuditConfig) pgiban.AuditConfig {
	if cfg.Schema == "" {
		cfg.Schema = pgiban.DefaultSchema
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = pgiban.DefaultAuditBatchSize
	}
	return cfg
}

// validateTarget checks the fields Audit uses; the connection string is the
// caller's concern.
func validateTarget(cfg pgiban.AuditConfig) error {
	var errs []error
	if cfg.Table == "" {
		errs = append(errs, fmt.Errorf("table is required: %w", pgiban.ErrInvalidConfig))
	}
	if cfg.Column == "" {
		errs = append(errs, fmt.Errorf("column is required: %w", pgiban.ErrInvalidConfig))
	}
	if cfg.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", pgiban.ErrInvalidConfig))
	}
	if cfg.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit cannot be negative: %w", pgiban.ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// Target returns the qualified column name, e.g. public.accounts.iban.
func Target(cfg pgiban.AuditConfig) string {
	return cfg.Schema + "." + cfg.Table + "." + cfg.Column
}

// declareCursor builds the cursor over (key, value) pairs, both cast to text.
// Rows are ordered by the key column when there is one, physical order otherwise.
func declareCursor(cfg pgiban.AuditConfig) string {
	table := pgx.Identifier{cfg.Schema, cfg.Table}.Sanitize()
	column := pgx.Identifier{cfg.Column}.Sanitize()

	if cfg.KeyColumn == "" {
		return fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR SELECT NULL::text, %s::text FROM %s",
			cursorName, column, table)
	}
	key := pgx.Identifier{cfg.KeyColumn}.Sanitize()
	return fmt.Sprintf("DECLARE %s NO SCROLL CURSOR FOR SELECT %s::text, %s::text FROM %s ORDER BY %s",
		cursorName, key, column, table, key)
}

var _ pgiban.Auditor = (*Auditor)(nil)
