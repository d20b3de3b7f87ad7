package pgiban

import "context"

// Auditor validates the values stored in a table column.
type Auditor interface {
	// Audit scans the column described by cfg and reports rejected values.
	// A report with violations is not an error; only scan failures are.
	Audit(ctx context.Context, conn DBConnection, cfg AuditConfig) (*AuditReport, error)
}
