package pgiban

import "context"

// Installer manages the pgiban objects inside a PostgreSQL schema: the
// iban_specification table, the iban_validate(text) function and the iban domain.
type Installer interface {
	// Installed reports whether the validation function exists in schema.
	Installed(ctx context.Context, conn DBConnection, schema string) (bool, error)

	// Install creates or refreshes every object in a single transaction.
	// Running it twice leaves the database in the same state.
	Install(ctx context.Context, conn DBConnection, schema string) error

	// Uninstall drops every object. Returns ErrNotInstalled if nothing is there.
	Uninstall(ctx context.Context, conn DBConnection, schema string) error
}
