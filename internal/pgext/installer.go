package pgext

import (
	"context"
	"fmt"

	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

const queryInstalled = `
	SELECT EXISTS (
		SELECT 1
		FROM pg_proc p
		JOIN pg_namespace n ON n.oid = p.pronamespace
		WHERE n.nspname = $1 AND p.proname = 'iban_validate'
	)`

// Installer implements pgiban.Installer. It holds no state besides the
// registry and logger and is safe for concurrent use.
type Installer struct {
	registry *registry.Registry
	logger   pgiban.Logger
}

// NewInstaller returns an installer seeding from reg. A nil logger discards output.
func NewInstaller(reg *registry.Registry, logger pgiban.Logger) *Installer {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Installer{registry: reg, logger: logger}
}

func (i *Installer) Installed(ctx context.Context, conn pgiban.DBConnection, schema string) (bool, error) {
	var exists bool
	if err := conn.QueryRow(ctx, queryInstalled, schema).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check installation in schema %q: %w", schema, err)
	}
	return exists, nil
}

func (i *Installer) Install(ctx context.Context, conn pgiban.DBConnection, schema string) error {
	script, err := Render(i.registry, schema)
	if err != nil {
		return err
	}

	i.logger.Verbose("Installing %d country specifications into schema %q", i.registry.Len(), schema)
	if err := runScript(ctx, conn, script); err != nil {
		return fmt.Errorf("%w: install into schema %q: %w", pgiban.ErrExecutionFailed, schema, err)
	}
	i.logger.Info("Installed pgiban into schema %q (%d countries)", schema, i.registry.Len())
	return nil
}

func (i *Installer) Uninstall(ctx context.Context, conn pgiban.DBConnection, schema string) error {
	script, err := RenderUninstall(schema)
	if err != nil {
		return err
	}

	installed, err := i.Installed(ctx, conn, schema)
	if err != nil {
		return err
	}
	if !installed {
		return fmt.Errorf("schema %q: %w", schema, pgiban.ErrNotInstalled)
	}

	if err := runScript(ctx, conn, script); err != nil {
		return fmt.Errorf("%w: uninstall from schema %q: %w", pgiban.ErrExecutionFailed, schema, err)
	}
	i.logger.Info("Removed pgiban from schema %q", schema)
	return nil
}

// runScript executes a multi-statement script in one transaction.
func runScript(ctx context.Context, conn pgiban.DBConnection, script string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, script); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ pgiban.Installer = (*Installer)(nil)
