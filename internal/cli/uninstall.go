package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/db"
	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/internal/pgext"
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/internal/ui"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove IBAN validation from a PostgreSQL database",
	Long: `Uninstall drops the iban domain, the validation functions and the
iban_specification table from the target schema.

The domain is dropped with CASCADE: every column declared with it is dropped
too. You are asked to type the schema name to confirm, unless --force is
given, in which case a short countdown runs instead.

Examples:
  pgiban uninstall -d mydb
  pgiban uninstall -d mydb --schema banking --force`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

type uninstallFlagValues struct {
	conn   connectionFlags
	schema string
	force  bool
}

var uninstallFlags uninstallFlagValues

// newApprover selects the approval strategy; replaced in tests.
var newApprover = func(force, verbose bool) pgiban.Approver {
	if force {
		return ui.NewForcedApprover(verbose)
	}
	return ui.NewInteractiveApprover(verbose)
}

func init() {
	rootCmd.AddCommand(uninstallCmd)

	registerConnectionFlags(uninstallCmd, &uninstallFlags.conn)
	uninstallCmd.Flags().StringVar(&uninstallFlags.schema, "schema", "",
		"Schema holding the objects (default: install.schema in pgiban.yaml, or public)")
	uninstallCmd.Flags().BoolVar(&uninstallFlags.force, "force", false,
		"Skip the interactive confirmation prompt\n"+
			"A countdown still runs and can be cancelled with Ctrl+C")
}

func buildUninstallConfig(cmd *cobra.Command, s settings) (pgiban.InstallConfig, *pgiban.ConnectionConfig, error) {
	var fileSchema string
	if s.file != nil {
		fileSchema = s.file.Install.Schema
	}

	timeout, err := resolveTimeout(cmd, &uninstallFlags.conn, s)
	if err != nil {
		return pgiban.InstallConfig{}, nil, err
	}

	cfg := pgiban.InstallConfig{
		Schema:  resolveSchema(uninstallFlags.schema, fileSchema),
		Force:   uninstallFlags.force,
		Timeout: timeout,
		Verbose: globalFlags.verbose,
	}
	if err := pgext.ValidateSchemaName(cfg.Schema); err != nil {
		return pgiban.InstallConfig{}, nil, err
	}

	if !cfg.Force && !tui.IsInteractive() {
		return pgiban.InstallConfig{}, nil, fmt.Errorf(
			"uninstall needs confirmation but no terminal is attached; use --force: %w", pgiban.ErrApprovalDenied)
	}

	connConfig, err := resolveConnection(&uninstallFlags.conn, s)
	if err != nil {
		return pgiban.InstallConfig{}, nil, err
	}
	cfg.ConnectionString = db.BuildConnectionString(connConfig)

	if err := cfg.Validate(); err != nil {
		return pgiban.InstallConfig{}, nil, err
	}
	return cfg, connConfig, nil
}

func runUninstall(cmd *cobra.Command, args []string) error {
	cfg, connConfig, err := buildUninstallConfig(cmd, loaded)
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

	installer := pgext.NewInstaller(registry.Default(), logger)
	installed, err := installer.Installed(ctx, conn, cfg.Schema)
	if err != nil {
		return err
	}
	if !installed {
		return fmt.Errorf("schema %q: %w", cfg.Schema, pgiban.ErrNotInstalled)
	}

	approved, err := newApprover(cfg.Force, cfg.Verbose).RequestApproval(ctx, cfg.Schema)
	if err != nil {
		return err
	}
	if !approved {
		return pgiban.ErrApprovalDenied
	}

	return installer.Uninstall(ctx, conn, cfg.Schema)
}
