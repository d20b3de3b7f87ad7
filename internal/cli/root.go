package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/pgiban/internal/config"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

var rootCmd = &cobra.Command{
	Use:   "pgiban",
	Short: "IBAN validation for Go and PostgreSQL",
	Long: `pgiban validates International Bank Account Numbers against the per-country
registry of lengths and BBAN structures, and the ISO 7064 MOD 97-10 checksum.

The same registry can be installed into PostgreSQL as the iban_validate(text)
function and the iban domain, and existing columns can be audited against it.

Exit Codes:
  0  - Success (every value was a valid IBAN)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  4  - At least one value was rejected
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied uninstall approval
  13 - SQL execution failed
  14 - pgiban is not installed in the target schema`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

type globalFlagValues struct {
	verbose    bool
	configPath string
	envFile    string
}

var globalFlags globalFlagValues

// settings holds what the pre-run loaded from .env, pgiban.yaml and the
// environment. file is nil when there is no pgiban.yaml.
type settings struct {
	file *config.File
	env  *config.Env
}

var loaded settings

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(rootCmd.OutOrStdout(), rootCmd.ErrOrStderr())
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgiban")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.verbose, "verbose", "v", false,
		"Enable verbose output for all commands")
	rootCmd.PersistentFlags().StringVar(&globalFlags.configPath, "config", "",
		"Path of the configuration file (default: ./"+config.FileName+" if present)")
	rootCmd.PersistentFlags().StringVar(&globalFlags.envFile, "env-file", "",
		"Load environment variables from this file (default: ./"+config.DefaultEnvFile+" if present)\n"+
			"Variables already set in the environment are not overridden")
}

// loadSettings reads .env, pgiban.yaml and the environment, in that order.
func loadSettings(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnvFile(globalFlags.envFile); err != nil {
		return fmt.Errorf("%w: %w", pgiban.ErrInvalidConfig, err)
	}

	file, err := loadConfigFile(globalFlags.configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", pgiban.ErrInvalidConfig, err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("%w: %w", pgiban.ErrInvalidConfig, err)
	}

	loaded = settings{file: file, env: env}
	return nil
}

// loadConfigFile loads an explicit config path, or pgiban.yaml from the
// working directory when it exists.
func loadConfigFile(path string) (*config.File, error) {
	if path != "" {
		file, err := config.LoadFile(path)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return file, err
	}

	file, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	return file, err
}

// silentError marks an error whose outcome the command already reported.
type silentError struct {
	err error
}

func (e *silentError) Error() string { return e.err.Error() }
func (e *silentError) Unwrap() error { return e.err }

// ShouldReport returns false for errors the command has already reported
// on its own output, e.g. rejected IBANs.
func ShouldReport(err error) bool {
	var silent *silentError
	return !errors.As(err, &silent)
}
