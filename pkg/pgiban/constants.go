package pgiban

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Every input was a valid IBAN / operation completed
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitInvalidIBAN     = 4  // At least one input or audited value was rejected
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied uninstall approval
	ExitExecutionFailed = 13 // SQL execution failed
	ExitNotInstalled    = 14 // pgiban objects are not installed in the target schema
)

const (
	// CountryCodeLength is the number of leading letters identifying the country.
	CountryCodeLength = 2

	// PrefixLength covers the country code and the two check digits.
	PrefixLength = 4

	// MinLength is the shortest input the validator will inspect further.
	// Anything shorter cannot hold a country code and check digits.
	MinLength = PrefixLength

	// MaxLength is the longest IBAN permitted by ISO 13616.
	MaxLength = 34
)

const (
	// DefaultSchema is where install/uninstall/audit operate when no schema is given.
	DefaultSchema = "public"

	// DefaultAuditBatchSize is the number of rows fetched per round trip during audit.
	DefaultAuditBatchSize = 1000

	// DefaultTimeout bounds a whole database command (install, uninstall, audit).
	DefaultTimeout = 3 * time.Minute

	// DefaultForceApprovalCountdown is the countdown duration before forced uninstall proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultDatabase is the database used when nothing else names one.
	DefaultDatabase = "postgres"
)
