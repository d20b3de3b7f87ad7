package pgiban

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CharClass is the tag character of a structure block. It selects the set of
// characters a block accepts.
//
// Several tags share a character set (A, B and W; L, U and C).
type CharClass byte

const (
	ClassNumeric       CharClass = 'F' // 0-9
	ClassUpperAlpha    CharClass = 'L' // A-Z
	ClassUpper         CharClass = 'U' // A-Z
	ClassAlphanumeric  CharClass = 'A' // 0-9 A-Z
	ClassAlphanumericB CharClass = 'B' // 0-9 A-Z
	ClassAlphanumericW CharClass = 'W' // 0-9 A-Z
	ClassAlpha         CharClass = 'C' // A-Z, input is uppercased before matching
)

// IsValid returns true if c is one of the defined tags.
func (c CharClass) IsValid() bool {
	switch c {
	case ClassNumeric, ClassUpperAlpha, ClassUpper,
		ClassAlphanumeric, ClassAlphanumericB, ClassAlphanumericW, ClassAlpha:
		return true
	}
	return false
}

// Allows reports whether b belongs to the class's character set.
// Undefined tags allow nothing.
func (c CharClass) Allows(b byte) bool {
	isDigit := b >= '0' && b <= '9'
	isUpper := b >= 'A' && b <= 'Z'

	switch c {
	case ClassNumeric:
		return isDigit
	case ClassUpperAlpha, ClassUpper, ClassAlpha:
		return isUpper
	case ClassAlphanumeric, ClassAlphanumericB, ClassAlphanumericW:
		return isDigit || isUpper
	}
	return false
}

// CharSet returns the bracket-expression body for the class, e.g. "0-9A-Z".
// Undefined tags return an empty string.
func (c CharClass) CharSet() string {
	switch c {
	case ClassNumeric:
		return "0-9"
	case ClassUpperAlpha, ClassUpper, ClassAlpha:
		return "A-Z"
	case ClassAlphanumeric, ClassAlphanumericB, ClassAlphanumericW:
		return "0-9A-Z"
	}
	return ""
}

// String returns a human-readable description of the class.
func (c CharClass) String() string {
	switch c {
	case ClassNumeric:
		return "numeric"
	case ClassUpperAlpha, ClassUpper:
		return "upper-alpha"
	case ClassAlphanumeric, ClassAlphanumericB, ClassAlphanumericW:
		return "alphanumeric"
	case ClassAlpha:
		return "alpha"
	default:
		return fmt.Sprintf("Unknown(%q)", byte(c))
	}
}

// Block is one group of a BBAN structure: Repeat characters of Class.
type Block struct {
	Class  CharClass
	Repeat int
}

// Specification is the IBAN rule for one country.
//
// Structure is the compact descriptor of the BBAN (the part after the country
// code and check digits): fixed 3-character blocks, a tag followed by a
// two-digit repeat count. "F04F04A12" means 4 digits, 4 digits, 12 alphanumerics.
type Specification struct {
	// CountryCode is the ISO 3166-1 alpha-2 code, two uppercase letters.
	CountryCode string

	// Length is the exact total IBAN length for this country.
	Length int

	// Structure is the BBAN structure descriptor.
	Structure string

	// Example is a known-valid IBAN for this country.
	Example string
}

// BBANLength returns the number of characters following the check digits.
func (s Specification) BBANLength() int {
	return s.Length - PrefixLength
}

// ConnectionConfig represents parsed connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// SSL client certificate paths (verify-ca / verify-full setups)
	SSLCert     string
	SSLKey      string
	SSLRootCert string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	// Additional connection parameters
	AppName          string
	ConnectTimeout   time.Duration
	AdditionalParams map[string]string

	// Azure Entra ID authentication parameters (used when AuthMethod is AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used,
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// AWSRegion is required for AuthMethodAWSIAM.
	AWSRegion string

	// GoogleInstance is the Cloud SQL instance connection name (project:region:instance)
	// required for AuthMethodGoogleIAM.
	GoogleInstance string
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// InstallConfig contains the parameters of an install or uninstall operation.
type InstallConfig struct {
	// ConnectionString is the PostgreSQL connection string of the target database.
	ConnectionString string

	// Schema receives the specification table, the validation function and the domain.
	Schema string

	// DryRun renders the SQL without touching the database.
	DryRun bool

	// Force bypasses interactive approval on uninstall.
	Force bool

	// Timeout is the global timeout for the whole operation.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the InstallConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *InstallConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" && !c.DryRun {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.Schema == "" {
		errs = append(errs, fmt.Errorf("Schema is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AuditConfig contains the parameters of an audit over a table column.
type AuditConfig struct {
	// ConnectionString is the PostgreSQL connection string of the audited database.
	ConnectionString string

	// Schema, Table and Column locate the values to validate.
	Schema string
	Table  string
	Column string

	// KeyColumn identifies offending rows in the report. Optional; when empty
	// the row number of the scan is reported instead.
	KeyColumn string

	// BatchSize is the number of rows fetched per round trip.
	BatchSize int

	// Limit caps the number of violations kept in the report (0 = unlimited).
	Limit int

	// Timeout is the global timeout for the whole audit.
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the AuditConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *AuditConfig) Validate() error {
	var errs []error

	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}

	if c.Table == "" {
		errs = append(errs, fmt.Errorf("Table is required: %w", ErrInvalidConfig))
	}

	if c.Column == "" {
		errs = append(errs, fmt.Errorf("Column is required: %w", ErrInvalidConfig))
	}

	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Limit < 0 {
		errs = append(errs, fmt.Errorf("limit cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// Violation is one audited value the validator rejected.
type Violation struct {
	// Key is the value of the key column, or the scan row number.
	Key string

	// Value is the stored text exactly as read.
	Value string

	// Reason explains why the value was rejected.
	Reason string
}

// AuditReport summarizes an audit run.
type AuditReport struct {
	// RunID identifies the run in logs and JSON output.
	RunID uuid.UUID

	// Target is the qualified column that was audited, e.g. public.accounts.iban.
	Target string

	// Scanned counts every row read, NULLs included.
	Scanned int

	// Nulls counts rows whose value was NULL; NULL is not a violation.
	Nulls int

	// Invalid counts every rejected value, even those past the report limit.
	Invalid int

	// Violations holds the rejected values, at most AuditConfig.Limit of them.
	Violations []Violation

	// Truncated is true when Invalid exceeds len(Violations).
	Truncated bool

	// Duration is the wall-clock time of the scan.
	Duration time.Duration
}

// Valid returns the number of non-NULL values that passed validation.
func (r *AuditReport) Valid() int {
	return r.Scanned - r.Nulls - r.Invalid
}

// Clean returns true if no value was rejected.
func (r *AuditReport) Clean() bool {
	return r.Invalid == 0
}
