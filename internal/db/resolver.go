package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/vvka-141/pgiban/internal/config"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// GranularConnFlags holds the libpq-style connection flags (-h, -p, -U, -d).
// There is no password flag: use $PGPASSWORD, ~/.pgpass or a connection string.
type GranularConnFlags struct {
	Host        string
	Port        int
	Username    string
	Database    string
	SSLMode     string
	SSLCert     string
	SSLKey      string
	SSLRootCert string
}

// IsEmpty reports whether no server-selecting flag was given. Database is
// excluded because it may override the database of a connection string.
func (g *GranularConnFlags) IsEmpty() bool {
	return g == nil || (g.Host == "" && g.Port == 0 && g.Username == "" && g.SSLMode == "")
}

// CloudFlags selects and configures cloud IAM authentication.
// The Azure client secret is only read from $AZURE_CLIENT_SECRET.
type CloudFlags struct {
	AuthMethod     string
	AzureTenantID  string
	AzureClientID  string
	AWSRegion      string
	GoogleInstance string
}

// ParseAuthMethod maps a flag or pgiban.yaml value to an AuthMethod.
// The empty string means standard authentication.
func ParseAuthMethod(s string) (pgiban.AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return pgiban.AuthMethodStandard, nil
	case "aws", "aws-iam":
		return pgiban.AuthMethodAWSIAM, nil
	case "google", "gcp", "google-iam":
		return pgiban.AuthMethodGoogleIAM, nil
	case "azure", "entra", "azure-entra-id":
		return pgiban.AuthMethodAzureEntraID, nil
	}
	return 0, fmt.Errorf("auth method %q (expected standard, aws, google or azure): %w", s, pgiban.ErrUnsupportedAuthMethod)
}

// ResolveConnectionParams merges connection settings. Every parameter follows
// flag > environment > pgiban.yaml > default. The server itself comes from
// the first of:
//
//  1. --connection
//  2. $PGIBAN_CONNECTION_STRING or $DATABASE_URL, unless granular flags are set
//  3. granular flags, PG* variables and the connection section of pgiban.yaml
//
// Passing both --connection and granular flags is an error. Any of env and
// file may be nil.
func ResolveConnectionParams(
	connStringFlag string,
	flags *GranularConnFlags,
	cloud *CloudFlags,
	env *config.Env,
	file *config.File,
) (*pgiban.ConnectionConfig, error) {
	if flags == nil {
		flags = &GranularConnFlags{}
	}
	if cloud == nil {
		cloud = &CloudFlags{}
	}
	if env == nil {
		env = &config.Env{}
	}
	var pc config.ConnectionConfig
	if file != nil {
		pc = file.Connection
	}

	if connStringFlag != "" && !flags.IsEmpty() {
		return nil, fmt.Errorf(`cannot combine --connection with -h, -p, -U or --sslmode
Choose one approach:
  1. Connection string: --connection "postgresql://user@localhost:5432/mydb"
  2. Granular flags: -h localhost -p 5432 -U myuser -d mydb
  3. Environment variables: export PGHOST=localhost PGPORT=5432 PGUSER=myuser
%w`, pgiban.ErrInvalidConfig)
	}

	var (
		cfg *pgiban.ConnectionConfig
		err error
	)
	switch {
	case connStringFlag != "":
		cfg, err = fromConnectionString(connStringFlag, env)
	case flags.IsEmpty() && env.ConnectionURL() != "":
		cfg, err = fromConnectionString(env.ConnectionURL(), env)
	default:
		cfg = fromGranular(flags, env, pc)
	}
	if err != nil {
		return nil, err
	}

	if flags.Database != "" {
		cfg.Database = flags.Database
	}

	if err := applyAuth(cfg, cloud, env, pc); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromConnectionString(connStr string, env *config.Env) (*pgiban.ConnectionConfig, error) {
	cfg, err := ParseConnectionString(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string: %w: %w", pgiban.ErrInvalidConfig, err)
	}
	// libpq treats the environment as a fallback for what the string leaves out.
	if cfg.Password == "" {
		cfg.Password = env.PGPassword
	}
	return cfg, nil
}

func fromGranular(flags *GranularConnFlags, env *config.Env, pc config.ConnectionConfig) *pgiban.ConnectionConfig {
	cfg := newConnectionConfig()

	cfg.Host = firstNonEmpty(flags.Host, env.PGHost, pc.Host, defaultHost)
	cfg.Port = firstNonZero(flags.Port, env.PGPort, pc.Port, defaultPort)
	cfg.Username = firstNonEmpty(flags.Username, env.PGUser, pc.Username, os.Getenv("USER"), os.Getenv("USERNAME"))
	cfg.Database = firstNonEmpty(env.PGDatabase, pc.Database, pgiban.DefaultDatabase)
	cfg.SSLMode = firstNonEmpty(flags.SSLMode, env.PGSSLMode, pc.SSLMode, defaultSSLMode)
	cfg.SSLCert = firstNonEmpty(flags.SSLCert, pc.SSLCert)
	cfg.SSLKey = firstNonEmpty(flags.SSLKey, pc.SSLKey)
	cfg.SSLRootCert = firstNonEmpty(flags.SSLRootCert, pc.SSLRootCert)
	cfg.Password = env.PGPassword
	return cfg
}

// applyAuth sets the auth method and its parameters. Without an explicit
// method, Azure credentials in flags or environment select Azure Entra ID.
func applyAuth(cfg *pgiban.ConnectionConfig, cloud *CloudFlags, env *config.Env, pc config.ConnectionConfig) error {
	method, err := ParseAuthMethod(firstNonEmpty(cloud.AuthMethod, pc.AuthMethod))
	if err != nil {
		return err
	}

	cfg.AzureTenantID = firstNonEmpty(cloud.AzureTenantID, env.AzureTenantID, pc.AzureTenantID)
	cfg.AzureClientID = firstNonEmpty(cloud.AzureClientID, env.AzureClientID, pc.AzureClientID)
	cfg.AzureClientSecret = env.AzureClientSecret
	cfg.AWSRegion = firstNonEmpty(cloud.AWSRegion, env.AWSRegion, pc.AWSRegion)
	cfg.GoogleInstance = firstNonEmpty(cloud.GoogleInstance, pc.GoogleInstance)

	explicit := cloud.AuthMethod != "" || pc.AuthMethod != ""
	if !explicit && (cfg.AzureTenantID != "" || cfg.AzureClientID != "") {
		method = pgiban.AuthMethodAzureEntraID
	}
	cfg.AuthMethod = method
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
