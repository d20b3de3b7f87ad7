package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

// Env holds the environment variables pgiban reads.
// See https://www.postgresql.org/docs/current/libpq-envars.html for the PG* names.
type Env struct {
	PGHost     string `env:"PGHOST"`
	PGPort     int    `env:"PGPORT"`
	PGUser     string `env:"PGUSER"`
	PGPassword string `env:"PGPASSWORD"`
	PGDatabase string `env:"PGDATABASE"`
	PGSSLMode  string `env:"PGSSLMODE"`

	// ConnectionString takes priority over DatabaseURL.
	ConnectionString string `env:"PGIBAN_CONNECTION_STRING"`
	DatabaseURL      string `env:"DATABASE_URL"`

	AzureTenantID     string `env:"AZURE_TENANT_ID"`
	AzureClientID     string `env:"AZURE_CLIENT_ID"`
	AzureClientSecret string `env:"AZURE_CLIENT_SECRET"`

	AWSRegion string `env:"AWS_REGION"`
}

// LoadEnv parses the process environment.
func LoadEnv() (*Env, error) {
	return parseEnv(env.Options{})
}

// LoadEnvFrom parses an explicit environment instead of the process one.
func LoadEnvFrom(environ map[string]string) (*Env, error) {
	return parseEnv(env.Options{Environment: environ})
}

func parseEnv(opts env.Options) (*Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return &e, nil
}

// ConnectionURL returns the connection string from the environment, if any.
func (e *Env) ConnectionURL() string {
	if e.ConnectionString != "" {
		return e.ConnectionString
	}
	return e.DatabaseURL
}

// HasAzureCredentials reports whether Azure Entra ID variables are set.
func (e *Env) HasAzureCredentials() bool {
	return e.AzureTenantID != "" || e.AzureClientID != ""
}

// LoadEnvFile loads variables from path into the process environment without
// overriding variables that are already set. An empty path loads
// DefaultEnvFile if it exists; a missing explicitly named file is an error.
func LoadEnvFile(path string) error {
	if path == "" {
		err := godotenv.Load(DefaultEnvFile)
		if err != nil && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}
