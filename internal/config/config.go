package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// FileName is the name Load looks for in a directory.
const FileName = "pgiban.yaml"

// ConnectionConfig is the connection section of pgiban.yaml.
// Passwords are deliberately absent; use PGPASSWORD or a token-based auth method.
type ConnectionConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Username       string `yaml:"username"`
	Database       string `yaml:"database"`
	SSLMode        string `yaml:"sslmode"`
	SSLCert        string `yaml:"sslcert,omitempty"`
	SSLKey         string `yaml:"sslkey,omitempty"`
	SSLRootCert    string `yaml:"sslrootcert,omitempty"`
	AuthMethod     string `yaml:"auth_method,omitempty"`
	AzureTenantID  string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID  string `yaml:"azure_client_id,omitempty"`
	AWSRegion      string `yaml:"aws_region,omitempty"`
	GoogleInstance string `yaml:"google_instance,omitempty"`
}

// InstallConfig is the install section of pgiban.yaml.
type InstallConfig struct {
	Schema string `yaml:"schema"`
}

// AuditConfig is the audit section of pgiban.yaml.
type AuditConfig struct {
	Schema    string `yaml:"schema"`
	Table     string `yaml:"table"`
	Column    string `yaml:"column"`
	Key       string `yaml:"key"`
	BatchSize int    `yaml:"batch_size"`
	Limit     int    `yaml:"limit"`
}

// File is the content of pgiban.yaml.
type File struct {
	Connection ConnectionConfig `yaml:"connection"`
	Install    InstallConfig    `yaml:"install"`
	Audit      AuditConfig      `yaml:"audit"`
	Timeout    string           `yaml:"timeout"`
}

// Load reads pgiban.yaml from dir.
func Load(dir string) (*File, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile reads a config file from an explicit path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// TimeoutDuration parses Timeout. An empty value yields 0.
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f == nil || f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in %s: %w", f.Timeout, FileName, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout in %s cannot be negative: %s", FileName, f.Timeout)
	}
	return d, nil
}
