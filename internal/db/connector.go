package db

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vvka-141/pgiban/internal/logging"
	"github.com/vvka-141/pgiban/internal/retry"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

// Pool limits. Install runs in one transaction and audit streams over one
// cursor, so a small pool is enough.
const (
	DefaultMaxConns        = 4
	DefaultMinConns        = 0
	DefaultMaxConnIdleTime = 5 * time.Minute
)

// tokenExpiryWarning is how close to expiry a freshly acquired token must be
// before a warning is logged.
const tokenExpiryWarning = 5 * time.Minute

func configurePool(poolConfig *pgxpool.Config, logger pgiban.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("%s: %s", notice.Severity, notice.Message)
	}
}

// PoolConnector connects with a password, or with a token from a
// TokenProvider used as the password. Transient failures are retried.
type PoolConnector struct {
	config   *pgiban.ConnectionConfig
	tokens   TokenProvider
	executor *retry.Executor
	logger   pgiban.Logger
}

// NewStandardConnector authenticates with config.Password (or .pgpass / PGPASSWORD
// as pgx resolves them). A nil logger discards output.
func NewStandardConnector(config *pgiban.ConnectionConfig, logger pgiban.Logger) *PoolConnector {
	return NewTokenConnector(config, nil, logger)
}

// NewTokenConnector acquires a fresh token on every connection attempt.
// A nil provider falls back to password authentication.
func NewTokenConnector(config *pgiban.ConnectionConfig, tokens TokenProvider, logger pgiban.Logger) *PoolConnector {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &PoolConnector{
		config:   config,
		tokens:   tokens,
		executor: retry.NewDefaultExecutor(logger),
		logger:   logger,
	}
}

// Connect opens and pings a pool. The caller closes it.
func (c *PoolConnector) Connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := retry.Value(ctx, c.executor, c.connectOnce)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pgiban.ErrConnectionFailed, err)
	}
	return pool, nil
}

func (c *PoolConnector) connectOnce(ctx context.Context) (*pgxpool.Pool, error) {
	cfg := *c.config
	if c.tokens != nil {
		token, expiresOn, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire token from %s: %w", c.tokens, err)
		}
		if remaining := time.Until(expiresOn); remaining < tokenExpiryWarning {
			c.logger.Info("Warning: token from %s expires in %v", c.tokens, remaining.Round(time.Second))
		}
		cfg.Password = token
	}

	c.logger.Verbose("Connecting to %s:%d/%s as %q (%s)", cfg.Host, cfg.Port, cfg.Database, cfg.Username, cfg.AuthMethod)

	poolConfig, err := pgxpool.ParseConfig(BuildConnectionString(&cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}
	configurePool(poolConfig, c.logger)

	return openPool(ctx, poolConfig, &cfg)
}

// openPool creates the pool and pings it, closing it again if the ping fails.
func openPool(ctx context.Context, poolConfig *pgxpool.Config, cfg *pgiban.ConnectionConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, wrapConnectionError(err, cfg)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, wrapConnectionError(err, cfg)
	}
	return pool, nil
}

// NewConnector returns the connector matching config.AuthMethod.
func NewConnector(config *pgiban.ConnectionConfig, logger pgiban.Logger) (pgiban.Connector, error) {
	switch config.AuthMethod {
	case pgiban.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil

	case pgiban.AuthMethodAWSIAM:
		endpoint := fmt.Sprintf("%s:%d", config.Host, config.Port)
		tokens, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(config, tokens, logger), nil

	case pgiban.AuthMethodAzureEntraID:
		tokens, err := newAzureTokenProvider(config)
		if err != nil {
			return nil, err
		}
		return NewTokenConnector(config, tokens, logger), nil

	case pgiban.AuthMethodGoogleIAM:
		if config.GoogleInstance == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires --google-instance (project:region:instance): %w", pgiban.ErrInvalidConfig)
		}
		if config.Username == "" {
			return nil, fmt.Errorf("Google Cloud SQL IAM auth requires username (-U): %w", pgiban.ErrInvalidConfig)
		}
		return NewGoogleCloudSQLConnector(config, logger), nil
	}
	return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, pgiban.ErrUnsupportedAuthMethod)
}

// newAzureTokenProvider uses a service principal when all three credentials
// are present, the default credential chain otherwise.
func newAzureTokenProvider(config *pgiban.ConnectionConfig) (TokenProvider, error) {
	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		return NewAzureServicePrincipalProvider(config.AzureTenantID, config.AzureClientID, config.AzureClientSecret)
	}
	return NewAzureDefaultCredentialProvider()
}

// Open connects and returns the pool wrapped as a pgiban.DBConnection, with a
// function that releases the pool and any resources the connector holds.
func Open(ctx context.Context, connector pgiban.Connector) (*PoolAdapter, func(), error) {
	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		pool.Close()
		if closer, ok := connector.(io.Closer); ok {
			_ = closer.Close()
		}
	}
	return NewPoolAdapter(pool), release, nil
}

// connectionHint turns a recognizable connection failure into advice.
type connectionHint struct {
	matches func(msg string) bool
	explain func(cfg *pgiban.ConnectionConfig) string
}

func containsAny(substrings ...string) func(string) bool {
	return func(msg string) bool {
		for _, s := range substrings {
			if strings.Contains(msg, s) {
				return true
			}
		}
		return false
	}
}

var connectionHints = []connectionHint{
	{
		matches: containsAny("connection refused", "actively refused"),
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`connection refused to %s:%d

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection`, cfg.Host, cfg.Port, cfg.Host, cfg.Port)
		},
	},
	{
		matches: containsAny("no such host", "no host"),
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`cannot resolve host %q

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable`, cfg.Host)
		},
	},
	{
		matches: containsAny("password authentication failed"),
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`password authentication failed for user %q

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username
  - Expired cloud IAM token`, cfg.Username)
		},
	},
	{
		matches: func(msg string) bool {
			return strings.Contains(msg, "database") && strings.Contains(msg, "does not exist")
		},
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`database %q does not exist

pgiban installs into an existing database. Create it first:
  createdb %s`, cfg.Database, cfg.Database)
		},
	},
	{
		matches: containsAny("timeout", "timed out"),
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`connection timed out to %s:%d

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host or port`, cfg.Host, cfg.Port)
		},
	},
	{
		matches: containsAny("ssl", "tls", "certificate"),
		explain: func(*pgiban.ConnectionConfig) string {
			return `SSL/TLS connection error

Possible causes:
  - Server requires SSL but --sslmode is wrong
  - Certificate verification failed (check --sslrootcert)
  - Client certificate missing (check --sslcert, --sslkey)`
		},
	},
	{
		matches: containsAny("too many connections"),
		explain: func(cfg *pgiban.ConnectionConfig) string {
			return fmt.Sprintf(`too many connections to database %q

max_connections is exhausted on the server; retry later or free idle sessions.`, cfg.Database)
		},
	},
}

// wrapConnectionError adds actionable guidance to raw pgx connection errors.
// The original error stays reachable through errors.Is/As.
func wrapConnectionError(err error, cfg *pgiban.ConnectionConfig) error {
	msg := strings.ToLower(err.Error())
	for _, hint := range connectionHints {
		if hint.matches(msg) {
			return fmt.Errorf("%s\n\nOriginal error: %w", hint.explain(cfg), err)
		}
	}
	return fmt.Errorf("failed to connect to database: %w", err)
}
