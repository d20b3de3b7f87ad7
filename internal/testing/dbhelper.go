// Package testing holds helpers for pgiban's PostgreSQL integration tests.
package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgiban/internal/db"
	"github.com/vvka-141/pgiban/internal/testinfra"
)

// ConnEnvVar names an existing database to test against instead of a container.
const ConnEnvVar = "PGIBAN_TEST_CONN"

var (
	containerOnce sync.Once
	containerConn string
	containerErr  error
)

func getOrStartContainer() (string, error) {
	containerOnce.Do(func() {
		ctr, err := testinfra.StartPostgres(context.Background())
		if err != nil {
			containerErr = err
			return
		}
		containerConn = ctr.ConnString
	})
	return containerConn, containerErr
}

// GetTestConnectionString returns $PGIBAN_TEST_CONN, or the connection string
// of a container started once per test binary. Skips the test when neither
// is available.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv(ConnEnvVar); connString != "" {
		return connString
	}

	connString, err := getOrStartContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", ConnEnvVar, err)
	}
	return connString
}

// SkipIfShort skips the test in -short mode.
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// Connect opens a pool through the standard connector. It is closed when the
// test completes.
func Connect(t *testing.T, connString string) *db.PoolAdapter {
	t.Helper()

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	conn, release, err := db.Open(context.Background(), db.NewStandardConnector(cfg, nil))
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(release)
	return conn
}

// CreateTestSchema creates a uniquely named schema and drops it, with
// everything in it, when the test completes.
func CreateTestSchema(t *testing.T, conn *db.PoolAdapter) string {
	t.Helper()

	ctx := context.Background()
	schema := "pgiban_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	quoted := pgx.Identifier{schema}.Sanitize()

	if _, err := conn.Exec(ctx, fmt.Sprintf("CREATE SCHEMA %s", quoted)); err != nil {
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		if _, err := conn.Exec(context.Background(), fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", quoted)); err != nil {
			t.Logf("Warning: Failed to drop schema %s: %v", schema, err)
		}
	})
	return schema
}
