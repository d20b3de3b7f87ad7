package pgext_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/pgiban/internal/pgext"
	"github.com/vvka-141/pgiban/internal/registry"
	testhelpers "github.com/vvka-141/pgiban/internal/testing"
	"github.com/vvka-141/pgiban/internal/validator"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

func installInFreshSchema(t *testing.T) (*pgext.Installer, pgiban.DBConnection, string) {
	t.Helper()
	conn := testhelpers.Connect(t, testhelpers.RequireDatabase(t))
	schema := testhelpers.CreateTestSchema(t, conn)

	inst := pgext.NewInstaller(registry.Default(), nil)
	require.NoError(t, inst.Install(context.Background(), conn, schema))
	return inst, conn, schema
}

func sqlValidate(t *testing.T, conn pgiban.DBConnection, schema, value string) bool {
	t.Helper()
	var ok bool
	query := fmt.Sprintf("SELECT %s.iban_validate($1)", pgx.Identifier{schema}.Sanitize())
	require.NoError(t, conn.QueryRow(context.Background(), query, value).Scan(&ok))
	return ok
}

func TestIntegration_InstallCreatesObjects(t *testing.T) {
	inst, conn, schema := installInFreshSchema(t)
	ctx := context.Background()

	installed, err := inst.Installed(ctx, conn, schema)
	require.NoError(t, err)
	assert.True(t, installed)

	var count int
	query := fmt.Sprintf("SELECT count(*) FROM %s.iban_specification", pgx.Identifier{schema}.Sanitize())
	require.NoError(t, conn.QueryRow(ctx, query).Scan(&count))
	assert.Equal(t, registry.Default().Len(), count)
}

func TestIntegration_SQLAgreesWithEngine(t *testing.T) {
	_, conn, schema := installInFreshSchema(t)
	v := validator.Default()

	inputs := []string{
		"GB29NWBK60161331926819",
		"gb29nwbk60161331926819",
		"GB28NWBK60161331926819",
		"GB29NWBK6016133192681",
		"XX00000000000000",
		"GB2",
		"GB29 NWBK 6016 1331 9268 19",
		"GB29NWBK6016133192681X",
		"GB!!NWBK60161331926819",
	}
	for _, spec := range registry.Default().Specifications() {
		inputs = append(inputs, spec.Example, strings.ToLower(spec.Example))
	}

	rng := rand.New(rand.NewPCG(7, 97))
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for _, spec := range registry.Default().Specifications() {
		b := []byte(spec.Example)
		b[4+rng.IntN(len(b)-4)] = alphabet[rng.IntN(len(alphabet))]
		inputs = append(inputs, string(b))
	}

	for _, in := range inputs {
		assert.Equal(t, v.IsValid(in), sqlValidate(t, conn, schema, in), "input %q", in)
	}
}

func TestIntegration_DomainRejectsInvalidValues(t *testing.T) {
	_, conn, schema := installInFreshSchema(t)
	ctx := context.Background()
	quoted := pgx.Identifier{schema}.Sanitize()

	_, err := conn.Exec(ctx, fmt.Sprintf("CREATE TABLE %s.accounts (id serial PRIMARY KEY, iban %s.iban)", quoted, quoted))
	require.NoError(t, err)

	insert := fmt.Sprintf("INSERT INTO %s.accounts (iban) VALUES ($1::text)", quoted)
	_, err = conn.Exec(ctx, insert, "DE89370400440532013000")
	assert.NoError(t, err)
	_, err = conn.Exec(ctx, insert, nil)
	assert.NoError(t, err, "NULL is allowed by the domain")

	_, err = conn.Exec(ctx, insert, "DE89370400440532013001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "violates check constraint")
}

func TestIntegration_InstallIsIdempotent(t *testing.T) {
	inst, conn, schema := installInFreshSchema(t)
	ctx := context.Background()

	require.NoError(t, inst.Install(ctx, conn, schema))
	assert.True(t, sqlValidate(t, conn, schema, "GB29NWBK60161331926819"))
}

func TestIntegration_Uninstall(t *testing.T) {
	inst, conn, schema := installInFreshSchema(t)
	ctx := context.Background()

	require.NoError(t, inst.Uninstall(ctx, conn, schema))

	installed, err := inst.Installed(ctx, conn, schema)
	require.NoError(t, err)
	assert.False(t, installed)

	err = inst.Uninstall(ctx, conn, schema)
	assert.True(t, errors.Is(err, pgiban.ErrNotInstalled))
}
