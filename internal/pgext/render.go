package pgext

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

//go:embed install.sql.tmpl
var installSQL string

//go:embed uninstall.sql.tmpl
var uninstallSQL string

var (
	installTemplate   = template.Must(template.New("install").Funcs(funcs).Parse(installSQL))
	uninstallTemplate = template.Must(template.New("uninstall").Funcs(funcs).Parse(uninstallSQL))
)

var funcs = template.FuncMap{"literal": quoteLiteral}

// maxIdentifierLength is PostgreSQL's NAMEDATALEN - 1.
const maxIdentifierLength = 63

type specRow struct {
	CountryCode string
	Length      int
	Structure   string
	Pattern     string
	Example     string
}

type scriptData struct {
	Schema     string // quoted identifier
	SchemaName string // raw name, for catalog lookups
	MinLength  int
	Specs      []specRow
}

// Render returns the install script for schema, seeded from reg.
func Render(reg *registry.Registry, schema string) (string, error) {
	if err := ValidateSchemaName(schema); err != nil {
		return "", err
	}

	data := scriptData{
		Schema:     pgx.Identifier{schema}.Sanitize(),
		SchemaName: schema,
		MinLength:  pgiban.MinLength,
	}
	for _, code := range reg.Codes() {
		entry, _ := reg.Lookup(code)
		spec := entry.Specification
		data.Specs = append(data.Specs, specRow{
			CountryCode: spec.CountryCode,
			Length:      spec.Length,
			Structure:   spec.Structure,
			Pattern:     entry.Matcher.Pattern(),
			Example:     spec.Example,
		})
	}
	return execute(installTemplate, data)
}

// RenderUninstall returns the script that drops every object Render creates.
func RenderUninstall(schema string) (string, error) {
	if err := ValidateSchemaName(schema); err != nil {
		return "", err
	}
	return execute(uninstallTemplate, scriptData{
		Schema:     pgx.Identifier{schema}.Sanitize(),
		SchemaName: schema,
	})
}

func execute(t *template.Template, data scriptData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s script: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// ValidateSchemaName rejects names PostgreSQL would truncate or that could
// terminate the dollar-quoted function bodies.
func ValidateSchemaName(schema string) error {
	switch {
	case schema == "":
		return fmt.Errorf("schema name is empty: %w", pgiban.ErrInvalidConfig)
	case len(schema) > maxIdentifierLength:
		return fmt.Errorf("schema name %q exceeds %d bytes: %w", schema, maxIdentifierLength, pgiban.ErrInvalidConfig)
	case strings.ContainsAny(schema, "$\x00"):
		return fmt.Errorf("schema name %q contains '$' or NUL: %w", schema, pgiban.ErrInvalidConfig)
	}
	return nil
}

// quoteLiteral renders s as a standard-conforming SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
