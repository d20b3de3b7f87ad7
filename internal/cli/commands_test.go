package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/pgiban/internal/config"
	"github.com/vvka-141/pgiban/internal/registry"
	"github.com/vvka-141/pgiban/internal/tui"
	"github.com/vvka-141/pgiban/pkg/pgiban"
)

func resetValidateFlags(t *testing.T) *bytes.Buffer {
	t.Helper()
	validateFlags = validateFlagValues{}
	var out bytes.Buffer
	validateCmd.SetOut(&out)
	validateCmd.SetIn(strings.NewReader(""))
	t.Cleanup(func() {
		validateFlags = validateFlagValues{}
		validateCmd.SetOut(nil)
		validateCmd.SetIn(nil)
	})
	return &out
}

func TestValidateCmd_AllValid(t *testing.T) {
	out := resetValidateFlags(t)

	err := runValidate(validateCmd, []string{"DE89370400440532013000", "gb82west12345698765432"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := "DE89370400440532013000\tvalid\ngb82west12345698765432\tvalid\n"
	if out.String() != want {
		t.Errorf("Expected output:\n%q\ngot:\n%q", want, out.String())
	}
}

func TestValidateCmd_Rejected(t *testing.T) {
	out := resetValidateFlags(t)

	err := runValidate(validateCmd, []string{"DE89370400440532013000", "DE89370400440532013001", "XX00"})
	if err == nil {
		t.Fatal("Expected error when an input is rejected")
	}
	if code := pgiban.ExitCodeForError(err); code != pgiban.ExitInvalidIBAN {
		t.Errorf("Expected exit code %d, got %d", pgiban.ExitInvalidIBAN, code)
	}
	if ShouldReport(err) {
		t.Error("Expected rejection error to be silent")
	}
	if !strings.Contains(err.Error(), "2 of 3") {
		t.Errorf("Expected count in error, got: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[1] != "DE89370400440532013001\tinvalid: checksum mismatch" {
		t.Errorf("Unexpected line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "XX00\tinvalid: unknown country code") {
		t.Errorf("Unexpected line: %q", lines[2])
	}
}

func TestValidateCmd_Quiet(t *testing.T) {
	out := resetValidateFlags(t)
	validateFlags.quiet = true

	err := runValidate(validateCmd, []string{"DE89370400440532013001"})
	if pgiban.ExitCodeForError(err) != pgiban.ExitInvalidIBAN {
		t.Errorf("Expected invalid IBAN exit code, got error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Expected no output, got %q", out.String())
	}
}

func TestValidateCmd_JSON(t *testing.T) {
	out := resetValidateFlags(t)
	validateFlags.json = true

	_ = runValidate(validateCmd, []string{"de89370400440532013000", "DE8937040044053201300"})

	dec := json.NewDecoder(out)
	var first, second validateResult
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("Failed to decode first line: %v", err)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("Failed to decode second line: %v", err)
	}

	if !first.Valid || first.IBAN != "DE89370400440532013000" || first.Reason != "" {
		t.Errorf("Unexpected first result: %+v", first)
	}
	if second.Valid || second.IBAN != "" || !strings.HasPrefix(second.Reason, "length mismatch") {
		t.Errorf("Unexpected second result: %+v", second)
	}
}

func TestValidateCmd_Stdin(t *testing.T) {
	out := resetValidateFlags(t)
	validateCmd.SetIn(strings.NewReader("DE89370400440532013000\r\n\nGB82WEST12345698765432\n"))

	if err := runValidate(validateCmd, []string{"-"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Count(out.String(), "\tvalid\n") != 2 {
		t.Errorf("Expected 2 valid lines, got:\n%s", out.String())
	}
}

func TestValidateCmd_InteractiveWithoutTerminal(t *testing.T) {
	resetValidateFlags(t)
	t.Setenv(tui.NonInteractiveEnvVar, "1")
	validateFlags.interactive = true

	err := runValidate(validateCmd, nil)
	if !errors.Is(err, pgiban.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got: %v", err)
	}
}

func TestCollectInputs(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{"args win over stdin", "IGNORED\n", []string{"A", "B"}, []string{"A", "B"}},
		{"dash reads stdin", "A\nB\n", []string{"-"}, []string{"A", "B"}},
		{"no args reads stdin", "A\r\n", nil, []string{"A"}},
		{"blank lines skipped", "\n\nA\n\n", nil, []string{"A"}},
		{"inner spaces kept", "DE89 3704\n", nil, []string{"DE89 3704"}},
		{"empty stdin", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := collectInputs(strings.NewReader(tt.stdin), tt.args)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSpecRows(t *testing.T) {
	reg := registry.Default()

	t.Run("whole registry", func(t *testing.T) {
		rows, err := specRows(reg, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != reg.Len() {
			t.Errorf("Expected %d rows, got %d", reg.Len(), len(rows))
		}
	})

	t.Run("selected codes are case-insensitive", func(t *testing.T) {
		rows, err := specRows(reg, []string{"de", "GB"})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}
		want := []string{"DE", "22", "F08F10", "^([0-9]{8})([0-9]{10})$", "DE89370400440532013000"}
		if strings.Join(rows[0], "|") != strings.Join(want, "|") {
			t.Errorf("Expected %q, got %q", want, rows[0])
		}
	})

	t.Run("unknown codes", func(t *testing.T) {
		_, err := specRows(reg, []string{"DE", "XX", "yy"})
		if err == nil {
			t.Fatal("Expected error for unknown codes")
		}
		if pgiban.ExitCodeForError(err) != pgiban.ExitConfigError {
			t.Errorf("Expected config exit code, got error: %v", err)
		}
		if !strings.Contains(err.Error(), "XX, yy") {
			t.Errorf("Expected unknown codes in error, got: %v", err)
		}
	})
}

func TestSpecsOutput(t *testing.T) {
	rows, err := specRows(registry.Default(), []string{"NO"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var tsv bytes.Buffer
	writeSpecsTSV(&tsv, rows)
	want := "CODE\tLENGTH\tSTRUCTURE\tPATTERN\tEXAMPLE\nNO\t15\tF04F06F01\t^([0-9]{4})([0-9]{6})([0-9]{1})$\tNO9386011117947\n"
	if tsv.String() != want {
		t.Errorf("Expected:\n%q\ngot:\n%q", want, tsv.String())
	}

	rendered := renderSpecsTable(rows)
	for _, s := range []string{"CODE", "NO", "F04F06F01", "NO9386011117947"} {
		if !strings.Contains(rendered, s) {
			t.Errorf("Expected table to contain %q, got:\n%s", s, rendered)
		}
	}
}

func TestResolveSchema(t *testing.T) {
	if got := resolveSchema("flag", "file"); got != "flag" {
		t.Errorf("Expected flag to win, got %q", got)
	}
	if got := resolveSchema("", "file"); got != "file" {
		t.Errorf("Expected file value, got %q", got)
	}
	if got := resolveSchema("", ""); got != pgiban.DefaultSchema {
		t.Errorf("Expected default schema, got %q", got)
	}
}

func TestBuildInstallConfig_DryRunSkipsConnection(t *testing.T) {
	installFlags = installFlagValues{dryRun: true}
	t.Cleanup(func() { installFlags = installFlagValues{} })

	s := settings{file: &config.File{Install: config.InstallConfig{Schema: "banking"}}}
	cfg, connConfig, err := buildInstallConfig(installCmd, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Schema != "banking" {
		t.Errorf("Expected schema from pgiban.yaml, got %q", cfg.Schema)
	}
	if connConfig != nil || cfg.ConnectionString != "" {
		t.Error("Expected no connection for a dry run")
	}
	if cfg.Timeout != pgiban.DefaultTimeout {
		t.Errorf("Expected default timeout, got %s", cfg.Timeout)
	}
}

func TestBuildInstallConfig_InvalidSchema(t *testing.T) {
	installFlags = installFlagValues{dryRun: true, schema: "bad$name"}
	t.Cleanup(func() { installFlags = installFlagValues{} })

	_, _, err := buildInstallConfig(installCmd, settings{})
	if pgiban.ExitCodeForError(err) != pgiban.ExitConfigError {
		t.Errorf("Expected config error, got: %v", err)
	}
}

func TestBuildInstallConfig_ConnectionAndTimeoutFromFile(t *testing.T) {
	installFlags = installFlagValues{}
	t.Cleanup(func() { installFlags = installFlagValues{} })

	s := settings{
		env: &config.Env{},
		file: &config.File{
			Timeout: "45s",
			Connection: config.ConnectionConfig{
				Host:     "db.internal",
				Port:     6432,
				Username: "app",
				Database: "ledger",
			},
		},
	}
	cfg, connConfig, err := buildInstallConfig(installCmd, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if connConfig.Host != "db.internal" || connConfig.Port != 6432 || connConfig.Database != "ledger" {
		t.Errorf("Unexpected connection: %+v", connConfig)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("Expected timeout from pgiban.yaml, got %s", cfg.Timeout)
	}
	if !strings.Contains(cfg.ConnectionString, "db.internal") {
		t.Errorf("Expected host in connection string, got %q", cfg.ConnectionString)
	}
}

func TestBuildUninstallConfig_RequiresForceWithoutTerminal(t *testing.T) {
	uninstallFlags = uninstallFlagValues{}
	t.Cleanup(func() { uninstallFlags = uninstallFlagValues{} })
	t.Setenv(tui.NonInteractiveEnvVar, "1")

	_, _, err := buildUninstallConfig(uninstallCmd, settings{})
	if !errors.Is(err, pgiban.ErrApprovalDenied) {
		t.Fatalf("Expected ErrApprovalDenied, got: %v", err)
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("Expected hint about --force, got: %v", err)
	}
}

func TestBuildUninstallConfig_Force(t *testing.T) {
	uninstallFlags = uninstallFlagValues{force: true, schema: "banking"}
	uninstallFlags.conn.connection = "postgresql://app@localhost/ledger"
	t.Cleanup(func() { uninstallFlags = uninstallFlagValues{} })
	t.Setenv(tui.NonInteractiveEnvVar, "1")

	cfg, connConfig, err := buildUninstallConfig(uninstallCmd, settings{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.Force || cfg.Schema != "banking" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if connConfig.Database != "ledger" {
		t.Errorf("Expected database from connection string, got %q", connConfig.Database)
	}
}

func TestBuildAuditConfig_MergesFile(t *testing.T) {
	auditFlags = auditFlagValues{column: "account_iban"}
	auditFlags.conn.connection = "postgresql://app@localhost/ledger"
	t.Cleanup(func() { auditFlags = auditFlagValues{} })

	s := settings{file: &config.File{Audit: config.AuditConfig{
		Schema:    "banking",
		Table:     "accounts",
		Column:    "iban",
		Key:       "id",
		BatchSize: 50,
		Limit:     10,
	}}}

	cfg, _, err := buildAuditConfig(auditCmd, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Schema != "banking" || cfg.Table != "accounts" || cfg.KeyColumn != "id" {
		t.Errorf("Expected values from pgiban.yaml, got %+v", cfg)
	}
	if cfg.Column != "account_iban" {
		t.Errorf("Expected --column to win, got %q", cfg.Column)
	}
	if cfg.BatchSize != 50 || cfg.Limit != 10 {
		t.Errorf("Expected batch size and limit from pgiban.yaml, got %d and %d", cfg.BatchSize, cfg.Limit)
	}
}

func TestBuildAuditConfig_MissingTarget(t *testing.T) {
	auditFlags = auditFlagValues{}
	auditFlags.conn.connection = "postgresql://app@localhost/ledger"
	t.Cleanup(func() { auditFlags = auditFlagValues{} })

	_, _, err := buildAuditConfig(auditCmd, settings{})
	if err == nil {
		t.Fatal("Expected error for missing table and column")
	}
	for _, s := range []string{"Table", "Column"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("Expected %q in error, got: %v", s, err)
		}
	}
	if pgiban.ExitCodeForError(err) != pgiban.ExitConfigError {
		t.Errorf("Expected config exit code, got error: %v", err)
	}
}

func sampleReport() *pgiban.AuditReport {
	return &pgiban.AuditReport{
		RunID:   uuid.MustParse("6f1c2a4e-6a1b-4d5e-9a51-1c2d3e4f5a6b"),
		Target:  "public.accounts.iban",
		Scanned: 5,
		Nulls:   1,
		Invalid: 2,
		Violations: []pgiban.Violation{
			{Key: "7", Value: "DE00", Reason: "length mismatch"},
		},
		Truncated: true,
		Duration:  1500 * time.Millisecond,
	}
}

func TestWriteAuditText(t *testing.T) {
	var out bytes.Buffer
	writeAuditText(&out, sampleReport())

	text := out.String()
	for _, s := range []string{
		"7\tDE00\tlength mismatch\n",
		"public.accounts.iban",
		"2 invalid",
		"5 scanned, 2 valid, 1 null",
		"Only the first 1 violations",
		"6f1c2a4e-6a1b-4d5e-9a51-1c2d3e4f5a6b",
	} {
		if !strings.Contains(text, s) {
			t.Errorf("Expected output to contain %q, got:\n%s", s, text)
		}
	}
}

func TestWriteAuditJSON(t *testing.T) {
	var out bytes.Buffer
	if err := writeAuditJSON(&out, sampleReport()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var got auditReportJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON: %v\n%s", err, out.String())
	}
	if got.Valid != 2 || got.Invalid != 2 || !got.Truncated || got.DurationMS != 1500 {
		t.Errorf("Unexpected report: %+v", got)
	}
	if len(got.Violations) != 1 || got.Violations[0].Key != "7" {
		t.Errorf("Unexpected violations: %+v", got.Violations)
	}
}

func TestWriteAuditJSON_EmptyViolationsIsArray(t *testing.T) {
	var out bytes.Buffer
	if err := writeAuditJSON(&out, &pgiban.AuditReport{Target: "public.t.c"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), `"violations": []`) {
		t.Errorf("Expected empty array, got:\n%s", out.String())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("explicit missing path", func(t *testing.T) {
		_, err := loadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("Expected ErrConfigNotFound, got: %v", err)
		}
	})

	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(path, []byte("install:\n  schema: banking\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		file, err := loadConfigFile(path)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if file.Install.Schema != "banking" {
			t.Errorf("Expected schema banking, got %q", file.Install.Schema)
		}
	})

	t.Run("no file in working directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		file, err := loadConfigFile("")
		if err != nil || file != nil {
			t.Errorf("Expected nil file and nil error, got %v, %v", file, err)
		}
	})
}

func TestShouldReport(t *testing.T) {
	if !ShouldReport(errors.New("boom")) {
		t.Error("Expected plain errors to be reported")
	}
	if ShouldReport(&silentError{err: pgiban.ErrInvalidIBAN}) {
		t.Error("Expected silent errors not to be reported")
	}
}
