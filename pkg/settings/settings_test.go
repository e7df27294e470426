package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesigner/pkg/settings"
)

func TestDefault(t *testing.T) {
	cfg := settings.Default()
	if cfg.DefaultFormTemplate != "formdesigner/form" {
		t.Fatalf("unexpected default template %q", cfg.DefaultFormTemplate)
	}
	if cfg.Addr != ":8080" || cfg.DatabaseDSN != "file:formdesigner.db" {
		t.Fatalf("unexpected defaults %#v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := "addr: \":9000\"\ndefault_form_template: site/form\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("FORMDESIGNER_ADDR", ":9100")
	t.Setenv("FORMDESIGNER_LOG_LEVEL", "  ")

	cfg, err := settings.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := settings.Default()
	want.Addr = ":9100"
	want.DefaultFormTemplate = "site/form"
	want.LogLevel = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_WithoutFile(t *testing.T) {
	t.Setenv("FORMDESIGNER_DATABASE_DSN", ":memory:")

	cfg, err := settings.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseDSN != ":memory:" {
		t.Fatalf("expected env override, got %q", cfg.DatabaseDSN)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("port: 80\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	blank := filepath.Join(dir, "blank.yaml")
	if err := os.WriteFile(blank, []byte("addr: \"\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := map[string]string{
		"missing file":  filepath.Join(dir, "missing.yaml"),
		"unknown field": unknown,
		"blank addr":    blank,
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := settings.Load(path); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
