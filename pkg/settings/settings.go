// Package settings holds process-wide configuration for the form designer
// server. Values come from defaults, then an optional YAML file, then
// FORMDESIGNER_* environment variables.
package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMDESIGNER_"

// Settings is read once at startup and treated as read-only afterwards.
type Settings struct {
	// DefaultFormTemplate renders definitions that do not name a template.
	DefaultFormTemplate string `yaml:"default_form_template"`
	// TemplatesDir layers templates from disk over the embedded bundle.
	TemplatesDir    string `yaml:"templates_dir"`
	Addr            string `yaml:"addr"`
	DatabaseDSN     string `yaml:"database_dsn"`
	DefinitionsPath string `yaml:"definitions_path"`
	PagesPath       string `yaml:"pages_path"`
	LogLevel        string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		DefaultFormTemplate: "formdesigner/form",
		Addr:                ":8080",
		DatabaseDSN:         "file:formdesigner.db",
		DefinitionsPath:     "forms.yaml",
		PagesPath:           "pages.yaml",
		LogLevel:            "info",
	}
}

// Load returns defaults overlaid with the YAML file at path (when non-empty)
// and the process environment.
func Load(path string) (Settings, error) {
	cfg := Default()
	if path = strings.TrimSpace(path); path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Settings{}, fmt.Errorf("settings: open %q: %w", path, err)
		}
		defer file.Close()
		if err := cfg.decode(file); err != nil {
			return Settings{}, fmt.Errorf("settings: %q: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func (s *Settings) decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from FORMDESIGNER_<FIELD> variables. Empty
// values are ignored.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	for suffix, field := range s.envFields() {
		if value, ok := lookup(EnvPrefix + suffix); ok && strings.TrimSpace(value) != "" {
			*field = strings.TrimSpace(value)
		}
	}
}

func (s *Settings) envFields() map[string]*string {
	return map[string]*string{
		"DEFAULT_FORM_TEMPLATE": &s.DefaultFormTemplate,
		"TEMPLATES_DIR":         &s.TemplatesDir,
		"ADDR":                  &s.Addr,
		"DATABASE_DSN":          &s.DatabaseDSN,
		"DEFINITIONS_PATH":      &s.DefinitionsPath,
		"PAGES_PATH":            &s.PagesPath,
		"LOG_LEVEL":             &s.LogLevel,
	}
}

// Validate reports settings the server cannot start with.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.DefaultFormTemplate) == "" {
		return fmt.Errorf("settings: default_form_template is required")
	}
	if strings.TrimSpace(s.Addr) == "" {
		return fmt.Errorf("settings: addr is required")
	}
	return nil
}
