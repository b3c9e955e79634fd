package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jdprep.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /tmp/prep.db
  history_key: my_history
history:
  limit: 25
output:
  format: Markdown
  color: false
defaults:
  company: "  Acme  "
  role: SDE
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/tmp/prep.db" || cfg.Database.HistoryKey != "my_history" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.History.Limit != 25 {
		t.Errorf("History.Limit = %d, want 25", cfg.History.Limit)
	}
	if cfg.Output.Format != "markdown" || cfg.Output.Color {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Defaults.Company != "Acme" || cfg.Defaults.Role != "SDE" {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	if cfg.Logging.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel = %v, want debug", cfg.Logging.SlogLevel())
	}
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Default()
	if *cfg != *want {
		t.Errorf("Load(empty) = %+v, want %+v", cfg, want)
	}
	if cfg.Database.Path != "jdprep.db" || cfg.Database.HistoryKey != "placement_readiness_history" {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if !cfg.Output.Color || cfg.Output.Format != "text" {
		t.Errorf("Output = %+v", cfg.Output)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("JDPREP_TEST_DIR", "/var/data")
	cfg, err := Load(writeConfig(t, "database:\n  path: ${JDPREP_TEST_DIR}/prep.db\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "/var/data/prep.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "output: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"negative limit", "history:\n  limit: -1\n"},
		{"unknown format", "output:\n  format: html\n"},
		{"unknown level", "logging:\n  level: verbose\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Fatal("Load: expected validation error")
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty path", func(c *Config) { c.Database.Path = "" }, "database.path must not be empty"},
		{"empty key", func(c *Config) { c.Database.HistoryKey = "" }, "database.history_key must not be empty"},
		{"negative limit", func(c *Config) { c.History.Limit = -2 }, "history.limit must not be negative, got -2"},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, `output.format must be one of text, markdown, json, yaml, got "html"`},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }, `logging.level must be one of debug, info, warn, error, got "verbose"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := validate(cfg)
			if err == nil {
				t.Fatal("validate: expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}

	if err := validate(Default()); err != nil {
		t.Errorf("validate(Default()) = %v", err)
	}
}

func TestLoad_FormatAliases(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"md", "markdown"},
		{"yml", "yaml"},
		{"JSON", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "output:\n  format: "+tt.in+"\n"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Output.Format != tt.want {
				t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	explicit := writeConfig(t, "history:\n  limit: 3\n")
	fromEnv := writeConfig(t, "history:\n  limit: 7\n")

	t.Run("flag wins over env", func(t *testing.T) {
		t.Setenv(EnvConfigPath, fromEnv)
		cfg, path, err := Resolve(explicit)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if path != explicit || cfg.History.Limit != 3 {
			t.Errorf("Resolve = %q limit %d", path, cfg.History.Limit)
		}
	})

	t.Run("env used without flag", func(t *testing.T) {
		t.Setenv(EnvConfigPath, fromEnv)
		cfg, path, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if path != fromEnv || cfg.History.Limit != 7 {
			t.Errorf("Resolve = %q limit %d", path, cfg.History.Limit)
		}
	})

	t.Run("missing explicit file errors", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		if _, _, err := Resolve(filepath.Join(t.TempDir(), "gone.yaml")); err == nil {
			t.Fatal("Resolve: expected error for missing explicit file")
		}
	})

	t.Run("missing default file falls back", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Chdir(t.TempDir())
		cfg, path, err := Resolve("")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if path != "" || *cfg != *Default() {
			t.Errorf("Resolve = %q %+v, want defaults", path, cfg)
		}
	})
}
