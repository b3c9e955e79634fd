package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the environment variable that overrides the config path.
	EnvConfigPath = "JDPREP_CONFIG"
	// DefaultPath is read when neither the flag nor the env var is set.
	DefaultPath = "jdprep.yaml"

	defaultDBPath     = "jdprep.db"
	defaultHistoryKey = "placement_readiness_history"
	defaultFormat     = "text"
	defaultLevel      = "info"
)

// formatAliases are the short names --format also accepts.
var formatAliases = map[string]string{"md": "markdown", "yml": "yaml"}

// Config is the root configuration for jdprep.
type Config struct {
	Database DatabaseConfig
	History  HistoryConfig
	Output   OutputConfig
	Defaults DefaultsConfig
	Logging  LoggingConfig
}

// DatabaseConfig locates the SQLite file and the key the history lives under.
type DatabaseConfig struct {
	Path       string `validate:"required"`
	HistoryKey string `validate:"required"`
}

// HistoryConfig caps the number of kept analyses. Zero keeps everything.
type HistoryConfig struct {
	Limit int `validate:"min=0"`
}

// OutputConfig controls how reports are printed.
type OutputConfig struct {
	Format string `validate:"oneof=text markdown json yaml"`
	Color  bool
}

// DefaultsConfig fills company and role when the flags are empty.
type DefaultsConfig struct {
	Company string
	Role    string
}

// LoggingConfig sets the minimum log level.
type LoggingConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// rawConfig is used for YAML unmarshaling (snake_case fields, optional bools).
type rawConfig struct {
	Database rawDatabaseConfig `yaml:"database"`
	History  rawHistoryConfig  `yaml:"history"`
	Output   rawOutputConfig   `yaml:"output"`
	Defaults rawDefaultsConfig `yaml:"defaults"`
	Logging  rawLoggingConfig  `yaml:"logging"`
}

type rawDatabaseConfig struct {
	Path       string `yaml:"path"`
	HistoryKey string `yaml:"history_key"`
}

type rawHistoryConfig struct {
	Limit int `yaml:"limit"`
}

type rawOutputConfig struct {
	Format string `yaml:"format"`
	Color  *bool  `yaml:"color"`
}

type rawDefaultsConfig struct {
	Company string `yaml:"company"`
	Role    string `yaml:"role"`
}

type rawLoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: defaultDBPath, HistoryKey: defaultHistoryKey},
		Output:   OutputConfig{Format: defaultFormat, Color: true},
		Logging:  LoggingConfig{Level: defaultLevel},
	}
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if raw.Database.Path != "" {
		cfg.Database.Path = raw.Database.Path
	}
	if raw.Database.HistoryKey != "" {
		cfg.Database.HistoryKey = raw.Database.HistoryKey
	}
	cfg.History.Limit = raw.History.Limit
	if raw.Output.Format != "" {
		cfg.Output.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
		if full, ok := formatAliases[cfg.Output.Format]; ok {
			cfg.Output.Format = full
		}
	}
	if raw.Output.Color != nil {
		cfg.Output.Color = *raw.Output.Color
	}
	cfg.Defaults = DefaultsConfig{
		Company: strings.TrimSpace(raw.Defaults.Company),
		Role:    strings.TrimSpace(raw.Defaults.Role),
	}
	if raw.Logging.Level != "" {
		cfg.Logging.Level = strings.ToLower(raw.Logging.Level)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve picks the config file to read: the flag value, then $JDPREP_CONFIG,
// then DefaultPath. A missing DefaultPath yields Default(); a missing file
// that was asked for explicitly is an error.
func Resolve(flagPath string) (*Config, string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}

	cfg, err := Load(DefaultPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), "", nil
	}
	return cfg, DefaultPath, err
}

// fieldNames maps struct paths to the YAML keys users write.
var fieldNames = map[string]string{
	"Config.Database.Path":       "database.path",
	"Config.Database.HistoryKey": "database.history_key",
	"Config.History.Limit":       "history.limit",
	"Config.Output.Format":       "output.format",
	"Config.Logging.Level":       "logging.level",
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		name := fieldNames[fe.Namespace()]
		if name == "" {
			name = fe.Namespace()
		}
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", name))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must not be negative, got %v", name, fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s, got %q", name, strings.ReplaceAll(fe.Param(), " ", ", "), fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", name))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
