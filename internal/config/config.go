// Package config loads the zenith YAML configuration file.
//
// Every field has a default, so a missing file is not an error. Unknown keys
// are rejected to catch typos.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "zenith.yaml"

// Config is the whole configuration file.
type Config struct {
	AppName     string            `yaml:"app_name"`
	Storage     StorageConfig     `yaml:"storage"`
	Backup      BackupConfig      `yaml:"backup"`
	Log         LogConfig         `yaml:"log"`
	History     HistoryConfig     `yaml:"history"`
	Inspiration InspirationConfig `yaml:"inspiration"`
}

// StorageConfig locates the persisted document.
type StorageConfig struct {
	// Database is the SQLite file. Relative paths resolve against the
	// directory of the config file.
	Database string `yaml:"database"`

	// Key is the blob key the document is stored under.
	Key string `yaml:"key"`
}

// BackupConfig controls export and import.
type BackupConfig struct {
	Dir        string `yaml:"dir"`
	ImportMode string `yaml:"import_mode"` // strict or lenient
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// HistoryConfig controls undo.
type HistoryConfig struct {
	// Limit is how many steps undo can take. 0 disables undo.
	Limit int `yaml:"limit"`
}

// InspirationConfig configures the generative content provider.
type InspirationConfig struct {
	Endpoint      string        `yaml:"endpoint"`
	Model         string        `yaml:"model"`
	APIKeyEnv     string        `yaml:"api_key_env"`
	Timeout       time.Duration `yaml:"timeout"`
	RatePerMinute int           `yaml:"rate_per_minute"`
}

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	logFormats  = []string{"text", "json"}
	importModes = []string{"strict", "lenient"}
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		AppName: "zenith",
		Storage: StorageConfig{
			Database: "zenith.db",
			Key:      "zenith-app-data",
		},
		Backup: BackupConfig{
			Dir:        ".",
			ImportMode: "strict",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Limit: 50,
		},
		Inspiration: InspirationConfig{
			Endpoint:      "https://generativelanguage.googleapis.com/v1beta",
			Model:         "gemini-2.5-flash",
			APIKeyEnv:     "API_KEY",
			Timeout:       10 * time.Second,
			RatePerMinute: 6,
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields
// Default(). The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Storage.Database = resolve(filepath.Dir(path), cfg.Storage.Database)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// resolve joins a relative database path onto dir. SQLite's in-memory and
// URI forms are left alone.
func resolve(dir, db string) string {
	if db == "" || db == ":memory:" || filepath.IsAbs(db) || strings.HasPrefix(db, "file:") {
		return db
	}
	return filepath.Join(dir, db)
}

// Validate checks enum values and limits.
func (c Config) Validate() error {
	var errs []error
	if c.AppName == "" {
		errs = append(errs, errors.New("app_name must not be empty"))
	}
	if c.Storage.Database == "" {
		errs = append(errs, errors.New("storage.database must not be empty"))
	}
	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage.key must not be empty"))
	}
	if !slices.Contains(importModes, c.Backup.ImportMode) {
		errs = append(errs, fmt.Errorf("backup.import_mode %q must be one of %v", c.Backup.ImportMode, importModes))
	}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q must be one of %v", c.Log.Level, logLevels))
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q must be one of %v", c.Log.Format, logFormats))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit %d must not be negative", c.History.Limit))
	}
	if c.Inspiration.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("inspiration.timeout %s must be positive", c.Inspiration.Timeout))
	}
	if c.Inspiration.RatePerMinute < 0 {
		errs = append(errs, fmt.Errorf("inspiration.rate_per_minute %d must not be negative", c.Inspiration.RatePerMinute))
	}
	return errors.Join(errs...)
}

// SlogLevel maps Log.Level to a slog.Level. Unknown values map to info.
func (c Config) SlogLevel() slog.Level {
	switch c.Log.Level {
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

// APIKey returns the inspiration API key from the configured environment
// variable, or "" when unset.
func (c Config) APIKey() string {
	if c.Inspiration.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Inspiration.APIKeyEnv)
}
