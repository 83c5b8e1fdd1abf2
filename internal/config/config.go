package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a data directory.
const FileName = "fipe.yaml"

// Config represents the top-level fipe.yaml configuration.
type Config struct {
	Owner string      `yaml:"owner"`
	Parse ParseConfig `yaml:"parse"`
	Quick QuickConfig `yaml:"quick"`
	Git   GitConfig   `yaml:"git"`
	Log   LogConfig   `yaml:"log"`
}

// ParseConfig tunes statement detection.
type ParseConfig struct {
	// MinTextLength is the collapsed length below which a PDF is treated as
	// scanned.
	MinTextLength int `yaml:"min_text_length"`
	// MaxTextBytes bounds the text handed to the extractors.
	MaxTextBytes int `yaml:"max_text_bytes"`
	// BBVACardholder is the name printed after "Consumos" on BBVA statements.
	BBVACardholder string `yaml:"bbva_cardholder,omitempty"`
}

// QuickConfig controls the quick-entry shorthand.
type QuickConfig struct {
	DefaultAccount string            `yaml:"default_account"`
	YesterdayWord  string            `yaml:"yesterday_word"`
	Keywords       map[string]string `yaml:"keywords"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a fipe.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data directory.
func Default(owner string) *Config {
	return &Config{
		Owner: owner,
		Parse: ParseConfig{
			MinTextLength: 80,
			MaxTextBytes:  4 << 20,
		},
		Quick: QuickConfig{
			DefaultAccount: "cash_ars",
			YesterdayWord:  "ayer",
			Keywords: map[string]string{
				"bbva":     "bbva_credit",
				"galicia":  "galicia_credit_visa",
				"efectivo": "cash_ars",
			},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "fipe",
			AuthorEmail: "fipe@localhost",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate rejects values the importer cannot work with.
func (c *Config) Validate() error {
	if c.Parse.MinTextLength < 0 {
		return fmt.Errorf("parse.min_text_length must not be negative, got %d", c.Parse.MinTextLength)
	}
	if c.Parse.MaxTextBytes <= 0 {
		return fmt.Errorf("parse.max_text_bytes must be positive, got %d", c.Parse.MaxTextBytes)
	}
	if strings.TrimSpace(c.Quick.DefaultAccount) == "" {
		return fmt.Errorf("quick.default_account is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
