package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/keyscout/keyscout/pkg/search"
)

// Config holds all configuration for keyscout.
// Configuration can come from a YAML file or environment variables.
// Environment variables always override YAML values.
type Config struct {
	// Dir is the directory scanned for delimited files.
	Dir string `yaml:"dir" env:"KEYSCOUT_DIR" env-default:"."`

	// ExcludeGlob filters out files by name, e.g. generated header
	// fragments that accompany exports.
	ExcludeGlob string `yaml:"exclude_glob" env:"KEYSCOUT_EXCLUDE_GLOB" env-default:"*_header_[0-9]*.csv"`

	// MaxKeyLength is the hard ceiling on candidate key size shared by
	// every strategy.
	MaxKeyLength int `yaml:"max_key_length" env:"KEYSCOUT_MAX_KEY_LENGTH" env-default:"5"`

	// StrategiesStr is a comma-separated strategy order (fd, linear,
	// smart, exhaustive). Empty means the default order, which depends
	// on oracle availability.
	StrategiesStr string `yaml:"strategies" env:"KEYSCOUT_STRATEGIES" env-default:""`

	// OracleCommand is the functional-dependency discovery executable
	// looked up on PATH at startup. Empty disables the FD strategy.
	OracleCommand string `yaml:"oracle_command" env:"KEYSCOUT_ORACLE_COMMAND" env-default:"hyfd"`

	// Progress enables per-level progress bars on stderr.
	Progress bool `yaml:"progress" env:"KEYSCOUT_PROGRESS" env-default:"true"`

	// LogPath is the run log file, written alongside console output.
	LogPath string `yaml:"log_path" env:"KEYSCOUT_LOG_PATH" env-default:"keyscout.log"`

	// Strategies is the parsed StrategiesStr; nil when unset.
	Strategies []search.Strategy `yaml:"-"`
}

// Load reads configuration from the given YAML file with environment
// variable overrides. A missing file is not an error: environment
// variables and defaults alone are enough to run.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.parseStrategies(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseStrategies converts StrategiesStr into the typed order.
func (c *Config) parseStrategies() error {
	if strings.TrimSpace(c.StrategiesStr) == "" {
		c.Strategies = nil
		return nil
	}
	for _, token := range strings.Split(c.StrategiesStr, ",") {
		s, err := search.ParseStrategy(token)
		if err != nil {
			return fmt.Errorf("invalid strategies config: %w", err)
		}
		c.Strategies = append(c.Strategies, s)
	}
	return nil
}

func (c *Config) validate() error {
	if c.MaxKeyLength < 1 {
		return fmt.Errorf("max_key_length must be positive, got %d", c.MaxKeyLength)
	}
	if c.Dir == "" {
		return fmt.Errorf("dir must not be empty")
	}
	return nil
}
