// Package config holds the ocrkit configuration file format, the supported
// language table with alias normalization, and the supported input
// extensions. Precedence for every setting is flag > environment > config
// file > default.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	// EnvLanguage overrides the default engine language.
	EnvLanguage = "OCRKIT_LANGUAGE"

	// EnvOutputDir overrides the output directory.
	EnvOutputDir = "OCRKIT_OUTPUT_DIR"

	// EnvLogLevel overrides the logging level.
	EnvLogLevel = "OCRKIT_LOG_LEVEL"

	// EnvLogFormat overrides the logging format.
	EnvLogFormat = "OCRKIT_LOG_FORMAT"
)

// DefaultLanguage is the engine language used when nothing else is
// configured, matching the engine's own default.
const DefaultLanguage = "ch"

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Config is the on-disk configuration file shape.
type Config struct {
	// Language is the default engine language code or alias.
	Language string `yaml:"language"`

	// OutputDir is where run writes per-item text files and summary.json
	// when --output is not given.
	OutputDir string `yaml:"output_dir"`

	// OnError is the default batch error policy: continue, stop or abort.
	OnError string `yaml:"on_error"`

	// ItemTimeout bounds each per-item engine call, e.g. "30s".
	// Empty disables the timeout.
	ItemTimeout string `yaml:"item_timeout"`

	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language: DefaultLanguage,
		OnError:  "continue",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the default config file location,
// $HOME/.ocrkit/config.yaml. An empty string means no home directory could
// be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ocrkit", "config.yaml")
}

// Load reads the config file at path, layered over Default. A missing file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variable overrides onto cfg.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
}
