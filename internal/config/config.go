package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the config file location relative to the working
// directory.
const DefaultConfigPath = ".stagehand/config.yaml"

// Config represents stagehand configuration options
type Config struct {
	// Concurrent selects the concurrent runner instead of the synchronous one
	Concurrent bool `yaml:"concurrent"`

	// FailFast stops a run at the first failing task
	FailFast bool `yaml:"fail_fast"`

	// NoColor disables colored output even on a TTY
	NoColor bool `yaml:"no_color"`

	// Quiet suppresses per-task lines and prints only the summary
	Quiet bool `yaml:"quiet"`

	// DefaultDelay is applied to tasks that set no delay of their own
	DefaultDelay time.Duration `yaml:"-"`

	// DefaultTimeout is applied to tasks that set no timeout of their own
	DefaultTimeout time.Duration `yaml:"-"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings in YAML and are parsed separately.
	type yamlConfig struct {
		Concurrent     bool   `yaml:"concurrent"`
		FailFast       bool   `yaml:"fail_fast"`
		NoColor        bool   `yaml:"no_color"`
		Quiet          bool   `yaml:"quiet"`
		DefaultDelay   string `yaml:"default_delay"`
		DefaultTimeout string `yaml:"default_timeout"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Concurrent = yamlCfg.Concurrent
	cfg.FailFast = yamlCfg.FailFast
	cfg.NoColor = yamlCfg.NoColor
	cfg.Quiet = yamlCfg.Quiet

	if yamlCfg.DefaultDelay != "" {
		cfg.DefaultDelay, err = time.ParseDuration(yamlCfg.DefaultDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid default_delay %q: %w", yamlCfg.DefaultDelay, err)
		}
	}
	if yamlCfg.DefaultTimeout != "" {
		cfg.DefaultTimeout, err = time.ParseDuration(yamlCfg.DefaultTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid default_timeout %q: %w", yamlCfg.DefaultTimeout, err)
		}
	}
	return cfg, nil
}

// LoadConfigFromDir loads configuration from dir/.stagehand/config.yaml
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, DefaultConfigPath))
}
