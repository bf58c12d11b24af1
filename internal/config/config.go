package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JPM1118/cimcheck/internal/logger"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = ".cimcheck.yml"

// Config holds all configuration for cimcheck.
type Config struct {
	Suite         SuiteConfig        `yaml:"suite"`
	GIF           GIFConfig          `yaml:"gif"`
	Notifications NotificationConfig `yaml:"notifications"`
	Log           LogConfig          `yaml:"log"`
}

// SuiteConfig lists the fixed sub-tests run before the GIF check.
type SuiteConfig struct {
	Workdir string       `yaml:"workdir"`
	Tests   []TestConfig `yaml:"tests"`
}

// TestConfig is one external test executable.
type TestConfig struct {
	Label   string   `yaml:"label"`
	Command []string `yaml:"command"`
}

// GIFConfig controls the structural GIF check.
type GIFConfig struct {
	ExpectedSize int `yaml:"expected_size"`
}

// NotificationConfig controls dashboard notifications.
type NotificationConfig struct {
	TerminalBell bool `yaml:"terminal_bell"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Defaults returns a Config with the standard CimBar test suite.
func Defaults() Config {
	return Config{
		Suite: SuiteConfig{
			Workdir: ".",
			Tests: []TestConfig{
				{Label: "Symbol round-trip (Node.js)", Command: []string{"node", "tests/test_symbols.js"}},
				{Label: "Reed-Solomon (Node.js)", Command: []string{"node", "tests/test_rs.js"}},
			},
		},
		GIF: GIFConfig{
			ExpectedSize: 256,
		},
		Notifications: NotificationConfig{
			TerminalBell: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// LoadFrom reads config from path and merges it with defaults.
// A missing file is not an error; defaults are used silently.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	//nolint:gosec // G304: config path is operator-provided
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	seen := make(map[string]bool, len(c.Suite.Tests))
	for i, tc := range c.Suite.Tests {
		if tc.Label == "" {
			return fmt.Errorf("suite.tests[%d]: label is required", i)
		}
		if len(tc.Command) == 0 || tc.Command[0] == "" {
			return fmt.Errorf("suite.tests[%d] (%s): command is required", i, tc.Label)
		}
		if seen[tc.Label] {
			return fmt.Errorf("suite.tests[%d]: duplicate label %q", i, tc.Label)
		}
		seen[tc.Label] = true
	}

	if s := c.GIF.ExpectedSize; s < 1 || s > 0xFFFF {
		return fmt.Errorf("gif.expected_size must be between 1 and 65535, got %d", s)
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}
