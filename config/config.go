// Package config loads editor configuration from a yaml file. A missing
// file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names a persistence backend.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Config holds the tunable editor settings.
type Config struct {
	ProjectName     string  `yaml:"projectName"`
	Backend         Backend `yaml:"backend"`
	StorePath       string  `yaml:"storePath"`
	HistoryCapacity int     `yaml:"historyCapacity"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		ProjectName:     "Untitled",
		Backend:         BackendFile,
		StorePath:       defaultStorePath(),
		HistoryCapacity: 50,
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".doodle"
	}
	return filepath.Join(home, ".doodle")
}

// Load reads the config at path, or returns defaults when path is empty or
// the file does not exist. A file that exists but cannot be parsed is an
// error; silently ignoring a typo'd config is worse than failing at start.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "Untitled"
	}
	if c.Backend == "" {
		c.Backend = BackendFile
	}
	if c.StorePath == "" {
		c.StorePath = defaultStorePath()
	}
	if c.HistoryCapacity <= 0 {
		c.HistoryCapacity = 50
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
}
