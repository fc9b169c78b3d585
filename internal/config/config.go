// Package config loads and persists the application settings file. The
// category and preset stores keep their own JSON files; this file holds
// everything around them: default directory, organize defaults, ignore
// patterns, and watch behavior.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
type Config struct {
	Directories struct {
		Default string `yaml:"default"` // Directory organized when none is given
	} `yaml:"directories"`
	Settings struct {
		Recursive    bool   `yaml:"recursive"`     // Include subfolders
		DeleteEmpty  bool   `yaml:"delete_empty"`  // Remove emptied subfolders afterwards
		DryRun       bool   `yaml:"dry_run"`       // Simulate operations
		IgnoreHidden bool   `yaml:"ignore_hidden"` // Skip dotfiles and dot-directories
		MaxDepth     int    `yaml:"max_depth"`     // Recursion depth limit, 0 = unlimited
		LogLevel     string `yaml:"log_level"`     // debug, info, warn, or error
	} `yaml:"settings"`
	Ignore []string `yaml:"ignore"` // Glob patterns for files to leave alone
	Paths  struct {
		Categories string `yaml:"categories"` // Categories JSON file
		Presets    string `yaml:"presets"`    // Presets JSON file
	} `yaml:"paths"`
	Watch struct {
		Debounce int `yaml:"debounce"` // Seconds of quiet before a watch-triggered run
	} `yaml:"watch"`
}

// LoadConfig loads configuration from the default location
// (~/.config/clair/config.yaml).
func LoadConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(filepath.Join(dir, "config.yaml"))
}

// LoadConfigFile loads configuration from a specific file path. If the
// file doesn't exist, returns the default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var tempCfg Config
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if tempCfg.Directories.Default != "" {
		cfg.Directories.Default = tempCfg.Directories.Default
	}
	cfg.Settings.Recursive = tempCfg.Settings.Recursive
	cfg.Settings.DeleteEmpty = tempCfg.Settings.DeleteEmpty
	cfg.Settings.DryRun = tempCfg.Settings.DryRun
	cfg.Settings.IgnoreHidden = tempCfg.Settings.IgnoreHidden
	if tempCfg.Settings.MaxDepth != 0 {
		cfg.Settings.MaxDepth = tempCfg.Settings.MaxDepth
	}
	if tempCfg.Settings.LogLevel != "" {
		cfg.Settings.LogLevel = tempCfg.Settings.LogLevel
	}
	if len(tempCfg.Ignore) > 0 {
		cfg.Ignore = tempCfg.Ignore
	}
	if tempCfg.Paths.Categories != "" {
		cfg.Paths.Categories = tempCfg.Paths.Categories
	}
	if tempCfg.Paths.Presets != "" {
		cfg.Paths.Presets = tempCfg.Paths.Presets
	}
	if tempCfg.Watch.Debounce > 0 {
		cfg.Watch.Debounce = tempCfg.Watch.Debounce
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() (*Config, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.Directories.Default = "."
	cfg.Settings.LogLevel = "info"
	cfg.Ignore = []string{"*.part", "*.crdownload", "*.tmp"}
	cfg.Paths.Categories = filepath.Join(dir, "categories.json")
	cfg.Paths.Presets = filepath.Join(dir, "presets.json")
	cfg.Watch.Debounce = 2
	return cfg, nil
}

// New creates a new configuration instance with default values, falling
// back to the working directory when the home directory is unknown.
func New() *Config {
	cfg, err := defaultConfig()
	if err != nil {
		cfg = &Config{}
		cfg.Directories.Default = "."
		cfg.Settings.LogLevel = "info"
		cfg.Paths.Categories = "categories.json"
		cfg.Paths.Presets = "presets.json"
		cfg.Watch.Debounce = 2
	}
	return cfg
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "clair"), nil
}

// SaveConfig saves the configuration to the specified file, creating
// parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Settings.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Settings.LogLevel)
	}
	if c.Settings.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0")
	}
	if c.Watch.Debounce < 1 {
		return fmt.Errorf("watch debounce must be >= 1 second")
	}
	if c.Paths.Categories == "" || c.Paths.Presets == "" {
		return fmt.Errorf("store file paths are required")
	}
	for i, pattern := range c.Ignore {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("ignore pattern %d (%q): %w", i, pattern, err)
		}
	}
	return nil
}

// CompileIgnore compiles the ignore patterns for the organize engine.
// Validate has already checked them, so compilation failures here only
// happen on configs built in code.
func (c *Config) CompileIgnore() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Ignore))
	for _, pattern := range c.Ignore {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
