// Package config defines medley's configuration, loaded through viper
// from ~/.config/medley/config.yaml with MEDLEY_ environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete medley configuration
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers"`
	Cache     CacheConfig     `mapstructure:"cache"`
	UI        UIConfig        `mapstructure:"ui"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProvidersConfig controls which package managers medley talks to
type ProvidersConfig struct {
	// Default is the provider used for installs with no explicit
	// provider prefix and for single-provider operations.
	// Empty means "first available provider".
	Default string `mapstructure:"default"`
	// Disabled lists provider names to skip even when their binary
	// is on PATH.
	Disabled []string `mapstructure:"disabled"`
}

// CacheConfig controls the on-disk search result cache
type CacheConfig struct {
	// Dir is the directory holding per-provider search caches.
	// Empty means ~/.cache/medley.
	Dir string `mapstructure:"dir"`
	// Enabled turns search caching off entirely when false
	Enabled bool `mapstructure:"enabled"`
}

// UIConfig controls terminal output and prompting
type UIConfig struct {
	// AutoConfirm skips interactive package selection and prompts,
	// taking the best match instead. Always implied when stdout is
	// not a terminal.
	AutoConfirm bool `mapstructure:"auto_confirm"`
	// Color forces styled output on or off. Options: "auto", "always", "never"
	Color string `mapstructure:"color"`
}

// LoggingConfig controls the JSON debug log
type LoggingConfig struct {
	// Level is the minimum severity to record
	// Options: "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// File is the log destination. Empty disables file logging.
	File string `mapstructure:"file"`
}

// ResolveDir returns the resolved cache directory path, expanding a
// leading ~ and falling back to ~/.cache/medley when unset.
func (c *CacheConfig) ResolveDir() string {
	if c.Dir == "" {
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "medley")
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return ".medley-cache"
		}
		return filepath.Join(home, ".cache", "medley")
	}

	path := c.Dir
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// IsDisabled reports whether the named provider is configured off.
func (p *ProvidersConfig) IsDisabled(name string) bool {
	for _, d := range p.Disabled {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Default:  "",
			Disabled: nil,
		},
		Cache: CacheConfig{
			Dir:     "",
			Enabled: true,
		},
		UI: UIConfig{
			AutoConfirm: false,
			Color:       "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// SetDefaults registers all default values with viper. Must be called
// before viper reads the config file so unset keys resolve correctly.
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("providers.default", defaults.Providers.Default)
	viper.SetDefault("providers.disabled", defaults.Providers.Disabled)

	viper.SetDefault("cache.dir", defaults.Cache.Dir)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)

	viper.SetDefault("ui.auto_confirm", defaults.UI.AutoConfirm)
	viper.SetDefault("ui.color", defaults.UI.Color)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "medley")
	}
	// Fall back to ~/.config/medley
	home, err := os.UserHomeDir()
	if err != nil {
		return ".medley"
	}
	return filepath.Join(home, ".config", "medley")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
