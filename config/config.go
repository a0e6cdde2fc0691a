// Package config loads ytfetch CLI configuration from a YAML file,
// layered over built-in defaults. Flags override both.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultConfigDir  = ".ytfetch"
	defaultConfigFile = "config.yaml"
)

// Config is the effective CLI configuration.
type Config struct {
	// TimeoutSeconds bounds the provider call. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// PreferredLanguages are tried in order when selecting a caption
	// track; the first available track is used when none match.
	PreferredLanguages []string `yaml:"preferred_languages"`
	// UserAgent overrides the HTTP User-Agent sent to the provider.
	UserAgent string      `yaml:"user_agent"`
	Cache     CacheConfig `yaml:"cache"`
}

// CacheConfig controls the optional SQLite transcript cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	// TTLHours defaults to 24 when zero.
	TTLHours int `yaml:"ttl_hours"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TimeoutSeconds:     30,
		PreferredLanguages: []string{"en", "en-US", "en-GB"},
		Cache: CacheConfig{
			Enabled:  false,
			TTLHours: 24,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve user home: %w", err)
	}
	return filepath.Join(home, defaultConfigDir, defaultConfigFile), nil
}

// Load reads a YAML config file and layers it over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- CLI path argument.
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads ~/.ytfetch/config.yaml when it exists, otherwise
// returns the defaults.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects configurations that cannot produce a working fetch.
func (c Config) Validate() error {
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must not be negative")
	}
	if c.Cache.TTLHours < 0 {
		return errors.New("cache.ttl_hours must not be negative")
	}
	return nil
}

// Timeout returns the provider call timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheTTL returns the cache entry lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}
