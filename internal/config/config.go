// Package config handles global curio configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the global configuration.
type Config struct {
	// Catalog is the default catalog directory used when a command
	// gives no explicit path.
	Catalog string `toml:"catalog"`

	// Bibtex holds BibTeX export preferences.
	Bibtex BibtexConfig `toml:"bibtex"`
}

// BibtexConfig mirrors the BibTeX exporter options so preferences
// persist between runs.
type BibtexConfig struct {
	// QuoteStyle is "braces" or "quotes".
	QuoteStyle string `toml:"quote_style"`

	// ExpandMacros writes macro values inline instead of @string
	// definitions.
	ExpandMacros bool `toml:"expand_macros"`

	// UseURLPackage wraps URL values in \url{}.
	UseURLPackage bool `toml:"use_url_package"`

	// SkipEmptyKeys drops entries without a citation key.
	SkipEmptyKeys bool `toml:"skip_empty_keys"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Bibtex: BibtexConfig{
			QuoteStyle:    "braces",
			UseURLPackage: true,
		},
	}
}

// Load loads the configuration from the default location.
// Returns defaults if the file doesn't exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path. Keys absent
// from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/curio/config.toml first (XDG style), then falls back
// to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "curio", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "curio", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}
