// Package configloader discovers and decodes marklint TOML configuration.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/marklint/pkg/config"
)

// fileConfig mirrors the on-disk TOML layout:
//
//	[linters.severity]
//	default = "warn"
//	line-length = "off"
//
//	[linters.settings.line-length]
//	line_length = 100
type fileConfig struct {
	Linters struct {
		Severity map[string]string         `toml:"severity"`
		Settings map[string]map[string]any `toml:"settings"`
	} `toml:"linters"`
}

// Load reads and decodes a configuration file.
func Load(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML configuration bytes.
//
// Unknown severity values are dropped (the rule falls back to the "default"
// entry, then to its built-in default); unknown aliases and option keys
// pass through untouched and are
// ignored by the engine.
func Parse(data []byte) (*config.Config, error) {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}

	cfg := config.New()
	for alias, value := range raw.Linters.Severity {
		sev := config.Severity(value)
		if !sev.IsValid() {
			continue
		}
		cfg.Severity[alias] = sev
	}
	for alias, options := range raw.Linters.Settings {
		cfg.Settings[alias] = options
	}
	return cfg, nil
}

// Resolve finds and loads the effective configuration for a working
// directory. Precedence: the explicit path (from --config), then the
// MARKLINT_CONFIG environment variable, then the first config file found
// searching upward from workDir. With nothing found, built-in defaults
// apply.
func Resolve(explicit, workDir string) (*config.Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	if fromEnv := os.Getenv(EnvConfigPath); fromEnv != "" {
		cfg, err := Load(fromEnv)
		return cfg, fromEnv, err
	}

	path, err := Discover(workDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config.New(), "", nil
		}
		return nil, "", err
	}
	if path == "" {
		return config.New(), "", nil
	}

	cfg, err := Load(path)
	return cfg, path, err
}
