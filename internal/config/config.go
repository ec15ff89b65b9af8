// Package config loads application settings from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the application. Zero values mean "use
// the built-in default" and are resolved by the consuming component.
type Config struct {
	// LibraryDir is the template library directory. Empty means
	// ~/.revisa/templates.
	LibraryDir string `yaml:"library_dir"`

	// DisableFallback turns off the built-in templates when the library
	// is unavailable or empty.
	DisableFallback bool `yaml:"disable_fallback"`

	// ClearHiddenFieldValues resets a field to its default the moment it
	// becomes hidden, instead of keeping the stale value around.
	ClearHiddenFieldValues bool `yaml:"clear_hidden_field_values"`

	// AchievementsURL is the base URL of the achievements service. Empty
	// disables the achievements commands.
	AchievementsURL string `yaml:"achievements_url"`

	// APIPort is the port the HTTP server listens on.
	APIPort int `yaml:"api_port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIPort: 8765,
	}
}

// Dir returns the application config directory, ~/.revisa. Caches and
// other application-owned state live here.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".revisa"), nil
}

// Path returns the default config file location, ~/.revisa/config.yaml.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, then applies REVISA_* environment
// overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("REVISA_LIBRARY_DIR"); v != "" {
		cfg.LibraryDir = v
	}
	if v := os.Getenv("REVISA_DISABLE_FALLBACK"); v != "" {
		cfg.DisableFallback = isTruthy(v)
	}
	if v := os.Getenv("REVISA_CLEAR_HIDDEN_FIELD_VALUES"); v != "" {
		cfg.ClearHiddenFieldValues = isTruthy(v)
	}
	if v := os.Getenv("REVISA_ACHIEVEMENTS_URL"); v != "" {
		cfg.AchievementsURL = v
	}
	if v := os.Getenv("REVISA_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.APIPort = port
		}
	}
}

func isTruthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
