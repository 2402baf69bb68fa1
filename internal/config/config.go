// Package config provides hierarchical configuration management for whatsnew using koanf.
// Configuration is loaded with priority: environment variables > project config (.whatsnew/config.yml,
// or .whatsnew/config.json) > user config (~/.config/whatsnew/config.yml) > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/whatsnew/internal/changelog"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Changelog sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceRemote   = "remote"
)

// Read-state backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "WHATSNEW_"

// Configuration represents the whatsnew configuration
type Configuration struct {
	// Source selects where the catalogue is loaded from.
	// Can be set via WHATSNEW_SOURCE env var.
	Source string `koanf:"source" validate:"oneof=embedded file remote"`
	// ChangelogPath is the catalogue file used when Source is "file".
	ChangelogPath string `koanf:"changelog_path"`
	// RemoteURL is the served catalogue used when Source is "remote".
	RemoteURL string `koanf:"remote_url" validate:"omitempty,catalogue_url"`
	// RemoteTimeout bounds the served catalogue fetch.
	RemoteTimeout time.Duration `koanf:"remote_timeout" validate:"min=0"`

	StateBackend string `koanf:"state_backend" validate:"oneof=file sqlite memory"`
	StateDir     string `koanf:"state_dir" validate:"required"`
	// Profile keys the read state; each installation profile has its own.
	Profile string `koanf:"profile" validate:"required,excludesall=/\\"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`
	Plain     bool   `koanf:"plain"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .whatsnew/config.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: XDG config dir)
	UserConfigPath string
	// SkipUser skips the user-level config entirely
	SkipUser bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUser {
		if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	defaults := GetDefaults()
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		p, err := UserConfigPath()
		if err != nil {
			return nil // No resolvable config dir: defaults apply
		}
		path = p
	}

	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config. YAML is preferred; the JSON
// variant is read only when no YAML file exists.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path = ProjectConfigPath()
		if !fileExists(path) {
			path = ProjectJSONConfigPath()
		}
	}

	if !fileExists(path) {
		return nil
	}
	if err := loadConfigFile(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadConfigFile validates and loads a YAML or JSON config file, chosen by extension.
func loadConfigFile(k *koanf.Koanf, path, configType string) error {
	parser := koanf.Parser(yaml.Parser())
	if strings.EqualFold(filepath.Ext(path), ".json") {
		parser = json.Parser()
	} else if err := checkYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	stateDir, err := filepath.Abs(expandHomePath(cfg.StateDir))
	if err != nil {
		return nil, &ValidationError{FilePath: "config", Field: "state_dir", Message: err.Error()}
	}
	cfg.StateDir = stateDir
	cfg.ChangelogPath = expandHomePath(cfg.ChangelogPath)
	if cfg.RemoteTimeout <= 0 {
		cfg.RemoteTimeout = changelog.DefaultRemoteTimeout
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: WHATSNEW_STATE_BACKEND -> state_backend
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// WriteTo writes the effective configuration as YAML-style key/value lines.
func (c *Configuration) WriteTo(w io.Writer) (int64, error) {
	lines := []struct {
		key   string
		value any
	}{
		{"source", c.Source},
		{"changelog_path", c.ChangelogPath},
		{"remote_url", c.RemoteURL},
		{"remote_timeout", c.RemoteTimeout.String()},
		{"state_backend", c.StateBackend},
		{"state_dir", c.StateDir},
		{"profile", c.Profile},
		{"log_level", c.LogLevel},
		{"log_format", c.LogFormat},
		{"plain", c.Plain},
	}

	var total int64
	for _, l := range lines {
		n, err := fmt.Fprintf(w, "%s: %v\n", l.key, l.value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
