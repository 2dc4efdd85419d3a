// Package config provides hierarchical configuration management for changelogtxt using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.changelogtxt.yml or .changelogtxt.json) > user config (~/.config/changelogtxt/config.yml)
// > defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override configuration keys.
const EnvPrefix = "CHANGELOGTXT_"

// Output formats accepted by the output key.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Configuration represents the changelogtxt CLI configuration
type Configuration struct {
	// FileName is the changelog file searched for when a directory is given.
	// Can be set via CHANGELOGTXT_FILE_NAME env var.
	FileName string `koanf:"file_name" json:"file_name" yaml:"file_name" validate:"required,basename"`

	// UnreleasedLabel is how the unreleased section is shown in terminal, JSON and YAML output.
	UnreleasedLabel string `koanf:"unreleased_label" json:"unreleased_label" yaml:"unreleased_label" validate:"required"`

	// StrictContinuation rejects a non-bullet line in a section that has no change yet.
	StrictContinuation bool `koanf:"strict_continuation" json:"strict_continuation" yaml:"strict_continuation"`

	Plain   bool   `koanf:"plain" json:"plain" yaml:"plain"`       // Disable colored output
	Verbose bool   `koanf:"verbose" json:"verbose" yaml:"verbose"` // Debug logging to stderr
	Output  string `koanf:"output" json:"output" yaml:"output" validate:"oneof=text json yaml"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .changelogtxt.yml)
	ProjectConfigPath string
	// UserConfigPath overrides the user config path (default: UserConfigPath())
	UserConfigPath string
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses warnings
	SkipWarnings bool
}

// LoadWithOptions loads configuration from defaults, the user config, the project
// config and CHANGELOGTXT_ variables, later sources winning.
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if err := loadUserConfig(k, opts.UserConfigPath); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath, warningWriter, opts.SkipWarnings); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config when present.
func loadUserConfig(k *koanf.Koanf, customPath string) error {
	path := customPath
	if path == "" {
		path, _ = UserConfigPath()
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadYAMLConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config. YAML is preferred; the JSON file is used
// only when no YAML file exists, with a warning when both are present.
func loadProjectConfig(k *koanf.Koanf, customPath string, warningWriter io.Writer, skipWarnings bool) error {
	if customPath != "" {
		if !fileExists(customPath) {
			return nil
		}
		if strings.HasSuffix(customPath, ".json") {
			return loadJSONConfig(k, customPath, "project")
		}
		return loadYAMLConfig(k, customPath, "project")
	}

	yamlPath := ProjectConfigPath()
	jsonPath := ProjectJSONConfigPath()
	yamlExists := fileExists(yamlPath)
	jsonExists := fileExists(jsonPath)

	switch {
	case yamlExists:
		if err := loadYAMLConfig(k, yamlPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if jsonExists && !skipWarnings {
			fmt.Fprintf(warningWriter, "Warning: both %s and %s found (using %s)\n\n", yamlPath, jsonPath, yamlPath)
		}
	case jsonExists:
		if err := loadJSONConfig(k, jsonPath, "project"); err != nil {
			return fmt.Errorf("loading project JSON config: %w", err)
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
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

	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
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
// Example: CHANGELOGTXT_FILE_NAME -> file_name
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
