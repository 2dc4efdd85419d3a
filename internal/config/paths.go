package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/changelogtxt/config.yml
// - macOS: ~/Library/Application Support/changelogtxt/config.yml
// - Windows: %APPDATA%\changelogtxt\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yml"), nil
}

// UserConfigDir returns the path to the user-level config directory.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changelogtxt"), nil
}

// ProjectConfigPath returns the path to the project-level YAML config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".changelogtxt.yml"
}

// ProjectJSONConfigPath returns the path to the project-level JSON config file.
func ProjectJSONConfigPath() string {
	return ".changelogtxt.json"
}
