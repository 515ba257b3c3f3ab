package config

import (
	"os"
	"path/filepath"
)

// Project config file names, resolved relative to the repository root.
const (
	ProjectConfigFile     = ".sdk-lints.yml"
	ProjectJSONConfigFile = ".sdk-lints.json"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/sdk-lints/config.yml
// - macOS: ~/Library/Application Support/sdk-lints/config.yml
// - Windows: %APPDATA%\sdk-lints\config.yml
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "sdk-lints", "config.yml"), nil
}
