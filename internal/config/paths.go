package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// appDir is the directory name under the user config directory.
const appDir = "new-project"

// DefaultConfigFile returns the config file path.
// If NEW_PROJECT_CONFIG is set, it takes precedence.
func DefaultConfigFile() (string, error) {
	if envPath := os.Getenv(envPrefix + "_CONFIG"); envPath != "" {
		return envPath, nil
	}

	// os.UserConfigDir honors $XDG_CONFIG_HOME on Unix.
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

// ExpandPath expands a leading "~" to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
