// Package config provides configuration loading and path utilities for afi.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultConfigDir is where afi looks for config.yaml when --config is unset.
const DefaultConfigDir = "~/.config/afi"

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir returns the expanded default configuration directory.
func ConfigDir() string {
	return ExpandPath(DefaultConfigDir)
}
