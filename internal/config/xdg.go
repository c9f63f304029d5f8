package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "arquiz"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultJSONPath returns the default path for the JSON store.
func DefaultJSONPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".json")
}

// DefaultStorePath picks the data file for engine.
func DefaultStorePath(engine string) string {
	if strings.ToLower(strings.TrimSpace(engine)) == "json" {
		return DefaultJSONPath()
	}
	return DefaultDBPath()
}

// DefaultLogPath returns the file the TUI logs to.
func DefaultLogPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
