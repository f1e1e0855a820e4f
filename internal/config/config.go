// Package config resolves the ruleweaver home directory and loads config.yaml.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultHome = "~/.ruleweaver"
	// ProjectDir holds per-repository overrides
	ProjectDir = ".ruleweaver"
	ConfigFile = "config.yaml"
)

// Home returns the home directory from RULEWEAVER_HOME,
// falling back to DefaultHome. The result has ~ expanded.
func Home() string {
	home := DefaultHome
	if env := os.Getenv("RULEWEAVER_HOME"); env != "" {
		home = env
	}
	return expandPath(home)
}

// ProjectConfigPath returns the config file of the repository in dir
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ProjectDir, ConfigFile)
}

// expandPath expands a leading ~ and makes relative paths absolute
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
