package config

import (
	"fmt"
	"path/filepath"
)

// Storage backends for the canonical store
const (
	StorageSQLite = "sqlite"
	StorageFiles  = "files"
)

// Config is the merged configuration
type Config struct {
	// Home is the resolved ruleweaver home; it is not read from files
	Home            string       `mapstructure:"-" yaml:"-"`
	Storage         string       `mapstructure:"storage" yaml:"storage"`
	DataDir         string       `mapstructure:"data_dir" yaml:"data_dir"`
	StateDB         string       `mapstructure:"state_db" yaml:"state_db"`
	RepositoryRoots []string     `mapstructure:"repository_roots" yaml:"repository_roots"`
	Editor          string       `mapstructure:"editor" yaml:"editor"`
	Import          ImportConfig `mapstructure:"import" yaml:"import"`
	Sync            SyncConfig   `mapstructure:"sync" yaml:"sync"`
	Log             LogConfig    `mapstructure:"log" yaml:"log"`
}

// ImportConfig bounds import scans
type ImportConfig struct {
	MaxFileSize   int64 `mapstructure:"max_file_size" yaml:"max_file_size"`
	MaxCandidates int   `mapstructure:"max_candidates" yaml:"max_candidates"`
	HistoryLimit  int   `mapstructure:"history_limit" yaml:"history_limit"`
}

// SyncConfig tunes planning
type SyncConfig struct {
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
}

// LogConfig configures the rotating log file
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age" yaml:"max_age"`
}

// DefaultConfig returns the configuration used when no file sets a key
func DefaultConfig(home string) *Config {
	return &Config{
		Home:    home,
		Storage: StorageSQLite,
		DataDir: filepath.Join(home, "artifacts"),
		StateDB: filepath.Join(home, "ruleweaver.db"),
		Import: ImportConfig{
			MaxFileSize:   10 << 20,
			MaxCandidates: 1000,
			HistoryLimit:  50,
		},
		Sync: SyncConfig{Parallelism: 8},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			File:       filepath.Join(home, "logs", "ruleweaver.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Validate checks enumerated and positive values
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite, StorageFiles:
	default:
		return fmt.Errorf("storage: unknown backend %q (use %s or %s)", c.Storage, StorageSQLite, StorageFiles)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q (use text or json)", c.Log.Format)
	}
	if c.Import.MaxFileSize <= 0 {
		return fmt.Errorf("import.max_file_size must be positive")
	}
	if c.Import.MaxCandidates <= 0 {
		return fmt.Errorf("import.max_candidates must be positive")
	}
	if c.Import.HistoryLimit <= 0 {
		return fmt.Errorf("import.history_limit must be positive")
	}
	if c.Sync.Parallelism <= 0 {
		return fmt.Errorf("sync.parallelism must be positive")
	}
	return nil
}
