package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load merges the global config, the config of the current directory's
// repository and RULEWEAVER_* environment variables, in that order.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return LoadFrom(Home(), cwd)
}

// LoadFrom is Load with explicit home and project directories.
// An empty projectDir skips the project file.
func LoadFrom(home, projectDir string) (*Config, error) {
	cfg := DefaultConfig(home)

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix("RULEWEAVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	paths := []string{GlobalConfigPathIn(home)}
	if projectDir != "" {
		paths = append(paths, ProjectConfigPath(projectDir))
	}
	for _, path := range paths {
		if err := mergeFile(v, path); err != nil {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Home = home
	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.StateDB = expandPath(cfg.StateDB)
	cfg.Log.File = expandPath(cfg.Log.File)
	for i, root := range cfg.RepositoryRoots {
		cfg.RepositoryRoots[i] = expandPath(root)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GlobalConfigPathIn returns the config file inside an explicit home
func GlobalConfigPathIn(home string) string {
	return filepath.Join(home, ConfigFile)
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("storage", cfg.Storage)
	v.SetDefault("data_dir", cfg.DataDir)
	v.SetDefault("state_db", cfg.StateDB)
	v.SetDefault("repository_roots", cfg.RepositoryRoots)
	v.SetDefault("editor", cfg.Editor)
	v.SetDefault("import.max_file_size", cfg.Import.MaxFileSize)
	v.SetDefault("import.max_candidates", cfg.Import.MaxCandidates)
	v.SetDefault("import.history_limit", cfg.Import.HistoryLimit)
	v.SetDefault("sync.parallelism", cfg.Sync.Parallelism)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.max_size", cfg.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age", cfg.Log.MaxAgeDays)
}
