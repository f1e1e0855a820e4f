// Package bootstrap assembles stores, the engine and the import pipeline from config.
package bootstrap

import (
	"errors"
	"fmt"
	"os"

	"ruleweaver/internal/adapters/clipboard"
	"ruleweaver/internal/adapters/editor"
	"ruleweaver/internal/adapters/filesystem"
	"ruleweaver/internal/adapters/httpfetch"
	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/adapters/sqlite"
	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/application/importer"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/config"
	"ruleweaver/internal/ports"
)

// Services holds every wired component of one process
type Services struct {
	Config *config.Config
	// UserHome is the directory global adapter paths resolve against
	UserHome string

	// Store is the canonical store selected by config
	Store    ports.ArtifactStore
	State    *sqlite.Store
	Registry *registry.Registry
	Engine   *reconcile.Engine

	Editor    *editor.Opener
	Clipboard *clipboard.Reader
	Fetcher   *httpfetch.Fetcher

	files *filesystem.Repository
}

// Open wires services for cfg. userHome may be empty to use the current user's home.
func Open(cfg *config.Config, userHome string) (*Services, error) {
	if userHome == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		userHome = h
	}

	state, err := sqlite.Open(cfg.StateDB)
	if err != nil {
		return nil, err
	}

	s := &Services{
		Config:    cfg,
		UserHome:  userHome,
		State:     state,
		Registry:  registry.New(),
		Editor:    editor.NewOpener(cfg.Editor),
		Clipboard: clipboard.NewReader(),
		Fetcher:   httpfetch.New(),
	}

	switch cfg.Storage {
	case config.StorageFiles:
		s.files = filesystem.NewRepository(cfg.DataDir)
		s.Store = s.files
	default:
		s.Store = state
	}

	s.Engine = reconcile.NewEngine(s.Store, s.Registry, state, filesystem.OS{}, userHome,
		reconcile.WithParallelism(cfg.Sync.Parallelism))
	return s, nil
}

// NewSession creates an import session over the configured store
func (s *Services) NewSession() *importer.Session {
	scanner := importer.NewScanner(s.Store, s.Registry, s.UserHome,
		importer.WithFetcher(s.Fetcher),
		importer.WithRepositoryRoots(s.Config.RepositoryRoots...),
		importer.WithLimits(s.Config.Import.MaxFileSize, s.Config.Import.MaxCandidates))
	executor := importer.NewExecutor(s.Store, s.State, s.Registry)
	return importer.NewSession(scanner, executor)
}

// MigrationStores returns the current canonical store and the other backend
func (s *Services) MigrationStores(to string) (ports.ArtifactStore, commands.MigrationTarget, error) {
	switch to {
	case config.StorageFiles:
		if s.Config.Storage == config.StorageFiles {
			return nil, nil, errors.New("canonical store already uses files")
		}
		return s.State, filesystem.NewRepository(s.Config.DataDir), nil
	case config.StorageSQLite:
		if s.Config.Storage == config.StorageSQLite {
			return nil, nil, errors.New("canonical store already uses sqlite")
		}
		return s.files, s.State, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q (use %s or %s)", to, config.StorageSQLite, config.StorageFiles)
}

// Close releases the state database
func (s *Services) Close() error {
	var errs []error
	if s.files != nil {
		errs = append(errs, s.files.Close())
	}
	errs = append(errs, s.State.Close())
	return errors.Join(errs...)
}
