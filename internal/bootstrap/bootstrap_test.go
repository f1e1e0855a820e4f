package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ruleweaver/internal/application/commands"
	"ruleweaver/internal/config"
	"ruleweaver/internal/domain"
)

func testConfig(t *testing.T, storage string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig(t.TempDir())
	cfg.Storage = storage
	return cfg
}

func TestOpen_EndToEnd(t *testing.T) {
	for _, storage := range []string{config.StorageSQLite, config.StorageFiles} {
		t.Run(storage, func(t *testing.T) {
			ctx := context.Background()
			userHome := t.TempDir()
			svc, err := Open(testConfig(t, storage), userHome)
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer svc.Close()

			in := domain.ArtifactInput{
				Type: domain.ArtifactRule, Name: "style", Content: "Use tabs.",
				Scope: domain.ScopeGlobal, EnabledAdapters: []domain.AdapterID{"codex"}, Enabled: true,
			}
			if _, err := commands.NewCreateArtifactCommand(svc.Store, svc.Registry, in).Execute(ctx); err != nil {
				t.Fatalf("create failed: %v", err)
			}

			res, err := commands.NewSyncCommand(svc.Engine, domain.TriggerManual, false).Execute(ctx)
			if err != nil {
				t.Fatalf("sync failed: %v", err)
			}
			if len(res.Result.FilesWritten) != 1 {
				t.Fatalf("FilesWritten = %v", res.Result.FilesWritten)
			}
			if _, err := os.Stat(res.Result.FilesWritten[0]); err != nil {
				t.Errorf("written file missing: %v", err)
			}
			rel, err := filepath.Rel(userHome, res.Result.FilesWritten[0])
			if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				t.Errorf("file %s written outside the user home", res.Result.FilesWritten[0])
			}
			if want := filepath.Join(".codex", "AGENTS.md"); rel != want {
				t.Errorf("written path = %s, want %s under the user home", rel, want)
			}

			status, err := commands.NewStatusCommand(svc.Engine, domain.StatusFilter{}).Execute(ctx)
			if err != nil {
				t.Fatalf("status failed: %v", err)
			}
			if status.Summary.Synced != 1 || status.Summary.Total != 1 {
				t.Errorf("Summary = %+v", status.Summary)
			}
		})
	}
}

func TestMigrationStores(t *testing.T) {
	svc, err := Open(testConfig(t, config.StorageSQLite), t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer svc.Close()

	tests := []struct {
		to      string
		wantErr bool
	}{
		{config.StorageFiles, false},
		{config.StorageSQLite, true},
		{"postgres", true},
	}
	for _, tt := range tests {
		_, _, err := svc.MigrationStores(tt.to)
		if (err != nil) != tt.wantErr {
			t.Errorf("MigrationStores(%q) error = %v, wantErr %v", tt.to, err, tt.wantErr)
		}
	}
}
