package commands

import (
	"context"
	"path/filepath"
	"testing"

	"ruleweaver/internal/adapters/sqlite"
	"ruleweaver/internal/domain"
)

func TestMigrateCommand(t *testing.T) {
	ctx := context.Background()
	files := newTestRepo(t)
	style := seedArtifact(t, files, domain.ArtifactRule, "style")
	deploy := seedArtifact(t, files, domain.ArtifactSkill, "deploy")

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "ruleweaver.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	res, err := NewMigrateCommand(files, db, false).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(res.Copied) != 2 || res.Message != "Copied 2 artifact(s)" {
		t.Errorf("result = %+v", res)
	}

	got, err := db.GetArtifact(ctx, style.ID)
	if err != nil {
		t.Fatalf("migrated artifact missing: %v", err)
	}
	if got.Content != style.Content || !got.CreatedAt.Equal(style.CreatedAt) {
		t.Errorf("migrated = %+v, want %+v", got, style)
	}

	// Second run skips what is already there
	res, err = NewMigrateCommand(files, db, false).Execute(ctx)
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if len(res.Copied) != 0 || len(res.Skipped) != 2 {
		t.Errorf("second run = %+v", res)
	}

	res, err = NewMigrateCommand(files, db, true).Execute(ctx)
	if err != nil || len(res.Copied) != 2 {
		t.Errorf("overwrite run = %+v, %v", res, err)
	}
	if _, err := db.GetArtifact(ctx, deploy.ID); err != nil {
		t.Errorf("deploy missing after overwrite: %v", err)
	}
}
