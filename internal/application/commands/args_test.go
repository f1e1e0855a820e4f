package commands

import (
	"errors"
	"reflect"
	"testing"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    FilterArgs
		want    domain.StatusFilter
		wantErr bool
	}{
		{name: "empty matches all", args: FilterArgs{}, want: domain.StatusFilter{}},
		{
			name: "all fields",
			args: FilterArgs{Type: "skills", ArtifactID: " a1 ", Adapter: "codex", Scope: "Local", RepoRoot: "/work", Status: "out-of-date"},
			want: domain.StatusFilter{
				ArtifactType: domain.ArtifactSkill, ArtifactID: "a1", Adapter: "codex",
				Scope: domain.ScopeLocal, RepoRoot: "/work", Status: domain.StatusOutOfDate,
			},
		},
		{name: "bad type", args: FilterArgs{Type: "macro"}, wantErr: true},
		{name: "bad scope", args: FilterArgs{Scope: "team"}, wantErr: true},
		{name: "bad status", args: FilterArgs{Status: "stale"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.args.Filter()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Filter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, application.ErrInvalidInput) {
					t.Errorf("Filter() error = %v, want ErrInvalidInput", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Filter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFilterArgs_RelativeRepoRoot(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	got, err := FilterArgs{RepoRoot: "."}.Filter()
	if err != nil {
		t.Fatalf("Filter() failed: %v", err)
	}
	if got.RepoRoot != dir {
		t.Errorf("RepoRoot = %q, want %q", got.RepoRoot, dir)
	}
}

func TestImportArgs(t *testing.T) {
	opts, err := ImportArgs{Mode: "skip", Scope: "local", Adapters: "codex, gemini", Paths: "/a,,/b", Select: "c1"}.Options()
	if err != nil {
		t.Fatalf("Options() failed: %v", err)
	}
	want := domain.ImportOptions{
		ConflictMode:         domain.ConflictSkip,
		DefaultScope:         domain.ScopeLocal,
		DefaultAdapters:      []domain.AdapterID{"codex", "gemini"},
		DefaultTargetPaths:   []string{"/a", "/b"},
		SelectedCandidateIDs: []string{"c1"},
	}
	if !reflect.DeepEqual(opts, want) {
		t.Errorf("Options() = %+v, want %+v", opts, want)
	}

	opts, err = ImportArgs{}.Options()
	if err != nil || opts.ConflictMode != domain.ConflictRename {
		t.Errorf("default mode = %q, %v, want rename", opts.ConflictMode, err)
	}

	if _, err := (ImportArgs{Mode: "merge"}).Options(); err == nil {
		t.Error("Options() accepted an unknown mode")
	}
}
