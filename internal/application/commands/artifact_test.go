package commands

import (
	"context"
	"errors"
	"testing"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

func TestCreateArtifactCommand_Validate(t *testing.T) {
	valid := domain.ArtifactInput{
		Type:            domain.ArtifactRule,
		Name:            "style",
		Content:         "Use tabs.",
		Scope:           domain.ScopeGlobal,
		EnabledAdapters: []domain.AdapterID{"codex", "gemini"},
	}

	tests := []struct {
		name    string
		mutate  func(*domain.ArtifactInput)
		wantErr bool
		errMsg  string
	}{
		{name: "valid global rule", mutate: func(*domain.ArtifactInput) {}},
		{
			name:    "empty name",
			mutate:  func(in *domain.ArtifactInput) { in.Name = "  " },
			wantErr: true,
			errMsg:  "name is required",
		},
		{
			name:    "name needs sanitizing",
			mutate:  func(in *domain.ArtifactInput) { in.Name = "code review!" },
			wantErr: true,
			errMsg:  "suggested: code-review",
		},
		{
			name:    "empty content",
			mutate:  func(in *domain.ArtifactInput) { in.Content = "" },
			wantErr: true,
			errMsg:  "content is required",
		},
		{
			name:    "unknown type",
			mutate:  func(in *domain.ArtifactInput) { in.Type = "macro" },
			wantErr: true,
			errMsg:  "unknown artifact type",
		},
		{
			name:    "local without paths",
			mutate:  func(in *domain.ArtifactInput) { in.Scope = domain.ScopeLocal },
			wantErr: true,
			errMsg:  "local scope requires at least one target path",
		},
		{
			name: "local with paths",
			mutate: func(in *domain.ArtifactInput) {
				in.Scope = domain.ScopeLocal
				in.TargetPaths = []string{"/work/api"}
			},
		},
		{
			name:    "no adapters",
			mutate:  func(in *domain.ArtifactInput) { in.EnabledAdapters = nil },
			wantErr: true,
			errMsg:  "at least one adapter",
		},
		{
			name:    "unknown adapter",
			mutate:  func(in *domain.ArtifactInput) { in.EnabledAdapters = []domain.AdapterID{"codex", "vim"} },
			wantErr: true,
			errMsg:  "unknown adapter(s): vim",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			cmd := NewCreateArtifactCommand(nil, registry.New(), in)
			checkErr(t, cmd.Validate(), tt.wantErr, tt.errMsg)
		})
	}
}

func TestCreateArtifactCommand_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedArtifact(t, repo, domain.ArtifactRule, "Style")
	seedArtifact(t, repo, domain.ArtifactCommand, "review")

	in := domain.ArtifactInput{
		Type: domain.ArtifactRule, Name: "review", Content: "Review rules.",
		Scope: domain.ScopeGlobal, EnabledAdapters: []domain.AdapterID{"codex"}, Enabled: true,
	}
	res, err := NewCreateArtifactCommand(repo, registry.New(), in).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Artifact.Name != "review" || res.Message != "Created rule: review ("+res.Artifact.ID+")" {
		t.Errorf("result = %+v", res)
	}

	in.Name = "style"
	_, err = NewCreateArtifactCommand(repo, registry.New(), in).Execute(ctx)
	if !errors.Is(err, application.ErrInvalidInput) {
		t.Errorf("duplicate name error = %v, want ErrInvalidInput", err)
	}
}

func TestRenameCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	style := seedArtifact(t, repo, domain.ArtifactRule, "style")
	seedArtifact(t, repo, domain.ArtifactRule, "testing")

	tests := []struct {
		name    string
		id      string
		newName string
		wantErr bool
		errMsg  string
	}{
		{name: "empty id", id: "", newName: "x", wantErr: true, errMsg: "artifact ID is required"},
		{name: "empty name", id: style.ID, newName: "", wantErr: true, errMsg: "name is required"},
		{name: "taken name", id: style.ID, newName: "Testing", wantErr: true, errMsg: "already exists"},
		{name: "missing artifact", id: "nope", newName: "x", wantErr: true, errMsg: "not found"},
		{name: "same name different case", id: style.ID, newName: "Style"},
		{name: "rename", id: style.ID, newName: "code-style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRenameCommand(repo, tt.id, tt.newName).Execute(ctx)
			checkErr(t, err, tt.wantErr, tt.errMsg)
		})
	}

	got, err := repo.GetArtifact(ctx, style.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "code-style" {
		t.Errorf("Name = %s, want code-style", got.Name)
	}
}

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	a := seedArtifact(t, repo, domain.ArtifactSkill, "deploy")

	if err := NewDeleteCommand(repo, "").Validate(); err == nil {
		t.Error("Validate accepted an empty id")
	}

	res, err := NewDeleteCommand(repo, a.ID).Execute(ctx)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.DeletedID != a.ID || res.Name != "deploy" {
		t.Errorf("result = %+v", res)
	}

	_, err = NewDeleteCommand(repo, a.ID).Execute(ctx)
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestToggleCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	a := seedArtifact(t, repo, domain.ArtifactRule, "style")

	tests := []struct {
		name        string
		enabled     bool
		wantChanged bool
		wantMsg     string
	}{
		{"disable", false, true, "Disabled rule style"},
		{"disable again", false, false, "style is already disabled"},
		{"enable", true, true, "Enabled rule style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewToggleCommand(repo, a.ID, tt.enabled).Execute(ctx)
			if err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if res.Changed != tt.wantChanged || res.Message != tt.wantMsg {
				t.Errorf("result = %+v", res)
			}
			if res.Artifact.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", res.Artifact.Enabled, tt.enabled)
			}
		})
	}
}

func TestListArtifactsCommand(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	seedArtifact(t, repo, domain.ArtifactRule, "style")
	seedArtifact(t, repo, domain.ArtifactSkill, "deploy")

	all, err := NewListArtifactsCommand(repo, "").Execute(ctx)
	if err != nil || len(all) != 2 {
		t.Errorf("list all = %v, %v", all, err)
	}
	skills, err := NewListArtifactsCommand(repo, domain.ArtifactSkill).Execute(ctx)
	if err != nil || len(skills) != 1 || skills[0].Name != "deploy" {
		t.Errorf("list skills = %v, %v", skills, err)
	}
}
