package domain

import "testing"

func TestParseSyncStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    SyncStatus
		wantErr bool
	}{
		{"synced", StatusSynced, false},
		{"out-of-date", StatusOutOfDate, false},
		{"CONFLICTED", StatusConflicted, false},
		{"broken", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSyncStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSyncStatus() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSyncStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusFilter_Matches(t *testing.T) {
	entry := StatusEntry{
		ArtifactType: ArtifactRule,
		Adapter:      "gemini",
		Scope:        ScopeLocal,
		RepoRoot:     "/src/project-a",
		Status:       StatusMissing,
	}

	tests := []struct {
		name   string
		filter StatusFilter
		want   bool
	}{
		{"empty filter", StatusFilter{}, true},
		{"adapter match", StatusFilter{Adapter: "gemini"}, true},
		{"adapter mismatch", StatusFilter{Adapter: "cline"}, false},
		{"repo root match", StatusFilter{RepoRoot: "/src/project-a"}, true},
		{"repo root trailing slash", StatusFilter{RepoRoot: "/src/project-a/"}, true},
		{"repo root name only", StatusFilter{RepoRoot: "project-a"}, false},
		{"repo root parent", StatusFilter{RepoRoot: "/src"}, false},
		{"repo root sibling prefix", StatusFilter{RepoRoot: "/src/project"}, false},
		{"status mismatch", StatusFilter{Status: StatusSynced}, false},
		{"type mismatch", StatusFilter{ArtifactType: ArtifactSkill}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(entry); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	entries := []StatusEntry{
		{Status: StatusSynced},
		{Status: StatusSynced},
		{Status: StatusConflicted},
		{Status: StatusUnsupported},
		{Status: StatusError},
	}

	got := Summarize(entries)
	want := StatusSummary{Total: 5, Synced: 2, Conflicted: 1, Unsupported: 1, Error: 1}
	if got != want {
		t.Errorf("Summarize() = %+v, want %+v", got, want)
	}
	if got.Count(StatusSynced) != 2 {
		t.Errorf("Count(synced) = %d", got.Count(StatusSynced))
	}
}

func TestParseResolution(t *testing.T) {
	for _, in := range []string{"overwrite", "keep-remote", "keep_remote"} {
		if _, err := ParseResolution(in); err != nil {
			t.Errorf("ParseResolution(%q) error = %v", in, err)
		}
	}
	if _, err := ParseResolution("merge"); err == nil {
		t.Error("expected error for merge")
	}
}
