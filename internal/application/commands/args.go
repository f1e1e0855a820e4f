package commands

import (
	"path/filepath"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

// FilterArgs is a status filter as typed by a user. Empty fields match everything.
type FilterArgs struct {
	Type       string
	ArtifactID string
	Adapter    string
	Scope      string
	RepoRoot   string
	Status     string
}

// Filter parses the arguments into a domain filter
func (a FilterArgs) Filter() (domain.StatusFilter, error) {
	f := domain.StatusFilter{
		ArtifactID: strings.TrimSpace(a.ArtifactID),
		Adapter:    domain.AdapterID(strings.TrimSpace(a.Adapter)),
		RepoRoot:   strings.TrimSpace(a.RepoRoot),
	}
	if f.RepoRoot != "" && !filepath.IsAbs(f.RepoRoot) {
		abs, err := filepath.Abs(f.RepoRoot)
		if err != nil {
			return f, &application.ValidationError{Field: "repoRoot", Message: err.Error()}
		}
		f.RepoRoot = abs
	}
	if a.Type != "" {
		t, err := domain.ParseArtifactType(a.Type)
		if err != nil {
			return f, &application.ValidationError{Field: "type", Message: err.Error()}
		}
		f.ArtifactType = t
	}
	if a.Scope != "" {
		s, err := domain.ParseScope(a.Scope)
		if err != nil {
			return f, &application.ValidationError{Field: "scope", Message: err.Error()}
		}
		f.Scope = s
	}
	if a.Status != "" {
		s, err := domain.ParseSyncStatus(a.Status)
		if err != nil {
			return f, &application.ValidationError{Field: "status", Message: err.Error()}
		}
		f.Status = s
	}
	return f, nil
}

// ImportArgs are import options as typed by a user. Lists are comma separated.
type ImportArgs struct {
	Mode     string
	Scope    string
	Adapters string
	Paths    string
	Select   string
}

// Options parses the arguments into import options
func (a ImportArgs) Options() (domain.ImportOptions, error) {
	var opts domain.ImportOptions

	mode, err := domain.ParseConflictMode(a.Mode)
	if err != nil {
		return opts, &application.ValidationError{Field: "mode", Message: err.Error()}
	}
	opts.ConflictMode = mode

	if a.Scope != "" {
		s, err := domain.ParseScope(a.Scope)
		if err != nil {
			return opts, &application.ValidationError{Field: "scope", Message: err.Error()}
		}
		opts.DefaultScope = s
	}
	opts.DefaultAdapters = domain.ParseAdapterIDs(a.Adapters)
	opts.DefaultTargetPaths = splitList(a.Paths)
	opts.SelectedCandidateIDs = splitList(a.Select)
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
