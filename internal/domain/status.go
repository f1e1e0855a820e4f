package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// SyncStatus is the reconciliation state of one (artifact, adapter) entry
type SyncStatus string

const (
	StatusSynced      SyncStatus = "synced"
	StatusOutOfDate   SyncStatus = "out_of_date"
	StatusMissing     SyncStatus = "missing"
	StatusConflicted  SyncStatus = "conflicted"
	StatusUnsupported SyncStatus = "unsupported"
	StatusError       SyncStatus = "error"
)

// Statuses lists the lattice in display order
var Statuses = []SyncStatus{
	StatusSynced, StatusOutOfDate, StatusMissing, StatusConflicted, StatusUnsupported, StatusError,
}

// ParseSyncStatus parses a status name; dashes are accepted for underscores
func ParseSyncStatus(s string) (SyncStatus, error) {
	norm := SyncStatus(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, st := range Statuses {
		if st == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Repairable reports whether repair may write an entry with this status
func (s SyncStatus) Repairable() bool {
	return s == StatusMissing || s == StatusOutOfDate || s == StatusError
}

// StatusEntry is the derived status of one (artifact, adapter, root) pair.
// It is recomputed on every query.
type StatusEntry struct {
	ID              string
	ArtifactID      string
	ArtifactName    string
	ArtifactType    ArtifactType
	Adapter         AdapterID
	Scope           Scope
	RepoRoot        string
	Kind            OutputKind
	Status          SyncStatus
	ExpectedPath    string
	LastOperation   Operation
	LastOperationAt time.Time
	Detail          string
}

// EntryID builds the stable id of a status entry
func EntryID(artifactID string, adapter AdapterID, path string) string {
	return fmt.Sprintf("%s:%s:%s", artifactID, adapter, ShortHash(path))
}

// StatusFilter narrows plans and summaries. Zero values match everything.
type StatusFilter struct {
	ArtifactType ArtifactType
	ArtifactID   string
	Adapter      AdapterID
	Scope        Scope
	RepoRoot     string
	Status       SyncStatus
}

// MatchesTarget checks every field except Status, which is only known after classification
func (f StatusFilter) MatchesTarget(e StatusEntry) bool {
	if f.ArtifactType != "" && f.ArtifactType != e.ArtifactType {
		return false
	}
	if f.ArtifactID != "" && f.ArtifactID != e.ArtifactID {
		return false
	}
	if f.Adapter != "" && f.Adapter != e.Adapter {
		return false
	}
	if f.Scope != "" && f.Scope != e.Scope {
		return false
	}
	if f.RepoRoot != "" && (e.RepoRoot == "" || filepath.Clean(e.RepoRoot) != filepath.Clean(f.RepoRoot)) {
		return false
	}
	return true
}

// Matches checks every field
func (f StatusFilter) Matches(e StatusEntry) bool {
	if f.Status != "" && f.Status != e.Status {
		return false
	}
	return f.MatchesTarget(e)
}

// StatusSummary counts entries per status
type StatusSummary struct {
	Total       int
	Synced      int
	OutOfDate   int
	Missing     int
	Conflicted  int
	Unsupported int
	Error       int
}

// Summarize aggregates entries into a StatusSummary
func Summarize(entries []StatusEntry) StatusSummary {
	var s StatusSummary
	for _, e := range entries {
		s.Total++
		switch e.Status {
		case StatusSynced:
			s.Synced++
		case StatusOutOfDate:
			s.OutOfDate++
		case StatusMissing:
			s.Missing++
		case StatusConflicted:
			s.Conflicted++
		case StatusUnsupported:
			s.Unsupported++
		case StatusError:
			s.Error++
		}
	}
	return s
}

// Count returns the count for one status
func (s StatusSummary) Count(status SyncStatus) int {
	switch status {
	case StatusSynced:
		return s.Synced
	case StatusOutOfDate:
		return s.OutOfDate
	case StatusMissing:
		return s.Missing
	case StatusConflicted:
		return s.Conflicted
	case StatusUnsupported:
		return s.Unsupported
	case StatusError:
		return s.Error
	}
	return 0
}
