package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SourceType is the kind of import source
type SourceType string

const (
	SourceAITool    SourceType = "ai_tool"
	SourceFile      SourceType = "file"
	SourceDirectory SourceType = "directory"
	SourceURL       SourceType = "url"
	SourceClipboard SourceType = "clipboard"
)

// ParseSourceType accepts the type names with dashes or underscores
func ParseSourceType(s string) (SourceType, error) {
	switch SourceType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")) {
	case SourceAITool, "ai", "tools":
		return SourceAITool, nil
	case SourceFile:
		return SourceFile, nil
	case SourceDirectory, "dir":
		return SourceDirectory, nil
	case SourceURL:
		return SourceURL, nil
	case SourceClipboard:
		return SourceClipboard, nil
	}
	return "", fmt.Errorf("unknown import source %q", s)
}

// ConflictMode decides what happens when a candidate name is already taken
type ConflictMode string

const (
	ConflictRename  ConflictMode = "rename"
	ConflictSkip    ConflictMode = "skip"
	ConflictReplace ConflictMode = "replace"
)

// ParseConflictMode parses rename, skip or replace
func ParseConflictMode(s string) (ConflictMode, error) {
	switch m := ConflictMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ConflictRename, ConflictSkip, ConflictReplace:
		return m, nil
	case "":
		return ConflictRename, nil
	}
	return "", fmt.Errorf("unknown conflict mode %q", s)
}

// ImportCandidate is importable content found by a scan
type ImportCandidate struct {
	ID              string
	SourceType      SourceType
	SourceLabel     string
	SourcePath      string
	SourceTool      AdapterID
	ArtifactType    ArtifactType
	Name            string
	ProposedName    string
	Description     string
	Content         string
	Scope           Scope
	TargetPaths     []string
	EnabledAdapters []AdapterID
	ContentHash     string
	FileSize        int64
	// DuplicateOf names an existing artifact with identical content. Informational only.
	DuplicateOf string
}

// DefaultImportAdapters are enabled for imported artifacts whose source has no known tool
var DefaultImportAdapters = []AdapterID{"gemini", "opencode"}

// CandidateID derives a deterministic id so repeated scans address the same
// candidate. index is the item's position within its source document.
func CandidateID(source SourceType, sourcePath string, t ArtifactType, name string, index int) string {
	return "cand-" + ShortHash(strings.Join([]string{string(source), sourcePath, string(t), name, strconv.Itoa(index)}, "\x00"))
}

// ScanResult is the outcome of one scan. Errors are per-file and non-fatal.
type ScanResult struct {
	Candidates []ImportCandidate
	Errors     []string
}

// ImportOptions controls import execution. Non-empty defaults override the
// scanned values of every selected candidate.
type ImportOptions struct {
	ConflictMode         ConflictMode
	DefaultScope         Scope
	DefaultAdapters      []AdapterID
	DefaultTargetPaths   []string
	SelectedCandidateIDs []string
}

// ImportedArtifact is a successfully created or replaced artifact
type ImportedArtifact struct {
	CandidateID string
	ArtifactID  string
	Name        string
	Type        ArtifactType
	Replaced    bool
	Renamed     bool
}

// ImportSkip is a candidate that was deliberately not imported
type ImportSkip struct {
	CandidateID string
	Name        string
	Reason      string
}

// ImportConflict is a candidate whose conflict mode could not be applied deterministically
type ImportConflict struct {
	CandidateID string
	Name        string
	Reason      string
	Matches     []string
}

// ImportError is a candidate that failed to import
type ImportError struct {
	CandidateID string
	Name        string
	Message     string
}

// ImportExecutionResult enumerates the outcome of every selected candidate
type ImportExecutionResult struct {
	Imported  []ImportedArtifact
	Skipped   []ImportSkip
	Conflicts []ImportConflict
	Errors    []ImportError
}

// ImportHistoryEntry is one append-only audit record
type ImportHistoryEntry struct {
	ID           string
	At           time.Time
	SourceType   SourceType
	SourceLabel  string
	ConflictMode ConflictMode
	Scanned      int
	Imported     int
	Skipped      int
	Conflicts    int
	Errors       int
	ScanErrors   int
}
