package domain

import (
	"fmt"
	"strings"
	"time"
)

// Conflict is a target file edited outside the engine. It exists while the
// on-disk hash differs from both the expected and the last written hash.
type Conflict struct {
	ID          string
	FilePath    string
	AdapterName string
	AdapterID   AdapterID
	Adapters    []AdapterID
	Scope       Scope
	RepoRoot    string
	// LocalHash is the hash of the canonical-derived content
	LocalHash   string
	CurrentHash string
	Summary     DiffSummary
	// Suppressed is set when the user chose to keep the remote version
	// and neither side has changed since
	Suppressed bool
}

// ConflictID derives a stable id from the file path
func ConflictID(path string) string {
	return "conflict-" + ShortHash(path)
}

// Resolution is the user's choice for a conflict
type Resolution string

const (
	ResolveOverwrite  Resolution = "overwrite"
	ResolveKeepRemote Resolution = "keep_remote"
)

// ParseResolution parses "overwrite" or "keep-remote"
func ParseResolution(s string) (Resolution, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "overwrite", "local":
		return ResolveOverwrite, nil
	case "keep_remote", "remote", "keep":
		return ResolveKeepRemote, nil
	}
	return "", fmt.Errorf("unknown resolution %q: use overwrite or keep-remote", s)
}

// Suppression records a KeepRemote decision for one path. It stays in effect
// while both hashes are unchanged.
type Suppression struct {
	Path         string
	RemoteHash   string
	ExpectedHash string
	CreatedAt    time.Time
}

// Holds reports whether the suppression still applies to the given hashes
func (s Suppression) Holds(currentHash, expectedHash string) bool {
	return s.RemoteHash == currentHash && s.ExpectedHash == expectedHash
}
