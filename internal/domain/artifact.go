package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// ArtifactType represents the kind of canonical artifact
type ArtifactType string

const (
	ArtifactRule    ArtifactType = "rule"
	ArtifactCommand ArtifactType = "command"
	ArtifactSkill   ArtifactType = "skill"
)

// ArtifactTypes lists every artifact type in display order
var ArtifactTypes = []ArtifactType{ArtifactRule, ArtifactCommand, ArtifactSkill}

// ParseArtifactType parses a user supplied artifact type. Plurals are accepted.
func ParseArtifactType(s string) (ArtifactType, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "rule":
		return ArtifactRule, nil
	case "command":
		return ArtifactCommand, nil
	case "skill":
		return ArtifactSkill, nil
	}
	return "", fmt.Errorf("unknown artifact type %q", s)
}

// Scope determines where an artifact is synced
type Scope string

const (
	ScopeGlobal Scope = "global"
	ScopeLocal  Scope = "local"
)

// ParseScope parses "global" or "local"
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeLocal:
		return ScopeLocal, nil
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// AdapterID identifies an AI tool adapter
type AdapterID string

// Artifact is a canonical rule, command or skill.
// Content holds the rule body, the command script or the skill instructions.
type Artifact struct {
	ID              string
	Type            ArtifactType
	Name            string
	Description     string
	Content         string
	Scope           Scope
	TargetPaths     []string
	EnabledAdapters []AdapterID
	Enabled         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContentHash hashes the current content. It is computed on every call.
func (a Artifact) ContentHash() string {
	return ContentHash(a.Content)
}

// TargetsAdapter reports whether the adapter is in EnabledAdapters
func (a Artifact) TargetsAdapter(id AdapterID) bool {
	for _, enabled := range a.EnabledAdapters {
		if enabled == id {
			return true
		}
	}
	return false
}

// Roots returns the repository roots the artifact applies to.
// Global artifacts have a single empty root.
func (a Artifact) Roots() []string {
	if a.Scope == ScopeGlobal {
		return []string{""}
	}
	return a.TargetPaths
}

// ArtifactInput holds the fields needed to create an artifact
type ArtifactInput struct {
	Type            ArtifactType
	Name            string
	Description     string
	Content         string
	Scope           Scope
	TargetPaths     []string
	EnabledAdapters []AdapterID
	Enabled         bool
}

// ArtifactPatch updates selected fields; nil fields are left unchanged
type ArtifactPatch struct {
	Name            *string
	Description     *string
	Content         *string
	Scope           *Scope
	TargetPaths     *[]string
	EnabledAdapters *[]AdapterID
	Enabled         *bool
}

// Apply returns a copy of a with the patch applied. UpdatedAt is set to now.
func (p ArtifactPatch) Apply(a Artifact, now time.Time) Artifact {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Description != nil {
		a.Description = *p.Description
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Scope != nil {
		a.Scope = *p.Scope
	}
	if p.TargetPaths != nil {
		a.TargetPaths = append([]string(nil), (*p.TargetPaths)...)
	}
	if p.EnabledAdapters != nil {
		a.EnabledAdapters = append([]AdapterID(nil), (*p.EnabledAdapters)...)
	}
	if p.Enabled != nil {
		a.Enabled = *p.Enabled
	}
	a.UpdatedAt = now
	return a
}

// ContentHash returns the hex sha256 of s
func ContentHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the first 12 hex characters of the sha256 of s
func ShortHash(s string) string {
	return ContentHash(s)[:12]
}

// ParseAdapterIDs splits a comma separated list of adapter ids
func ParseAdapterIDs(s string) []AdapterID {
	var ids []AdapterID
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, AdapterID(part))
		}
	}
	return ids
}

// AdapterIDStrings converts ids to plain strings
func AdapterIDStrings(ids []AdapterID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
