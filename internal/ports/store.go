package ports

import (
	"context"

	"ruleweaver/internal/domain"
)

// ArtifactStore is the canonical store of rules, commands and skills
type ArtifactStore interface {
	// Read operations. An empty type lists every artifact.
	ListArtifacts(ctx context.Context, t domain.ArtifactType) ([]domain.Artifact, error)
	GetArtifact(ctx context.Context, id string) (*domain.Artifact, error)

	// Write operations
	CreateArtifact(ctx context.Context, in domain.ArtifactInput) (*domain.Artifact, error)
	UpdateArtifact(ctx context.Context, id string, patch domain.ArtifactPatch) (*domain.Artifact, error)
	DeleteArtifact(ctx context.Context, id string) error
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Artifact, error)

	Close() error
}

// AdapterRegistry exposes the static adapter table
type AdapterRegistry interface {
	ListAdapters() []domain.AdapterDescriptor
	GetAdapter(id domain.AdapterID) (domain.AdapterDescriptor, bool)
}

// ArtifactCopier stores an artifact verbatim, keeping its id and timestamps.
// Both store backends implement it for migration.
type ArtifactCopier interface {
	PutArtifact(ctx context.Context, a domain.Artifact) error
}
