package commands

import (
	"context"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// ListArtifactsCommand lists artifacts, optionally of one type
type ListArtifactsCommand struct {
	store ports.ArtifactStore
	Type  domain.ArtifactType
}

// NewListArtifactsCommand creates a new ListArtifactsCommand. An empty type lists everything.
func NewListArtifactsCommand(store ports.ArtifactStore, t domain.ArtifactType) *ListArtifactsCommand {
	return &ListArtifactsCommand{
		store: store,
		Type:  t,
	}
}

// Execute runs the list command
func (c *ListArtifactsCommand) Execute(ctx context.Context) ([]domain.Artifact, error) {
	return c.store.ListArtifacts(ctx, c.Type)
}

// GetArtifactCommand loads one artifact
type GetArtifactCommand struct {
	store      ports.ArtifactStore
	ArtifactID string
}

// NewGetArtifactCommand creates a new GetArtifactCommand
func NewGetArtifactCommand(store ports.ArtifactStore, artifactID string) *GetArtifactCommand {
	return &GetArtifactCommand{
		store:      store,
		ArtifactID: artifactID,
	}
}

// Execute runs the get command
func (c *GetArtifactCommand) Execute(ctx context.Context) (*domain.Artifact, error) {
	return c.store.GetArtifact(ctx, c.ArtifactID)
}

// ListAdaptersCommand lists the registered adapters
type ListAdaptersCommand struct {
	registry ports.AdapterRegistry
}

// NewListAdaptersCommand creates a new ListAdaptersCommand
func NewListAdaptersCommand(registry ports.AdapterRegistry) *ListAdaptersCommand {
	return &ListAdaptersCommand{registry: registry}
}

// Execute runs the list adapters command
func (c *ListAdaptersCommand) Execute(ctx context.Context) ([]domain.AdapterDescriptor, error) {
	return c.registry.ListAdapters(), nil
}
