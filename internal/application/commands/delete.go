package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/application"
	"ruleweaver/internal/ports"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Name      string
	Message   string
}

// DeleteCommand removes an artifact from the canonical store.
// Files it produced become orphans and are removed by prune.
type DeleteCommand struct {
	store      ports.ArtifactStore
	ArtifactID string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(store ports.ArtifactStore, artifactID string) *DeleteCommand {
	return &DeleteCommand{
		store:      store,
		ArtifactID: artifactID,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	return application.ValidateRequired("artifactID", c.ArtifactID)
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	a, err := c.store.GetArtifact(ctx, c.ArtifactID)
	if err != nil {
		return nil, err
	}
	if err := c.store.DeleteArtifact(ctx, a.ID); err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", a.ID, err)
	}

	return &DeleteResult{
		DeletedID: a.ID,
		Name:      a.Name,
		Message:   fmt.Sprintf("Deleted %s %s; run prune to remove its generated files", a.Type, a.Name),
	}, nil
}
