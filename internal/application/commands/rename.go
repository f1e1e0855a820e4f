package commands

import (
	"context"
	"fmt"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	ArtifactID string
	OldName    string
	NewName    string
	Message    string
}

// RenameCommand renames an artifact. Generated files follow on the next sync.
type RenameCommand struct {
	store      ports.ArtifactStore
	ArtifactID string
	NewName    string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(store ports.ArtifactStore, artifactID, newName string) *RenameCommand {
	return &RenameCommand{
		store:      store,
		ArtifactID: artifactID,
		NewName:    newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("artifactID", c.ArtifactID); err != nil {
		return err
	}
	if err := application.ValidateRequired("name", c.NewName); err != nil {
		return err
	}
	if domain.SanitizeName(c.NewName) != strings.TrimSpace(c.NewName) {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q contains unsupported characters (suggested: %s)", c.NewName, domain.SanitizeName(c.NewName)),
		}
	}
	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := c.store.GetArtifact(ctx, c.ArtifactID)
	if err != nil {
		return nil, err
	}

	newName := strings.TrimSpace(c.NewName)
	if err := ensureNameFree(ctx, c.store, current.Type, newName, current.ID); err != nil {
		return nil, err
	}

	if _, err := c.store.UpdateArtifact(ctx, current.ID, domain.ArtifactPatch{Name: &newName}); err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}

	return &RenameResult{
		ArtifactID: current.ID,
		OldName:    current.Name,
		NewName:    newName,
		Message:    fmt.Sprintf("Renamed %s to %s", current.Name, newName),
	}, nil
}
