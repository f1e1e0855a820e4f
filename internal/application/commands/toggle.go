package commands

import (
	"context"
	"fmt"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// ToggleResult contains the result of enabling or disabling an artifact
type ToggleResult struct {
	Artifact *domain.Artifact
	Changed  bool
	Message  string
}

// ToggleCommand enables or disables an artifact. Disabled artifacts produce no entries.
type ToggleCommand struct {
	store      ports.ArtifactStore
	ArtifactID string
	Enabled    bool
}

// NewToggleCommand creates a new ToggleCommand
func NewToggleCommand(store ports.ArtifactStore, artifactID string, enabled bool) *ToggleCommand {
	return &ToggleCommand{
		store:      store,
		ArtifactID: artifactID,
		Enabled:    enabled,
	}
}

// Validate checks if the toggle operation is valid
func (c *ToggleCommand) Validate() error {
	return application.ValidateRequired("artifactID", c.ArtifactID)
}

// Execute runs the toggle command. Toggling to the current state is a no-op.
func (c *ToggleCommand) Execute(ctx context.Context) (*ToggleResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	current, err := c.store.GetArtifact(ctx, c.ArtifactID)
	if err != nil {
		return nil, err
	}
	verb := "Disabled"
	if c.Enabled {
		verb = "Enabled"
	}
	if current.Enabled == c.Enabled {
		return &ToggleResult{
			Artifact: current,
			Message:  fmt.Sprintf("%s is already %s", current.Name, strings.ToLower(verb)),
		}, nil
	}

	updated, err := c.store.SetEnabled(ctx, current.ID, c.Enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", current.ID, err)
	}
	return &ToggleResult{
		Artifact: updated,
		Changed:  true,
		Message:  fmt.Sprintf("%s %s %s", verb, updated.Type, updated.Name),
	}, nil
}
