package commands

import (
	"context"
	"fmt"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// CreateArtifactResult contains the result of creating an artifact
type CreateArtifactResult struct {
	Artifact *domain.Artifact
	Message  string
}

// CreateArtifactCommand adds a rule, command or skill to the canonical store
type CreateArtifactCommand struct {
	store    ports.ArtifactStore
	registry ports.AdapterRegistry
	Input    domain.ArtifactInput
}

// NewCreateArtifactCommand creates a new CreateArtifactCommand
func NewCreateArtifactCommand(store ports.ArtifactStore, registry ports.AdapterRegistry, in domain.ArtifactInput) *CreateArtifactCommand {
	return &CreateArtifactCommand{
		store:    store,
		registry: registry,
		Input:    in,
	}
}

// Validate checks if the create operation is valid
func (c *CreateArtifactCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Input.Name); err != nil {
		return err
	}
	if domain.SanitizeName(c.Input.Name) != strings.TrimSpace(c.Input.Name) {
		return &application.ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("%q contains unsupported characters (suggested: %s)", c.Input.Name, domain.SanitizeName(c.Input.Name)),
		}
	}
	if err := application.ValidateRequired("content", c.Input.Content); err != nil {
		return err
	}
	if _, err := domain.ParseArtifactType(string(c.Input.Type)); err != nil {
		return &application.ValidationError{Field: "type", Message: err.Error()}
	}
	if err := application.ValidateScope(c.Input.Scope, c.Input.TargetPaths); err != nil {
		return err
	}
	if len(c.Input.EnabledAdapters) == 0 {
		return &application.ValidationError{Field: "adapters", Message: "at least one adapter is required"}
	}
	return application.ValidateAdapters("adapters", c.Input.EnabledAdapters, c.registry)
}

// Execute runs the create command. Names are unique per type, ignoring case.
func (c *CreateArtifactCommand) Execute(ctx context.Context) (*CreateArtifactResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	in := c.Input
	in.Name = strings.TrimSpace(in.Name)
	if err := ensureNameFree(ctx, c.store, in.Type, in.Name, ""); err != nil {
		return nil, err
	}

	a, err := c.store.CreateArtifact(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}

	return &CreateArtifactResult{
		Artifact: a,
		Message:  fmt.Sprintf("Created %s: %s (%s)", a.Type, a.Name, a.ID),
	}, nil
}

// ensureNameFree fails when another artifact of the same type already uses name
func ensureNameFree(ctx context.Context, store ports.ArtifactStore, t domain.ArtifactType, name, exceptID string) error {
	existing, err := store.ListArtifacts(ctx, t)
	if err != nil {
		return fmt.Errorf("failed to list artifacts: %w", err)
	}
	for _, a := range existing {
		if a.ID != exceptID && strings.EqualFold(a.Name, name) {
			return &application.ValidationError{
				Field:   "name",
				Message: fmt.Sprintf("a %s named %q already exists (%s)", t, a.Name, a.ID),
			}
		}
	}
	return nil
}
