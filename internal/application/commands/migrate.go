package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/application"
	"ruleweaver/internal/ports"
)

// MigrationTarget is a store that accepts artifacts verbatim
type MigrationTarget interface {
	ports.ArtifactStore
	ports.ArtifactCopier
}

// MigrateResult lists what was copied
type MigrateResult struct {
	Copied  []string
	Skipped []string
	Message string
}

// MigrateCommand copies every artifact between canonical store backends,
// keeping ids so sync state stays valid
type MigrateCommand struct {
	from ports.ArtifactStore
	to   MigrationTarget
	// Overwrite replaces artifacts whose id already exists in the target
	Overwrite bool
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(from ports.ArtifactStore, to MigrationTarget, overwrite bool) *MigrateCommand {
	return &MigrateCommand{
		from:      from,
		to:        to,
		Overwrite: overwrite,
	}
}

// Validate checks if the migration is valid
func (c *MigrateCommand) Validate() error {
	if c.from == nil || c.to == nil {
		return &application.ValidationError{Field: "store", Message: "source and target stores are required"}
	}
	return nil
}

// Execute runs the migrate command
func (c *MigrateCommand) Execute(ctx context.Context) (*MigrateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	source, err := c.from.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list source artifacts: %w", err)
	}
	existing, err := c.to.ListArtifacts(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list target artifacts: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, a := range existing {
		present[a.ID] = true
	}

	res := &MigrateResult{}
	for _, a := range source {
		if present[a.ID] && !c.Overwrite {
			res.Skipped = append(res.Skipped, a.ID)
			continue
		}
		if err := c.to.PutArtifact(ctx, a); err != nil {
			return res, fmt.Errorf("failed to copy %s: %w", a.ID, err)
		}
		res.Copied = append(res.Copied, a.ID)
	}

	res.Message = fmt.Sprintf("Copied %d artifact(s)", len(res.Copied))
	if n := len(res.Skipped); n > 0 {
		res.Message += fmt.Sprintf(", skipped %d already present", n)
	}
	return res, nil
}
