package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/application"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

// ResolveResult contains the resolved conflict
type ResolveResult struct {
	Conflict   *domain.Conflict
	Resolution domain.Resolution
	Message    string
}

// ResolveCommand applies overwrite or keep-remote to one conflict
type ResolveCommand struct {
	engine     Reconciler
	ConflictID string
	Resolution string
	// CurrentHash guards against the file changing after review; optional
	CurrentHash string
}

// NewResolveCommand creates a new ResolveCommand
func NewResolveCommand(engine Reconciler, conflictID, resolution, currentHash string) *ResolveCommand {
	return &ResolveCommand{
		engine:      engine,
		ConflictID:  conflictID,
		Resolution:  resolution,
		CurrentHash: currentHash,
	}
}

// Validate checks if the resolve operation is valid
func (c *ResolveCommand) Validate() error {
	if err := application.ValidateRequired("conflictID", c.ConflictID); err != nil {
		return err
	}
	if _, err := domain.ParseResolution(c.Resolution); err != nil {
		return &application.ValidationError{Field: "resolution", Message: err.Error()}
	}
	return nil
}

// Execute runs the resolve command
func (c *ResolveCommand) Execute(ctx context.Context) (*ResolveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	resolution, _ := domain.ParseResolution(c.Resolution)

	conflict, err := c.engine.Resolve(ctx, reconcile.ResolveRequest{
		ConflictID:  c.ConflictID,
		CurrentHash: c.CurrentHash,
		Resolution:  resolution,
	})
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Overwrote %s with the canonical content", conflict.FilePath)
	if resolution == domain.ResolveKeepRemote {
		msg = fmt.Sprintf("Keeping the edited %s until it or its artifacts change", conflict.FilePath)
	}
	return &ResolveResult{Conflict: conflict, Resolution: resolution, Message: msg}, nil
}

// DiffResult contains a conflict and its line diff
type DiffResult struct {
	Conflict *domain.Conflict
	Lines    []domain.DiffLine
	Unified  string
}

// DiffCommand previews what overwriting a conflict would change
type DiffCommand struct {
	engine     Reconciler
	ConflictID string
}

// NewDiffCommand creates a new DiffCommand
func NewDiffCommand(engine Reconciler, conflictID string) *DiffCommand {
	return &DiffCommand{
		engine:     engine,
		ConflictID: conflictID,
	}
}

// Validate checks if the diff operation is valid
func (c *DiffCommand) Validate() error {
	return application.ValidateRequired("conflictID", c.ConflictID)
}

// Execute runs the diff command
func (c *DiffCommand) Execute(ctx context.Context) (*DiffResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	conflict, lines, err := c.engine.ConflictDiff(ctx, c.ConflictID)
	if err != nil {
		return nil, err
	}
	return &DiffResult{Conflict: conflict, Lines: lines, Unified: domain.FormatUnified(lines)}, nil
}

// ListConflictsCommand lists current conflicts
type ListConflictsCommand struct {
	engine Reconciler
}

// NewListConflictsCommand creates a new ListConflictsCommand
func NewListConflictsCommand(engine Reconciler) *ListConflictsCommand {
	return &ListConflictsCommand{engine: engine}
}

// Execute runs the list conflicts command
func (c *ListConflictsCommand) Execute(ctx context.Context) ([]domain.Conflict, error) {
	return c.engine.Conflicts(ctx)
}
