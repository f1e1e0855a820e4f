package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/application/reconcile"
)

// PruneCommandResult wraps the prune outcome with a message
type PruneCommandResult struct {
	Result  *reconcile.PruneResult
	Message string
}

// PruneCommand removes generated files no artifact targets anymore
type PruneCommand struct {
	engine Reconciler
	DryRun bool
}

// NewPruneCommand creates a new PruneCommand
func NewPruneCommand(engine Reconciler, dryRun bool) *PruneCommand {
	return &PruneCommand{
		engine: engine,
		DryRun: dryRun,
	}
}

// Execute runs the prune command
func (c *PruneCommand) Execute(ctx context.Context) (*PruneCommandResult, error) {
	res, err := c.engine.Prune(ctx, c.DryRun)
	if err != nil {
		return nil, fmt.Errorf("failed to prune: %w", err)
	}

	verb := "Removed"
	if c.DryRun {
		verb = "Would remove"
	}
	msg := fmt.Sprintf("%s %d orphaned file(s)", verb, len(res.Removed))
	if n := len(res.Kept); n > 0 {
		msg += fmt.Sprintf(", kept %d edited file(s)", n)
	}
	if n := len(res.Errors); n > 0 {
		msg += fmt.Sprintf(", %d error(s)", n)
	}
	return &PruneCommandResult{Result: res, Message: msg}, nil
}
