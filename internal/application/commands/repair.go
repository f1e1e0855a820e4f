package commands

import (
	"context"
	"fmt"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

// RepairCommandResult contains the outcome of repairing one entry
type RepairCommandResult struct {
	Result  *reconcile.RepairResult
	Message string
}

// RepairCommand rewrites the file of one status entry
type RepairCommand struct {
	engine  Reconciler
	EntryID string
}

// NewRepairCommand creates a new RepairCommand
func NewRepairCommand(engine Reconciler, entryID string) *RepairCommand {
	return &RepairCommand{
		engine:  engine,
		EntryID: entryID,
	}
}

// Validate checks if the repair operation is valid
func (c *RepairCommand) Validate() error {
	if err := application.ValidateRequired("entryID", c.EntryID); err != nil {
		return err
	}
	if parts := strings.Split(c.EntryID, ":"); len(parts) < 3 || parts[0] == "" {
		return &application.ValidationError{
			Field:   "entryID",
			Message: "entry ID must look like <artifact-id>:<adapter>:<path-hash>",
		}
	}
	return nil
}

// Execute runs the repair command
func (c *RepairCommand) Execute(ctx context.Context) (*RepairCommandResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := c.engine.Repair(ctx, c.EntryID)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("%s is already in sync", res.Path)
	if res.Operation != "" {
		msg = fmt.Sprintf("Repaired %s (%s)", res.Path, res.Operation)
	}
	return &RepairCommandResult{Result: res, Message: msg}, nil
}

// RepairAllResult contains per-entry outcomes
type RepairAllResult struct {
	Results   []reconcile.RepairResult
	Succeeded int
	Failed    int
	Message   string
}

// RepairAllCommand repairs every repairable entry matching a filter.
// Conflicted entries are reported as failures, never written.
type RepairAllCommand struct {
	engine Reconciler
	Filter domain.StatusFilter
}

// NewRepairAllCommand creates a new RepairAllCommand
func NewRepairAllCommand(engine Reconciler, filter domain.StatusFilter) *RepairAllCommand {
	return &RepairAllCommand{
		engine: engine,
		Filter: filter,
	}
}

// Execute runs the repair-all command
func (c *RepairAllCommand) Execute(ctx context.Context) (*RepairAllResult, error) {
	results, err := c.engine.RepairAll(ctx, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to repair: %w", err)
	}

	out := &RepairAllResult{Results: results}
	for _, r := range results {
		if r.Success {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	out.Message = fmt.Sprintf("Repaired %d entries, %d failed", out.Succeeded, out.Failed)
	if len(results) == 0 {
		out.Message = "Nothing to repair"
	}
	return out, nil
}
