package commands

import (
	"context"
	"fmt"

	"ruleweaver/internal/domain"
)

// StatusResult holds status entries and their summary
type StatusResult struct {
	Entries []domain.StatusEntry
	Summary domain.StatusSummary
	Message string
}

// StatusCommand reports the derived status of every matching entry
type StatusCommand struct {
	engine Reconciler
	Filter domain.StatusFilter
}

// NewStatusCommand creates a new StatusCommand
func NewStatusCommand(engine Reconciler, filter domain.StatusFilter) *StatusCommand {
	return &StatusCommand{
		engine: engine,
		Filter: filter,
	}
}

// Execute runs the status command
func (c *StatusCommand) Execute(ctx context.Context) (*StatusResult, error) {
	entries, err := c.engine.Status(ctx, c.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute status: %w", err)
	}
	summary := domain.Summarize(entries)
	return &StatusResult{
		Entries: entries,
		Summary: summary,
		Message: FormatSummary(summary),
	}, nil
}

// FormatSummary renders a one-line count per non-empty status
func FormatSummary(s domain.StatusSummary) string {
	if s.Total == 0 {
		return "No entries"
	}
	msg := fmt.Sprintf("%d entries:", s.Total)
	for _, st := range domain.Statuses {
		if n := s.Count(st); n > 0 {
			msg += fmt.Sprintf(" %d %s,", n, st)
		}
	}
	return msg[:len(msg)-1]
}
