package reconcile

import (
	"context"

	"ruleweaver/internal/domain"
)

// Status returns the status entries matching filter
func (e *Engine) Status(ctx context.Context, filter domain.StatusFilter) ([]domain.StatusEntry, error) {
	plan, err := e.Plan(ctx, filter)
	if err != nil {
		return nil, err
	}
	return plan.Entries, nil
}

// Summary counts the entries matching filter per status
func (e *Engine) Summary(ctx context.Context, filter domain.StatusFilter) (domain.StatusSummary, error) {
	entries, err := e.Status(ctx, filter)
	if err != nil {
		return domain.StatusSummary{}, err
	}
	return domain.Summarize(entries), nil
}

// SyncHistory returns recent sync runs, newest first
func (e *Engine) SyncHistory(ctx context.Context, limit int) ([]domain.SyncHistoryEntry, error) {
	return e.state.ListSyncHistory(ctx, limit)
}
