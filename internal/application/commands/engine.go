package commands

import (
	"context"

	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

// Reconciler is the engine surface the commands drive.
// *reconcile.Engine implements it.
type Reconciler interface {
	Status(ctx context.Context, filter domain.StatusFilter) ([]domain.StatusEntry, error)
	Summary(ctx context.Context, filter domain.StatusFilter) (domain.StatusSummary, error)
	PreviewSync(ctx context.Context) (*domain.SyncResult, error)
	Sync(ctx context.Context, trigger domain.SyncTrigger) (*domain.SyncResult, error)
	Repair(ctx context.Context, entryID string) (*reconcile.RepairResult, error)
	RepairAll(ctx context.Context, filter domain.StatusFilter) ([]reconcile.RepairResult, error)
	Resolve(ctx context.Context, req reconcile.ResolveRequest) (*domain.Conflict, error)
	ConflictDiff(ctx context.Context, conflictID string) (*domain.Conflict, []domain.DiffLine, error)
	Conflicts(ctx context.Context) ([]domain.Conflict, error)
	Prune(ctx context.Context, dryRun bool) (*reconcile.PruneResult, error)
	SyncHistory(ctx context.Context, limit int) ([]domain.SyncHistoryEntry, error)
}

var _ Reconciler = (*reconcile.Engine)(nil)
