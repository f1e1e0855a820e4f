package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ruleweaver/internal/domain"
)

// PreviewSync reports what Sync would write without touching any file
func (e *Engine) PreviewSync(ctx context.Context) (*domain.SyncResult, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, err
	}

	result := &domain.SyncResult{
		FilesWritten: append([]string(nil), plan.FilesToWrite...),
		Conflicts:    plan.Conflicts,
		Errors:       planErrors(plan),
	}
	result.Success = len(result.Errors) == 0
	return result, nil
}

// Sync writes every missing or out-of-date file. Conflicted files are never written.
// Files not reached before ctx is cancelled are reported as errors.
func (e *Engine) Sync(ctx context.Context, trigger domain.SyncTrigger) (*domain.SyncResult, error) {
	started := e.now()

	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, err
	}

	result := &domain.SyncResult{
		Conflicts: plan.Conflicts,
		Errors:    planErrors(plan),
	}

	for _, path := range plan.FilesToWrite {
		pf := plan.Files[path]
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, domain.SyncError{
				FilePath:    path,
				AdapterName: joinIDs(pf.Adapters),
				Message:     err.Error(),
			})
			continue
		}
		if err := e.writeFile(ctx, pf, operationFor(pf)); err != nil {
			result.Errors = append(result.Errors, domain.SyncError{
				FilePath:    path,
				AdapterName: joinIDs(pf.Adapters),
				Message:     err.Error(),
			})
			continue
		}
		result.FilesWritten = append(result.FilesWritten, path)
	}

	if ctx.Err() == nil {
		e.adoptSynced(ctx, plan)
	}

	result.Success = len(result.Errors) == 0

	entry := domain.SyncHistoryEntry{
		ID:           uuid.NewString(),
		At:           started.UTC(),
		FilesWritten: len(result.FilesWritten),
		Conflicts:    len(result.Conflicts),
		Errors:       len(result.Errors),
		Success:      result.Success,
		TriggeredBy:  trigger,
		Duration:     e.now().Sub(started),
	}
	// A cancelled sync still leaves a history entry for what it wrote
	if err := e.state.AppendSyncHistory(context.WithoutCancel(ctx), entry); err != nil {
		slog.Warn("failed to append sync history", "err", err)
	}

	slog.Info("sync finished",
		"written", len(result.FilesWritten),
		"conflicts", len(result.Conflicts),
		"errors", len(result.Errors),
		"trigger", trigger,
		"duration", entry.Duration.String())
	return result, nil
}

// adoptSynced records files that already match the expected content but have no
// current write record, so later external edits are detected against them.
func (e *Engine) adoptSynced(ctx context.Context, plan *Plan) {
	written, err := e.state.WrittenRecords(ctx)
	if err != nil {
		slog.Warn("failed to load write records", "err", err)
		return
	}
	for _, pf := range plan.Files {
		if pf.Status != domain.StatusSynced {
			continue
		}
		if rec, ok := written[pf.Path]; ok && rec.Hash == pf.ExpectedHash {
			continue
		}
		rec := domain.WrittenRecord{
			Path:      pf.Path,
			Hash:      pf.ExpectedHash,
			Adapters:  pf.Adapters,
			Operation: domain.OpAdopt,
			WrittenAt: e.now().UTC(),
		}
		if err := e.state.RecordWrite(ctx, rec); err != nil {
			slog.Warn("failed to adopt synced file", "path", pf.Path, "err", err)
			continue
		}
		if err := e.state.ClearSuppression(ctx, pf.Path); err != nil {
			slog.Warn("failed to clear suppression", "path", pf.Path, "err", err)
		}
	}
}

// planErrors converts error entries into per-file sync errors, one per path
func planErrors(plan *Plan) []domain.SyncError {
	var errs []domain.SyncError
	seen := make(map[string]bool)
	for _, entry := range plan.Entries {
		if entry.Status != domain.StatusError {
			continue
		}
		key := entry.ExpectedPath
		if key == "" {
			key = entry.ID
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		errs = append(errs, domain.SyncError{
			FilePath:    entry.ExpectedPath,
			AdapterName: string(entry.Adapter),
			Message:     entry.Detail,
		})
	}
	return errs
}

func joinIDs(ids []domain.AdapterID) string {
	return strings.Join(domain.AdapterIDStrings(ids), ", ")
}
