package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"ruleweaver/internal/domain"
)

// PruneResult lists orphaned generated files
type PruneResult struct {
	Removed []string
	Kept    []PrunedFile
	Errors  []PrunedFile
	DryRun  bool
}

// PrunedFile is an orphan that was not removed, with the reason
type PrunedFile struct {
	Path   string
	Reason string
}

// Prune removes files the engine wrote that no artifact targets anymore.
// Files edited since the last write are kept.
func (e *Engine) Prune(ctx context.Context, dryRun bool) (*PruneResult, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, err
	}
	written, err := e.state.WrittenRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load write records: %w", err)
	}

	var orphans []string
	for path := range written {
		if _, planned := plan.Files[path]; !planned {
			orphans = append(orphans, path)
		}
	}
	sort.Strings(orphans)

	result := &PruneResult{DryRun: dryRun}
	for _, path := range orphans {
		rec := written[path]

		current, err := e.fs.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if !dryRun {
				if err := e.state.ForgetWrite(ctx, path); err != nil {
					result.Errors = append(result.Errors, PrunedFile{Path: path, Reason: err.Error()})
				}
			}
			continue
		case err != nil:
			result.Errors = append(result.Errors, PrunedFile{Path: path, Reason: err.Error()})
			continue
		}

		if domain.ContentHash(string(current)) != rec.Hash {
			result.Kept = append(result.Kept, PrunedFile{Path: path, Reason: "edited since last write"})
			continue
		}

		if dryRun {
			result.Removed = append(result.Removed, path)
			continue
		}
		if err := e.fs.Remove(path); err != nil {
			result.Errors = append(result.Errors, PrunedFile{Path: path, Reason: err.Error()})
			continue
		}
		if err := e.state.ForgetWrite(ctx, path); err != nil {
			result.Errors = append(result.Errors, PrunedFile{Path: path, Reason: err.Error()})
			continue
		}
		if err := e.state.ClearSuppression(ctx, path); err != nil {
			slog.Warn("failed to clear suppression", "path", path, "err", err)
		}
		slog.Info("pruned orphan", "path", path)
		result.Removed = append(result.Removed, path)
	}
	return result, nil
}
