package reconcile

import (
	"context"
	"fmt"
	"log/slog"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

// ResolveRequest identifies a conflict and the chosen resolution.
// When CurrentHash is set, resolution fails if the file changed since it was reviewed.
type ResolveRequest struct {
	ConflictID  string
	CurrentHash string
	Resolution  domain.Resolution
}

// Resolve applies Overwrite or KeepRemote to one conflict
func (e *Engine) Resolve(ctx context.Context, req ResolveRequest) (*domain.Conflict, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, err
	}

	conflict, ok := plan.ConflictByID(req.ConflictID)
	if !ok {
		return nil, &application.NotFoundError{Kind: "conflict", ID: req.ConflictID}
	}
	if req.CurrentHash != "" && req.CurrentHash != conflict.CurrentHash {
		return nil, &application.ConflictError{Path: conflict.FilePath, Reason: "file changed since the conflict was reviewed"}
	}

	pf := plan.Files[conflict.FilePath]

	switch req.Resolution {
	case domain.ResolveOverwrite:
		if err := e.writeFile(ctx, pf, domain.OpOverwrite); err != nil {
			return nil, fmt.Errorf("failed to overwrite %s: %w", conflict.FilePath, err)
		}
	case domain.ResolveKeepRemote:
		if err := e.keepRemote(ctx, pf); err != nil {
			return nil, err
		}
	default:
		return nil, &application.ValidationError{Field: "resolution", Message: fmt.Sprintf("unknown resolution %q", req.Resolution)}
	}

	slog.Info("conflict resolved", "path", conflict.FilePath, "resolution", req.Resolution)
	return &conflict, nil
}

// keepRemote records a suppression and notes the decision as the path's last operation
func (e *Engine) keepRemote(ctx context.Context, pf *PlannedFile) error {
	sup := domain.Suppression{
		Path:         pf.Path,
		RemoteHash:   pf.CurrentHash,
		ExpectedHash: pf.ExpectedHash,
		CreatedAt:    e.now().UTC(),
	}
	if err := e.state.SaveSuppression(ctx, sup); err != nil {
		return fmt.Errorf("failed to save suppression for %s: %w", pf.Path, err)
	}

	written, err := e.state.WrittenRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load write records: %w", err)
	}
	if rec, ok := written[pf.Path]; ok {
		rec.Operation = domain.OpKeepRemote
		rec.WrittenAt = e.now().UTC()
		if err := e.state.RecordWrite(ctx, rec); err != nil {
			return fmt.Errorf("failed to record keep-remote for %s: %w", pf.Path, err)
		}
	}
	return nil
}

// ConflictDiff returns the line diff between the content that would be written
// and the content on disk
func (e *Engine) ConflictDiff(ctx context.Context, conflictID string) (*domain.Conflict, []domain.DiffLine, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, nil, err
	}

	conflict, ok := plan.ConflictByID(conflictID)
	if !ok {
		return nil, nil, &application.NotFoundError{Kind: "conflict", ID: conflictID}
	}

	pf := plan.Files[conflict.FilePath]
	return &conflict, domain.LineDiff(string(pf.Expected), string(pf.Current)), nil
}

// Conflicts lists current conflicts
func (e *Engine) Conflicts(ctx context.Context) ([]domain.Conflict, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return nil, err
	}
	return plan.Conflicts, nil
}
