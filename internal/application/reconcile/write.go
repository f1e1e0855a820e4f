package reconcile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

// writeFile writes the expected content of pf and records its hash.
// The file is re-read first; if it changed since the plan, nothing is written.
func (e *Engine) writeFile(ctx context.Context, pf *PlannedFile, op domain.Operation) error {
	if pf.Expected == nil {
		return &application.IOError{Op: "render", Path: pf.Path, Err: errors.New(pf.Detail)}
	}
	if err := e.verifyUnchanged(pf); err != nil {
		return err
	}

	if err := e.fs.WriteFile(pf.Path, pf.Expected); err != nil {
		return &application.IOError{Op: "write", Path: pf.Path, Err: err}
	}

	// The file is on disk now, so its record must land even if ctx is cancelled
	ctx = context.WithoutCancel(ctx)
	rec := domain.WrittenRecord{
		Path:      pf.Path,
		Hash:      pf.ExpectedHash,
		Adapters:  pf.Adapters,
		Operation: op,
		WrittenAt: e.now().UTC(),
	}
	if err := e.state.RecordWrite(ctx, rec); err != nil {
		return fmt.Errorf("failed to record write of %s: %w", pf.Path, err)
	}
	if err := e.state.ClearSuppression(ctx, pf.Path); err != nil {
		slog.Warn("failed to clear suppression", "path", pf.Path, "err", err)
	}

	slog.Info("wrote target", "path", pf.Path, "op", op, "adapters", pf.Adapters)
	return nil
}

// verifyUnchanged guards against edits made between planning and writing
func (e *Engine) verifyUnchanged(pf *PlannedFile) error {
	current, err := e.fs.ReadFile(pf.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if pf.Exists {
			return &application.ConflictError{Path: pf.Path, Reason: "file was removed since it was planned"}
		}
		return nil
	case err != nil:
		if !pf.Exists {
			// Unreadable before and after; let the write report the real failure.
			return nil
		}
		return &application.IOError{Op: "read", Path: pf.Path, Err: err}
	}

	if !pf.Exists {
		if pf.Status == domain.StatusError {
			return &application.IOError{Op: "read", Path: pf.Path, Err: errors.New("file became readable since it was planned; re-run the plan")}
		}
		return &application.ConflictError{Path: pf.Path, Reason: "file appeared since it was planned"}
	}
	if !bytes.Equal(current, pf.Current) {
		return &application.ConflictError{Path: pf.Path, Reason: "file changed since it was planned"}
	}
	return nil
}

// operationFor names the write performed for a planned status
func operationFor(pf *PlannedFile) domain.Operation {
	if pf.Exists {
		return domain.OpUpdate
	}
	return domain.OpCreate
}
