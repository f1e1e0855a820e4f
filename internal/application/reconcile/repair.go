package reconcile

import (
	"context"
	"fmt"
	"strings"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

// RepairResult is the outcome for one entry
type RepairResult struct {
	EntryID   string
	Path      string
	Success   bool
	Error     string
	Operation domain.Operation
}

// Repair re-renders and writes one entry. Synced entries succeed without writing;
// conflicted and unsupported entries fail without touching the file.
func (e *Engine) Repair(ctx context.Context, entryID string) (*RepairResult, error) {
	plan, err := e.Plan(ctx, domain.StatusFilter{ArtifactID: artifactIDOf(entryID)})
	if err != nil {
		return nil, err
	}

	entry, ok := plan.Entry(entryID)
	if !ok {
		return nil, &application.NotFoundError{Kind: "status entry", ID: entryID}
	}

	result := &RepairResult{EntryID: entry.ID, Path: entry.ExpectedPath}

	switch entry.Status {
	case domain.StatusSynced:
		result.Success = true
		return result, nil
	case domain.StatusUnsupported:
		err := &application.PolicyViolationError{Reason: entry.Detail}
		result.Error = err.Error()
		return result, err
	case domain.StatusConflicted:
		err := &application.ConflictError{Path: entry.ExpectedPath}
		result.Error = err.Error()
		return result, err
	}

	pf, ok := plan.Files[entry.ExpectedPath]
	if !ok {
		err := fmt.Errorf("%w: %s", application.ErrNotFound, entry.Detail)
		result.Error = err.Error()
		return result, err
	}

	op := operationFor(pf)
	if err := e.writeFile(ctx, pf, op); err != nil {
		result.Error = err.Error()
		return result, err
	}

	result.Success = true
	result.Operation = op
	return result, nil
}

// RepairAll repairs every missing, out-of-date or errored entry matching filter.
// Conflicted entries are reported as failures. Files shared by several entries
// are written once and the outcome is reported for each entry.
func (e *Engine) RepairAll(ctx context.Context, filter domain.StatusFilter) ([]RepairResult, error) {
	plan, err := e.Plan(ctx, filter)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		err error
		op  domain.Operation
	}
	done := make(map[string]outcome)

	results := make([]RepairResult, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		if entry.Status == domain.StatusSynced || entry.Status == domain.StatusUnsupported {
			continue
		}

		result := RepairResult{EntryID: entry.ID, Path: entry.ExpectedPath}

		if entry.Status == domain.StatusConflicted {
			result.Error = (&application.ConflictError{Path: entry.ExpectedPath}).Error()
			results = append(results, result)
			continue
		}

		pf, ok := plan.Files[entry.ExpectedPath]
		if !ok {
			result.Error = entry.Detail
			results = append(results, result)
			continue
		}

		out, seen := done[pf.Path]
		if !seen {
			if err := ctx.Err(); err != nil {
				out = outcome{err: err}
			} else {
				out.op = operationFor(pf)
				out.err = e.writeFile(ctx, pf, out.op)
			}
			done[pf.Path] = out
		}

		if out.err != nil {
			result.Error = out.err.Error()
		} else {
			result.Success = true
			result.Operation = out.op
		}
		results = append(results, result)
	}
	return results, nil
}

// artifactIDOf extracts the artifact id prefix of an entry id
func artifactIDOf(entryID string) string {
	if i := strings.Index(entryID, ":"); i > 0 {
		return entryID[:i]
	}
	return ""
}
