package commands

import (
	"context"
	"strings"
	"testing"

	"ruleweaver/internal/adapters/filesystem"
	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

func newTestRepo(t *testing.T) *filesystem.Repository {
	t.Helper()
	return filesystem.NewRepository(t.TempDir())
}

func seedArtifact(t *testing.T, repo *filesystem.Repository, typ domain.ArtifactType, name string) *domain.Artifact {
	t.Helper()
	a, err := repo.CreateArtifact(context.Background(), domain.ArtifactInput{
		Type:            typ,
		Name:            name,
		Content:         "content of " + name,
		Scope:           domain.ScopeGlobal,
		EnabledAdapters: []domain.AdapterID{"codex"},
		Enabled:         true,
	})
	if err != nil {
		t.Fatalf("failed to seed %s: %v", name, err)
	}
	return a
}

func checkErr(t *testing.T, err error, wantErr bool, errMsg string) {
	t.Helper()
	if !wantErr {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Errorf("expected error containing %q, got nil", errMsg)
		return
	}
	if !strings.Contains(err.Error(), errMsg) {
		t.Errorf("expected error containing %q, got %q", errMsg, err.Error())
	}
}

// fakeEngine records calls and returns canned results
type fakeEngine struct {
	entries     []domain.StatusEntry
	sync        *domain.SyncResult
	preview     *domain.SyncResult
	repair      *reconcile.RepairResult
	repairAll   []reconcile.RepairResult
	conflict    *domain.Conflict
	diff        []domain.DiffLine
	prune       *reconcile.PruneResult
	history     []domain.SyncHistoryEntry
	err         error
	lastTrigger domain.SyncTrigger
	lastResolve reconcile.ResolveRequest
	syncCalls   int
}

func (f *fakeEngine) Status(context.Context, domain.StatusFilter) ([]domain.StatusEntry, error) {
	return f.entries, f.err
}

func (f *fakeEngine) Summary(context.Context, domain.StatusFilter) (domain.StatusSummary, error) {
	return domain.Summarize(f.entries), f.err
}

func (f *fakeEngine) PreviewSync(context.Context) (*domain.SyncResult, error) {
	return f.preview, f.err
}

func (f *fakeEngine) Sync(_ context.Context, trigger domain.SyncTrigger) (*domain.SyncResult, error) {
	f.syncCalls++
	f.lastTrigger = trigger
	return f.sync, f.err
}

func (f *fakeEngine) Repair(context.Context, string) (*reconcile.RepairResult, error) {
	return f.repair, f.err
}

func (f *fakeEngine) RepairAll(context.Context, domain.StatusFilter) ([]reconcile.RepairResult, error) {
	return f.repairAll, f.err
}

func (f *fakeEngine) Resolve(_ context.Context, req reconcile.ResolveRequest) (*domain.Conflict, error) {
	f.lastResolve = req
	return f.conflict, f.err
}

func (f *fakeEngine) ConflictDiff(context.Context, string) (*domain.Conflict, []domain.DiffLine, error) {
	return f.conflict, f.diff, f.err
}

func (f *fakeEngine) Conflicts(context.Context) ([]domain.Conflict, error) {
	if f.conflict == nil {
		return nil, f.err
	}
	return []domain.Conflict{*f.conflict}, f.err
}

func (f *fakeEngine) Prune(context.Context, bool) (*reconcile.PruneResult, error) {
	return f.prune, f.err
}

func (f *fakeEngine) SyncHistory(context.Context, int) ([]domain.SyncHistoryEntry, error) {
	return f.history, f.err
}
