package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

func conflictedFixture(t *testing.T) (*fixture, domain.Conflict) {
	t.Helper()
	f := newFixture(t, globalRule("r1", "R1", registry.Gemini))
	ctx := context.Background()

	_, err := f.engine.Sync(ctx, domain.TriggerManual)
	require.NoError(t, err)
	f.fs.put(home(".gemini/GEMINI.md"), "remote edit\n")

	conflicts, err := f.engine.Conflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	return f, conflicts[0]
}

func TestResolve_Overwrite(t *testing.T) {
	f, conflict := conflictedFixture(t)
	ctx := context.Background()

	_, err := f.engine.Resolve(ctx, ResolveRequest{
		ConflictID:  conflict.ID,
		CurrentHash: conflict.CurrentHash,
		Resolution:  domain.ResolveOverwrite,
	})
	require.NoError(t, err)

	conflicts, err := f.engine.Conflicts(ctx)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	entries, err := f.engine.Status(ctx, domain.StatusFilter{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSynced, entries[0].Status)
	assert.Equal(t, domain.OpOverwrite, entries[0].LastOperation)
}

func TestResolve_KeepRemote(t *testing.T) {
	f, conflict := conflictedFixture(t)
	ctx := context.Background()
	path := home(".gemini/GEMINI.md")

	_, err := f.engine.Resolve(ctx, ResolveRequest{ConflictID: conflict.ID, Resolution: domain.ResolveKeepRemote})
	require.NoError(t, err)

	content, _ := f.fs.get(path)
	assert.Equal(t, "remote edit\n", content, "keep remote leaves the file untouched")

	conflicts, err := f.engine.Conflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1, "the conflict reappears on the next plan")
	assert.True(t, conflicts[0].Suppressed)

	result, err := f.engine.Sync(ctx, domain.TriggerManual)
	require.NoError(t, err)
	assert.Empty(t, result.FilesWritten)

	f.fs.put(path, "another remote edit\n")
	conflicts, err = f.engine.Conflicts(ctx)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.False(t, conflicts[0].Suppressed, "suppression ends when the content changes")
}

func TestResolve_StaleReview(t *testing.T) {
	f, conflict := conflictedFixture(t)
	f.fs.put(home(".gemini/GEMINI.md"), "changed again\n")

	_, err := f.engine.Resolve(context.Background(), ResolveRequest{
		ConflictID:  conflict.ID,
		CurrentHash: conflict.CurrentHash,
		Resolution:  domain.ResolveOverwrite,
	})
	assert.ErrorIs(t, err, application.ErrConflicted)

	content, _ := f.fs.get(home(".gemini/GEMINI.md"))
	assert.Equal(t, "changed again\n", content)
}

func TestResolve_UnknownConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Resolve(context.Background(), ResolveRequest{ConflictID: "conflict-nope", Resolution: domain.ResolveOverwrite})
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestConflictDiff(t *testing.T) {
	f, conflict := conflictedFixture(t)

	got, lines, err := f.engine.ConflictDiff(context.Background(), conflict.FilePath)
	require.NoError(t, err)
	assert.Equal(t, conflict.ID, got.ID)

	var added []string
	for _, l := range lines {
		if l.Kind == domain.DiffAdded {
			added = append(added, l.Text)
		}
	}
	assert.Contains(t, added, "remote edit")
}

func TestPrune(t *testing.T) {
	r1 := globalRule("r1", "R1", registry.Gemini)
	r2 := globalRule("r2", "R2", registry.ClaudeCode)
	f := newFixture(t, r1, r2)
	ctx := context.Background()

	_, err := f.engine.Sync(ctx, domain.TriggerManual)
	require.NoError(t, err)

	require.NoError(t, f.store.DeleteArtifact(ctx, "r1"))
	require.NoError(t, f.store.DeleteArtifact(ctx, "r2"))
	f.fs.put(home(".claude/CLAUDE.md"), "edited orphan")

	dry, err := f.engine.Prune(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{home(".gemini/GEMINI.md")}, dry.Removed)
	_, stillThere := f.fs.get(home(".gemini/GEMINI.md"))
	assert.True(t, stillThere, "dry run must not remove")

	result, err := f.engine.Prune(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{home(".gemini/GEMINI.md")}, result.Removed)
	require.Len(t, result.Kept, 1)
	assert.Equal(t, home(".claude/CLAUDE.md"), result.Kept[0].Path)

	_, exists := f.fs.get(home(".gemini/GEMINI.md"))
	assert.False(t, exists)
}
