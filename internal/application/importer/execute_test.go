package importer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

func candidate(id, name, content string) domain.ImportCandidate {
	return domain.ImportCandidate{
		ID:              id,
		SourceType:      domain.SourceFile,
		ArtifactType:    domain.ArtifactRule,
		Name:            name,
		ProposedName:    name,
		Content:         content,
		Scope:           domain.ScopeGlobal,
		EnabledAdapters: []domain.AdapterID{registry.Gemini},
		ContentHash:     domain.ContentHash(content),
	}
}

func scanOf(cands ...domain.ImportCandidate) *domain.ScanResult {
	return &domain.ScanResult{Candidates: cands}
}

func TestExecute_RenameOnIdenticalContent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"style.md": "Prefer small functions."})
	store := newMemStore(rule("r1", "style", "Prefer small functions."))
	reg := registry.New()

	scan, err := NewScanner(store, reg, t.TempDir()).ScanDirectory(ctx, dir)
	require.NoError(t, err)
	require.Len(t, scan.Candidates, 1)

	res, err := NewExecutor(store, nil, reg).Execute(ctx, scan, domain.SourceDirectory, dir,
		domain.ImportOptions{ConflictMode: domain.ConflictRename})
	require.NoError(t, err)

	require.Len(t, res.Imported, 1, "identical content is not a reason to skip")
	assert.Empty(t, res.Skipped)
	assert.Equal(t, "style-2", res.Imported[0].Name)
	assert.True(t, res.Imported[0].Renamed)
	assert.Len(t, store.byName(domain.ArtifactRule, "style-2"), 1)
	assert.Len(t, store.byName(domain.ArtifactRule, "style"), 1)
}

func TestExecute_SkipTwice(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	ex := NewExecutor(store, nil, registry.New())
	scan := scanOf(candidate("c1", "tone", "be brief"))
	opts := domain.ImportOptions{ConflictMode: domain.ConflictSkip}

	first, err := ex.Execute(ctx, scan, domain.SourceFile, "tone.md", opts)
	require.NoError(t, err)
	assert.Len(t, first.Imported, 1)

	second, err := ex.Execute(ctx, scan, domain.SourceFile, "tone.md", opts)
	require.NoError(t, err)
	assert.Empty(t, second.Imported)
	require.Len(t, second.Skipped, 1)
	assert.Equal(t, "c1", second.Skipped[0].CandidateID)
}

func TestExecute_Replace(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(rule("r1", "tone", "old"))
	ex := NewExecutor(store, nil, registry.New())

	res, err := ex.Execute(ctx, scanOf(candidate("c1", "Tone", "new")), domain.SourceFile, "x",
		domain.ImportOptions{ConflictMode: domain.ConflictReplace})
	require.NoError(t, err)

	require.Len(t, res.Imported, 1)
	assert.True(t, res.Imported[0].Replaced)
	assert.Equal(t, "r1", res.Imported[0].ArtifactID)
	got, err := store.GetArtifact(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Content)
	assert.Equal(t, "tone", got.Name)
}

func TestExecute_ReplaceAmbiguous(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(rule("r1", "tone", "a"), rule("r2", "TONE", "b"))
	ex := NewExecutor(store, nil, registry.New())

	res, err := ex.Execute(ctx, scanOf(candidate("c1", "tone", "c")), domain.SourceFile, "x",
		domain.ImportOptions{ConflictMode: domain.ConflictReplace})
	require.NoError(t, err)

	assert.Empty(t, res.Imported)
	require.Len(t, res.Conflicts, 1)
	assert.ElementsMatch(t, []string{"r1", "r2"}, res.Conflicts[0].Matches)
}

func TestExecute_SameTypeOnly(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(rule("r1", "deploy", "rule body"))
	cand := candidate("c1", "deploy", "command body")
	cand.ArtifactType = domain.ArtifactCommand

	res, err := NewExecutor(store, nil, registry.New()).Execute(ctx, scanOf(cand), domain.SourceFile, "x",
		domain.ImportOptions{ConflictMode: domain.ConflictSkip})
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "deploy", res.Imported[0].Name)
}

func TestExecute_RenameWithinBatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	scan := scanOf(candidate("c1", "notes", "one"), candidate("c2", "notes", "two"))

	res, err := NewExecutor(store, nil, registry.New()).Execute(ctx, scan, domain.SourceDirectory, "x",
		domain.ImportOptions{})
	require.NoError(t, err)
	require.Len(t, res.Imported, 2)
	assert.Equal(t, "notes", res.Imported[0].Name)
	assert.Equal(t, "notes-2", res.Imported[1].Name)
}

func TestExecute_Selection(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	scan := scanOf(candidate("c1", "a", "one"), candidate("c2", "b", "two"), candidate("c3", "c", "three"))

	res, err := NewExecutor(store, nil, registry.New()).Execute(ctx, scan, domain.SourceDirectory, "x",
		domain.ImportOptions{SelectedCandidateIDs: []string{"c3", "c1"}})
	require.NoError(t, err)
	require.Len(t, res.Imported, 2)
	assert.Equal(t, "c1", res.Imported[0].CandidateID)
	assert.Equal(t, "c3", res.Imported[1].CandidateID)
}

func TestExecute_SelectionNotInScan(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	scan := scanOf(candidate("c1", "a", "one"))

	res, err := NewExecutor(store, nil, registry.New()).Execute(ctx, scan, domain.SourceDirectory, "x",
		domain.ImportOptions{SelectedCandidateIDs: []string{"cand-gone", "c1", "cand-gone"}})
	require.NoError(t, err)
	require.Len(t, res.Imported, 1)
	assert.Equal(t, "c1", res.Imported[0].CandidateID)

	require.Len(t, res.Errors, 1, "an unknown id is reported once")
	assert.Equal(t, "cand-gone", res.Errors[0].CandidateID)
	assert.Contains(t, res.Errors[0].Message, "not found")
}

func TestExecute_Overrides(t *testing.T) {
	ctx := context.Background()
	reg := registry.New()

	t.Run("local scope needs target paths", func(t *testing.T) {
		store := newMemStore()
		res, err := NewExecutor(store, nil, reg).Execute(ctx, scanOf(candidate("c1", "a", "x")), domain.SourceFile, "x",
			domain.ImportOptions{DefaultScope: domain.ScopeLocal})
		require.NoError(t, err)
		assert.Empty(t, res.Imported)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0].Message, "target path")
	})

	t.Run("applied to every candidate", func(t *testing.T) {
		store := newMemStore()
		res, err := NewExecutor(store, nil, reg).Execute(ctx,
			scanOf(candidate("c1", "a", "x"), candidate("c2", "b", "y")), domain.SourceFile, "x",
			domain.ImportOptions{
				DefaultScope:       domain.ScopeLocal,
				DefaultTargetPaths: []string{"/work/repo"},
				DefaultAdapters:    []domain.AdapterID{registry.Cursor, registry.ClaudeCode},
			})
		require.NoError(t, err)
		require.Len(t, res.Imported, 2)
		for _, imp := range res.Imported {
			a, err := store.GetArtifact(ctx, imp.ArtifactID)
			require.NoError(t, err)
			assert.Equal(t, domain.ScopeLocal, a.Scope)
			assert.Equal(t, []string{"/work/repo"}, a.TargetPaths)
			assert.Equal(t, []domain.AdapterID{registry.Cursor, registry.ClaudeCode}, a.EnabledAdapters)
		}
	})

	t.Run("unknown default adapter", func(t *testing.T) {
		_, err := NewExecutor(newMemStore(), nil, reg).Execute(ctx, scanOf(candidate("c1", "a", "x")), domain.SourceFile, "x",
			domain.ImportOptions{DefaultAdapters: []domain.AdapterID{"vim"}})
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	})

	t.Run("unknown conflict mode", func(t *testing.T) {
		_, err := NewExecutor(newMemStore(), nil, reg).Execute(ctx, scanOf(), domain.SourceFile, "x",
			domain.ImportOptions{ConflictMode: "merge"})
		assert.ErrorIs(t, err, application.ErrInvalidInput)
	})
}

func TestExecute_EmptyContentSkipped(t *testing.T) {
	res, err := NewExecutor(newMemStore(), nil, registry.New()).Execute(context.Background(),
		scanOf(candidate("c1", "blank", "  \n")), domain.SourceClipboard, "clipboard", domain.ImportOptions{})
	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "content is empty", res.Skipped[0].Reason)
}

func TestExecute_History(t *testing.T) {
	ctx := context.Background()
	hist := &memHistory{}
	store := newMemStore(rule("r1", "tone", "a"))
	scan := scanOf(candidate("c1", "tone", "b"), candidate("c2", "fresh", "c"))
	scan.Errors = []string{"bad.json: invalid payload"}

	_, err := NewExecutor(store, hist, registry.New()).Execute(ctx, scan, domain.SourceDirectory, "/src",
		domain.ImportOptions{ConflictMode: domain.ConflictSkip})
	require.NoError(t, err)

	entries, err := hist.ListImportHistory(ctx, 50)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, domain.SourceDirectory, e.SourceType)
	assert.Equal(t, "/src", e.SourceLabel)
	assert.Equal(t, 2, e.Scanned)
	assert.Equal(t, 1, e.Imported)
	assert.Equal(t, 1, e.Skipped)
	assert.Equal(t, 1, e.ScanErrors)
}
