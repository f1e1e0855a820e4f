package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// memStore is an in-memory ArtifactStore
type memStore struct {
	mu        sync.Mutex
	artifacts map[string]domain.Artifact
	seq       int
}

func newMemStore(artifacts ...domain.Artifact) *memStore {
	s := &memStore{artifacts: make(map[string]domain.Artifact)}
	for _, a := range artifacts {
		s.artifacts[a.ID] = a
	}
	return s
}

func (s *memStore) ListArtifacts(_ context.Context, t domain.ArtifactType) ([]domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Artifact
	for _, a := range s.artifacts {
		if t == "" || a.Type == t {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) GetArtifact(_ context.Context, id string) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("artifact %s: not found", id)
	}
	return &a, nil
}

func (s *memStore) CreateArtifact(_ context.Context, in domain.ArtifactInput) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	a := domain.Artifact{
		ID: fmt.Sprintf("new%d", s.seq), Type: in.Type, Name: in.Name, Description: in.Description,
		Content: in.Content, Scope: in.Scope, TargetPaths: in.TargetPaths,
		EnabledAdapters: in.EnabledAdapters, Enabled: in.Enabled,
	}
	s.artifacts[a.ID] = a
	return &a, nil
}

func (s *memStore) UpdateArtifact(_ context.Context, id string, patch domain.ArtifactPatch) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.artifacts[id]
	if !ok {
		return nil, fmt.Errorf("artifact %s: not found", id)
	}
	a = patch.Apply(a, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	s.artifacts[id] = a
	return &a, nil
}

func (s *memStore) DeleteArtifact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.artifacts, id)
	return nil
}

func (s *memStore) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Artifact, error) {
	return s.UpdateArtifact(ctx, id, domain.ArtifactPatch{Enabled: &enabled})
}

func (s *memStore) Close() error { return nil }

func (s *memStore) byName(t domain.ArtifactType, name string) []domain.Artifact {
	all, _ := s.ListArtifacts(context.Background(), t)
	var out []domain.Artifact
	for _, a := range all {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}

// memHistory is an in-memory ImportHistoryStore
type memHistory struct {
	entries []domain.ImportHistoryEntry
}

func (h *memHistory) AppendImportHistory(_ context.Context, e domain.ImportHistoryEntry) error {
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) ListImportHistory(_ context.Context, limit int) ([]domain.ImportHistoryEntry, error) {
	var out []domain.ImportHistoryEntry
	for i := len(h.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, h.entries[i])
	}
	return out, nil
}

// stubFetcher serves a fixed response and counts calls
type stubFetcher struct {
	res   ports.FetchResult
	err   error
	calls int
}

func (f *stubFetcher) Fetch(_ context.Context, rawURL string, _ int64) (*ports.FetchResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := f.res
	if res.FinalURL == "" {
		res.FinalURL = rawURL
	}
	return &res, nil
}

func rule(id, name, content string) domain.Artifact {
	return domain.Artifact{
		ID: id, Type: domain.ArtifactRule, Name: name, Content: content,
		Scope: domain.ScopeGlobal, EnabledAdapters: []domain.AdapterID{registry.Gemini}, Enabled: true,
	}
}

// writeFiles creates files under root from a rel path -> content map
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func candidateNamed(t *testing.T, res *domain.ScanResult, name string) domain.ImportCandidate {
	t.Helper()
	for _, c := range res.Candidates {
		if c.ProposedName == name {
			return c
		}
	}
	t.Fatalf("no candidate named %q in %d candidates", name, len(res.Candidates))
	return domain.ImportCandidate{}
}
