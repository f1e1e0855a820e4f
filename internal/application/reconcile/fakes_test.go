package reconcile

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"ruleweaver/internal/adapters/registry"
	"ruleweaver/internal/domain"
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
		ID: fmt.Sprintf("a%d", s.seq), Type: in.Type, Name: in.Name, Description: in.Description,
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
	a = patch.Apply(a, a.UpdatedAt.Add(time.Minute))
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

// memState is an in-memory SyncStateStore
type memState struct {
	mu           sync.Mutex
	written      map[string]domain.WrittenRecord
	suppressions map[string]domain.Suppression
	history      []domain.SyncHistoryEntry
}

func newMemState() *memState {
	return &memState{
		written:      make(map[string]domain.WrittenRecord),
		suppressions: make(map[string]domain.Suppression),
	}
}

func (s *memState) WrittenRecords(context.Context) (map[string]domain.WrittenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.WrittenRecord, len(s.written))
	for k, v := range s.written {
		out[k] = v
	}
	return out, nil
}

func (s *memState) RecordWrite(_ context.Context, rec domain.WrittenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written[rec.Path] = rec
	return nil
}

func (s *memState) ForgetWrite(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.written, path)
	return nil
}

func (s *memState) Suppressions(context.Context) (map[string]domain.Suppression, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Suppression, len(s.suppressions))
	for k, v := range s.suppressions {
		out[k] = v
	}
	return out, nil
}

func (s *memState) SaveSuppression(_ context.Context, sup domain.Suppression) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppressions[sup.Path] = sup
	return nil
}

func (s *memState) ClearSuppression(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.suppressions, path)
	return nil
}

func (s *memState) AppendSyncHistory(_ context.Context, entry domain.SyncHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]domain.SyncHistoryEntry{entry}, s.history...)
	return nil
}

func (s *memState) ListSyncHistory(_ context.Context, limit int) ([]domain.SyncHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit > 0 && limit < len(s.history) {
		return append([]domain.SyncHistoryEntry(nil), s.history[:limit]...), nil
	}
	return append([]domain.SyncHistoryEntry(nil), s.history...), nil
}

// memFS is an in-memory FileSystem with injectable read errors
type memFS struct {
	mu         sync.Mutex
	files      map[string][]byte
	readErrs   map[string]error
	writeErrs  map[string]error
	writeCount int
	// afterWrite runs after each successful write, outside the lock
	afterWrite func(path string)
}

func newMemFS() *memFS {
	return &memFS{
		files:     make(map[string][]byte),
		readErrs:  make(map[string]error),
		writeErrs: make(map[string]error),
	}
}

func (m *memFS) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.readErrs[path]; ok {
		return nil, err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *memFS) Stat(path string) (fs.FileInfo, error) {
	return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrInvalid}
}

func (m *memFS) WriteFile(path string, data []byte) error {
	m.mu.Lock()
	if err, ok := m.writeErrs[path]; ok {
		m.mu.Unlock()
		return err
	}
	m.files[path] = append([]byte(nil), data...)
	m.writeCount++
	hook := m.afterWrite
	m.mu.Unlock()

	if hook != nil {
		hook(path)
	}
	return nil
}

func (m *memFS) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[path]; !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(m.files, path)
	return nil
}

func (m *memFS) put(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = []byte(content)
}

func (m *memFS) get(path string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[path]
	return string(data), ok
}

const testHome = "/home/dev"

type fixture struct {
	engine *Engine
	store  *memStore
	state  *memState
	fs     *memFS
}

func newFixture(t *testing.T, artifacts ...domain.Artifact) *fixture {
	t.Helper()
	f := &fixture{
		store: newMemStore(artifacts...),
		state: newMemState(),
		fs:    newMemFS(),
	}
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.engine = NewEngine(f.store, registry.New(), f.state, f.fs, testHome,
		WithParallelism(4),
		WithClock(func() time.Time { return clock }),
	)
	return f
}

func globalRule(id, name string, adapters ...domain.AdapterID) domain.Artifact {
	return domain.Artifact{
		ID: id, Type: domain.ArtifactRule, Name: name, Content: "Content of " + name,
		Scope: domain.ScopeGlobal, EnabledAdapters: adapters, Enabled: true,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func home(rel string) string {
	return filepath.Join(testHome, filepath.FromSlash(rel))
}
