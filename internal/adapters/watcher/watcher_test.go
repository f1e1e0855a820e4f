package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"

	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

type stubPlanner struct {
	mu    sync.Mutex
	plan  *reconcile.Plan
	calls int
}

func (s *stubPlanner) Plan(context.Context, domain.StatusFilter) (*reconcile.Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.plan, nil
}

func (s *stubPlanner) set(p *reconcile.Plan) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plan = p
}

func planFor(paths ...string) *reconcile.Plan {
	files := make(map[string]*reconcile.PlannedFile)
	for _, p := range paths {
		files[p] = &reconcile.PlannedFile{Path: p}
	}
	return &reconcile.Plan{Files: files}
}

func TestWatcher_ReplansOnChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "AGENTS.md")
	if err := os.WriteFile(target, []byte("one"), 0644); err != nil {
		t.Fatal(err)
	}

	planner := &stubPlanner{plan: planFor(target)}
	updates := make(chan Update, 10)
	w, err := New(planner,
		WithDebounce(20*time.Millisecond),
		WithUpdates(func(u Update) { updates <- u }))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	select {
	case u := <-updates:
		if len(u.Changed) != 0 {
			t.Errorf("initial update Changed = %v", u.Changed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no initial plan")
	}

	conflict := domain.Conflict{ID: domain.ConflictID(target), FilePath: target, AdapterName: "Codex"}
	next := planFor(target)
	next.Conflicts = []domain.Conflict{conflict}
	planner.set(next)

	// Unrelated files in the same directory are ignored
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	if err := os.WriteFile(target, []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-updates:
		if len(u.Changed) != 1 || u.Changed[0] != target {
			t.Errorf("Changed = %v, want [%s]", u.Changed, target)
		}
		if len(u.NewConflicts) != 1 || u.NewConflicts[0].FilePath != target {
			t.Errorf("NewConflicts = %v", u.NewConflicts)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no re-plan after edit")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRelevant(t *testing.T) {
	target := filepath.Join("/home/u", ".codex", "AGENTS.md")
	w := &Watcher{targets: map[string]bool{target: true}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"target write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"target removed", fsnotify.Event{Name: target, Op: fsnotify.Remove}, true},
		{"parent created", fsnotify.Event{Name: filepath.Join("/home/u", ".codex"), Op: fsnotify.Create}, true},
		{"sibling", fsnotify.Event{Name: filepath.Join("/home/u", ".codex", "config.toml"), Op: fsnotify.Write}, false},
		{"prefix lookalike", fsnotify.Event{Name: filepath.Join("/home/u", ".co"), Op: fsnotify.Create}, false},
		{"chmod", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestExistingAncestor(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "a", "b", "c")
	if got := existingAncestor(missing); got != dir {
		t.Errorf("existingAncestor(%s) = %s, want %s", missing, got, dir)
	}
	if got := existingAncestor(dir); got != dir {
		t.Errorf("existingAncestor(%s) = %s", dir, got)
	}
}
