// Package watcher re-plans when generated files change on disk.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"ruleweaver/internal/application/reconcile"
	"ruleweaver/internal/domain"
)

// DefaultDebounce collapses editor save bursts into one re-plan
const DefaultDebounce = 300 * time.Millisecond

// Planner is the engine surface the watcher drives
type Planner interface {
	Plan(ctx context.Context, filter domain.StatusFilter) (*reconcile.Plan, error)
}

// Update is delivered after every re-plan
type Update struct {
	Plan *reconcile.Plan
	// Changed lists the target paths whose events triggered the re-plan
	Changed []string
	// NewConflicts are conflicts not present in the previous plan
	NewConflicts []domain.Conflict
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce sets the quiet period before re-planning
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithUpdates sets the callback invoked after each plan, including the initial one
func WithUpdates(fn func(Update)) Option {
	return func(w *Watcher) { w.onUpdate = fn }
}

// Watcher watches the directories of every planned target file
type Watcher struct {
	fsw      *fsnotify.Watcher
	planner  Planner
	debounce time.Duration
	onUpdate func(Update)

	targets   map[string]bool
	dirs      map[string]bool
	conflicts map[string]bool
}

// New creates a watcher. It does nothing until Run is called.
func New(planner Planner, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	w := &Watcher{
		fsw:       fsw,
		planner:   planner,
		debounce:  DefaultDebounce,
		onUpdate:  func(Update) {},
		targets:   make(map[string]bool),
		dirs:      make(map[string]bool),
		conflicts: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run plans once, then re-plans after target files change, until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	if err := w.refresh(ctx, nil); err != nil {
		return err
	}

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			slog.Debug("target changed", "path", event.Name, "op", event.Op.String())
			pending[filepath.Clean(event.Name)] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			pending = make(map[string]bool)

			if err := w.refresh(ctx, changed); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				slog.Error("re-plan failed", "err", err)
			}
		}
	}
}

// refresh plans, updates the watch set and reports new conflicts
func (w *Watcher) refresh(ctx context.Context, changed []string) error {
	plan, err := w.planner.Plan(ctx, domain.StatusFilter{})
	if err != nil {
		return fmt.Errorf("failed to plan: %w", err)
	}

	targets := make(map[string]bool, len(plan.Files))
	dirs := make(map[string]bool)
	for path := range plan.Files {
		path = filepath.Clean(path)
		targets[path] = true
		dirs[existingAncestor(filepath.Dir(path))] = true
	}
	for dir := range w.dirs {
		if !dirs[dir] {
			w.fsw.Remove(dir)
		}
	}
	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			slog.Warn("cannot watch directory", "path", dir, "err", err)
			delete(dirs, dir)
		}
	}
	w.targets = targets
	w.dirs = dirs

	conflicts := make(map[string]bool, len(plan.Conflicts))
	var fresh []domain.Conflict
	for _, c := range plan.Conflicts {
		conflicts[c.FilePath] = true
		if !w.conflicts[c.FilePath] {
			fresh = append(fresh, c)
			slog.Warn("conflict detected", "path", c.FilePath, "adapter", c.AdapterName)
		}
	}
	w.conflicts = conflicts

	w.onUpdate(Update{Plan: plan, Changed: changed, NewConflicts: fresh})
	return nil
}

// relevant reports whether an event touches a target file or a directory on the way to one
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(event.Name)
	if w.targets[name] {
		return true
	}
	prefix := name + string(filepath.Separator)
	for target := range w.targets {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}

// existingAncestor walks up from dir to the first directory that exists
func existingAncestor(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
