// Package reconcile computes sync plans for canonical artifacts and applies them
// to the per-tool files on disk.
package reconcile

import (
	"time"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

const defaultParallelism = 8

// Engine plans, syncs, repairs and resolves conflicts.
// It holds no state between calls beyond what SyncStateStore persists.
type Engine struct {
	store       ports.ArtifactStore
	registry    ports.AdapterRegistry
	state       ports.SyncStateStore
	fs          ports.FileSystem
	resolver    domain.PathResolver
	parallelism int
	now         func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithParallelism bounds the number of files evaluated concurrently during a plan
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithClock sets the time source used for write records and history
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine. home is the directory global templates resolve against.
func NewEngine(
	store ports.ArtifactStore,
	registry ports.AdapterRegistry,
	state ports.SyncStateStore,
	fs ports.FileSystem,
	home string,
	opts ...Option,
) *Engine {
	e := &Engine{
		store:       store,
		registry:    registry,
		state:       state,
		fs:          fs,
		resolver:    domain.PathResolver{Home: home},
		parallelism: defaultParallelism,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
