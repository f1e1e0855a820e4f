package commands

import (
	"context"

	"ruleweaver/internal/domain"
	"ruleweaver/internal/ports"
)

// SyncHistoryCommand lists recent sync runs, newest first
type SyncHistoryCommand struct {
	engine Reconciler
	Limit  int
}

// NewSyncHistoryCommand creates a new SyncHistoryCommand
func NewSyncHistoryCommand(engine Reconciler, limit int) *SyncHistoryCommand {
	return &SyncHistoryCommand{
		engine: engine,
		Limit:  limit,
	}
}

// Execute runs the sync history command
func (c *SyncHistoryCommand) Execute(ctx context.Context) ([]domain.SyncHistoryEntry, error) {
	return c.engine.SyncHistory(ctx, c.Limit)
}

// ImportHistoryCommand lists recent imports, newest first
type ImportHistoryCommand struct {
	history ports.ImportHistoryStore
	Limit   int
}

// NewImportHistoryCommand creates a new ImportHistoryCommand
func NewImportHistoryCommand(history ports.ImportHistoryStore, limit int) *ImportHistoryCommand {
	return &ImportHistoryCommand{
		history: history,
		Limit:   limit,
	}
}

// Execute runs the import history command
func (c *ImportHistoryCommand) Execute(ctx context.Context) ([]domain.ImportHistoryEntry, error) {
	return c.history.ListImportHistory(ctx, c.Limit)
}
