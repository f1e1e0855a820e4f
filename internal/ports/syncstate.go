package ports

import (
	"context"

	"ruleweaver/internal/domain"
)

// SyncStateStore persists what the engine wrote, so drift can be told apart
// from canonical changes across restarts.
type SyncStateStore interface {
	// Last-written hashes, keyed by absolute path
	WrittenRecords(ctx context.Context) (map[string]domain.WrittenRecord, error)
	RecordWrite(ctx context.Context, rec domain.WrittenRecord) error
	ForgetWrite(ctx context.Context, path string) error

	// KeepRemote decisions, keyed by absolute path
	Suppressions(ctx context.Context) (map[string]domain.Suppression, error)
	SaveSuppression(ctx context.Context, s domain.Suppression) error
	ClearSuppression(ctx context.Context, path string) error

	// Append-only sync log, newest first
	AppendSyncHistory(ctx context.Context, entry domain.SyncHistoryEntry) error
	ListSyncHistory(ctx context.Context, limit int) ([]domain.SyncHistoryEntry, error)
}

// ImportHistoryStore is the append-only import audit log
type ImportHistoryStore interface {
	AppendImportHistory(ctx context.Context, entry domain.ImportHistoryEntry) error
	// ListImportHistory returns the newest entries first
	ListImportHistory(ctx context.Context, limit int) ([]domain.ImportHistoryEntry, error)
}
