package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"ruleweaver/internal/domain"
)

// WrittenRecords returns every last-written hash keyed by path
func (s *Store) WrittenRecords(ctx context.Context) (map[string]domain.WrittenRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, hash, adapters, operation, written_at FROM written_records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.WrittenRecord)
	for rows.Next() {
		var (
			rec       domain.WrittenRecord
			adapters  string
			op        string
			writtenAt int64
		)
		if err := rows.Scan(&rec.Path, &rec.Hash, &adapters, &op, &writtenAt); err != nil {
			return nil, err
		}
		var ids []string
		if err := json.Unmarshal([]byte(adapters), &ids); err != nil {
			return nil, err
		}
		for _, id := range ids {
			rec.Adapters = append(rec.Adapters, domain.AdapterID(id))
		}
		rec.Operation = domain.Operation(op)
		rec.WrittenAt = time.Unix(0, writtenAt).UTC()
		out[rec.Path] = rec
	}
	return out, rows.Err()
}

// RecordWrite upserts the record for rec.Path
func (s *Store) RecordWrite(ctx context.Context, rec domain.WrittenRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO written_records (path, hash, adapters, operation, written_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.Path, rec.Hash, encodeList(domain.AdapterIDStrings(rec.Adapters)), string(rec.Operation), rec.WrittenAt.UnixNano())
	return err
}

// ForgetWrite drops the record for path
func (s *Store) ForgetWrite(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM written_records WHERE path = ?`, path)
	return err
}

// Suppressions returns every KeepRemote decision keyed by path
func (s *Store) Suppressions(ctx context.Context) (map[string]domain.Suppression, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, remote_hash, expected_hash, created_at FROM suppressions`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]domain.Suppression)
	for rows.Next() {
		var (
			sup     domain.Suppression
			created int64
		)
		if err := rows.Scan(&sup.Path, &sup.RemoteHash, &sup.ExpectedHash, &created); err != nil {
			return nil, err
		}
		sup.CreatedAt = time.Unix(0, created).UTC()
		out[sup.Path] = sup
	}
	return out, rows.Err()
}

// SaveSuppression upserts the suppression for sup.Path
func (s *Store) SaveSuppression(ctx context.Context, sup domain.Suppression) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO suppressions (path, remote_hash, expected_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, sup.Path, sup.RemoteHash, sup.ExpectedHash, sup.CreatedAt.UnixNano())
	return err
}

// ClearSuppression drops the suppression for path
func (s *Store) ClearSuppression(ctx context.Context, path string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM suppressions WHERE path = ?`, path)
	return err
}

// AppendSyncHistory adds one entry. Entries are never updated.
func (s *Store) AppendSyncHistory(ctx context.Context, e domain.SyncHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sync_history (id, at, files_written, conflicts, errors, success, triggered_by, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.At.UnixNano(), e.FilesWritten, e.Conflicts, e.Errors, e.Success, string(e.TriggeredBy), int64(e.Duration))
	return err
}

// ListSyncHistory returns at most limit entries, newest first
func (s *Store) ListSyncHistory(ctx context.Context, limit int) ([]domain.SyncHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, files_written, conflicts, errors, success, triggered_by, duration_ns
		FROM sync_history ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SyncHistoryEntry
	for rows.Next() {
		var (
			e       domain.SyncHistoryEntry
			at, dur int64
			trigger string
		)
		if err := rows.Scan(&e.ID, &at, &e.FilesWritten, &e.Conflicts, &e.Errors, &e.Success, &trigger, &dur); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at).UTC()
		e.TriggeredBy = domain.SyncTrigger(trigger)
		e.Duration = time.Duration(dur)
		out = append(out, e)
	}
	return out, rows.Err()
}

// AppendImportHistory adds one entry. Entries are never updated.
func (s *Store) AppendImportHistory(ctx context.Context, e domain.ImportHistoryEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_history (id, at, source_type, source_label, conflict_mode,
			scanned, imported, skipped, conflicts, errors, scan_errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.At.UnixNano(), string(e.SourceType), e.SourceLabel, string(e.ConflictMode),
		e.Scanned, e.Imported, e.Skipped, e.Conflicts, e.Errors, e.ScanErrors)
	return err
}

// ListImportHistory returns at most limit entries, newest first
func (s *Store) ListImportHistory(ctx context.Context, limit int) ([]domain.ImportHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, source_type, source_label, conflict_mode,
			scanned, imported, skipped, conflicts, errors, scan_errors
		FROM import_history ORDER BY seq DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ImportHistoryEntry
	for rows.Next() {
		var (
			e            domain.ImportHistoryEntry
			at           int64
			source, mode string
		)
		if err := rows.Scan(&e.ID, &at, &source, &e.SourceLabel, &mode,
			&e.Scanned, &e.Imported, &e.Skipped, &e.Conflicts, &e.Errors, &e.ScanErrors); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at).UTC()
		e.SourceType = domain.SourceType(source)
		e.ConflictMode = domain.ConflictMode(mode)
		out = append(out, e)
	}
	return out, rows.Err()
}
