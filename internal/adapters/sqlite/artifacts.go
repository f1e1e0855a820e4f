package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ruleweaver/internal/application"
	"ruleweaver/internal/domain"
)

const artifactColumns = `id, type, name, description, content, scope, target_paths, enabled_adapters, enabled, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row rowScanner) (*domain.Artifact, error) {
	var (
		a                 domain.Artifact
		typ, scope        string
		targets, adapters string
		enabled           bool
		created, updated  int64
	)
	if err := row.Scan(&a.ID, &typ, &a.Name, &a.Description, &a.Content, &scope,
		&targets, &adapters, &enabled, &created, &updated); err != nil {
		return nil, err
	}
	a.Type = domain.ArtifactType(typ)
	a.Scope = domain.Scope(scope)
	a.Enabled = enabled
	a.CreatedAt = time.Unix(0, created).UTC()
	a.UpdatedAt = time.Unix(0, updated).UTC()
	if err := json.Unmarshal([]byte(targets), &a.TargetPaths); err != nil {
		return nil, fmt.Errorf("artifact %s: invalid target paths: %w", a.ID, err)
	}
	var ids []string
	if err := json.Unmarshal([]byte(adapters), &ids); err != nil {
		return nil, fmt.Errorf("artifact %s: invalid adapters: %w", a.ID, err)
	}
	for _, id := range ids {
		a.EnabledAdapters = append(a.EnabledAdapters, domain.AdapterID(id))
	}
	return &a, nil
}

func encodeList(v []string) string {
	if v == nil {
		v = []string{}
	}
	data, _ := json.Marshal(v)
	return string(data)
}

// ListArtifacts returns artifacts ordered by type and name. An empty type lists all.
func (s *Store) ListArtifacts(ctx context.Context, t domain.ArtifactType) ([]domain.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts`
	var args []any
	if t != "" {
		query += ` WHERE type = ?`
		args = append(args, string(t))
	}
	query += ` ORDER BY type, name COLLATE NOCASE, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// GetArtifact returns a NotFoundError for unknown ids
func (s *Store) GetArtifact(ctx context.Context, id string) (*domain.Artifact, error) {
	return getArtifact(ctx, s.db, id)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getArtifact(ctx context.Context, q querier, id string) (*domain.Artifact, error) {
	a, err := scanArtifact(q.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &application.NotFoundError{Kind: "artifact", ID: id}
	}
	return a, err
}

// CreateArtifact assigns a new id and timestamps
func (s *Store) CreateArtifact(ctx context.Context, in domain.ArtifactInput) (*domain.Artifact, error) {
	now := time.Now().UTC()
	a := domain.Artifact{
		ID:              uuid.NewString(),
		Type:            in.Type,
		Name:            in.Name,
		Description:     in.Description,
		Content:         in.Content,
		Scope:           in.Scope,
		TargetPaths:     in.TargetPaths,
		EnabledAdapters: in.EnabledAdapters,
		Enabled:         in.Enabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := insertArtifact(ctx, s.db, a); err != nil {
		return nil, fmt.Errorf("failed to create artifact: %w", err)
	}
	return &a, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertArtifact(ctx context.Context, db execer, a domain.Artifact) error {
	_, err := db.ExecContext(ctx, `
		INSERT OR REPLACE INTO artifacts (`+artifactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, string(a.Type), a.Name, a.Description, a.Content, string(a.Scope),
		encodeList(a.TargetPaths), encodeList(domain.AdapterIDStrings(a.EnabledAdapters)),
		a.Enabled, a.CreatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	return err
}

// UpdateArtifact applies patch in a single transaction
func (s *Store) UpdateArtifact(ctx context.Context, id string, patch domain.ArtifactPatch) (*domain.Artifact, error) {
	var updated domain.Artifact
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		current, err := getArtifact(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(*current, time.Now().UTC())
		return insertArtifact(ctx, tx, updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteArtifact removes an artifact. Target files are left to Prune.
func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM artifacts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.NotFoundError{Kind: "artifact", ID: id}
	}
	return nil
}

// SetEnabled toggles whether an artifact is synced
func (s *Store) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.Artifact, error) {
	return s.UpdateArtifact(ctx, id, domain.ArtifactPatch{Enabled: &enabled})
}

// PutArtifact inserts or replaces a, keeping its id and timestamps
func (s *Store) PutArtifact(ctx context.Context, a domain.Artifact) error {
	return insertArtifact(ctx, s.db, a)
}
