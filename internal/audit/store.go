package audit

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	insertSQL = `INSERT INTO tool_invocations
    (id, tool, tenant, client, status, error_type, duration_ms, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	recentSQL = `SELECT id, tool, tenant, client, status, error_type, duration_ms, created_at
FROM tool_invocations
ORDER BY created_at DESC
LIMIT $1`

	DefaultRecentLimit = 50
	MaxRecentLimit     = 500
)

// Store persists records in the tool_invocations table. A nil *Store is a
// valid, disabled store.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

func (s *Store) Enabled() bool { return s != nil && s.db != nil }

// InsertBatch writes records in one transaction.
func (s *Store) InsertBatch(ctx context.Context, records []Record) error {
	if !s.Enabled() {
		return ErrAuditDisabled
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Tool, r.Tenant, r.Client, r.Status, r.ErrorType, r.DurationMS, r.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Recent returns the newest records first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if !s.Enabled() {
		return nil, ErrAuditDisabled
	}
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	limit = min(limit, MaxRecentLimit)

	rows, err := s.db.QueryContext(ctx, recentSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Tool, &r.Tenant, &r.Client, &r.Status, &r.ErrorType, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
