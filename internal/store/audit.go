// ABOUTME: Audit log store methods for administrative actions
// ABOUTME: Append-only; listed newest first for the admin overview

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppendAudit records an administrative action. The entry's ID and
// timestamp are filled in when absent.
func (s *SQLiteStore) AppendAudit(ctx context.Context, entry *AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.Status == "" {
		entry.Status = AuditStatusSuccess
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, action, target, actor, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Action, entry.Target, entry.Actor, entry.Status,
		entry.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}
	return nil
}

// ListAudit returns the most recent audit entries, newest first.
// A limit of 0 means no limit.
func (s *SQLiteStore) ListAudit(ctx context.Context, limit int) ([]*AuditEntry, error) {
	query := `SELECT id, action, target, actor, status, created_at
		FROM audit_log ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*AuditEntry
	for rows.Next() {
		var e AuditEntry
		var createdStr string
		if err := rows.Scan(&e.ID, &e.Action, &e.Target, &e.Actor, &e.Status, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
