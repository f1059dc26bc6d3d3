// ABOUTME: Request entity store methods for workflow approval items
// ABOUTME: Supports filtered listing for inbox, outbox, and board views

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const requestColumns = `id, type, requester_name, requester_rank, requester_unit,
	requester_avatar, title, submitted_at, status, summary, document_url, next_approver`

// SaveRequest inserts or replaces a request record.
func (s *SQLiteStore) SaveRequest(ctx context.Context, req *Request) error {
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = RequestStatusPending
	}

	query := `
		INSERT OR REPLACE INTO requests (` + requestColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		req.ID, req.Type, req.RequesterName, req.RequesterRank,
		req.RequesterUnit, req.RequesterAvatar, req.Title,
		req.SubmittedAt.Format(time.RFC3339), req.Status, req.Summary,
		req.DocumentURL, req.NextApprover,
	)
	if err != nil {
		return fmt.Errorf("saving request: %w", err)
	}

	s.logger.Debug("saved request", "request_id", req.ID, "type", req.Type, "status", req.Status)
	return nil
}

// GetRequest retrieves a request by ID. Returns ErrNotFound if absent.
func (s *SQLiteStore) GetRequest(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id = ?`, id)
	return scanRequest(row)
}

// ListRequests returns requests matching the filter, newest first.
func (s *SQLiteStore) ListRequests(ctx context.Context, filter RequestFilter) ([]*Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests`
	var conds []string
	var args []any

	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY submitted_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

// UpdateRequestStatus sets a request's status and next approver.
func (s *SQLiteStore) UpdateRequestStatus(ctx context.Context, id, status, nextApprover string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE requests SET status = ?, next_approver = ? WHERE id = ?`,
		status, nextApprover, id)
	if err != nil {
		return fmt.Errorf("updating request status: %w", err)
	}
	if err := requireRow(result, "request", id); err != nil {
		return err
	}

	s.logger.Debug("updated request status", "request_id", id, "status", status)
	return nil
}

// scanRequest scans a row into a Request.
func scanRequest(scanner interface{ Scan(dest ...any) error }) (*Request, error) {
	var r Request
	var submittedStr string

	err := scanner.Scan(
		&r.ID, &r.Type, &r.RequesterName, &r.RequesterRank, &r.RequesterUnit,
		&r.RequesterAvatar, &r.Title, &submittedStr, &r.Status, &r.Summary,
		&r.DocumentURL, &r.NextApprover,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning request: %w", err)
	}

	if r.SubmittedAt, err = time.Parse(time.RFC3339, submittedStr); err != nil {
		return nil, fmt.Errorf("parsing submitted_at: %w", err)
	}
	return &r, nil
}
