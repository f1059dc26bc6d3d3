// ABOUTME: User entity store methods for account and service-record data
// ABOUTME: Usernames are unique case-insensitively, matching portal login

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2389/horizon-portal/internal/menu"
)

const userColumns = `id, username, email, role, unit, rank, designation,
	service_number, phone, clearance_level, status, service_years,
	date_of_joining, date_of_seniority, date_of_retirement, password_hash,
	created_at, updated_at`

// CreateUser stores a new user. Returns ErrDuplicateUser if the username
// is already taken (case-insensitive).
func (s *SQLiteStore) CreateUser(ctx context.Context, user *User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, string(user.Role),
		user.Unit, user.Rank, user.Designation, user.ServiceNumber,
		user.Phone, user.ClearanceLevel, user.Status, user.ServiceYears,
		user.DateOfJoining, user.DateOfSeniority, user.DateOfRetirement,
		user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339), user.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, user.Username)
		}
		return fmt.Errorf("creating user: %w", err)
	}

	s.logger.Debug("created user", "user_id", user.ID, "username", user.Username, "role", user.Role)
	return nil
}

// GetUser retrieves a user by ID. Returns ErrNotFound if absent.
func (s *SQLiteStore) GetUser(ctx context.Context, id string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? COLLATE NOCASE`, username)
	return scanUser(row)
}

// ListUsers returns all users ordered by creation time.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser replaces all mutable fields of the user record.
func (s *SQLiteStore) UpdateUser(ctx context.Context, user *User) error {
	user.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE users SET
			username = ?, email = ?, role = ?, unit = ?, rank = ?,
			designation = ?, service_number = ?, phone = ?, clearance_level = ?,
			status = ?, service_years = ?, date_of_joining = ?,
			date_of_seniority = ?, date_of_retirement = ?, password_hash = ?,
			updated_at = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		user.Username, user.Email, string(user.Role), user.Unit, user.Rank,
		user.Designation, user.ServiceNumber, user.Phone, user.ClearanceLevel,
		user.Status, user.ServiceYears, user.DateOfJoining,
		user.DateOfSeniority, user.DateOfRetirement, user.PasswordHash,
		user.UpdatedAt.Format(time.RFC3339),
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return requireRow(result, "user", user.ID)
}

// UpdateUserRole changes only the user's role.
func (s *SQLiteStore) UpdateUserRole(ctx context.Context, id string, role menu.Role) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`,
		string(role), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating user role: %w", err)
	}
	if err := requireRow(result, "user", id); err != nil {
		return err
	}

	s.logger.Debug("updated user role", "user_id", id, "role", role)
	return nil
}

// DeleteUser removes a user. Returns ErrNotFound if absent.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return requireRow(result, "user", id)
}

// scanUser scans a row into a User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	var role, createdStr, updatedStr string

	err := scanner.Scan(
		&u.ID, &u.Username, &u.Email, &role, &u.Unit, &u.Rank,
		&u.Designation, &u.ServiceNumber, &u.Phone, &u.ClearanceLevel,
		&u.Status, &u.ServiceYears, &u.DateOfJoining, &u.DateOfSeniority,
		&u.DateOfRetirement, &u.PasswordHash, &createdStr, &updatedStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = menu.Role(role)
	if u.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if u.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &u, nil
}

// requireRow converts a zero-row update/delete into ErrNotFound.
func requireRow(result sql.Result, entity, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return nil
}
