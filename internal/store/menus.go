// ABOUTME: Menu document persistence and workflow kill-switch flags
// ABOUTME: Each module's menu tree is stored whole as one JSON document

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2389/horizon-portal/internal/menu"
)

// SaveMenu stores the full menu tree for a module as a JSON document,
// replacing any previous version. The tree is validated before writing so
// a corrupt tree can never be persisted.
func (s *SQLiteStore) SaveMenu(ctx context.Context, moduleID string, tree menu.Tree) error {
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("validating menu for %q: %w", moduleID, err)
	}

	doc, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("encoding menu tree: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO menus (module_id, tree, updated_at) VALUES (?, ?, ?)`,
		moduleID, string(doc), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving menu: %w", err)
	}

	s.logger.Debug("saved menu document", "module_id", moduleID, "nodes", tree.Len())
	return nil
}

// GetMenu loads the persisted menu tree for a module.
// Returns ErrNotFound when no document has been saved for the module.
func (s *SQLiteStore) GetMenu(ctx context.Context, moduleID string) (menu.Tree, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT tree FROM menus WHERE module_id = ?`, moduleID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading menu: %w", err)
	}

	var tree menu.Tree
	if err := json.Unmarshal([]byte(doc), &tree); err != nil {
		return nil, fmt.Errorf("decoding menu tree: %w", err)
	}
	if err := tree.Validate(); err != nil {
		return nil, fmt.Errorf("validating stored menu for %q: %w", moduleID, err)
	}
	return tree, nil
}

// ListMenuModules returns the module ids with persisted menu documents.
func (s *SQLiteStore) ListMenuModules(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT module_id FROM menus ORDER BY module_id`)
	if err != nil {
		return nil, fmt.Errorf("listing menu modules: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning module id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetWorkflowEnabled records a workflow kill-switch state.
func (s *SQLiteStore) SetWorkflowEnabled(ctx context.Context, workflowID string, enabled bool) error {
	val := 0
	if enabled {
		val = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO workflow_flags (workflow_id, enabled, updated_at) VALUES (?, ?, ?)`,
		workflowID, val, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("setting workflow flag: %w", err)
	}

	s.logger.Debug("set workflow flag", "workflow_id", workflowID, "enabled", enabled)
	return nil
}

// ListWorkflowFlags returns all recorded kill-switch states.
func (s *SQLiteStore) ListWorkflowFlags(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT workflow_id, enabled FROM workflow_flags`)
	if err != nil {
		return nil, fmt.Errorf("listing workflow flags: %w", err)
	}
	defer rows.Close()

	flags := make(map[string]bool)
	for rows.Next() {
		var id string
		var enabled int
		if err := rows.Scan(&id, &enabled); err != nil {
			return nil, fmt.Errorf("scanning workflow flag: %w", err)
		}
		flags[id] = enabled != 0
	}
	return flags, rows.Err()
}
