// ABOUTME: Mock Store implementation for testing
// ABOUTME: Allows tests to run without SQLite

package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/horizon-portal/internal/menu"
)

// MockStore is an in-memory Store implementation for testing.
type MockStore struct {
	mu       sync.RWMutex
	users    map[string]*User    // keyed by user ID
	requests map[string]*Request // keyed by request ID
	menus    map[string]menu.Tree
	flags    map[string]bool
	audit    []*AuditEntry
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		users:    make(map[string]*User),
		requests: make(map[string]*Request),
		menus:    make(map[string]menu.Tree),
		flags:    make(map[string]bool),
	}
}

// CreateUser stores a new user.
func (m *MockStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return fmt.Errorf("%w: %s", ErrDuplicateUser, user.Username)
		}
	}

	now := time.Now().UTC()
	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	m.users[u.ID] = &u
	return nil
}

// GetUser retrieves a user by ID.
func (m *MockStore) GetUser(ctx context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *u
	return &result, nil
}

// GetUserByUsername retrieves a user by username, case-insensitively.
func (m *MockStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			result := *u
			return &result, nil
		}
	}
	return nil, ErrNotFound
}

// ListUsers returns all users ordered by creation time.
func (m *MockStore) ListUsers(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*User, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// UpdateUser replaces all mutable fields of the user record.
func (m *MockStore) UpdateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	updated := *user
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = &updated
	return nil
}

// UpdateUserRole changes only the user's role.
func (m *MockStore) UpdateUserRole(ctx context.Context, id string, role menu.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// DeleteUser removes a user.
func (m *MockStore) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	delete(m.users, id)
	return nil
}

// SaveRequest inserts or replaces a request record.
func (m *MockStore) SaveRequest(ctx context.Context, req *Request) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := *req
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now().UTC()
	}
	if r.Status == "" {
		r.Status = RequestStatusPending
	}
	m.requests[r.ID] = &r
	return nil
}

// GetRequest retrieves a request by ID.
func (m *MockStore) GetRequest(ctx context.Context, id string) (*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := *r
	return &result, nil
}

// ListRequests returns requests matching the filter, newest first.
func (m *MockStore) ListRequests(ctx context.Context, filter RequestFilter) ([]*Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var requests []*Request
	for _, r := range m.requests {
		if filter.Type != "" && r.Type != filter.Type {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		copied := *r
		requests = append(requests, &copied)
	}
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})
	if filter.Limit > 0 && len(requests) > filter.Limit {
		requests = requests[:filter.Limit]
	}
	return requests, nil
}

// UpdateRequestStatus sets a request's status and next approver.
func (m *MockStore) UpdateRequestStatus(ctx context.Context, id, status, nextApprover string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.requests[id]
	if !ok {
		return fmt.Errorf("request %s: %w", id, ErrNotFound)
	}
	r.Status = status
	r.NextApprover = nextApprover
	return nil
}

// SaveMenu stores the full menu tree for a module.
func (m *MockStore) SaveMenu(ctx context.Context, moduleID string, tree menu.Tree) error {
	if err := tree.Validate(); err != nil {
		return fmt.Errorf("validating menu for %q: %w", moduleID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.menus[moduleID] = tree
	return nil
}

// GetMenu loads the persisted menu tree for a module.
func (m *MockStore) GetMenu(ctx context.Context, moduleID string) (menu.Tree, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tree, ok := m.menus[moduleID]
	if !ok {
		return nil, ErrNotFound
	}
	return tree, nil
}

// ListMenuModules returns module ids with persisted menus.
func (m *MockStore) ListMenuModules(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.menus))
	for id := range m.menus {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// SetWorkflowEnabled records a workflow kill-switch state.
func (m *MockStore) SetWorkflowEnabled(ctx context.Context, workflowID string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[workflowID] = enabled
	return nil
}

// ListWorkflowFlags returns all recorded kill-switch states.
func (m *MockStore) ListWorkflowFlags(ctx context.Context) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	flags := make(map[string]bool, len(m.flags))
	for k, v := range m.flags {
		flags[k] = v
	}
	return flags, nil
}

// AppendAudit records an administrative action.
func (m *MockStore) AppendAudit(ctx context.Context, entry *AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := *entry
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Status == "" {
		e.Status = AuditStatusSuccess
	}
	m.audit = append(m.audit, &e)
	return nil
}

// ListAudit returns the most recent audit entries, newest first.
func (m *MockStore) ListAudit(ctx context.Context, limit int) ([]*AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*AuditEntry, 0, len(m.audit))
	for _, e := range m.audit {
		copied := *e
		entries = append(entries, &copied)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Close is a no-op for the mock store.
func (m *MockStore) Close() error {
	return nil
}
