// ABOUTME: Tests for the SQLite store implementation
// ABOUTME: Covers users, requests, menu documents, workflow flags, and audit

package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/horizon-portal/internal/menu"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func testUser(id, username string, role menu.Role) *User {
	return &User{
		ID:             id,
		Username:       username,
		Email:          username + "@navy.mil",
		Role:           role,
		Unit:           "Test Unit",
		Rank:           "Lieutenant",
		Designation:    "Analyst",
		ServiceNumber:  "USN-" + id,
		ClearanceLevel: "SECRET",
		Status:         UserStatusActive,
		ServiceYears:   5,
		DateOfJoining:  "2018-11-05",
	}
}

func TestStore_CreateUser(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)
	err := store.CreateUser(ctx, user)
	require.NoError(t, err)

	retrieved, err := store.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Lt. Barclay", retrieved.Username)
	assert.Equal(t, menu.RoleNormalUser, retrieved.Role)
	assert.Equal(t, "2018-11-05", retrieved.DateOfJoining)
	assert.False(t, retrieved.CreatedAt.IsZero())
}

func TestStore_CreateUser_DuplicateUsername(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)))

	err := store.CreateUser(ctx, testUser("user-2", "Lt. Barclay", menu.RoleNormalUser))
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestStore_GetUserByUsername_CaseInsensitive(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)))

	retrieved, err := store.GetUserByUsername(ctx, "lt. barclay")
	require.NoError(t, err)
	assert.Equal(t, "user-1", retrieved.ID)
}

func TestStore_GetUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetUser(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateUser(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	user := testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)
	require.NoError(t, store.CreateUser(ctx, user))

	user.Unit = "Engineering"
	user.Status = UserStatusPending
	require.NoError(t, store.UpdateUser(ctx, user))

	retrieved, err := store.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", retrieved.Unit)
	assert.Equal(t, UserStatusPending, retrieved.Status)
}

func TestStore_UpdateUserRole(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)))
	require.NoError(t, store.UpdateUserRole(ctx, "user-1", menu.RoleUnitAdmin))

	retrieved, err := store.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, menu.RoleUnitAdmin, retrieved.Role)

	err = store.UpdateUserRole(ctx, "nope", menu.RoleUnitAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteUser(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("user-1", "Lt. Barclay", menu.RoleNormalUser)))
	require.NoError(t, store.DeleteUser(ctx, "user-1"))

	_, err := store.GetUser(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.DeleteUser(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListUsers(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, testUser("user-2", "Lt. Paris", menu.RoleNormalUser)))
	require.NoError(t, store.CreateUser(ctx, testUser("user-1", "Adm. Doe", menu.RoleSuperAdmin)))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Adm. Doe", users[0].Username)
	assert.Equal(t, "Lt. Paris", users[1].Username)
}

func TestStore_SaveRequest(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	req := &Request{
		ID:            "REQ-1044",
		Type:          RequestTypeLaptop,
		RequesterName: "Lt. Cmdr. Data",
		Title:         "High-Performance Workstation Request",
		SubmittedAt:   time.Now().UTC().Truncate(time.Second),
		Summary:       "Requesting issuance of a workstation.",
	}
	require.NoError(t, store.SaveRequest(ctx, req))

	retrieved, err := store.GetRequest(ctx, "REQ-1044")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusPending, retrieved.Status)
	assert.Equal(t, "Lt. Cmdr. Data", retrieved.RequesterName)
}

func TestStore_ListRequests_Filters(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	base := time.Date(2023, 10, 20, 10, 0, 0, 0, time.UTC)
	reqs := []*Request{
		{ID: "REQ-1", Type: RequestTypeLaptop, Status: RequestStatusPending, SubmittedAt: base},
		{ID: "REQ-2", Type: RequestTypeLaptop, Status: RequestStatusApproved, SubmittedAt: base.Add(time.Hour)},
		{ID: "REQ-3", Type: RequestTypePolicy, Status: RequestStatusPending, SubmittedAt: base.Add(2 * time.Hour)},
	}
	for _, r := range reqs {
		require.NoError(t, store.SaveRequest(ctx, r))
	}

	all, err := store.ListRequests(ctx, RequestFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Newest first
	assert.Equal(t, "REQ-3", all[0].ID)

	laptops, err := store.ListRequests(ctx, RequestFilter{Type: RequestTypeLaptop})
	require.NoError(t, err)
	assert.Len(t, laptops, 2)

	pending, err := store.ListRequests(ctx, RequestFilter{Status: RequestStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	limited, err := store.ListRequests(ctx, RequestFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "REQ-3", limited[0].ID)
}

func TestStore_UpdateRequestStatus(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveRequest(ctx, &Request{
		ID: "REQ-1", Type: RequestTypeLaptop, SubmittedAt: time.Now().UTC(),
		NextApprover: "Capt. Picard",
	}))

	require.NoError(t, store.UpdateRequestStatus(ctx, "REQ-1", RequestStatusApproved, ""))

	retrieved, err := store.GetRequest(ctx, "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusApproved, retrieved.Status)
	assert.Empty(t, retrieved.NextApprover)

	err = store.UpdateRequestStatus(ctx, "nope", RequestStatusApproved, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_SaveMenu_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	tree := menu.Tree{
		{ID: "laptop-request", Label: "Laptop Request", Active: true,
			RoleAccess: []menu.Role{menu.RoleNormalUser},
			SubItems: []*menu.Node{
				{ID: "new-request", Label: "New Request", Active: true},
			}},
	}
	require.NoError(t, store.SaveMenu(ctx, "logistics", tree))

	loaded, err := store.GetMenu(ctx, "logistics")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "laptop-request", loaded[0].ID)
	require.Len(t, loaded[0].SubItems, 1)
	assert.Equal(t, []menu.Role{menu.RoleNormalUser}, loaded[0].RoleAccess)

	modules, err := store.ListMenuModules(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"logistics"}, modules)
}

func TestStore_SaveMenu_RejectsInvalidTree(t *testing.T) {
	store := setupTestStore(t)

	tree := menu.Tree{
		{ID: "dup", Label: "A", Active: true},
		{ID: "dup", Label: "B", Active: true},
	}
	err := store.SaveMenu(context.Background(), "logistics", tree)
	assert.ErrorIs(t, err, menu.ErrDuplicateID)
}

func TestStore_GetMenu_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetMenu(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_WorkflowFlags(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	flags, err := store.ListWorkflowFlags(ctx)
	require.NoError(t, err)
	assert.Empty(t, flags)

	require.NoError(t, store.SetWorkflowEnabled(ctx, "laptop-request", true))
	require.NoError(t, store.SetWorkflowEnabled(ctx, "dispensation", false))
	// Flipping an existing flag overwrites it
	require.NoError(t, store.SetWorkflowEnabled(ctx, "laptop-request", false))

	flags, err = store.ListWorkflowFlags(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"laptop-request": false, "dispensation": false}, flags)
}

func TestStore_Audit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	first := &AuditEntry{Action: "Update Role", Target: "Lt. Paris", Actor: "Adm. Doe",
		CreatedAt: time.Date(2023, 10, 20, 10, 0, 0, 0, time.UTC)}
	second := &AuditEntry{Action: "Menu Edit", Target: "logistics", Actor: "Adm. Doe",
		CreatedAt: time.Date(2023, 10, 21, 10, 0, 0, 0, time.UTC)}

	require.NoError(t, store.AppendAudit(ctx, first))
	require.NoError(t, store.AppendAudit(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, AuditStatusSuccess, first.Status)

	entries, err := store.ListAudit(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Menu Edit", entries[0].Action)

	limited, err := store.ListAudit(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_SeedDemoData(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, SeedDemoData(ctx, store))

	users, err := store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 6)

	reqs, err := store.ListRequests(ctx, RequestFilter{})
	require.NoError(t, err)
	assert.Len(t, reqs, 5)

	flags, err := store.ListWorkflowFlags(ctx)
	require.NoError(t, err)
	assert.True(t, flags["laptop-request"])
	assert.True(t, flags["dispensation"])
	assert.True(t, flags["nws-policy"])

	// Seeding again is a no-op
	require.NoError(t, SeedDemoData(ctx, store))
	users, err = store.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 6)
}
