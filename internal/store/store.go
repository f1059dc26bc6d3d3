// ABOUTME: Store interface and data types for horizon-portal persistence
// ABOUTME: Defines User, Request, AuditEntry structs and the Store interface

package store

import (
	"context"
	"errors"
	"time"

	"github.com/2389/horizon-portal/internal/menu"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicateUser is returned when creating a user whose username is taken
var ErrDuplicateUser = errors.New("username already exists")

// UserStatus constants for account states
const (
	UserStatusActive  = "Active"
	UserStatusPending = "Pending"
)

// User represents a portal account with its service record fields.
// Date fields hold calendar dates as YYYY-MM-DD strings.
type User struct {
	ID               string
	Username         string
	Email            string
	Role             menu.Role
	Unit             string
	Rank             string
	Designation      string
	ServiceNumber    string
	Phone            string
	ClearanceLevel   string
	Status           string // "Active" or "Pending"
	ServiceYears     int
	DateOfJoining    string
	DateOfSeniority  string
	DateOfRetirement string
	PasswordHash     string // bcrypt; empty for demo accounts
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Request type constants
const (
	RequestTypeLaptop       = "Laptop"
	RequestTypeDispensation = "Dispensation"
	RequestTypePolicy       = "Policy"
)

// Request status constants
const (
	RequestStatusPending  = "Pending"
	RequestStatusApproved = "Approved"
	RequestStatusRejected = "Rejected"
)

// Request represents a workflow request moving through an approval chain
type Request struct {
	ID              string
	Type            string // "Laptop", "Dispensation", "Policy"
	RequesterName   string
	RequesterRank   string
	RequesterUnit   string
	RequesterAvatar string
	Title           string
	SubmittedAt     time.Time
	Status          string // "Pending", "Approved", "Rejected"
	Summary         string // markdown, rendered to HTML at the API boundary
	DocumentURL     string
	NextApprover    string
}

// RequestFilter narrows ListRequests results. Zero fields match everything.
type RequestFilter struct {
	Type   string
	Status string
	Limit  int
}

// AuditEntry status constants
const (
	AuditStatusSuccess = "Success"
	AuditStatusWarning = "Warning"
)

// AuditEntry records an administrative action for the admin overview
type AuditEntry struct {
	ID        string
	Action    string
	Target    string
	Actor     string
	Status    string // "Success" or "Warning"
	CreatedAt time.Time
}

// Store defines the interface for portal persistence
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	UpdateUserRole(ctx context.Context, id string, role menu.Role) error
	DeleteUser(ctx context.Context, id string) error

	// Requests
	SaveRequest(ctx context.Context, req *Request) error
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequests(ctx context.Context, filter RequestFilter) ([]*Request, error)
	UpdateRequestStatus(ctx context.Context, id, status, nextApprover string) error

	// Menu documents (one JSON tree per module)
	SaveMenu(ctx context.Context, moduleID string, tree menu.Tree) error
	GetMenu(ctx context.Context, moduleID string) (menu.Tree, error)
	ListMenuModules(ctx context.Context) ([]string, error)

	// Workflow kill-switches
	SetWorkflowEnabled(ctx context.Context, workflowID string, enabled bool) error
	ListWorkflowFlags(ctx context.Context) (map[string]bool, error)

	// Audit log
	AppendAudit(ctx context.Context, entry *AuditEntry) error
	ListAudit(ctx context.Context, limit int) ([]*AuditEntry, error)

	Close() error
}
