// ABOUTME: Authentication context for tracking identity through request handlers
// ABOUTME: Provides WithAuth/FromContext for propagating auth info via context

package auth

import (
	"context"

	"github.com/2389/horizon-portal/internal/menu"
)

// AuthContext holds the authenticated identity information extracted from a request.
// This is populated by the auth middleware and can be retrieved from context in handlers.
type AuthContext struct {
	UserID   string
	Username string
	Role     menu.Role
}

// IsSuperAdmin returns true if the user holds the super admin role.
func (a *AuthContext) IsSuperAdmin() bool {
	return a.Role == menu.RoleSuperAdmin
}

// IsAdmin returns true if the user holds any administrative role.
func (a *AuthContext) IsAdmin() bool {
	switch a.Role {
	case menu.RoleSuperAdmin, menu.RoleUnitAdmin, menu.RoleProcurementAdmin:
		return true
	}
	return false
}

// Viewer converts the authenticated identity into a menu viewer.
func (a *AuthContext) Viewer() menu.Viewer {
	return menu.Viewer{ID: a.UserID, Role: a.Role}
}

// authContextKey is the key type for storing AuthContext in context.Context.
type authContextKey struct{}

// WithAuth returns a new context with the AuthContext attached.
func WithAuth(ctx context.Context, auth *AuthContext) context.Context {
	return context.WithValue(ctx, authContextKey{}, auth)
}

// FromContext retrieves the AuthContext from the context, returning nil if not present.
func FromContext(ctx context.Context) *AuthContext {
	val := ctx.Value(authContextKey{})
	if val == nil {
		return nil
	}
	auth, ok := val.(*AuthContext)
	if !ok {
		return nil
	}
	return auth
}

// MustFromContext retrieves the AuthContext from the context, panicking if not present.
func MustFromContext(ctx context.Context) *AuthContext {
	auth := FromContext(ctx)
	if auth == nil {
		panic("auth: AuthContext not found in context")
	}
	return auth
}
