// ABOUTME: Password hashing and verification using bcrypt
// ABOUTME: Also infers demo-mode roles from username conventions

package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/2389/horizon-portal/internal/menu"
)

// HashPassword hashes a plaintext password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a bcrypt hash.
func VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// InferDemoRole maps a demo-mode username to a role by substring convention:
// "super" grants super admin, "proc" procurement admin, "unit" unit admin,
// anything else a normal user.
func InferDemoRole(username string) menu.Role {
	lower := strings.ToLower(username)
	switch {
	case strings.Contains(lower, "super"):
		return menu.RoleSuperAdmin
	case strings.Contains(lower, "proc"):
		return menu.RoleProcurementAdmin
	case strings.Contains(lower, "unit"):
		return menu.RoleUnitAdmin
	default:
		return menu.RoleNormalUser
	}
}
