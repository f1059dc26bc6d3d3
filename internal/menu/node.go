// ABOUTME: Menu node and role types for the portal navigation tree
// ABOUTME: Roles gate node visibility; nodes nest into an ordered tree

package menu

import "slices"

// Role represents a portal permission tier used in menu access lists.
type Role string

const (
	RoleNormalUser       Role = "NORMAL_USER"
	RoleUnitAdmin        Role = "UNIT_ADMIN"
	RoleProcurementAdmin Role = "PROCUREMENT_ADMIN"
	RoleSuperAdmin       Role = "SUPER_ADMIN"
)

// ValidRoles lists all roles a menu node may grant access to.
var ValidRoles = []Role{
	RoleNormalUser,
	RoleUnitAdmin,
	RoleProcurementAdmin,
	RoleSuperAdmin,
}

// IsValid reports whether r is one of the known portal roles.
func (r Role) IsValid() bool {
	return slices.Contains(ValidRoles, r)
}

// Node is one navigation entry in a module's menu tree.
//
// An empty RoleAccess list means the node is visible to every role.
// AllowedUsers grants visibility to specific user ids regardless of role;
// it only ever widens access, never restricts it.
type Node struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Icon         string   `json:"icon,omitempty"`
	Active       bool     `json:"active"`
	RoleAccess   []Role   `json:"role_access,omitempty"`
	AllowedUsers []string `json:"allowed_users,omitempty"`
	SubItems     []*Node  `json:"sub_items,omitempty"`
}

// clone returns a shallow copy of the node with its own access and child
// slices. Child nodes themselves are shared; tree operations copy only the
// nodes along the mutated path.
func (n *Node) clone() *Node {
	c := *n
	c.RoleAccess = slices.Clone(n.RoleAccess)
	c.AllowedUsers = slices.Clone(n.AllowedUsers)
	c.SubItems = slices.Clone(n.SubItems)
	return &c
}

// validRoles reports whether every entry in roles is a known portal role.
func validRoles(roles []Role) bool {
	for _, r := range roles {
		if !r.IsValid() {
			return false
		}
	}
	return true
}
