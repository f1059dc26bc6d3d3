// Package menu implements the portal's navigation menu trees.
//
// # Trees
//
// Each portal module owns one Tree: an ordered, recursive sequence of Node
// values. Node ids are unique across the whole tree and are stable for the
// node's lifetime; they key everything else in the system (role overrides,
// location path segments, the workflow kill-switch map).
//
// Mutations follow an immutable-update discipline. Insert, Remove, and
// Update return a new Tree that shares every subtree the operation did not
// touch, so observers holding the previous value are never surprised and
// pointer comparison is a reliable change check.
//
// # Failure surfacing
//
// Operations on missing targets do not silently no-op: Insert returns
// ErrParentNotFound, Update returns ErrNodeNotFound, and Remove reports a
// miss through its boolean result. Admin surfaces use these to tell the
// operator that a menu item no longer exists instead of dropping the edit.
//
// # Visibility
//
// Filter projects a tree into what one viewer may see, combining the
// global workflow kill-switch map, per-node active flags, explicit user
// grants, and role lists. It is pure and deterministic: safe to recompute
// on every request, or to memoize keyed on its inputs.
package menu
