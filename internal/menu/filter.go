// ABOUTME: Per-viewer visibility projection of a menu tree
// ABOUTME: Combines workflow kill-switches, active flags, user grants, and roles

package menu

import "slices"

// Viewer identifies the user a menu tree is being projected for.
type Viewer struct {
	ID   string
	Role Role
}

// Filter projects the tree into the subset visible to the viewer. For each
// node, in order: an explicit false entry in workflowEnabled excludes it, an
// inactive node is excluded, a viewer listed in AllowedUsers is let through
// regardless of role, an empty RoleAccess list admits every role, otherwise
// the viewer's role must appear in RoleAccess.
//
// Children of an included node are filtered recursively; a node stays
// visible even when all of its children are filtered out. A deactivated
// parent does not hide its children here: each node's Active flag is
// evaluated independently, matching the portal's long-standing behavior.
//
// Filter is pure. It never modifies the input tree; included nodes are
// copied so the visible tree owns its own child sequences.
func Filter(t Tree, viewer Viewer, workflowEnabled map[string]bool) Tree {
	if len(t) == 0 {
		return nil
	}
	var out Tree
	for _, n := range t {
		if !visible(n, viewer, workflowEnabled) {
			continue
		}
		kept := n.clone()
		kept.SubItems = Filter(n.SubItems, viewer, workflowEnabled)
		out = append(out, kept)
	}
	return out
}

func visible(n *Node, viewer Viewer, workflowEnabled map[string]bool) bool {
	if enabled, ok := workflowEnabled[n.ID]; ok && !enabled {
		return false
	}
	if !n.Active {
		return false
	}
	if slices.Contains(n.AllowedUsers, viewer.ID) {
		return true
	}
	if len(n.RoleAccess) == 0 {
		return true
	}
	return slices.Contains(n.RoleAccess, viewer.Role)
}
