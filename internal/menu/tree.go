// ABOUTME: Ordered recursive menu tree with insert, remove, update, and lookup
// ABOUTME: Mutations return a new tree value, sharing unmodified subtrees

package menu

import (
	"errors"
	"slices"
)

// Tree errors
var (
	ErrEmptyID        = errors.New("menu node id is empty")
	ErrDuplicateID    = errors.New("menu node id already exists")
	ErrParentNotFound = errors.New("parent menu node not found")
	ErrNodeNotFound   = errors.New("menu node not found")
	ErrUnknownRole    = errors.New("unknown role in access list")
)

// Tree is the ordered root sequence of a module's menu nodes.
//
// All operations treat node ids as globally unique across the whole tree.
// Mutations never modify the receiver; they return a new Tree that shares
// every subtree the operation did not touch, so callers comparing node
// pointers see a change exactly when the structure actually changed.
type Tree []*Node

// Find returns the first node with the given id in depth-first order,
// or nil if no node matches.
func (t Tree) Find(id string) *Node {
	var found *Node
	t.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Contains reports whether a node with the given id exists anywhere in the tree.
func (t Tree) Contains(id string) bool {
	return t.Find(id) != nil
}

// Len returns the total number of nodes in the tree, at every depth.
func (t Tree) Len() int {
	count := 0
	t.Walk(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Walk visits every node in depth-first preorder. The walk stops early
// if fn returns false.
func (t Tree) Walk(fn func(*Node) bool) {
	walk(t, fn)
}

func walk(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !walk(n.SubItems, fn) {
			return false
		}
	}
	return true
}

// Insert adds node to the tree. An empty parentID appends at the root;
// otherwise the node is appended to the sub-items of the first node whose
// id matches parentID. The inserted node is forced active regardless of
// the caller-supplied flag.
//
// Returns ErrParentNotFound if parentID names no node in the tree,
// ErrDuplicateID if any id carried by node already exists (which also
// rules out inserting a node underneath itself), and ErrUnknownRole if
// node grants access to a role the portal does not define.
func (t Tree) Insert(parentID string, node *Node) (Tree, error) {
	if err := t.validateNew(node); err != nil {
		return t, err
	}

	added := node.clone()
	added.Active = true

	if parentID == "" {
		out := slices.Clone(t)
		return append(out, added), nil
	}

	out, ok := insertUnder(t, parentID, added)
	if !ok {
		return t, ErrParentNotFound
	}
	return out, nil
}

// validateNew checks ids and roles across the whole subtree being inserted.
func (t Tree) validateNew(node *Node) error {
	seen := make(map[string]struct{})
	var check func(n *Node) error
	check = func(n *Node) error {
		if n.ID == "" {
			return ErrEmptyID
		}
		if _, dup := seen[n.ID]; dup {
			return ErrDuplicateID
		}
		if t.Contains(n.ID) {
			return ErrDuplicateID
		}
		seen[n.ID] = struct{}{}
		if !validRoles(n.RoleAccess) {
			return ErrUnknownRole
		}
		for _, sub := range n.SubItems {
			if err := check(sub); err != nil {
				return err
			}
		}
		return nil
	}
	return check(node)
}

func insertUnder(nodes []*Node, parentID string, child *Node) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == parentID {
			replaced := n.clone()
			replaced.SubItems = append(replaced.SubItems, child)
			out := slices.Clone(nodes)
			out[i] = replaced
			return out, true
		}
		if sub, ok := insertUnder(n.SubItems, parentID, child); ok {
			replaced := n.clone()
			replaced.SubItems = sub
			out := slices.Clone(nodes)
			out[i] = replaced
			return out, true
		}
	}
	return nil, false
}

// Remove deletes the first node matching id, together with its entire
// subtree. The second return value reports whether a node was removed;
// on a miss the original tree is returned unchanged.
func (t Tree) Remove(id string) (Tree, bool) {
	out, ok := removeNode(t, id)
	if !ok {
		return t, false
	}
	return out, true
}

func removeNode(nodes []*Node, id string) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			out := make([]*Node, 0, len(nodes)-1)
			out = append(out, nodes[:i]...)
			out = append(out, nodes[i+1:]...)
			return out, true
		}
		if sub, ok := removeNode(n.SubItems, id); ok {
			replaced := n.clone()
			replaced.SubItems = sub
			out := slices.Clone(nodes)
			out[i] = replaced
			return out, true
		}
	}
	return nil, false
}

// Patch describes a partial update to a single menu node. Nil fields are
// left untouched; a non-nil empty slice clears the corresponding list.
type Patch struct {
	Label        *string
	Icon         *string
	Active       *bool
	RoleAccess   []Role
	AllowedUsers []string
}

// Update merges the patch into the first node matching id. Children are
// never touched. Returns ErrNodeNotFound if no node matches and
// ErrUnknownRole if the patch grants access to an undefined role.
func (t Tree) Update(id string, patch Patch) (Tree, error) {
	if patch.RoleAccess != nil && !validRoles(patch.RoleAccess) {
		return t, ErrUnknownRole
	}
	out, ok := updateNode(t, id, patch)
	if !ok {
		return t, ErrNodeNotFound
	}
	return out, nil
}

func updateNode(nodes []*Node, id string, patch Patch) ([]*Node, bool) {
	for i, n := range nodes {
		if n.ID == id {
			replaced := n.clone()
			if patch.Label != nil {
				replaced.Label = *patch.Label
			}
			if patch.Icon != nil {
				replaced.Icon = *patch.Icon
			}
			if patch.Active != nil {
				replaced.Active = *patch.Active
			}
			if patch.RoleAccess != nil {
				replaced.RoleAccess = slices.Clone(patch.RoleAccess)
			}
			if patch.AllowedUsers != nil {
				replaced.AllowedUsers = slices.Clone(patch.AllowedUsers)
			}
			out := slices.Clone(nodes)
			out[i] = replaced
			return out, true
		}
		if sub, ok := updateNode(n.SubItems, id, patch); ok {
			replaced := n.clone()
			replaced.SubItems = sub
			out := slices.Clone(nodes)
			out[i] = replaced
			return out, true
		}
	}
	return nil, false
}

// Validate checks that every id in the tree is unique and non-empty and
// that every access list names only known roles. Used when loading
// externally supplied trees (seed data, persisted documents).
func (t Tree) Validate() error {
	seen := make(map[string]struct{})
	var firstErr error
	t.Walk(func(n *Node) bool {
		switch {
		case n.ID == "":
			firstErr = ErrEmptyID
		case !validRoles(n.RoleAccess):
			firstErr = ErrUnknownRole
		default:
			if _, dup := seen[n.ID]; dup {
				firstErr = ErrDuplicateID
				return false
			}
			seen[n.ID] = struct{}{}
			return true
		}
		return false
	})
	return firstErr
}
