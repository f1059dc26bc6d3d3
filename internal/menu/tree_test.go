// ABOUTME: Tests for menu tree insert, remove, update, and lookup
// ABOUTME: Covers id uniqueness, cascade removal, and structural sharing

package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTree() Tree {
	return Tree{
		{ID: "home", Label: "Dashboard", Active: true},
		{
			ID: "laptop-request", Label: "Equipment", Active: true,
			SubItems: []*Node{
				{ID: "laptop-inbox", Label: "Inbox", Active: true},
				{ID: "laptop-outbox", Label: "Outbox", Active: true},
			},
		},
		{
			ID: "admin-console", Label: "Super Admin", Active: true,
			RoleAccess: []Role{RoleSuperAdmin},
			SubItems: []*Node{
				{ID: "user-management", Label: "User Roles", Active: true},
			},
		},
	}
}

func TestTree_Insert_Root(t *testing.T) {
	tree := testTree()

	out, err := tree.Insert("", &Node{ID: "evaluations", Label: "Evaluations"})
	require.NoError(t, err)

	assert.Len(t, out, 4)
	assert.Equal(t, "evaluations", out[3].ID)
	assert.True(t, out[3].Active, "inserted nodes are forced active")

	// Original tree unchanged
	assert.Len(t, tree, 3)
}

func TestTree_Insert_Child(t *testing.T) {
	tree := Tree{{ID: "a", Label: "A", Active: true}}

	out, err := tree.Insert("a", &Node{ID: "b", Label: "B"})
	require.NoError(t, err)

	require.Len(t, out, 1)
	require.Len(t, out[0].SubItems, 1)
	assert.Equal(t, "b", out[0].SubItems[0].ID)
	assert.True(t, out[0].SubItems[0].Active)

	// Original parent untouched
	assert.Empty(t, tree[0].SubItems)
}

func TestTree_Insert_Nested(t *testing.T) {
	tree := testTree()

	out, err := tree.Insert("laptop-inbox", &Node{ID: "laptop-inbox-archive", Label: "Archive"})
	require.NoError(t, err)

	inbox := out.Find("laptop-inbox")
	require.NotNil(t, inbox)
	require.Len(t, inbox.SubItems, 1)
	assert.Equal(t, "laptop-inbox-archive", inbox.SubItems[0].ID)
}

func TestTree_Insert_ParentNotFound(t *testing.T) {
	tree := testTree()

	out, err := tree.Insert("no-such-parent", &Node{ID: "orphan", Label: "Orphan"})
	assert.ErrorIs(t, err, ErrParentNotFound)
	assert.Equal(t, tree.Len(), out.Len(), "tree unchanged on failed insert")
}

func TestTree_Insert_DuplicateID(t *testing.T) {
	tree := testTree()

	_, err := tree.Insert("", &Node{ID: "home", Label: "Duplicate"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	// A node cannot be inserted underneath an id it already carries
	_, err = tree.Insert("laptop-request", &Node{ID: "laptop-request", Label: "Self"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestTree_Insert_EmptyID(t *testing.T) {
	tree := testTree()

	_, err := tree.Insert("", &Node{Label: "Anonymous"})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestTree_Insert_UnknownRole(t *testing.T) {
	tree := testTree()

	_, err := tree.Insert("", &Node{ID: "x", Label: "X", RoleAccess: []Role{"FLEET_OVERLORD"}})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestTree_Insert_SubtreeValidated(t *testing.T) {
	tree := testTree()

	// Duplicate id hidden inside the inserted subtree
	_, err := tree.Insert("", &Node{
		ID: "records", Label: "Records",
		SubItems: []*Node{{ID: "home", Label: "Clash"}},
	})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestTree_Uniqueness_AfterInserts(t *testing.T) {
	tree := Tree{}
	var err error

	tree, err = tree.Insert("", &Node{ID: "a", Label: "A"})
	require.NoError(t, err)
	tree, err = tree.Insert("a", &Node{ID: "b", Label: "B"})
	require.NoError(t, err)
	tree, err = tree.Insert("b", &Node{ID: "c", Label: "C"})
	require.NoError(t, err)

	seen := make(map[string]int)
	tree.Walk(func(n *Node) bool {
		seen[n.ID]++
		return true
	})
	for id, count := range seen {
		assert.Equal(t, 1, count, "id %q appears more than once", id)
	}
}

func TestTree_Remove_CascadesToSubtree(t *testing.T) {
	tree := testTree()
	before := tree.Len()

	out, ok := tree.Remove("laptop-request")
	require.True(t, ok)

	assert.Nil(t, out.Find("laptop-request"))
	assert.Nil(t, out.Find("laptop-inbox"), "children removed with their parent")
	assert.Nil(t, out.Find("laptop-outbox"))
	assert.Equal(t, before-3, out.Len(), "size drops by exactly the subtree size")

	// Siblings untouched, by pointer
	assert.Same(t, tree.Find("home"), out.Find("home"))
	assert.Same(t, tree.Find("admin-console"), out.Find("admin-console"))
}

func TestTree_Remove_Leaf(t *testing.T) {
	tree := testTree()

	out, ok := tree.Remove("laptop-inbox")
	require.True(t, ok)

	assert.Nil(t, out.Find("laptop-inbox"))
	assert.NotNil(t, out.Find("laptop-request"))
	assert.NotNil(t, out.Find("laptop-outbox"))
	assert.Equal(t, tree.Len()-1, out.Len())
}

func TestTree_Remove_Missing(t *testing.T) {
	tree := testTree()

	out, ok := tree.Remove("ghost")
	assert.False(t, ok)
	assert.Equal(t, tree.Len(), out.Len())
}

func TestTree_Remove_ParentThenChildGone(t *testing.T) {
	tree := Tree{{ID: "a", Label: "A", Active: true}}
	tree, err := tree.Insert("a", &Node{ID: "b", Label: "B"})
	require.NoError(t, err)

	out, ok := tree.Remove("a")
	require.True(t, ok)
	assert.Empty(t, out)
}

func TestTree_Update_PatchesOnlyGivenFields(t *testing.T) {
	tree := testTree()

	label := "Hardware"
	out, err := tree.Update("laptop-request", Patch{Label: &label})
	require.NoError(t, err)

	updated := out.Find("laptop-request")
	require.NotNil(t, updated)
	assert.Equal(t, "Hardware", updated.Label)
	assert.True(t, updated.Active, "unpatched fields keep their value")

	// Children untouched, by pointer
	assert.Same(t, tree.Find("laptop-inbox"), out.Find("laptop-inbox"))
	// Unrelated branches untouched, by pointer
	assert.Same(t, tree.Find("home"), out.Find("home"))
	// Original tree still carries the old label
	assert.Equal(t, "Equipment", tree.Find("laptop-request").Label)
}

func TestTree_Update_AccessLists(t *testing.T) {
	tree := testTree()

	out, err := tree.Update("laptop-request", Patch{
		RoleAccess:   []Role{RoleUnitAdmin},
		AllowedUsers: []string{"u7"},
	})
	require.NoError(t, err)

	updated := out.Find("laptop-request")
	assert.Equal(t, []Role{RoleUnitAdmin}, updated.RoleAccess)
	assert.Equal(t, []string{"u7"}, updated.AllowedUsers)

	// Non-nil empty slice clears a list, nil leaves it alone
	out2, err := out.Update("laptop-request", Patch{RoleAccess: []Role{}})
	require.NoError(t, err)
	assert.Empty(t, out2.Find("laptop-request").RoleAccess)
	assert.Equal(t, []string{"u7"}, out2.Find("laptop-request").AllowedUsers)
}

func TestTree_Update_Deactivate(t *testing.T) {
	tree := testTree()

	inactive := false
	out, err := tree.Update("laptop-inbox", Patch{Active: &inactive})
	require.NoError(t, err)

	assert.False(t, out.Find("laptop-inbox").Active)
	assert.True(t, tree.Find("laptop-inbox").Active)
}

func TestTree_Update_Missing(t *testing.T) {
	tree := testTree()

	label := "x"
	_, err := tree.Update("ghost", Patch{Label: &label})
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestTree_Update_UnknownRole(t *testing.T) {
	tree := testTree()

	_, err := tree.Update("home", Patch{RoleAccess: []Role{"WARP_CHIEF"}})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestTree_Find_DepthFirst(t *testing.T) {
	tree := testTree()

	assert.Nil(t, tree.Find("missing"))
	n := tree.Find("user-management")
	require.NotNil(t, n)
	assert.Equal(t, "User Roles", n.Label)
}

func TestTree_Validate(t *testing.T) {
	assert.NoError(t, testTree().Validate())

	dup := Tree{
		{ID: "a", Label: "A", Active: true},
		{ID: "b", Label: "B", Active: true, SubItems: []*Node{{ID: "a", Label: "A again"}}},
	}
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateID)

	badRole := Tree{{ID: "a", Label: "A", RoleAccess: []Role{"NOPE"}}}
	assert.ErrorIs(t, badRole.Validate(), ErrUnknownRole)
}
