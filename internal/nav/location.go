// ABOUTME: Location string codec mapping navigation contexts to URL paths
// ABOUTME: Encode and Decode are the two one-directional halves of URL sync

package nav

import "strings"

// Encode renders the context as a shareable location path:
// "/" + the segments [module, workflow, subMenu, childID] joined by "/",
// with trailing empty segments omitted. An empty sub-menu under a set
// child id is kept as an empty segment so the path stays positional and
// Decode(Encode(c)) == c for every module-qualified context.
//
// The module-select context encodes as "/".
func Encode(c Context) string {
	if c.Module == "" {
		return "/"
	}
	segments := []string{c.Module, c.Workflow, c.SubMenu, c.ChildID}
	end := len(segments)
	for end > 0 && segments[end-1] == "" {
		end--
	}
	return "/" + strings.Join(segments[:end], "/")
}

// Decode parses a location path back into a context. Segments are
// positional: module, workflow, sub-menu, child id. The module segment is
// validated against the known module set; an empty path, an unknown
// module, or any other malformed location degrades to the module-select
// context rather than erroring. A missing workflow segment defaults to
// the home workflow.
func Decode(path string, known func(moduleID string) bool) Context {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ModuleSelect()
	}

	segments := strings.Split(trimmed, "/")
	if known == nil || !known(segments[0]) {
		return ModuleSelect()
	}

	c := Context{Module: segments[0], Workflow: WorkflowHome}
	if len(segments) > 1 && segments[1] != "" {
		c.Workflow = segments[1]
	}
	if len(segments) > 2 {
		c.SubMenu = segments[2]
	}
	if len(segments) > 3 {
		c.ChildID = segments[3]
	}
	return c
}
