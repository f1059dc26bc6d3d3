// ABOUTME: Navigation context identifying where a viewer currently is
// ABOUTME: Module, workflow, sub-menu, and optional detail child id

package nav

// WorkflowHome is the reserved workflow id meaning "no specific workflow":
// the viewer is on the module's dashboard.
const WorkflowHome = "home"

// Context is the viewer's current location inside the portal: the active
// module, the selected workflow and sub-menu, and an optional child id
// naming a specific record under detail view.
//
// An empty Module means the viewer is at the module-selection screen and no
// menu tree is in scope. A non-empty ChildID means a detail view is active
// regardless of the workflow and sub-menu values.
type Context struct {
	Module   string `json:"module"`
	Workflow string `json:"workflow"`
	SubMenu  string `json:"sub_menu,omitempty"`
	ChildID  string `json:"child_id,omitempty"`
}

// ModuleSelect returns the context for the module-selection screen. This is
// the initial context of every session and the safe fallback for unknown
// locations.
func ModuleSelect() Context {
	return Context{Workflow: WorkflowHome}
}

// Home returns the dashboard context for the given module.
func Home(moduleID string) Context {
	return Context{Module: moduleID, Workflow: WorkflowHome}
}

// AtModuleSelect reports whether no module is active.
func (c Context) AtModuleSelect() bool {
	return c.Module == ""
}

// DetailActive reports whether a detail view is open.
func (c Context) DetailActive() bool {
	return c.ChildID != ""
}
