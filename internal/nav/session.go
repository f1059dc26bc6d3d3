// ABOUTME: Navigation session: the state machine over navigation contexts
// ABOUTME: State changes push locations; external locations are adopted, never echoed

package nav

import "errors"

// ErrNoActiveModule is returned when Navigate is called while the session
// is still at module select. That is a caller bug, not a viewer-facing
// condition, so it is rejected instead of silently ignored.
var ErrNoActiveModule = errors.New("navigate requires an active module")

// History receives the encoded location after every explicit state change.
// It is the state→location half of URL sync; the location→state half is
// ApplyLocation, which never writes back. Keeping the two directions on
// separate paths is what prevents sync feedback loops.
type History interface {
	Push(location string)
}

// HistoryFunc adapts a function to the History interface.
type HistoryFunc func(location string)

// Push calls f.
func (f HistoryFunc) Push(location string) { f(location) }

// NopHistory discards pushed locations.
var NopHistory = HistoryFunc(func(string) {})

// Session owns one viewer's navigation context for the lifetime of their
// visit. It is not safe for concurrent use; each viewer holds their own
// session and the portal serializes access per viewer.
type Session struct {
	current Context
	known   func(moduleID string) bool
	history History
}

// NewSession creates a session at the module-selection screen. known
// validates module ids when external locations are applied; history
// receives encoded locations on every explicit state change.
func NewSession(known func(moduleID string) bool, history History) *Session {
	if history == nil {
		history = NopHistory
	}
	return &Session{
		current: ModuleSelect(),
		known:   known,
		history: history,
	}
}

// Current returns the session's context.
func (s *Session) Current() Context {
	return s.current
}

// Location returns the encoded location of the current context.
func (s *Session) Location() string {
	return Encode(s.current)
}

// Navigate replaces the workflow, sub-menu, and child id atomically and
// pushes the new location. An empty workflow means the module dashboard.
// Clearing childID is the explicit way out of a detail view; navigating to
// a different workflow clears it implicitly because the whole triple is
// replaced.
//
// Returns ErrNoActiveModule when no module is active; the context and the
// location are left unchanged.
func (s *Session) Navigate(workflow, subMenu, childID string) error {
	if s.current.AtModuleSelect() {
		return ErrNoActiveModule
	}
	if workflow == "" {
		workflow = WorkflowHome
	}
	s.current = Context{
		Module:   s.current.Module,
		Workflow: workflow,
		SubMenu:  subMenu,
		ChildID:  childID,
	}
	s.history.Push(Encode(s.current))
	return nil
}

// SelectModule activates a module and pushes the new location. An empty
// moduleID exits to the module-selection screen. When a target context is
// given its child id is always cleared and an empty workflow defaults to
// home; otherwise the module opens at its dashboard.
func (s *Session) SelectModule(moduleID string, target *Context) {
	if moduleID == "" {
		s.current = ModuleSelect()
		s.history.Push(Encode(s.current))
		return
	}

	next := Home(moduleID)
	if target != nil {
		next = *target
		next.Module = moduleID
		next.ChildID = ""
		if next.Workflow == "" {
			next.Workflow = WorkflowHome
		}
	}
	s.current = next
	s.history.Push(Encode(s.current))
}

// ExitModule returns the session to the module-selection screen.
func (s *Session) ExitModule() {
	s.SelectModule("", nil)
}

// ApplyLocation adopts an externally observed location (a back/forward
// event, a deep link). Unknown or malformed locations degrade to module
// select. Nothing is pushed back to history: the location is already
// where the viewer is.
func (s *Session) ApplyLocation(path string) {
	s.current = Decode(path, s.known)
}
