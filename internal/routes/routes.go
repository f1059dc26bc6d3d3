// ABOUTME: Route table mapping navigation contexts to portal views
// ABOUTME: Mirrors the workflow/subMenu hierarchy of the dashboard shell

package routes

import (
	"github.com/2389/horizon-portal/internal/nav"
	"github.com/2389/horizon-portal/internal/store"
)

// View identifies a renderable portal view.
type View string

// Portal views
const (
	ViewDashboardHome    View = "dashboard-home"
	ViewSettings         View = "settings"
	ViewUserManagement   View = "user-management"
	ViewPageManagement   View = "page-management"
	ViewPersonnelRecords View = "personnel-records"
	ViewLaptopHome       View = "laptop-home"
	ViewLaptopForm       View = "laptop-form"
	ViewDispensationForm View = "dispensation-form"
	ViewPolicyForm       View = "policy-form"
	ViewRequestInbox     View = "request-inbox"
	ViewRequestDetails   View = "request-details"
	ViewNotFound         View = "not-found"
)

// Inbox modes
const (
	ModeInbox  = "Inbox"
	ModeOutbox = "Outbox"
)

// Route is one entry in the route table. Children are matched against the
// sub-menu segment of a navigation context.
type Route struct {
	Path     string
	View     View
	Mode     string // inbox views only
	Filter   string // inbox views only, a request type
	Children []Route
}

// Resolution is the outcome of resolving a navigation context.
type Resolution struct {
	View      View
	Mode      string
	Filter    string
	RequestID string // set for request detail views
}

// Table returns the dashboard route table.
func Table() []Route {
	return []Route{
		{Path: "home", View: ViewDashboardHome},
		{Path: "global-settings", View: ViewSettings},
		{Path: "admin-console", View: ViewUserManagement, Children: []Route{
			{Path: "menu-visibility", View: ViewPageManagement},
			{Path: "user-management", View: ViewUserManagement},
		}},
		{Path: "personnel-records", View: ViewPersonnelRecords},
		{Path: "evaluations", View: ViewPersonnelRecords},
		{Path: "laptop-request", View: ViewLaptopHome, Children: []Route{
			{Path: "laptop-inbox", View: ViewRequestInbox, Mode: ModeInbox, Filter: store.RequestTypeLaptop},
			{Path: "laptop-outbox", View: ViewRequestInbox, Mode: ModeOutbox, Filter: store.RequestTypeLaptop},
			{Path: "laptop-new-request", View: ViewLaptopForm},
		}},
		{Path: "dispensation", View: ViewDispensationForm, Children: []Route{
			{Path: "dispensation-inbox", View: ViewRequestInbox, Mode: ModeInbox, Filter: store.RequestTypeDispensation},
			{Path: "dispensation-outbox", View: ViewRequestInbox, Mode: ModeOutbox, Filter: store.RequestTypeDispensation},
			{Path: "dispensation-my-requests", View: ViewDispensationForm},
		}},
		{Path: "nws-policy", View: ViewPolicyForm, Children: []Route{
			{Path: "nws-inbox", View: ViewRequestInbox, Mode: ModeInbox, Filter: store.RequestTypePolicy},
			{Path: "nws-library", View: ViewPolicyForm},
		}},
		{Path: "not-found", View: ViewNotFound},
	}
}

// Resolve maps a navigation context to a view. A context with a child ID
// always resolves to the request details view. Otherwise the workflow
// segment selects a top-level route and the sub-menu segment, when present,
// selects one of its children; a sub-menu with no matching child falls back
// to the parent view. Unknown workflows resolve to the not-found view.
func Resolve(ctx nav.Context) Resolution {
	if ctx.ChildID != "" {
		return Resolution{View: ViewRequestDetails, RequestID: ctx.ChildID}
	}

	for _, route := range Table() {
		if route.Path != ctx.Workflow {
			continue
		}
		if ctx.SubMenu != "" {
			for _, child := range route.Children {
				if child.Path == ctx.SubMenu {
					return Resolution{View: child.View, Mode: child.Mode, Filter: child.Filter}
				}
			}
		}
		return Resolution{View: route.View, Mode: route.Mode, Filter: route.Filter}
	}

	return Resolution{View: ViewNotFound}
}
