// ABOUTME: Built-in portal modules and their seed menu trees.
// ABOUTME: Five demo command areas: logistics, personnel, facilities, cyber, fleet.

package module

import (
	"fmt"

	"github.com/2389/horizon-portal/internal/menu"
)

// Built-in module ids.
const (
	ModuleLogistics  = "logistics"
	ModulePersonnel  = "personnel"
	ModuleFacilities = "facilities"
	ModuleCyber      = "cyber"
	ModuleFleet      = "fleet"
)

// LogisticsMenu returns the seed menu tree for the logistics module.
func LogisticsMenu() menu.Tree {
	return menu.Tree{
		{ID: "home", Icon: "home", Label: "Dashboard", Active: true},
		{
			ID: "laptop-request", Icon: "laptop", Label: "Equipment", Active: true,
			SubItems: []*menu.Node{
				{ID: "laptop-inbox", Label: "Inbox", Active: true},
				{ID: "laptop-my-requests", Label: "My Requests", Active: true},
				{ID: "laptop-outbox", Label: "Outbox", Active: true},
			},
		},
		{
			ID: "dispensation", Icon: "file-text", Label: "Dispensation", Active: true,
			SubItems: []*menu.Node{
				{ID: "dispensation-inbox", Label: "Inbox", Active: true},
				{ID: "dispensation-outbox", Label: "Outbox", Active: true},
				{ID: "dispensation-my-requests", Label: "My Requests", Active: true},
			},
		},
		{
			ID: "nws-policy", Icon: "shield", Label: "NWS Policy", Active: true,
			SubItems: []*menu.Node{
				{ID: "nws-library", Label: "Port Opening Req", Active: true},
				{ID: "nws-inbox", Label: "Compliance Log", Active: true},
			},
		},
		{
			ID: "admin-console", Icon: "key", Label: "Super Admin", Active: true,
			RoleAccess: []menu.Role{menu.RoleSuperAdmin},
			SubItems: []*menu.Node{
				{ID: "user-management", Label: "User Roles", Active: true},
				{ID: "menu-visibility", Label: "Menu Visibility", Active: true},
			},
		},
	}
}

// PersonnelMenu returns the seed menu tree for the personnel module.
func PersonnelMenu() menu.Tree {
	return menu.Tree{
		{ID: "home", Icon: "home", Label: "HQ Dashboard", Active: true},
		{
			ID: "admin-console", Icon: "users", Label: "Records", Active: true,
			RoleAccess: []menu.Role{menu.RoleSuperAdmin, menu.RoleUnitAdmin},
			SubItems: []*menu.Node{
				{ID: "personnel-records", Label: "Service Members", Active: true},
				{ID: "user-management", Label: "Role Management", Active: true},
				{ID: "transfers", Label: "Transfers", Active: true},
			},
		},
		{ID: "evaluations", Icon: "file-text", Label: "Evaluations", Active: true},
	}
}

// FacilitiesMenu returns the seed menu tree for the facilities module.
func FacilitiesMenu() menu.Tree {
	return menu.Tree{
		{ID: "home", Icon: "home", Label: "Status Board", Active: true},
		{
			ID: "maintenance", Icon: "wrench", Label: "Maintenance", Active: true,
			SubItems: []*menu.Node{
				{ID: "work-orders", Label: "Work Orders", Active: true},
				{ID: "inspections", Label: "Inspections", Active: true},
			},
		},
		{ID: "housing", Icon: "building", Label: "Housing", Active: true},
	}
}

// CyberMenu returns the seed menu tree for the cyber module.
func CyberMenu() menu.Tree {
	return menu.Tree{
		{ID: "home", Icon: "home", Label: "Threat Map", Active: true},
		{ID: "incidents", Icon: "alert-circle", Label: "Incidents", Active: true},
	}
}

// FleetMenu returns the seed menu tree for the fleet module.
func FleetMenu() menu.Tree {
	return menu.Tree{
		{ID: "home", Icon: "home", Label: "Fleet Ops", Active: true},
		{ID: "deployments", Icon: "anchor", Label: "Deployments", Active: true},
		{ID: "logbook", Icon: "file-text", Label: "Logbook", Active: true},
	}
}

// BuiltinConfigs returns the launchpad configs for the built-in modules,
// in display order.
func BuiltinConfigs() []Config {
	return []Config{
		{
			ID:          ModuleLogistics,
			Category:    "Administration",
			Title:       "eAnumodan",
			Description: "Procurement, digital laptop issuance, and NWS Policy authorization.",
			Icon:        "laptop",
			ThemeColor:  "blue",
			QuickActions: []QuickAction{
				{Label: "Request Asset", Icon: "laptop", Workflow: "laptop-request", SubMenu: "laptop-new-request"},
				{Label: "Network Waiver", Icon: "wifi", Workflow: "dispensation", SubMenu: "dispensation-my-requests"},
				{Label: "Port Opening", Icon: "shield", Workflow: "nws-policy", SubMenu: "nws-library"},
			},
		},
		{
			ID:          ModulePersonnel,
			Category:    "Administration",
			Title:       "eSamman",
			Description: "Awards, recognition, and service record management.",
			Icon:        "award",
			ThemeColor:  "emerald",
			QuickActions: []QuickAction{
				{Label: "My Records", Icon: "file-text", Workflow: "admin-console", SubMenu: "personnel-records"},
				{Label: "Team Roster", Icon: "users", Workflow: "admin-console", SubMenu: "user-management"},
			},
			Stats: []Stat{
				{Label: "Active Personnel", Value: "14,203", Icon: "users"},
				{Label: "Transfers Pending", Value: "45", Icon: "truck"},
				{Label: "Promotions Due", Value: "12", Icon: "award"},
				{Label: "On Leave", Value: "830", Icon: "clock"},
			},
		},
		{
			ID:          ModuleFacilities,
			Category:    "Operations",
			Title:       "NIC Mail",
			Description: "Secure internal communication services and housing.",
			Icon:        "mail",
			ThemeColor:  "amber",
			QuickActions: []QuickAction{
				{Label: "New Ticket", Icon: "file-plus", Workflow: "maintenance", SubMenu: "work-orders"},
				{Label: "Housing", Icon: "home", Workflow: "housing"},
			},
			Stats: []Stat{
				{Label: "Open Tickets", Value: "24", Icon: "file-plus"},
				{Label: "Maintenance Ops", Value: "3", Icon: "wrench"},
				{Label: "Occupancy Rate", Value: "94%", Icon: "building"},
				{Label: "Inspections", Value: "7", Icon: "search"},
			},
		},
		{
			ID:          ModuleCyber,
			Category:    "Intelligence",
			Title:       "eVigam",
			Description: "Retirement processing and cyber incident reporting.",
			Icon:        "shield",
			ThemeColor:  "purple",
			QuickActions: []QuickAction{
				{Label: "Report Incident", Icon: "alert-circle", Workflow: "incidents"},
				{Label: "Audit Log", Icon: "lock", Workflow: "home"},
			},
			Stats: []Stat{
				{Label: "Threat Level", Value: "Low", Icon: "shield"},
				{Label: "Active Incidents", Value: "0", Icon: "alert-circle"},
				{Label: "Network Load", Value: "45%", Icon: "activity"},
				{Label: "Watch List", Value: "12", Icon: "eye"},
			},
		},
		{
			ID:          ModuleFleet,
			Category:    "Operations",
			Title:       "FVSCS",
			Description: "Foreign Visitor Screening & Control System.",
			Icon:        "plane",
			ThemeColor:  "cyan",
			QuickActions: []QuickAction{
				{Label: "Visitor Log", Icon: "file-text", Workflow: "logbook"},
				{Label: "Deployments", Icon: "anchor", Workflow: "deployments"},
			},
			Stats: []Stat{
				{Label: "Active Ships", Value: "8", Icon: "anchor"},
				{Label: "Aircraft", Value: "42", Icon: "plane"},
				{Label: "Missions", Value: "15", Icon: "activity"},
				{Label: "Personnel", Value: "2,400", Icon: "users"},
			},
		},
	}
}

// builtinMenus maps module ids to their seed menu constructors.
func builtinMenus() map[string]func() menu.Tree {
	return map[string]func() menu.Tree{
		ModuleLogistics:  LogisticsMenu,
		ModulePersonnel:  PersonnelMenu,
		ModuleFacilities: FacilitiesMenu,
		ModuleCyber:      CyberMenu,
		ModuleFleet:      FleetMenu,
	}
}

// RegisterBuiltins registers the five demo modules with their seed menus.
func RegisterBuiltins(r *Registry) error {
	menus := builtinMenus()
	for _, cfg := range BuiltinConfigs() {
		if err := r.Register(cfg, menus[cfg.ID]()); err != nil {
			return fmt.Errorf("registering builtin module %s: %w", cfg.ID, err)
		}
	}
	return nil
}
