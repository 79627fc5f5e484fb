package service

import (
	"slices"

	"medidesk/internal/model"
)

// NavItem is one sidebar entry.
type NavItem struct {
	Label string       `json:"label"`
	Path  string       `json:"path"`
	roles []model.Role
}

var navItems = []NavItem{
	{Label: "Dashboard", Path: "/dashboard", roles: model.Roles},
	{Label: "Patients", Path: "/patients", roles: []model.Role{model.RoleDoctor, model.RoleAdmin}},
	{Label: "Prescriptions", Path: "/prescriptions", roles: []model.Role{model.RoleDoctor}},
	{Label: "Lab Reports", Path: "/lab-reports", roles: []model.Role{model.RoleLabStaff}},
	{Label: "Pharmacy", Path: "/pharmacy", roles: []model.Role{model.RolePharmacyStaff}},
	{Label: "Schedule", Path: "/schedule", roles: []model.Role{model.RoleDoctor, model.RoleAdmin}},
	{Label: "Admin", Path: "/admin", roles: []model.Role{model.RoleAdmin}},
}

// NavItems returns the sidebar entries visible to role, in display order.
func NavItems(role model.Role) []NavItem {
	out := make([]NavItem, 0, len(navItems))
	for _, item := range navItems {
		if slices.Contains(item.roles, role) {
			out = append(out, item)
		}
	}
	return out
}

// HomePath is where a freshly signed-in user of role lands.
func HomePath(role model.Role) string {
	switch role {
	case model.RoleLabStaff:
		return "/lab-reports"
	case model.RolePharmacyStaff:
		return "/pharmacy"
	case model.RoleAdmin:
		return "/admin"
	}
	return "/dashboard"
}
