package domain

import "time"

// System role ids. Roles with these ids are seeded at startup and cannot be
// deleted through normal operations.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleOperator   = "operator"
	RoleViewer     = "viewer"
)

// DefaultCategories returns the seeded asset category catalog.
func DefaultCategories() []AssetCategory {
	return []AssetCategory{
		{
			ID:          "1",
			Name:        "IT Equipment",
			Description: "Computers, laptops, servers, and IT infrastructure",
			Fields: []CategoryField{
				{Name: "model", Type: "text", Required: true},
				{Name: "specifications", Type: "text", Required: false},
				{Name: "osVersion", Type: "text", Required: false},
			},
		},
		{
			ID:          "2",
			Name:        "Office Furniture",
			Description: "Desks, chairs, cabinets, and office equipment",
			Fields: []CategoryField{
				{Name: "material", Type: "text", Required: false},
				{Name: "dimensions", Type: "text", Required: false},
			},
		},
		{
			ID:          "3",
			Name:        "Vehicles",
			Description: "Company cars, trucks, and fleet vehicles",
			Fields: []CategoryField{
				{Name: "make", Type: "text", Required: true},
				{Name: "model", Type: "text", Required: true},
				{Name: "year", Type: "number", Required: true},
				{Name: "license", Type: "text", Required: true},
			},
		},
	}
}

// PermissionCatalog returns the fixed permission catalog.
func PermissionCatalog() []Permission {
	return []Permission{
		{ID: "assets.create", Name: "Create Assets", Resource: "assets", Action: "create", Description: "Create new assets"},
		{ID: "assets.read", Name: "View Assets", Resource: "assets", Action: "read", Description: "View asset information"},
		{ID: "assets.update", Name: "Update Assets", Resource: "assets", Action: "update", Description: "Edit asset information"},
		{ID: "assets.delete", Name: "Delete Assets", Resource: "assets", Action: "delete", Description: "Delete assets"},
		{ID: "assets.checkout", Name: "Checkout Assets", Resource: "assets", Action: "checkout", Description: "Assign assets to users"},
		{ID: "assets.checkin", Name: "Checkin Assets", Resource: "assets", Action: "checkin", Description: "Return assets from users"},
		{ID: "assets.audit", Name: "Audit Assets", Resource: "assets", Action: "audit", Description: "Perform asset audits"},

		{ID: "users.create", Name: "Create Users", Resource: "users", Action: "create", Description: "Create new user accounts"},
		{ID: "users.read", Name: "View Users", Resource: "users", Action: "read", Description: "View user information"},
		{ID: "users.update", Name: "Update Users", Resource: "users", Action: "update", Description: "Edit user information"},
		{ID: "users.delete", Name: "Delete Users", Resource: "users", Action: "delete", Description: "Delete user accounts"},

		{ID: "roles.create", Name: "Create Roles", Resource: "roles", Action: "create", Description: "Create new roles"},
		{ID: "roles.read", Name: "View Roles", Resource: "roles", Action: "read", Description: "View role information"},
		{ID: "roles.update", Name: "Update Roles", Resource: "roles", Action: "update", Description: "Edit role information"},
		{ID: "roles.delete", Name: "Delete Roles", Resource: "roles", Action: "delete", Description: "Delete roles"},

		{ID: "system.settings", Name: "System Settings", Resource: "system", Action: "settings", Description: "Manage system settings"},
		{ID: "system.backup", Name: "System Backup", Resource: "system", Action: "backup", Description: "Create and restore backups"},
		{ID: "system.logs", Name: "View Logs", Resource: "system", Action: "logs", Description: "View system logs"},
		{ID: "system.api", Name: "API Access", Resource: "system", Action: "api", Description: "Access API endpoints"},

		{ID: "reports.assets", Name: "Asset Reports", Resource: "reports", Action: "assets", Description: "Generate asset reports"},
		{ID: "reports.users", Name: "User Reports", Resource: "reports", Action: "users", Description: "Generate user reports"},
		{ID: "reports.audit", Name: "Audit Reports", Resource: "reports", Action: "audit", Description: "Generate audit reports"},

		{ID: "rfid.scan", Name: "RFID Scanning", Resource: "rfid", Action: "scan", Description: "Scan RFID tags"},
		{ID: "rfid.manage", Name: "RFID Management", Resource: "rfid", Action: "manage", Description: "Manage RFID devices"},
	}
}

// DefaultRoles returns the five system roles, timestamped at now.
func DefaultRoles(now time.Time) []Role {
	catalog := PermissionCatalog()

	all := make([]string, 0, len(catalog))
	for _, p := range catalog {
		all = append(all, p.ID)
	}

	// Everything except system administration, logs excepted.
	admin := make([]string, 0, len(catalog))
	for _, p := range catalog {
		if p.Resource != "system" || p.Action == "logs" {
			admin = append(admin, p.ID)
		}
	}

	return []Role{
		{
			ID:           RoleSuperAdmin,
			Name:         "Super Administrator",
			Description:  "Full system access with ability to create administrators",
			Permissions:  all,
			IsSystemRole: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           RoleAdmin,
			Name:         "Administrator",
			Description:  "Full asset management access without system administration",
			Permissions:  admin,
			IsSystemRole: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          RoleManager,
			Name:        "Asset Manager",
			Description: "Manage assets and users within their department",
			Permissions: []string{
				"assets.create", "assets.read", "assets.update", "assets.checkout", "assets.checkin",
				"users.read", "users.update", "reports.assets", "rfid.scan",
			},
			IsSystemRole: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          RoleOperator,
			Name:        "Asset Operator",
			Description: "Basic asset operations and scanning",
			Permissions: []string{
				"assets.read", "assets.checkout", "assets.checkin", "rfid.scan",
			},
			IsSystemRole: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:          RoleViewer,
			Name:        "Asset Viewer",
			Description: "Read-only access to assets and reports",
			Permissions: []string{
				"assets.read", "reports.assets",
			},
			IsSystemRole: true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
