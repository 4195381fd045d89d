package domain

import "time"

// AssetStatus is the lifecycle state of an asset. Any status can be set by
// any update; there is no enforced transition graph.
type AssetStatus string

const (
	StatusAvailable   AssetStatus = "available"
	StatusInUse       AssetStatus = "in-use"
	StatusMaintenance AssetStatus = "maintenance"
	StatusRetired     AssetStatus = "retired"
)

// ValidStatus reports whether s is one of the closed set of asset statuses.
func ValidStatus(s AssetStatus) bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance, StatusRetired:
		return true
	}
	return false
}

type Asset struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Category      string      `json:"category"`
	SerialNumber  string      `json:"serialNumber"`
	RFIDTag       string      `json:"rfidTag,omitempty"`
	Status        AssetStatus `json:"status"`
	Location      string      `json:"location"`
	AssignedTo    string      `json:"assignedTo,omitempty"`
	PurchaseDate  string      `json:"purchaseDate"`
	PurchasePrice float64     `json:"purchasePrice"`
	CurrentValue  float64     `json:"currentValue"`
	Vendor        string      `json:"vendor"`
	Warranty      string      `json:"warranty"`
	Notes         string      `json:"notes,omitempty"`
	LastScanned   *time.Time  `json:"lastScanned,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type CategoryField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type AssetCategory struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Fields      []CategoryField `json:"fields"`
}

// Permission is an atomic capability slug of the form resource.action.
// The catalog is fixed at startup and never mutated.
type Permission struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
	Description string `json:"description"`
}

// PermissionAll is the wildcard granted to the super administrator.
const PermissionAll = "all"

type Role struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Permissions  []string  `json:"permissions"`
	IsSystemRole bool      `json:"isSystemRole"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasPermission reports whether the role grants the permission id.
func (r Role) HasPermission(permissionID string) bool {
	for _, p := range r.Permissions {
		if p == permissionID {
			return true
		}
	}
	return false
}

type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	CreatedAt   time.Time  `json:"createdAt"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// HasPermission reports whether the user's resolved permission set grants the
// permission id. The "all" wildcard grants everything.
func (u User) HasPermission(permissionID string) bool {
	for _, p := range u.Permissions {
		if p == PermissionAll || p == permissionID {
			return true
		}
	}
	return false
}
