package domain

// SchemaTable describes one table of the reference schema document. The
// document is store-held data used for display; nothing enforces it.
type SchemaTable struct {
	Table         string               `json:"table"`
	Columns       []SchemaColumn       `json:"columns"`
	Indexes       []string             `json:"indexes"`
	Relationships []SchemaRelationship `json:"relationships"`
}

type SchemaColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Unique   bool   `json:"unique,omitempty"`
}

type SchemaRelationship struct {
	Table string `json:"table"`
	Type  string `json:"type"` // one-to-many, many-to-many, one-to-one
}

// DefaultSchema returns the reference schema document shipped with the role
// store.
func DefaultSchema() []SchemaTable {
	return []SchemaTable{
		{
			Table: "users",
			Columns: []SchemaColumn{
				{Name: "id", Type: "uuid", Required: true, Unique: true},
				{Name: "email", Type: "varchar(255)", Required: true, Unique: true},
				{Name: "name", Type: "varchar(255)", Required: true},
				{Name: "role_id", Type: "uuid", Required: true},
				{Name: "department", Type: "varchar(100)", Required: false},
				{Name: "employee_id", Type: "varchar(50)", Required: false, Unique: true},
				{Name: "phone", Type: "varchar(20)", Required: false},
				{Name: "active", Type: "boolean", Required: true},
				{Name: "last_login", Type: "timestamp", Required: false},
				{Name: "created_at", Type: "timestamp", Required: true},
				{Name: "updated_at", Type: "timestamp", Required: true},
			},
			Indexes: []string{"email", "role_id", "employee_id", "department"},
			Relationships: []SchemaRelationship{
				{Table: "roles", Type: "many-to-many"},
				{Table: "assets", Type: "one-to-many"},
			},
		},
		{
			Table: "assets",
			Columns: []SchemaColumn{
				{Name: "id", Type: "uuid", Required: true, Unique: true},
				{Name: "name", Type: "varchar(255)", Required: true},
				{Name: "asset_tag", Type: "varchar(50)", Required: true, Unique: true},
				{Name: "serial_number", Type: "varchar(100)", Required: true},
				{Name: "rfid_tag", Type: "varchar(50)", Required: false, Unique: true},
				{Name: "category_id", Type: "uuid", Required: true},
				{Name: "status", Type: "enum", Required: true},
				{Name: "location_id", Type: "uuid", Required: true},
				{Name: "assigned_to", Type: "uuid", Required: false},
				{Name: "purchase_date", Type: "date", Required: true},
				{Name: "purchase_cost", Type: "decimal(10,2)", Required: true},
				{Name: "current_value", Type: "decimal(10,2)", Required: true},
				{Name: "vendor", Type: "varchar(255)", Required: false},
				{Name: "warranty_months", Type: "integer", Required: false},
				{Name: "notes", Type: "text", Required: false},
				{Name: "last_audit_date", Type: "timestamp", Required: false},
				{Name: "created_at", Type: "timestamp", Required: true},
				{Name: "updated_at", Type: "timestamp", Required: true},
			},
			Indexes: []string{"asset_tag", "serial_number", "rfid_tag", "category_id", "status", "location_id", "assigned_to"},
			Relationships: []SchemaRelationship{
				{Table: "categories", Type: "many-to-many"},
				{Table: "locations", Type: "many-to-many"},
				{Table: "users", Type: "many-to-many"},
			},
		},
		{
			Table: "categories",
			Columns: []SchemaColumn{
				{Name: "id", Type: "uuid", Required: true, Unique: true},
				{Name: "name", Type: "varchar(100)", Required: true, Unique: true},
				{Name: "description", Type: "text", Required: false},
				{Name: "color", Type: "varchar(7)", Required: false},
				{Name: "icon", Type: "varchar(50)", Required: false},
				{Name: "created_at", Type: "timestamp", Required: true},
				{Name: "updated_at", Type: "timestamp", Required: true},
			},
			Indexes: []string{"name"},
			Relationships: []SchemaRelationship{
				{Table: "assets", Type: "one-to-many"},
			},
		},
		{
			Table: "locations",
			Columns: []SchemaColumn{
				{Name: "id", Type: "uuid", Required: true, Unique: true},
				{Name: "name", Type: "varchar(100)", Required: true},
				{Name: "address", Type: "text", Required: false},
				{Name: "city", Type: "varchar(100)", Required: false},
				{Name: "state", Type: "varchar(50)", Required: false},
				{Name: "country", Type: "varchar(50)", Required: false},
				{Name: "zip", Type: "varchar(20)", Required: false},
				{Name: "parent_id", Type: "uuid", Required: false},
				{Name: "created_at", Type: "timestamp", Required: true},
				{Name: "updated_at", Type: "timestamp", Required: true},
			},
			Indexes: []string{"name", "parent_id"},
			Relationships: []SchemaRelationship{
				{Table: "assets", Type: "one-to-many"},
				{Table: "locations", Type: "one-to-many"},
			},
		},
		{
			Table: "audit_logs",
			Columns: []SchemaColumn{
				{Name: "id", Type: "uuid", Required: true, Unique: true},
				{Name: "user_id", Type: "uuid", Required: true},
				{Name: "asset_id", Type: "uuid", Required: false},
				{Name: "action", Type: "varchar(50)", Required: true},
				{Name: "description", Type: "text", Required: false},
				{Name: "old_values", Type: "json", Required: false},
				{Name: "new_values", Type: "json", Required: false},
				{Name: "ip_address", Type: "varchar(45)", Required: false},
				{Name: "user_agent", Type: "text", Required: false},
				{Name: "created_at", Type: "timestamp", Required: true},
			},
			Indexes: []string{"user_id", "asset_id", "action", "created_at"},
			Relationships: []SchemaRelationship{
				{Table: "users", Type: "many-to-many"},
				{Table: "assets", Type: "many-to-many"},
			},
		},
	}
}
