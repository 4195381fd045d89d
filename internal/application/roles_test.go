package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-console/internal/domain"
)

func seededRoleService(t *testing.T) *RoleService {
	t.Helper()
	svc := NewRoleService(newMemStore(), nopLogger{})
	require.NoError(t, svc.EnsureDefaultRoles(context.Background()))
	return svc
}

func TestRoleService_EnsureDefaultRolesSeedsFive(t *testing.T) {
	svc := seededRoleService(t)

	roles := svc.Roles()
	require.Len(t, roles, 5)
	for _, r := range roles {
		assert.True(t, r.IsSystemRole, "role %s should be a system role", r.ID)
	}

	super, err := svc.RoleByID(domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Len(t, super.Permissions, len(domain.PermissionCatalog()))

	admin, err := svc.RoleByID(domain.RoleAdmin)
	require.NoError(t, err)
	assert.NotContains(t, admin.Permissions, "system.settings")
	assert.Contains(t, admin.Permissions, "system.logs")
}

func TestRoleService_EnsureDefaultRolesPreservesCustomRoles(t *testing.T) {
	svc := seededRoleService(t)
	custom, err := svc.CreateRole(context.Background(), RoleInput{Name: "Auditor", Permissions: []string{"assets.read", "reports.audit"}})
	require.NoError(t, err)

	require.NoError(t, svc.EnsureDefaultRoles(context.Background()))

	assert.Len(t, svc.Roles(), 6)
	got, err := svc.RoleByID(custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", got.Name)
}

func TestRoleService_CreateRoleDeduplicatesPermissions(t *testing.T) {
	svc := seededRoleService(t)
	role, err := svc.CreateRole(context.Background(), RoleInput{
		Name:        "Scanner",
		Permissions: []string{"rfid.scan", "assets.read", "rfid.scan"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rfid.scan", "assets.read"}, role.Permissions)
	assert.False(t, role.IsSystemRole)
	assert.Equal(t, role.CreatedAt, role.UpdatedAt)
}

func TestRoleService_CreateRoleRequiresName(t *testing.T) {
	svc := seededRoleService(t)
	_, err := svc.CreateRole(context.Background(), RoleInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoleService_UpdateRoleMergesPatch(t *testing.T) {
	clk := newFakeClock()
	svc := NewRoleService(newMemStore(), nopLogger{}, WithRoleClock(clk.Now))
	role, err := svc.CreateRole(context.Background(), RoleInput{Name: "Scanner", Description: "scans"})
	require.NoError(t, err)

	clk.Advance(time.Minute)
	name := "Scanner v2"
	updated, err := svc.UpdateRole(context.Background(), role.ID, RolePatch{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Scanner v2", updated.Name)
	assert.Equal(t, "scans", updated.Description)
	assert.True(t, updated.UpdatedAt.After(role.UpdatedAt))

	_, err = svc.UpdateRole(context.Background(), "nope", RolePatch{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleService_DeleteSystemRoleIsRefused(t *testing.T) {
	svc := seededRoleService(t)
	before := svc.Roles()

	err := svc.DeleteRole(context.Background(), domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrSystemRole)
	assert.Equal(t, before, svc.Roles())
}

func TestRoleService_DeleteCustomRole(t *testing.T) {
	svc := seededRoleService(t)
	role, err := svc.CreateRole(context.Background(), RoleInput{Name: "Temp"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRole(context.Background(), role.ID))
	_, err = svc.RoleByID(role.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteRole(context.Background(), role.ID), domain.ErrNotFound)
}

func TestRoleService_AssignPermissionIsIdempotent(t *testing.T) {
	svc := seededRoleService(t)
	role, err := svc.CreateRole(context.Background(), RoleInput{Name: "Scanner"})
	require.NoError(t, err)

	_, err = svc.AssignPermission(context.Background(), role.ID, "rfid.scan")
	require.NoError(t, err)
	got, err := svc.AssignPermission(context.Background(), role.ID, "rfid.scan")
	require.NoError(t, err)

	occurrences := 0
	for _, p := range got.Permissions {
		if p == "rfid.scan" {
			occurrences++
		}
	}
	assert.Equal(t, 1, occurrences)

	_, err = svc.AssignPermission(context.Background(), "nope", "rfid.scan")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRoleService_RemovePermission(t *testing.T) {
	svc := seededRoleService(t)
	role, err := svc.CreateRole(context.Background(), RoleInput{Name: "Scanner", Permissions: []string{"rfid.scan", "assets.read"}})
	require.NoError(t, err)

	got, err := svc.RemovePermission(context.Background(), role.ID, "rfid.scan")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets.read"}, got.Permissions)

	// removing an absent permission id succeeds without effect
	got, err = svc.RemovePermission(context.Background(), role.ID, "rfid.scan")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets.read"}, got.Permissions)
}

func TestRoleService_PermissionCatalogIsFixed(t *testing.T) {
	svc := seededRoleService(t)
	perms := svc.Permissions()
	assert.Len(t, perms, 24)

	perms[0].ID = "mutated"
	assert.NotEqual(t, "mutated", svc.Permissions()[0].ID)
}

func TestRoleService_SchemaGetAndUpdate(t *testing.T) {
	store := newMemStore()
	svc := NewRoleService(store, nopLogger{})

	schema := svc.Schema()
	require.Len(t, schema, 5)
	assert.Equal(t, "users", schema[0].Table)

	replacement := []domain.SchemaTable{{Table: "inventory"}}
	require.NoError(t, svc.UpdateSchema(context.Background(), replacement))
	assert.Equal(t, replacement, svc.Schema())

	restored := NewRoleService(store, nopLogger{})
	require.NoError(t, restored.Load(context.Background()))
	assert.Equal(t, replacement, restored.Schema())
}

func TestRoleService_LoadRestoresRoles(t *testing.T) {
	store := newMemStore()
	first := NewRoleService(store, nopLogger{})
	require.NoError(t, first.EnsureDefaultRoles(context.Background()))
	custom, err := first.CreateRole(context.Background(), RoleInput{Name: "Auditor"})
	require.NoError(t, err)

	second := NewRoleService(store, nopLogger{})
	require.NoError(t, second.Load(context.Background()))
	assert.Len(t, second.Roles(), 6)
	got, err := second.RoleByID(custom.ID)
	require.NoError(t, err)
	assert.Equal(t, "Auditor", got.Name)
}
