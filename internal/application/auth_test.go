package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-console/internal/domain"
	"asset-console/internal/ports"
)

// fakeCredentials avoids bcrypt cost in store tests; the real table is
// covered in the infrastructure package.
type fakeCredentials struct {
	entries map[string]ports.Credential
}

func (f *fakeCredentials) Verify(email, password string) (ports.Credential, bool) {
	cred, ok := f.entries[email+":"+password]
	return cred, ok
}

func demoCredentials() *fakeCredentials {
	return &fakeCredentials{entries: map[string]ports.Credential{
		"admin@company.com:admin123":       {UserID: "1", Email: "admin@company.com", Name: "System Administrator", RoleID: domain.RoleSuperAdmin},
		"manager@company.com:manager123":   {UserID: "2", Email: "manager@company.com", Name: "Asset Manager", RoleID: domain.RoleManager},
		"operator@company.com:operator123": {UserID: "3", Email: "operator@company.com", Name: "Asset Operator", RoleID: domain.RoleOperator},
	}}
}

func newAuthFixture(t *testing.T) (*AuthService, *memStore) {
	t.Helper()
	store := newMemStore()
	roles := NewRoleService(store, nopLogger{})
	require.NoError(t, roles.EnsureDefaultRoles(context.Background()))
	return NewAuthService(store, demoCredentials(), roles, nopLogger{}), store
}

func TestAuthService_LoginAdmin(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Login(context.Background(), "admin@company.com", "admin123")
	require.NoError(t, err)

	assert.True(t, svc.IsAuthenticated())
	assert.Equal(t, domain.RoleSuperAdmin, user.Role)
	assert.Equal(t, []string{domain.PermissionAll}, user.Permissions)
	require.NotNil(t, user.LastLogin)
	assert.True(t, svc.HasPermission("assets.delete"))
}

func TestAuthService_LoginManagerDerivesPermissionsFromRole(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.Login(context.Background(), "manager@company.com", "manager123")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleManager, user.Role)
	assert.Contains(t, user.Permissions, "assets.create")
	assert.NotContains(t, user.Permissions, "assets.delete")
	assert.True(t, svc.HasPermission("rfid.scan"))
	assert.False(t, svc.HasPermission("roles.delete"))
}

func TestAuthService_LoginFailureLeavesSessionUnchanged(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), "admin@company.com", "admin123")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "admin@company.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.True(t, svc.IsAuthenticated())
	user, ok := svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "admin@company.com", user.Email)
}

func TestAuthService_LoginUnknownAccount(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Login(context.Background(), "x", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, svc.IsAuthenticated())
}

func TestAuthService_LogoutKeepsSetupFlag(t *testing.T) {
	svc, _ := newAuthFixture(t)
	require.NoError(t, svc.CompleteSetup(context.Background()))
	_, err := svc.Login(context.Background(), "admin@company.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	assert.False(t, svc.IsAuthenticated())
	_, ok := svc.CurrentUser()
	assert.False(t, ok)
	assert.True(t, svc.IsSetupComplete())
	assert.False(t, svc.HasPermission("assets.read"))
}

func TestAuthService_SetupFlagPersists(t *testing.T) {
	svc, store := newAuthFixture(t)
	require.NoError(t, svc.CompleteSetup(context.Background()))

	roles := NewRoleService(store, nopLogger{})
	restored := NewAuthService(store, demoCredentials(), roles, nopLogger{})
	require.NoError(t, restored.Load(context.Background()))
	assert.True(t, restored.IsSetupComplete())
}

func TestAuthService_SessionProjectionPersists(t *testing.T) {
	svc, store := newAuthFixture(t)
	user, err := svc.Login(context.Background(), "operator@company.com", "operator123")
	require.NoError(t, err)

	roles := NewRoleService(store, nopLogger{})
	restored := NewAuthService(store, demoCredentials(), roles, nopLogger{})
	require.NoError(t, restored.Load(context.Background()))

	assert.True(t, restored.IsAuthenticated())
	got, ok := restored.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Permissions, got.Permissions)
}

func TestAuthService_UpdateUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.UpdateUser(context.Background(), UserPatch{})
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)

	_, err = svc.Login(context.Background(), "admin@company.com", "admin123")
	require.NoError(t, err)

	name := "Root"
	updated, err := svc.UpdateUser(context.Background(), UserPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Root", updated.Name)
	assert.Equal(t, "admin@company.com", updated.Email)
}
