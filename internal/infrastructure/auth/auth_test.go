package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-console/internal/domain"
	"asset-console/internal/ports"
)

func TestTable_VerifyMatchesPassword(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Add(ports.Credential{UserID: "u1", Email: "a@b.c", Name: "A", RoleID: "viewer"}, "secret"))

	cred, ok := table.Verify("a@b.c", "secret")
	require.True(t, ok)
	assert.Equal(t, "viewer", cred.RoleID)

	_, ok = table.Verify("a@b.c", "wrong")
	assert.False(t, ok)

	_, ok = table.Verify("nobody@b.c", "secret")
	assert.False(t, ok)
}

func TestDemoTable_Accounts(t *testing.T) {
	table, err := DemoTable()
	require.NoError(t, err)

	cred, ok := table.Verify("admin@company.com", "admin123")
	require.True(t, ok)
	assert.Equal(t, "super-admin", cred.RoleID)

	_, ok = table.Verify("admin@company.com", "admin124")
	assert.False(t, ok)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), time.Hour)
	user := domain.User{ID: "u1", Email: "a@b.c", Role: "manager"}

	token, err := issuer.Issue(user)
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "manager", claims.Role)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	issuer := NewTokenIssuer([]byte("one"), time.Hour)
	other := NewTokenIssuer([]byte("two"), time.Hour)

	token, err := issuer.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"), -time.Minute)

	token, err := issuer.Issue(domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}
