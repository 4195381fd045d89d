package auth

import (
	"golang.org/x/crypto/bcrypt"

	"asset-console/internal/ports"
)

// Table is the fixed in-memory credential table. Entries map a login email
// to a bcrypt hash and a role id; it is a placeholder behind
// ports.CredentialSource so real authentication can replace it without
// touching callers.
type Table struct {
	entries map[string]tableEntry
}

type tableEntry struct {
	cred ports.Credential
	hash []byte
}

func NewTable() *Table {
	return &Table{entries: map[string]tableEntry{}}
}

// Add registers an account, hashing the password.
func (t *Table) Add(cred ports.Credential, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.entries[cred.Email] = tableEntry{cred: cred, hash: hash}
	return nil
}

// Verify compares the password against the stored hash for email.
func (t *Table) Verify(email, password string) (ports.Credential, bool) {
	e, ok := t.entries[email]
	if !ok {
		return ports.Credential{}, false
	}
	if bcrypt.CompareHashAndPassword(e.hash, []byte(password)) != nil {
		return ports.Credential{}, false
	}
	return e.cred, true
}

// DemoTable returns the three demo accounts shipped with the console.
func DemoTable() (*Table, error) {
	t := NewTable()
	accounts := []struct {
		cred     ports.Credential
		password string
	}{
		{ports.Credential{UserID: "1", Email: "admin@company.com", Name: "System Administrator", RoleID: "super-admin"}, "admin123"},
		{ports.Credential{UserID: "2", Email: "manager@company.com", Name: "Asset Manager", RoleID: "manager"}, "manager123"},
		{ports.Credential{UserID: "3", Email: "operator@company.com", Name: "Asset Operator", RoleID: "operator"}, "operator123"},
	}
	for _, a := range accounts {
		if err := t.Add(a.cred, a.password); err != nil {
			return nil, err
		}
	}
	return t, nil
}
