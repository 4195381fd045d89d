package ports

import "context"

// SnapshotStore persists whole per-store state snapshots as named JSON
// blobs. Each store saves under its own key; the last writer wins at the
// granularity of a full snapshot.
type SnapshotStore interface {
	// Save marshals value and stores it under key, replacing any prior
	// snapshot.
	Save(ctx context.Context, key string, value any) error
	// Load unmarshals the snapshot stored under key into out. It returns
	// domain.ErrNotFound when no snapshot exists for the key.
	Load(ctx context.Context, key string, out any) error
}

// Credential is a resolved credential-table entry. It maps a login
// identifier to a role id; permissions are never stored here.
type Credential struct {
	UserID string
	Email  string
	Name   string
	RoleID string
}

// CredentialSource verifies a login against the credential table.
type CredentialSource interface {
	Verify(email, password string) (Credential, bool)
}

// Logger is the structured logging port used across services and middleware.
type Logger interface {
	Info(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Debug(ctx context.Context, msg string, args ...any)
}
