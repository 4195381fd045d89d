package application

import (
	"context"
	"sync"
	"time"

	"asset-console/internal/domain"
	"asset-console/internal/ports"
)

// The auth store persists a reduced projection of its state: the session
// user and the authenticated flag under authStorageKey, and the one-way
// setup flag under its own key. Nothing else is persisted.
const (
	authStorageKey  = "auth-storage"
	setupStorageKey = "setup-complete"
)

type authSnapshot struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"isAuthenticated"`
}

type setupSnapshot struct {
	Complete bool `json:"complete"`
}

// UserPatch is a partial update applied to the live session user.
type UserPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// AuthService gates access and carries the current session. At most one
// user is authenticated at a time. Effective permissions are resolved from
// the role store when the session is constructed, not stored per account.
type AuthService struct {
	mu            sync.Mutex
	user          *domain.User
	authenticated bool
	setupComplete bool

	store       ports.SnapshotStore
	credentials ports.CredentialSource
	roles       *RoleService
	logger      ports.Logger
	now         func() time.Time
}

type AuthOption func(*AuthService)

// WithAuthClock overrides the timestamp source.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(store ports.SnapshotStore, credentials ports.CredentialSource, roles *RoleService, logger ports.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		store:       store,
		credentials: credentials,
		roles:       roles,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the session projection and the setup flag.
func (s *AuthService) Load(ctx context.Context) error {
	var auth authSnapshot
	err := s.store.Load(ctx, authStorageKey, &auth)
	if err != nil && err != domain.ErrNotFound {
		return err
	}
	var setup setupSnapshot
	if err := s.store.Load(ctx, setupStorageKey, &setup); err != nil && err != domain.ErrNotFound {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = auth.User
	s.authenticated = auth.Authenticated
	s.setupComplete = setup.Complete
	return nil
}

func (s *AuthService) persistSession(ctx context.Context) error {
	snap := authSnapshot{User: s.user, Authenticated: s.authenticated}
	if err := s.store.Save(ctx, authStorageKey, snap); err != nil {
		s.logger.Error(ctx, "persist session failed", "error", err)
		return err
	}
	return nil
}

// Login verifies the credentials against the fixed table, resolves the
// account's role and builds the session user with the role's permission set
// and a fresh lastLogin. A failed login leaves any existing session intact.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	cred, ok := s.credentials.Verify(email, password)
	if !ok {
		s.logger.Warn(ctx, "login rejected", "email", email)
		return domain.User{}, domain.ErrInvalidCredentials
	}
	role, err := s.roles.RoleByID(cred.RoleID)
	if err != nil {
		s.logger.Error(ctx, "login role lookup failed", "role_id", cred.RoleID, "error", err)
		return domain.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	permissions := make([]string, len(role.Permissions))
	copy(permissions, role.Permissions)
	if role.ID == domain.RoleSuperAdmin {
		permissions = []string{domain.PermissionAll}
	}
	user := domain.User{
		ID:          cred.UserID,
		Email:       cred.Email,
		Name:        cred.Name,
		Role:        role.ID,
		Permissions: permissions,
		CreatedAt:   now,
		LastLogin:   &now,
	}
	s.user = &user
	s.authenticated = true
	if err := s.persistSession(ctx); err != nil {
		return domain.User{}, err
	}
	s.logger.Info(ctx, "login succeeded", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Logout clears the session. The setup flag is untouched.
func (s *AuthService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
	return s.persistSession(ctx)
}

// CompleteSetup flips the one-way setup flag. There is no reset operation.
func (s *AuthService) CompleteSetup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setupComplete = true
	if err := s.store.Save(ctx, setupStorageKey, setupSnapshot{Complete: true}); err != nil {
		s.logger.Error(ctx, "persist setup flag failed", "error", err)
		return err
	}
	return nil
}

// UpdateUser merges patch onto the session user.
func (s *AuthService) UpdateUser(ctx context.Context, patch UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, domain.ErrNotAuthenticated
	}
	if patch.Name != nil {
		s.user.Name = *patch.Name
	}
	if patch.Email != nil {
		s.user.Email = *patch.Email
	}
	if err := s.persistSession(ctx); err != nil {
		return domain.User{}, err
	}
	return *s.user, nil
}

// CurrentUser returns the session user, if any.
func (s *AuthService) CurrentUser() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

func (s *AuthService) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *AuthService) IsSetupComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setupComplete
}

// HasPermission reports whether the session user holds the permission id.
// No session means no permissions.
func (s *AuthService) HasPermission(permissionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated || s.user == nil {
		return false
	}
	return s.user.HasPermission(permissionID)
}
