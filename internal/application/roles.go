package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"asset-console/internal/domain"
	"asset-console/internal/ports"
)

// roleStorageKey is the snapshot key the role store persists under.
const roleStorageKey = "role-storage"

type roleSnapshot struct {
	Roles  []domain.Role        `json:"roles"`
	Schema []domain.SchemaTable `json:"databaseSchema"`
}

// RoleInput carries the caller-settable fields of a role.
type RoleInput struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Permissions  []string `json:"permissions"`
	IsSystemRole bool     `json:"isSystemRole"`
}

// RolePatch is a partial update; nil fields keep their prior value.
type RolePatch struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Permissions *[]string `json:"permissions"`
}

// RoleService owns the mutable role catalog, the immutable permission
// catalog and the reference schema document.
type RoleService struct {
	mu          sync.Mutex
	roles       []domain.Role
	permissions []domain.Permission
	schema      []domain.SchemaTable

	store  ports.SnapshotStore
	logger ports.Logger
	now    func() time.Time
	newID  func() string
}

type RoleOption func(*RoleService)

// WithRoleClock overrides the timestamp source.
func WithRoleClock(now func() time.Time) RoleOption {
	return func(s *RoleService) { s.now = now }
}

func NewRoleService(store ports.SnapshotStore, logger ports.Logger, opts ...RoleOption) *RoleService {
	s := &RoleService{
		permissions: domain.PermissionCatalog(),
		schema:      domain.DefaultSchema(),
		store:       store,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the persisted snapshot. The permission catalog is never
// persisted; it is fixed at startup.
func (s *RoleService) Load(ctx context.Context) error {
	var snap roleSnapshot
	err := s.store.Load(ctx, roleStorageKey, &snap)
	if err == domain.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles = snap.Roles
	if len(snap.Schema) > 0 {
		s.schema = snap.Schema
	}
	return nil
}

func (s *RoleService) persist(ctx context.Context) error {
	snap := roleSnapshot{Roles: s.roles, Schema: s.schema}
	if err := s.store.Save(ctx, roleStorageKey, snap); err != nil {
		s.logger.Error(ctx, "persist role snapshot failed", "error", err)
		return err
	}
	return nil
}

// EnsureDefaultRoles seeds each missing system role. Roles already present,
// system or custom, are left untouched; this is never a replace-all.
func (s *RoleService) EnsureDefaultRoles(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seeded := 0
	for _, def := range domain.DefaultRoles(s.now()) {
		if s.indexOf(def.ID) < 0 {
			s.roles = append(s.roles, def)
			seeded++
		}
	}
	if seeded == 0 {
		return nil
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "system roles seeded", "count", seeded)
	return nil
}

// CreateRole creates a custom role. Permission ids are deduplicated; a role's
// permission set has set semantics throughout.
func (s *RoleService) CreateRole(ctx context.Context, input RoleInput) (domain.Role, error) {
	if input.Name == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	role := domain.Role{
		ID:           s.newID(),
		Name:         input.Name,
		Description:  input.Description,
		Permissions:  dedupe(input.Permissions),
		IsSystemRole: input.IsSystemRole,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.roles = append(s.roles, role)
	if err := s.persist(ctx); err != nil {
		return domain.Role{}, err
	}
	s.logger.Info(ctx, "role created", "role_id", role.ID, "name", role.Name)
	return role, nil
}

// UpdateRole merges patch over the role with the given id. System roles'
// permission sets are mutable; only their presence is protected.
func (s *RoleService) UpdateRole(ctx context.Context, id string, patch RolePatch) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Role{}, domain.ErrNotFound
	}
	role := s.roles[idx]
	if patch.Name != nil {
		role.Name = *patch.Name
	}
	if patch.Description != nil {
		role.Description = *patch.Description
	}
	if patch.Permissions != nil {
		role.Permissions = dedupe(*patch.Permissions)
	}
	role.UpdatedAt = s.now()
	s.roles[idx] = role
	if err := s.persist(ctx); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// DeleteRole removes a custom role. Deleting a system role fails with
// domain.ErrSystemRole and leaves the catalog unchanged.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	if s.roles[idx].IsSystemRole {
		return domain.ErrSystemRole
	}
	s.roles = append(s.roles[:idx], s.roles[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "role deleted", "role_id", id)
	return nil
}

// AssignPermission adds a permission id to a role's set. Assigning an id the
// role already holds is a no-op.
func (s *RoleService) AssignPermission(ctx context.Context, roleID, permissionID string) (domain.Role, error) {
	if permissionID == "" {
		return domain.Role{}, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(roleID)
	if idx < 0 {
		return domain.Role{}, domain.ErrNotFound
	}
	role := s.roles[idx]
	role.Permissions = dedupe(append(append([]string{}, role.Permissions...), permissionID))
	role.UpdatedAt = s.now()
	s.roles[idx] = role
	if err := s.persist(ctx); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

// RemovePermission removes a permission id from a role's set. Removing an
// absent id succeeds without effect.
func (s *RoleService) RemovePermission(ctx context.Context, roleID, permissionID string) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(roleID)
	if idx < 0 {
		return domain.Role{}, domain.ErrNotFound
	}
	role := s.roles[idx]
	kept := make([]string, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		if p != permissionID {
			kept = append(kept, p)
		}
	}
	role.Permissions = kept
	role.UpdatedAt = s.now()
	s.roles[idx] = role
	if err := s.persist(ctx); err != nil {
		return domain.Role{}, err
	}
	return role, nil
}

func (s *RoleService) indexOf(id string) int {
	for i, r := range s.roles {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Roles returns a copy of the role catalog.
func (s *RoleService) Roles() []domain.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Role, len(s.roles))
	copy(out, s.roles)
	return out
}

// RoleByID returns the role with the given id.
func (s *RoleService) RoleByID(id string) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Role{}, domain.ErrNotFound
	}
	return s.roles[idx], nil
}

// Permissions returns the fixed permission catalog.
func (s *RoleService) Permissions() []domain.Permission {
	out := make([]domain.Permission, len(s.permissions))
	copy(out, s.permissions)
	return out
}

// Schema returns the reference schema document.
func (s *RoleService) Schema() []domain.SchemaTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SchemaTable, len(s.schema))
	copy(out, s.schema)
	return out
}

// UpdateSchema replaces the reference schema document. The document is
// descriptive only; no validation applies.
func (s *RoleService) UpdateSchema(ctx context.Context, schema []domain.SchemaTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schema = schema
	return s.persist(ctx)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
