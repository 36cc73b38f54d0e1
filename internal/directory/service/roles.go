package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/listing"
)

// RolesService serializes access to the single role list controller. Every
// exported method holds the lock for its whole interaction.
type RolesService struct {
	mu   sync.Mutex
	ctrl *listing.Controller[domain.Role]
}

func NewRolesService(repo listing.Repository[domain.Role]) *RolesService {
	return &RolesService{ctrl: listing.NewController(RoleSchema(), repo)}
}

// Load reads the stored roles, replacing whatever is held in memory.
func (s *RolesService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Initialize(ctx)
}

// ListAll returns all roles in display order.
func (s *RolesService) ListAll(ctx context.Context) ([]domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Records(), nil
}

// GetRoleByID fetches a role by its ID.
func (s *RolesService) GetRoleByID(ctx context.Context, roleID string) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, ok := s.ctrl.Find(roleID)
	if !ok {
		return domain.Role{}, ErrRoleNotFound
	}
	return role, nil
}

// CreateRole fills a fresh form with name and permissions and saves it.
func (s *RolesService) CreateRole(ctx context.Context, name string, perms []domain.Permission) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.ctrl.OpenCreateForm()
	f.Update(func(r *domain.Role) {
		r.Name = name
		r.Permissions = append([]domain.Permission(nil), perms...)
	})
	return f.Save(ctx)
}

// UpdateRole replaces the name and permissions of an existing role. The id
// and list position are kept.
func (s *RolesService) UpdateRole(ctx context.Context, roleID, name string, perms []domain.Permission) (domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.ctrl.OpenEditForm(roleID)
	if errors.Is(err, listing.ErrRecordNotFound) {
		return domain.Role{}, ErrRoleNotFound
	}
	if err != nil {
		return domain.Role{}, err
	}
	f.Update(func(r *domain.Role) {
		r.Name = name
		r.Permissions = append([]domain.Permission(nil), perms...)
	})
	return f.Save(ctx)
}

// DeleteRole removes the role. Users holding its name keep it.
func (s *RolesService) DeleteRole(ctx context.Context, roleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Remove(ctx, roleID)
}

// OpenForm opens an empty role form, closing any other open form.
func (s *RolesService) OpenForm() *RoleForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &RoleForm{svc: s, form: s.ctrl.OpenCreateForm()}
}

// EditForm opens a form pre-filled with the role's current values.
func (s *RolesService) EditForm(roleID string) (*RoleForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.ctrl.OpenEditForm(roleID)
	if err != nil {
		return nil, ErrRoleNotFound
	}
	return &RoleForm{svc: s, form: f}, nil
}

// RoleForm is the interactive role editor: a name and a set of permission
// toggles.
type RoleForm struct {
	svc  *RolesService
	form *listing.Form[domain.Role]
}

func (f *RoleForm) Mode() listing.Mode { return f.form.Mode() }

func (f *RoleForm) Draft() domain.Role { return f.form.Draft().Clone() }

func (f *RoleForm) SetName(name string) {
	f.form.Update(func(r *domain.Role) { r.Name = name })
}

// TogglePermission flips one permission checkbox.
func (f *RoleForm) TogglePermission(p domain.Permission) {
	f.form.Update(func(r *domain.Role) { r.TogglePermission(p) })
}

// Err returns the message from the last rejected save.
func (f *RoleForm) Err() error { return f.form.Err() }

// Save hands the draft to the list. Incomplete roles stay in the form.
func (f *RoleForm) Save(ctx context.Context) (domain.Role, error) {
	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()
	return f.form.Save(ctx)
}

func (f *RoleForm) Cancel() {
	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()
	f.form.Cancel()
}

func roleNames(roles []domain.Role) []string {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return names
}
