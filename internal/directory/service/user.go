package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/listing"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// RoleSource reads the stored roles. store.Collection[domain.Role] satisfies
// it.
type RoleSource interface {
	Load(ctx context.Context) ([]domain.Role, error)
}

// UserService serializes access to the user list controller and holds the
// role names read at the last Load. The names are a snapshot: roles created
// or deleted afterwards are not seen until the next Load.
type UserService struct {
	mu        sync.Mutex
	ctrl      *listing.Controller[domain.User]
	roles     RoleSource
	roleNames []string
}

func NewUserService(repo listing.Repository[domain.User], roles RoleSource) *UserService {
	return &UserService{
		ctrl:      listing.NewController(UserSchema(), repo),
		roles:     roles,
		roleNames: []string{},
	}
}

// Load reads the stored users and takes a fresh snapshot of role names.
// On error nothing held in memory changes.
func (s *UserService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Roles first: a failed read must leave the users and options as they were.
	roles, err := s.roles.Load(ctx)
	if err != nil {
		return fmt.Errorf("load role options: %w", err)
	}

	if err := s.ctrl.Initialize(ctx); err != nil {
		return err
	}
	s.roleNames = roleNames(roles)

	slogx.FromContext(ctx).Debug("role options refreshed", slog.Int("count", len(s.roleNames)))
	return nil
}

// RoleOptions returns the role names offered by the user form.
func (s *UserService) RoleOptions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.roleNames)
}

// ListAll returns all users in display order.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Records(), nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.ctrl.Find(userID)
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}

// CreateUser stores u under a fresh id. No field is checked.
func (s *UserService) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.ctrl.OpenCreateForm()
	f.Update(func(d *domain.User) { *d = withoutID(u) })
	return f.Save(ctx)
}

// UpdateUser overwrites every field of an existing user except its id.
func (s *UserService) UpdateUser(ctx context.Context, userID string, u domain.User) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.ctrl.OpenEditForm(userID)
	if errors.Is(err, listing.ErrRecordNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	f.Update(func(d *domain.User) { *d = withoutID(u) })
	return f.Save(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Remove(ctx, userID)
}

// OpenForm opens an empty user form offering the current role snapshot.
func (s *UserService) OpenForm() *UserForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &UserForm{svc: s, form: s.ctrl.OpenCreateForm(), options: slices.Clone(s.roleNames)}
}

func (s *UserService) EditForm(userID string) (*UserForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.ctrl.OpenEditForm(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &UserForm{svc: s, form: f, options: slices.Clone(s.roleNames)}, nil
}

// UserForm edits one user. The role choices are fixed when the form opens.
type UserForm struct {
	svc     *UserService
	form    *listing.Form[domain.User]
	options []string
}

func (f *UserForm) Mode() listing.Mode { return f.form.Mode() }

func (f *UserForm) Draft() domain.User { return f.form.Draft() }

// RoleOptions returns exactly the role names supplied when the form opened.
func (f *UserForm) RoleOptions() []string { return slices.Clone(f.options) }

func (f *UserForm) SetName(name string) {
	f.form.Update(func(u *domain.User) { u.Name = name })
}

func (f *UserForm) SetEmail(email string) {
	f.form.Update(func(u *domain.User) { u.Email = email })
}

// SelectRole sets the role text. Any string is accepted, matching a free
// text field pre-filled from the options.
func (f *UserForm) SelectRole(role string) {
	f.form.Update(func(u *domain.User) { u.Role = role })
}

func (f *UserForm) SetActive(active bool) {
	f.form.Update(func(u *domain.User) { u.Active = active })
}

func (f *UserForm) Save(ctx context.Context) (domain.User, error) {
	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()
	return f.form.Save(ctx)
}

func (f *UserForm) Cancel() {
	f.svc.mu.Lock()
	defer f.svc.mu.Unlock()
	f.form.Cancel()
}

func withoutID(u domain.User) domain.User {
	u.ID = ""
	return u
}
