package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/listing"
	"github.com/aussiebroadwan/directory/pkg/slogx"
	"gopkg.in/yaml.v3"
)

var ErrSeedInvalid = errors.New("invalid seed file")

// SeedData is the YAML layout of a seed file:
//
//	roles:
//	  - name: Admin
//	    permissions: [Read, Write, Delete]
//	users:
//	  - name: Ada
//	    email: ada@example.com
//	    role: Admin
//	    active: true
type SeedData struct {
	Roles []SeedRole `yaml:"roles"`
	Users []SeedUser `yaml:"users"`
}

type SeedRole struct {
	Name        string   `yaml:"name"`
	Permissions []string `yaml:"permissions"`
}

type SeedUser struct {
	Name   string `yaml:"name"`
	Email  string `yaml:"email"`
	Role   string `yaml:"role"`
	Active bool   `yaml:"active"`
}

// ParseSeed decodes a seed document.
func ParseSeed(r io.Reader) (SeedData, error) {
	var data SeedData
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		return SeedData{}, fmt.Errorf("%w: %v", ErrSeedInvalid, err)
	}
	return data, nil
}

// LoadSeedFile reads and decodes the seed file at path.
func LoadSeedFile(path string) (SeedData, error) {
	f, err := os.Open(path)
	if err != nil {
		return SeedData{}, err
	}
	defer f.Close()
	return ParseSeed(f)
}

// SeedService fills empty collections with predefined records on startup.
// A collection that already holds records is never touched.
type SeedService struct {
	Roles *RolesService
	Users *UserService
}

// Seed creates the seed records through the regular create path, so roles
// are validated as if entered in the form. Both services must be loaded.
func (s *SeedService) Seed(ctx context.Context, data SeedData) error {
	l := slogx.FromContext(ctx)

	roles, _ := s.Roles.ListAll(ctx)
	if len(roles) == 0 && len(data.Roles) > 0 {
		seed, err := data.parseRoles()
		if err != nil {
			return err
		}
		for _, r := range seed {
			if _, err := s.Roles.CreateRole(ctx, r.Name, r.Permissions); err != nil {
				return fmt.Errorf("seed role %q: %w", r.Name, err)
			}
		}
		l.Info("seeded roles", slog.Int("count", len(data.Roles)))

		// The user form offers whatever roles exist now.
		if err := s.Users.Load(ctx); err != nil {
			return err
		}
	}

	users, _ := s.Users.ListAll(ctx)
	if len(users) == 0 && len(data.Users) > 0 {
		for _, su := range data.Users {
			u := domain.User{Name: su.Name, Email: su.Email, Role: su.Role, Active: su.Active}
			if _, err := s.Users.CreateUser(ctx, u); err != nil {
				return fmt.Errorf("seed user %q: %w", su.Email, err)
			}
		}
		l.Info("seeded users", slog.Int("count", len(data.Users)))
	}

	return nil
}

// parseRoles checks every seed role before any is stored, so a bad entry
// never leaves a partial role set behind.
func (d SeedData) parseRoles() ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(d.Roles))
	for _, sr := range d.Roles {
		perms, err := domain.ParsePermissions(sr.Permissions)
		if err != nil {
			return nil, fmt.Errorf("%w: role %q: %v", ErrSeedInvalid, sr.Name, err)
		}
		r := domain.Role{Name: sr.Name, Permissions: perms}
		if !r.IsComplete() {
			return nil, fmt.Errorf("%w: role %q: %w", ErrSeedInvalid, sr.Name,
				&listing.ValidationError{Message: MsgRoleFormRequired})
		}
		out = append(out, r)
	}
	return out, nil
}
