package service

import (
	"errors"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/listing"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrUserNotFound = errors.New("user not found")
)

// Messages shown when a role submission is incomplete. The form and the list
// word it differently; both are surfaced as-is.
const (
	MsgRoleRequired     = "Role name and permissions are required."
	MsgRoleFormRequired = "Role name and at least one permission are required."
)

// RoleSchema describes roles to the listing controller. Roles must carry a
// name and at least one permission on both the form and the list path.
func RoleSchema() listing.Schema[domain.Role] {
	return listing.Schema[domain.Role]{
		Entity: "role",
		ID:     func(r domain.Role) string { return r.ID },
		WithID: func(r domain.Role, id string) domain.Role {
			r.ID = id
			return r
		},
		Clone:        domain.Role.Clone,
		Validate:     requireComplete(MsgRoleRequired),
		FormValidate: requireComplete(MsgRoleFormRequired),
	}
}

// UserSchema describes users. Users are accepted without any checks.
func UserSchema() listing.Schema[domain.User] {
	return listing.Schema[domain.User]{
		Entity: "user",
		ID:     func(u domain.User) string { return u.ID },
		WithID: func(u domain.User, id string) domain.User {
			u.ID = id
			return u
		},
	}
}

func requireComplete(msg string) func(domain.Role) error {
	return func(r domain.Role) error {
		if !r.IsComplete() {
			return &listing.ValidationError{Message: msg}
		}
		return nil
	}
}
