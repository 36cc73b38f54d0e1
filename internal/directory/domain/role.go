package domain

type Role struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// HasPermission reports whether p is granted to the role.
func (r Role) HasPermission(p Permission) bool {
	for _, have := range r.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

// TogglePermission adds p when absent and removes it when present. The
// remaining permissions keep the order in which they were toggled on.
func (r *Role) TogglePermission(p Permission) {
	if !r.HasPermission(p) {
		r.Permissions = append(r.Permissions, p)
		return
	}

	kept := make([]Permission, 0, len(r.Permissions)-1)
	for _, have := range r.Permissions {
		if have != p {
			kept = append(kept, have)
		}
	}
	r.Permissions = kept
}

// Clone returns a copy that shares no slice storage with r.
func (r Role) Clone() Role {
	if r.Permissions != nil {
		r.Permissions = append([]Permission(nil), r.Permissions...)
	}
	return r
}

// PermissionNames returns the permissions as plain strings.
func (r Role) PermissionNames() []string {
	out := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		out[i] = string(p)
	}
	return out
}

// IsComplete reports whether the role carries a name and at least one
// permission, the only fields a role requires.
func (r Role) IsComplete() bool {
	return r.Name != "" && len(r.Permissions) > 0
}
