package domain

import (
	"errors"
	"strings"
)

// ErrUnknownPermission reports a permission outside the fixed enumeration.
var ErrUnknownPermission = errors.New("domain: unknown permission")

type Permission string

const (
	PermissionRead   Permission = "Read"
	PermissionWrite  Permission = "Write"
	PermissionDelete Permission = "Delete"
)

// Permissions lists every grantable permission in display order.
var Permissions = []Permission{PermissionRead, PermissionWrite, PermissionDelete}

// ParsePermission maps a case-insensitive name onto the enumeration.
func ParsePermission(s string) (Permission, error) {
	s = strings.TrimSpace(s)
	for _, p := range Permissions {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", ErrUnknownPermission
}

// ParsePermissions parses every entry, keeping order and dropping duplicates.
func ParsePermissions(raw []string) ([]Permission, error) {
	out := make([]Permission, 0, len(raw))
	seen := make(map[Permission]struct{}, len(raw))
	for _, s := range raw {
		p, err := ParsePermission(s)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
