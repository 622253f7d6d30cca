// Package authz provides stateless role and permission predicates over a
// principal. A nil principal means no authenticated session, and every
// predicate treats it as failing regardless of arguments.
package authz

import (
	"slices"

	"github.com/clinops/wardview/internal/principal"
)

// HasRole reports whether the principal holds the named role.
func HasRole(p *principal.Principal, role string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal holds at least one of the named
// roles. An empty list is never satisfied.
func HasAnyRole(p *principal.Principal, roles []string) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if slices.Contains(p.Roles, role) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether the principal holds every named role. An
// empty list is vacuously satisfied.
func HasAllRoles(p *principal.Principal, roles []string) bool {
	if p == nil {
		return false
	}
	for _, role := range roles {
		if !slices.Contains(p.Roles, role) {
			return false
		}
	}
	return true
}

// HasPermission reports whether the principal holds the named permission.
func HasPermission(p *principal.Principal, perm string) bool {
	if p == nil {
		return false
	}
	return slices.Contains(p.Permissions, perm)
}

// HasAnyPermission reports whether the principal holds at least one of the
// named permissions. An empty list is never satisfied.
func HasAnyPermission(p *principal.Principal, perms []string) bool {
	if p == nil {
		return false
	}
	for _, perm := range perms {
		if slices.Contains(p.Permissions, perm) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether the principal holds every named
// permission. An empty list is vacuously satisfied.
func HasAllPermissions(p *principal.Principal, perms []string) bool {
	if p == nil {
		return false
	}
	for _, perm := range perms {
		if !slices.Contains(p.Permissions, perm) {
			return false
		}
	}
	return true
}
