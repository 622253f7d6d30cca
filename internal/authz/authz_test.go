package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinops/wardview/internal/principal"
)

func TestPredicatesWithNilPrincipal(t *testing.T) {
	// Not authenticated: every predicate is false regardless of arguments,
	// including the vacuous empty-ALL case.
	assert.False(t, HasRole(nil, "ADMIN"))
	assert.False(t, HasAnyRole(nil, []string{"ADMIN"}))
	assert.False(t, HasAnyRole(nil, nil))
	assert.False(t, HasAllRoles(nil, []string{"ADMIN"}))
	assert.False(t, HasAllRoles(nil, nil))
	assert.False(t, HasPermission(nil, "MANAGE_USERS"))
	assert.False(t, HasAnyPermission(nil, []string{"MANAGE_USERS"}))
	assert.False(t, HasAllPermissions(nil, nil))
}

func TestRolePredicates(t *testing.T) {
	p := &principal.Principal{
		ID:    "u-1",
		Roles: []string{"ADMIN", "DOCTOR"},
	}
	empty := &principal.Principal{ID: "u-2"}

	t.Run("has role", func(t *testing.T) {
		assert.True(t, HasRole(p, "ADMIN"))
		assert.False(t, HasRole(p, "NURSE"))
		assert.False(t, HasRole(empty, "ADMIN"))
	})

	t.Run("any semantics", func(t *testing.T) {
		assert.True(t, HasAnyRole(p, []string{"NURSE", "DOCTOR"}))
		assert.False(t, HasAnyRole(p, []string{"NURSE", "TRIAGE"}))
		assert.False(t, HasAnyRole(empty, []string{"ADMIN"}))
	})

	t.Run("empty any list is never satisfied", func(t *testing.T) {
		assert.False(t, HasAnyRole(p, nil))
		assert.False(t, HasAnyRole(empty, []string{}))
	})

	t.Run("all semantics", func(t *testing.T) {
		assert.True(t, HasAllRoles(p, []string{"ADMIN", "DOCTOR"}))
		assert.False(t, HasAllRoles(p, []string{"ADMIN", "NURSE"}))
		assert.False(t, HasAllRoles(empty, []string{"ADMIN"}))
	})

	t.Run("empty all list is vacuously true for any principal", func(t *testing.T) {
		assert.True(t, HasAllRoles(p, nil))
		assert.True(t, HasAllRoles(empty, []string{}))
	})
}

func TestPermissionPredicates(t *testing.T) {
	p := &principal.Principal{
		ID:          "u-1",
		Roles:       []string{"ADMIN"},
		Permissions: []string{"DELETE_PATIENT", "MANAGE_USERS"},
	}

	assert.True(t, HasPermission(p, "MANAGE_USERS"))
	assert.False(t, HasPermission(p, "VIEW_AUDIT"))

	assert.True(t, HasAnyPermission(p, []string{"VIEW_AUDIT", "MANAGE_USERS"}))
	assert.False(t, HasAnyPermission(p, []string{"VIEW_AUDIT"}))
	assert.False(t, HasAnyPermission(p, nil))

	assert.True(t, HasAllPermissions(p, []string{"DELETE_PATIENT", "MANAGE_USERS"}))
	assert.False(t, HasAllPermissions(p, []string{"DELETE_PATIENT", "VIEW_AUDIT"}))
	assert.True(t, HasAllPermissions(p, nil))
}
