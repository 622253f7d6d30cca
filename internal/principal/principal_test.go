package principal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoleName(t *testing.T) {
	t.Run("strips the prefix once", func(t *testing.T) {
		assert.Equal(t, "ADMIN", NormalizeRoleName("ROLE_ADMIN"))
		assert.Equal(t, "DOCTOR", NormalizeRoleName("ROLE_DOCTOR"))
	})

	t.Run("passes unprefixed names through", func(t *testing.T) {
		assert.Equal(t, "ADMIN", NormalizeRoleName("ADMIN"))
		assert.Equal(t, "NURSE", NormalizeRoleName("NURSE"))
	})

	t.Run("is case sensitive", func(t *testing.T) {
		assert.Equal(t, "role_ADMIN", NormalizeRoleName("role_ADMIN"))
	})

	t.Run("is idempotent on normalized names", func(t *testing.T) {
		for _, name := range []string{"ROLE_ADMIN", "ADMIN", "ROLE_X", ""} {
			once := NormalizeRoleName(name)
			assert.Equal(t, once, NormalizeRoleName(once))
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("strips prefixes and flattens permissions", func(t *testing.T) {
		raw := RawPrincipal{
			ID:          "u-1",
			DisplayName: "Jane Doe",
			Roles: []RawRole{
				{Name: "ROLE_ADMIN", Permissions: []string{"MANAGE_USERS", "DELETE_PATIENT"}},
				{Name: "DOCTOR", Permissions: []string{"VIEW_PATIENT", "MANAGE_USERS"}},
			},
		}

		p := Normalize(raw)
		assert.Equal(t, "u-1", p.ID)
		assert.Equal(t, "Jane Doe", p.DisplayName)
		assert.Equal(t, []string{"ADMIN", "DOCTOR"}, p.Roles)
		assert.Equal(t, []string{"DELETE_PATIENT", "MANAGE_USERS", "VIEW_PATIENT"}, p.Permissions)
	})

	t.Run("deduplicates roles that normalize to the same name", func(t *testing.T) {
		raw := RawPrincipal{
			Roles: []RawRole{
				{Name: "ROLE_ADMIN"},
				{Name: "ADMIN"},
			},
		}

		p := Normalize(raw)
		assert.Equal(t, []string{"ADMIN"}, p.Roles)
	})

	t.Run("permission appearing under multiple roles is counted once", func(t *testing.T) {
		raw := RawPrincipal{
			Roles: []RawRole{
				{Name: "ROLE_ADMIN", Permissions: []string{"MANAGE_USERS"}},
				{Name: "ROLE_DOCTOR", Permissions: []string{"MANAGE_USERS"}},
			},
		}

		p := Normalize(raw)
		assert.Equal(t, []string{"MANAGE_USERS"}, p.Permissions)
	})

	t.Run("empty role set is valid", func(t *testing.T) {
		p := Normalize(RawPrincipal{ID: "u-2"})
		assert.Empty(t, p.Roles)
		assert.Empty(t, p.Permissions)
	})

	t.Run("identical input yields byte-identical output", func(t *testing.T) {
		raw := RawPrincipal{
			ID: "u-3",
			Roles: []RawRole{
				{Name: "ROLE_NURSE", Permissions: []string{"VIEW_PATIENT", "UPDATE_VITALS"}},
				{Name: "ROLE_TRIAGE", Permissions: []string{"VIEW_PATIENT"}},
			},
		}

		first, err := json.Marshal(Normalize(raw))
		require.NoError(t, err)
		second, err := json.Marshal(Normalize(raw))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}
