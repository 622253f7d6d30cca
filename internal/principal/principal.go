package principal

import (
	"sort"
	"strings"
)

// RolePrefix is the transport-layer prefix the identity service attaches
// to role names. Normalization strips it once, case-sensitively.
const RolePrefix = "ROLE_"

// RawRole is a role as returned by the identity service, carrying the
// permission names attached to it.
type RawRole struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// RawPrincipal is the identity service's wire representation of a user.
type RawPrincipal struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Roles       []RawRole `json:"roles"`
}

// Principal represents an authenticated identity with canonical roles and
// permissions. Both sets are deduplicated and sorted, so normalizing the
// same input always yields byte-identical output. A principal with no
// roles is valid and satisfies no non-empty role or permission check.
type Principal struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// Normalize maps a raw principal into canonical form. Role names lose the
// RolePrefix when present; permissions are the flattened union of every
// role's permission list, counted once each.
func Normalize(raw RawPrincipal) Principal {
	roleSet := make(map[string]struct{}, len(raw.Roles))
	permSet := make(map[string]struct{})

	for _, role := range raw.Roles {
		roleSet[NormalizeRoleName(role.Name)] = struct{}{}
		for _, perm := range role.Permissions {
			permSet[perm] = struct{}{}
		}
	}

	return Principal{
		ID:          raw.ID,
		DisplayName: raw.DisplayName,
		Roles:       sortedKeys(roleSet),
		Permissions: sortedKeys(permSet),
	}
}

// NormalizeRoleName strips the RolePrefix exactly once if present; names
// without the prefix pass through unchanged.
func NormalizeRoleName(name string) string {
	return strings.TrimPrefix(name, RolePrefix)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
