package auth

import (
	"maps"
	"slices"

	"github.com/spec-kit/hospital-console/internal/domain"
)

// RoleSet is the set of roles a route accepts. An empty set accepts any
// authenticated identity.
type RoleSet map[string]struct{}

// NewRoleSet builds a set from role names.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

// Admits reports whether identity holds at least one role of the set.
func (s RoleSet) Admits(identity *domain.Identity) bool {
	if identity == nil {
		return false
	}
	if len(s) == 0 {
		return true
	}
	return identity.HasAnyRole(slices.Collect(maps.Keys(s))...)
}
