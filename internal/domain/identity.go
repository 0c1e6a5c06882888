package domain

import (
	"slices"
	"time"
)

// Identity is the decoded payload of a credential. It is never mutated once
// built; a new session replaces it wholesale.
type Identity struct {
	ID          int64
	Username    string
	DisplayName string
	Email       string
	Roles       []string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Clone returns a copy that shares no memory with i.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	cp := *i
	cp.Roles = slices.Clone(i.Roles)
	return &cp
}

// HasAnyRole reports whether the identity holds at least one of roles.
func (i *Identity) HasAnyRole(roles ...string) bool {
	if i == nil {
		return false
	}
	for _, role := range roles {
		if slices.Contains(i.Roles, role) {
			return true
		}
	}
	return false
}

// ExpiredAt reports whether the identity is no longer valid at now.
func (i *Identity) ExpiredAt(now time.Time) bool {
	if i == nil {
		return true
	}
	return !i.ExpiresAt.After(now)
}
